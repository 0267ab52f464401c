package model

import (
	"encoding/hex"

	"github.com/lbryio/lbcd/chaincfg/chainhash"
)

const (
	// MaxSequence marks an input as final.
	MaxSequence uint32 = 0xffffffff
	// CoinbaseIndex is the previous output index of a coinbase input.
	CoinbaseIndex uint32 = 0xffffffff
)

type Input struct {
	PrevTxHash  chainhash.Hash // String() gives the byte-reversed display form
	PrevTxIndex uint32
	Script      Script
	Sequence    uint32
	Witness     Witness
}

func (i Input) IsCoinbase() bool {
	return i.PrevTxIndex == CoinbaseIndex && i.PrevTxHash == chainhash.Hash{}
}

func (i Input) IsFinal() bool { return i.Sequence == MaxSequence }

// SignalsRBF reports opt-in replace-by-fee (BIP125).
func (i Input) SignalsRBF() bool { return i.Sequence < MaxSequence-1 }

type Script []byte

func (s Script) String() string { return hex.EncodeToString(s) }
func (s Script) Bytes() []byte  { return s }

// Witness is the stack of items attached to one input.
type Witness [][]byte

func (w Witness) Strings() []string {
	items := make([]string, len(w))
	for n, item := range w {
		items[n] = hex.EncodeToString(item)
	}
	return items
}
