package model

import (
	"github.com/lbryio/lbcd/chaincfg/chainhash"
)

// WitnessScaleFactor is the weight of a non-witness byte relative to a witness byte.
const WitnessScaleFactor = 4

type Transaction struct {
	Hash        chainhash.Hash // txid, computed without marker, flag and witness data
	WitnessHash chainhash.Hash // wtxid, computed over the full serialization
	Version     int32
	IsSegWit    bool
	Inputs      []Input
	Outputs     []Output
	LockTime    uint32

	Size         int // bytes consumed from the raw transaction
	StrippedSize int // Size minus marker, flag and witness bytes
}

// IsCoinbase is true for a transaction with a single coinbase input.
func (t Transaction) IsCoinbase() bool {
	return len(t.Inputs) == 1 && t.Inputs[0].IsCoinbase()
}

// Weight is StrippedSize*3 + Size, as defined in BIP141.
func (t Transaction) Weight() int {
	return t.StrippedSize*(WitnessScaleFactor-1) + t.Size
}

// VSize is the weight in virtual bytes, rounded up.
func (t Transaction) VSize() int {
	return (t.Weight() + WitnessScaleFactor - 1) / WitnessScaleFactor
}

// TotalOut sums the output amounts. ok is false on uint64 overflow.
func (t Transaction) TotalOut() (total Amount, ok bool) {
	for _, out := range t.Outputs {
		next := total + out.Amount
		if next < total {
			return 0, false
		}
		total = next
	}
	return total, true
}
