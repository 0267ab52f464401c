package model

import (
	"encoding/json"

	"github.com/OdyseeTeam/fast-tx/blockchain/script"
)

// TxRecord is the display form of a Transaction. Field names follow bitcoind's
// decoderawtransaction: "txid" is the canonical id, "hash" the witness id.
type TxRecord struct {
	TxID     string         `json:"txid"`
	Hash     string         `json:"hash"`
	Version  int32          `json:"version"`
	Size     int            `json:"size"`
	VSize    int            `json:"vsize"`
	Weight   int            `json:"weight"`
	LockTime uint32         `json:"locktime"`
	Vin      []InputRecord  `json:"vin"`
	Vout     []OutputRecord `json:"vout"`
}

type InputRecord struct {
	Coinbase  *script.Hex   `json:"coinbase,omitempty"`
	TxID      string        `json:"txid,omitempty"`
	Vout      *uint32       `json:"vout,omitempty"`
	ScriptSig *ScriptRecord `json:"scriptSig,omitempty"`
	Witness   []string      `json:"txinwitness,omitempty"`
	Sequence  uint32        `json:"sequence"`
}

type OutputRecord struct {
	Value        string       `json:"value"`
	ValueSat     uint64       `json:"valueSat"`
	N            int          `json:"n"`
	ScriptPubKey ScriptRecord `json:"scriptPubKey"`
}

// ScriptRecord always carries the hex. Classification is filled in only when a
// classifier was run over the script.
type ScriptRecord struct {
	Hex script.Hex `json:"hex"`
	*script.Info
}

func (t Transaction) Record() TxRecord {
	r := TxRecord{
		TxID:     t.Hash.String(),
		Hash:     t.WitnessHash.String(),
		Version:  t.Version,
		Size:     t.Size,
		VSize:    t.VSize(),
		Weight:   t.Weight(),
		LockTime: t.LockTime,
		Vin:      make([]InputRecord, len(t.Inputs)),
		Vout:     make([]OutputRecord, len(t.Outputs)),
	}

	for n, in := range t.Inputs {
		ir := InputRecord{Sequence: in.Sequence}
		if in.IsCoinbase() {
			h := script.ToHex(in.Script)
			ir.Coinbase = &h
		} else {
			vout := in.PrevTxIndex
			ir.TxID = in.PrevTxHash.String()
			ir.Vout = &vout
			ir.ScriptSig = &ScriptRecord{Hex: script.ToHex(in.Script)}
		}
		if len(in.Witness) > 0 {
			ir.Witness = in.Witness.Strings()
		}
		r.Vin[n] = ir
	}

	for n, out := range t.Outputs {
		r.Vout[n] = OutputRecord{
			Value:        out.Amount.String(),
			ValueSat:     out.Amount.Satoshis(),
			N:            n,
			ScriptPubKey: ScriptRecord{Hex: script.ToHex(out.PKScript)},
		}
	}

	return r
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}
