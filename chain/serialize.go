package chain

import (
	"encoding/binary"
	"math"

	"github.com/OdyseeTeam/fast-tx/blockchain/model"
	"github.com/cockroachdb/errors"
)

// Serialize encodes tx in wire format, using minimal CompactSize widths. With
// witness set and tx.IsSegWit true the marker, flag and witness stacks are
// included; otherwise the stripped (txid) form is written.
//
// Anything Serialize accepts decodes back to the same transaction: SegWit
// transactions must be version 2 or above, witness stacks may not exceed 255
// items, and only SegWit transactions may carry witness data.
func Serialize(tx model.Transaction, witness bool) ([]byte, error) {
	if tx.IsSegWit && tx.Version < 2 {
		return nil, errors.Newf("segwit transaction with version %d would not decode as segwit", tx.Version)
	}

	b := make([]byte, 0, serializedSize(tx))
	b = binary.LittleEndian.AppendUint32(b, uint32(tx.Version))

	if tx.IsSegWit && witness {
		b = append(b, segwitMarker, segwitFlag)
	}

	b = AppendCompactSize(b, uint64(len(tx.Inputs)))
	for i, in := range tx.Inputs {
		if len(in.Witness) > 0 && !tx.IsSegWit {
			return nil, errors.Newf("input %d has witness data but the transaction is not segwit", i)
		}
		b = append(b, in.PrevTxHash[:]...)
		b = binary.LittleEndian.AppendUint32(b, in.PrevTxIndex)
		b = appendVarBytes(b, in.Script)
		b = binary.LittleEndian.AppendUint32(b, in.Sequence)
	}

	b = AppendCompactSize(b, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		b = binary.LittleEndian.AppendUint64(b, out.Amount.Satoshis())
		b = appendVarBytes(b, out.PKScript)
	}

	if tx.IsSegWit && witness {
		for i, in := range tx.Inputs {
			if len(in.Witness) > math.MaxUint8 {
				return nil, errors.Newf("input %d has %d witness items, at most %d can be encoded", i, len(in.Witness), math.MaxUint8)
			}
			b = append(b, byte(len(in.Witness)))
			for _, item := range in.Witness {
				b = appendVarBytes(b, item)
			}
		}
	}

	b = binary.LittleEndian.AppendUint32(b, tx.LockTime)
	return b, nil
}

func appendVarBytes(b, data []byte) []byte {
	b = AppendCompactSize(b, uint64(len(data)))
	return append(b, data...)
}

// serializedSize is the full (witness included) encoded size of tx.
func serializedSize(tx model.Transaction) int {
	n := 4 + 4 + CompactSizeLen(uint64(len(tx.Inputs))) + CompactSizeLen(uint64(len(tx.Outputs)))
	if tx.IsSegWit {
		n += 2
	}
	for _, in := range tx.Inputs {
		n += 32 + 4 + 4 + CompactSizeLen(uint64(len(in.Script))) + len(in.Script)
		if tx.IsSegWit {
			n++
			for _, item := range in.Witness {
				n += CompactSizeLen(uint64(len(item))) + len(item)
			}
		}
	}
	for _, out := range tx.Outputs {
		n += 8 + CompactSizeLen(uint64(len(out.PKScript))) + len(out.PKScript)
	}
	return n
}
