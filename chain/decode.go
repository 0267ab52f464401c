package chain

import (
	"encoding/hex"

	"github.com/OdyseeTeam/fast-tx/blockchain/model"
	"github.com/cockroachdb/errors"
	"github.com/lbryio/lbcd/chaincfg/chainhash"
	"github.com/sirupsen/logrus"
)

const (
	segwitMarker = 0x00
	segwitFlag   = 0x01

	// smallest possible encodings, used to reject counts the buffer cannot hold
	// before anything is allocated for them
	minInputSize       = chainhash.HashSize + 4 + 1 + 4 // prev hash, index, empty script, sequence
	minOutputSize      = 8 + 1                          // amount, empty script
	minWitnessItemSize = 1                              // empty item
)

// span is a half-open byte range [start, end) of the raw transaction.
type span struct {
	start, end int
}

// DecodeString decodes a hex encoded raw transaction. Hex is case-insensitive.
func DecodeString(s string) (model.Transaction, error) {
	if s == "" || len(s)%2 != 0 {
		return model.Transaction{}, errors.Wrapf(ErrNonHexInput, "hex length %d", len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return model.Transaction{}, errors.Wrap(ErrNonHexInput, err.Error())
	}
	return Decode(raw)
}

// Decode parses a raw transaction in wire format. raw must hold exactly one
// transaction. On error the returned Transaction is the zero value.
//
// The marker and flag are only honored for version 2 and up. A version 1
// transaction starting 00 01 is read as zero inputs followed by the output count.
func Decode(raw []byte) (model.Transaction, error) {
	c := NewCursor(raw)

	tx, strip, err := readTransaction(c)
	if err != nil {
		return model.Transaction{}, err
	}

	if !c.AtEnd() {
		return model.Transaction{}, errors.Wrapf(ErrLengthMismatch, "%d bytes left after lock time", c.Remaining())
	}

	tx.Size = len(raw)
	tx.StrippedSize = len(raw)
	for _, s := range strip {
		tx.StrippedSize -= s.end - s.start
	}
	tx.Hash = TxHash(raw, strip...)
	tx.WitnessHash = WitnessHash(raw)

	logrus.Debugf("TX %s (wtxid %s, %d bytes)", tx.Hash, tx.WitnessHash, tx.Size)
	return tx, nil
}

// readTransaction returns the transaction and the byte ranges that are excluded
// from its txid.
func readTransaction(c *Cursor) (model.Transaction, []span, error) {
	var strip []span
	tx := model.Transaction{}

	version, err := c.readUint32()
	if err != nil {
		return tx, nil, errors.Wrap(err, "version")
	}
	tx.Version = int32(version)

	// txid:   doubleSHA([nVersion][txins][txouts][nLockTime])
	// wtxid:  doubleSHA([nVersion][marker][flag][txins][txouts][witness][nLockTime])
	// https://en.bitcoin.it/wiki/BIP_0141#Transaction_ID
	if mf := c.Peek(2); tx.Version >= 2 && mf != nil && mf[0] == segwitMarker && mf[1] == segwitFlag {
		strip = append(strip, span{start: c.Offset(), end: c.Offset() + 2})
		_, _ = c.Read(2)
		tx.IsSegWit = true
	}

	inputCount, err := readCount(c, minInputSize, "input")
	if err != nil {
		return tx, nil, err
	}

	tx.Inputs, err = readInputs(c, inputCount)
	if err != nil {
		return tx, nil, err
	}

	outputCount, err := readCount(c, minOutputSize, "output")
	if err != nil {
		return tx, nil, err
	}

	tx.Outputs, err = readOutputs(c, outputCount)
	if err != nil {
		return tx, nil, err
	}

	if tx.IsSegWit {
		start := c.Offset()
		err = readWitnesses(c, tx.Inputs)
		if err != nil {
			return tx, nil, err
		}
		strip = append(strip, span{start: start, end: c.Offset()})
	}

	if c.Remaining() < 4 {
		return tx, nil, errors.Wrapf(ErrLengthMismatch, "buffer ends %d bytes into the lock time", c.Remaining())
	}
	tx.LockTime, _ = c.readUint32()

	return tx, strip, nil
}

// readCount reads a CompactSize item count and rejects it if the remaining bytes
// could not hold that many items of at least minSize bytes each.
func readCount(c *Cursor, minSize int, what string) (int, error) {
	offset := c.Offset()
	n, err := ReadCompactSize(c)
	if err != nil {
		return 0, errors.Wrapf(err, "%s count", what)
	}
	if n > uint64(c.Remaining()/minSize) {
		return 0, errors.Wrapf(ErrTruncatedInput, "%s count %d at offset %d, only %d bytes left", what, n, offset, c.Remaining())
	}
	return int(n), nil
}

func readInputs(c *Cursor, inputCount int) ([]model.Input, error) {
	inputs := make([]model.Input, inputCount)
	for i := range inputs {
		in := model.Input{}

		prevHash, err := c.Read(chainhash.HashSize)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d prev hash", i)
		}
		copy(in.PrevTxHash[:], prevHash)

		in.PrevTxIndex, err = c.readUint32()
		if err != nil {
			return nil, errors.Wrapf(err, "input %d prev index", i)
		}

		in.Script, err = c.readVarBytes()
		if err != nil {
			return nil, errors.Wrapf(err, "input %d script", i)
		}

		in.Sequence, err = c.readUint32()
		if err != nil {
			return nil, errors.Wrapf(err, "input %d sequence", i)
		}

		logrus.Debugf("    IN  %s:%d", in.PrevTxHash, in.PrevTxIndex)
		inputs[i] = in
	}
	return inputs, nil
}

func readOutputs(c *Cursor, outputCount int) ([]model.Output, error) {
	outputs := make([]model.Output, outputCount)
	for i := range outputs {
		out := model.Output{}

		amount, err := c.readUint64()
		if err != nil {
			return nil, errors.Wrapf(err, "output %d amount", i)
		}
		out.Amount = model.Amount(amount)

		out.PKScript, err = c.readVarBytes()
		if err != nil {
			return nil, errors.Wrapf(err, "output %d script", i)
		}

		logrus.Debugf("    OUT %d (%s)", i, out.Amount)
		outputs[i] = out
	}
	return outputs, nil
}

// readWitnesses fills in one witness stack per input, in input order. The stack
// item count is a single byte.
func readWitnesses(c *Cursor, inputs []model.Input) error {
	for i := range inputs {
		itemCount, err := c.readByte()
		if err != nil {
			return errors.Wrapf(err, "input %d witness count", i)
		}
		if int(itemCount) > c.Remaining()/minWitnessItemSize {
			return errors.Wrapf(ErrTruncatedInput, "input %d witness count %d, only %d bytes left", i, itemCount, c.Remaining())
		}
		if itemCount == 0 {
			continue
		}

		witness := make(model.Witness, itemCount)
		for n := range witness {
			witness[n], err = c.readVarBytes()
			if err != nil {
				return errors.Wrapf(err, "input %d witness item %d", i, n)
			}
		}
		inputs[i].Witness = witness
	}
	return nil
}
