package blockchain

import (
	"github.com/OdyseeTeam/fast-tx/blockchain/model"
	"github.com/OdyseeTeam/fast-tx/blockchain/script"
	"github.com/OdyseeTeam/fast-tx/chain"
	"github.com/sirupsen/logrus"
)

// Describe renders tx with each output script run through the classifier.
func Describe(tx model.Transaction, c script.Classifier) model.TxRecord {
	r := tx.Record()

	for n, out := range tx.Outputs {
		info := c.Classify(out.PKScript)
		if info.Claim != nil && info.Claim.Operation == "claim" {
			id, err := script.ClaimIDFromOutpoint(tx.Hash.String(), n)
			if err != nil {
				logrus.Errorf("claim id for %s:%d: %+v", tx.Hash, n, err)
			}
			info.Claim.ClaimID = id
		}
		r.Vout[n].ScriptPubKey.Info = &info
	}

	return r
}

// DecodeString decodes a hex transaction and describes it.
func DecodeString(s string, c script.Classifier) (model.Transaction, model.TxRecord, error) {
	tx, err := chain.DecodeString(s)
	if err != nil {
		return tx, model.TxRecord{}, err
	}
	return tx, Describe(tx, c), nil
}
