package script

import (
	"github.com/lbryio/lbcd/chaincfg"
	"github.com/lbryio/lbcd/txscript"
	"github.com/lbryio/lbcutil"
	"github.com/sirupsen/logrus"
)

// Info is what the classifier can tell about an output script. None of it is
// needed to decode a transaction.
type Info struct {
	Asm       string    `json:"asm,omitempty"`
	Type      string    `json:"type"`
	Addresses []string  `json:"addresses,omitempty"`
	Claim     *Claim    `json:"claim,omitempty"`
	Purchase  *Purchase `json:"purchase,omitempty"`
}

// Classifier identifies standard output scripts. Addresses are encoded for Params,
// which defaults to chaincfg.MainNetParams.
type Classifier struct {
	Params *chaincfg.Params
}

func (c Classifier) params() *chaincfg.Params {
	if c.Params == nil {
		return &chaincfg.MainNetParams
	}
	return c.Params
}

func (c Classifier) Classify(pkScript []byte) Info {
	info := Info{Type: txscript.NonStandardTy.String()}

	asm, err := txscript.DisasmString(pkScript)
	if err != nil {
		logrus.Debugf("disassembling script %x: %v", pkScript, err)
	}
	info.Asm = asm

	var (
		class txscript.ScriptClass
		addrs []lbcutil.Address
	)
	class, addrs, _, err = txscript.ExtractPkScriptAddrs(pkScript, c.params())
	if err != nil {
		logrus.Debugf("extracting addresses from script %x: %v", pkScript, err)
		return info
	}
	info.Type = class.String()
	for _, a := range addrs {
		info.Addresses = append(info.Addresses, a.EncodeAddress())
	}

	if cs, err := txscript.ExtractClaimScript(pkScript); err == nil && cs != nil {
		info.Claim = claimInfo(cs)
	} else if IsPurchaseScript(pkScript) {
		info.Purchase, err = purchaseInfo(pkScript)
		if err != nil {
			logrus.Debugf("purchase script %x: %v", pkScript, err)
		}
	}

	return info
}
