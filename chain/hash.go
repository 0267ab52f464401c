package chain

import (
	"github.com/lbryio/lbcd/chaincfg/chainhash"
	"github.com/valyala/bytebufferpool"
)

// TxHash is the canonical transaction id: double SHA-256 of raw with the strip
// ranges (marker, flag and witness data) cut out. chainhash.Hash prints itself
// byte-reversed, which is the conventional display order.
func TxHash(raw []byte, strip ...span) chainhash.Hash {
	if len(strip) == 0 {
		return chainhash.DoubleHashH(raw)
	}

	txBytes := bytebufferpool.Get()
	defer bytebufferpool.Put(txBytes)

	pos := 0
	for _, s := range strip {
		txBytes.Write(raw[pos:s.start])
		pos = s.end
	}
	txBytes.Write(raw[pos:])

	return chainhash.DoubleHashH(txBytes.Bytes())
}

// WitnessHash is the wtxid: double SHA-256 over the full serialization. It equals
// TxHash for transactions without witness data.
func WitnessHash(raw []byte) chainhash.Hash {
	return chainhash.DoubleHashH(raw)
}
