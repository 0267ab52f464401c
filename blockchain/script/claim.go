package script

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/OdyseeTeam/fast-tx/chain/endian"
	"github.com/cockroachdb/errors"
	"github.com/lbryio/lbcd/txscript"
	"github.com/lbryio/lbry.go/v3/schema/stake"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ripemd160"
)

// Claim describes an LBRY claim, update or support output.
type Claim struct {
	Operation string `json:"operation"`
	Name      string `json:"name"`
	ClaimID   string `json:"claimId,omitempty"` // only known up front for new claims, see ClaimIDFromOutpoint
	Kind      string `json:"kind,omitempty"`
}

func claimInfo(cs *txscript.ClaimScript) *Claim {
	c := &Claim{Name: string(cs.Name)}

	switch cs.Opcode {
	case txscript.OP_CLAIMNAME:
		c.Operation = "claim"
	case txscript.OP_UPDATECLAIM:
		c.Operation = "update"
	case txscript.OP_SUPPORTCLAIM:
		c.Operation = "support"
		return c
	default:
		c.Operation = "unknown"
		return c
	}

	h, err := stake.DecodeClaimBytes(cs.Value, "")
	if err != nil {
		logrus.Debugf("could not unmarshal claim value for %q: %v", c.Name, err)
		return c
	}
	if !h.IsClaim() || h.Claim == nil {
		return c
	}

	switch {
	case h.Claim.GetStream() != nil:
		c.Kind = "stream"
	case h.Claim.GetChannel() != nil:
		c.Kind = "channel"
	case h.Claim.GetCollection() != nil:
		c.Kind = "collection"
	case h.Claim.GetRepost() != nil:
		c.Kind = "repost"
	}
	return c
}

// ClaimIDFromOutpoint computes the claim id created by output nout of transaction txid.
// txid is in display (big-endian) hex.
func ClaimIDFromOutpoint(txid string, nout int) (string, error) {
	// convert transaction id to byte array
	txidBytes, err := hex.DecodeString(txid)
	if err != nil {
		return "", errors.WithStack(err)
	}

	// reverse (make little-endian)
	txidBytes = endian.Reverse(txidBytes)

	// append nout
	noutBytes := make([]byte, 4) // num bytes in uint32
	binary.BigEndian.PutUint32(noutBytes, uint32(nout))
	txidBytes = append(txidBytes, noutBytes...)

	// sha256 it
	s := sha256.New()
	s.Write(txidBytes)

	// ripemd it
	r := ripemd160.New()
	r.Write(s.Sum(nil))

	// reverse (make big-endian)
	res := endian.Reverse(r.Sum(nil))

	return hex.EncodeToString(res), nil
}
