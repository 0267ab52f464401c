package blockchain

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/OdyseeTeam/fast-tx/blockchain/script"
	"github.com/OdyseeTeam/fast-tx/chain"
	"github.com/lbryio/lbcd/chaincfg"
	"github.com/lbryio/lbcutil"
	"github.com/stretchr/testify/require"
)

const legacyTxHex = "0100000002f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0010000" +
	"0003483045ffffffff0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a" +
	"0a0700000000feffffff0200f2052a010000001976a9141111111111111111111111111111111111" +
	"11111188ac0000000000000000066a047465737420a10700"

func TestDescribe(t *testing.T) {
	tx, r, err := DecodeString(legacyTxHex, script.Classifier{})
	require.NoError(t, err)
	require.Equal(t, tx.Hash.String(), r.TxID)
	require.Len(t, r.Vout, 2)

	pkh, err := hex.DecodeString("1111111111111111111111111111111111111111")
	require.NoError(t, err)
	addr, err := lbcutil.NewAddressPubKeyHash(pkh, &chaincfg.MainNetParams)
	require.NoError(t, err)

	p2pkh := r.Vout[0].ScriptPubKey
	require.NotNil(t, p2pkh.Info)
	require.Equal(t, "pubkeyhash", p2pkh.Type)
	require.Equal(t, []string{addr.EncodeAddress()}, p2pkh.Addresses)
	require.Equal(t, "OP_DUP OP_HASH160 1111111111111111111111111111111111111111 OP_EQUALVERIFY OP_CHECKSIG", p2pkh.Asm)
	require.Nil(t, p2pkh.Claim)

	nulldata := r.Vout[1].ScriptPubKey
	require.Equal(t, "nulldata", nulldata.Type)
	require.Equal(t, "OP_RETURN 74657374", nulldata.Asm)
	require.Empty(t, nulldata.Addresses)
	require.Nil(t, nulldata.Purchase)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	var decoded struct {
		Vout []struct {
			ScriptPubKey map[string]interface{} `json:"scriptPubKey"`
		} `json:"vout"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "pubkeyhash", decoded.Vout[0].ScriptPubKey["type"])
	require.Equal(t, "76a914111111111111111111111111111111111111111188ac", decoded.Vout[0].ScriptPubKey["hex"])
}

func TestDescribeLeavesDecodeUntouched(t *testing.T) {
	tx, err := chain.DecodeString(legacyTxHex)
	require.NoError(t, err)

	before := tx.Record()
	_ = Describe(tx, script.Classifier{})
	require.Equal(t, before, tx.Record())
	require.Nil(t, before.Vout[0].ScriptPubKey.Info)
}

func TestDecodeStringError(t *testing.T) {
	_, _, err := DecodeString("abc", script.Classifier{})
	require.ErrorIs(t, err, chain.ErrNonHexInput)
}
