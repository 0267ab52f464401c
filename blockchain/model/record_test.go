package model_test

import (
	"encoding/json"
	"testing"

	"github.com/OdyseeTeam/fast-tx/blockchain/model"
	"github.com/OdyseeTeam/fast-tx/chain"
	"github.com/stretchr/testify/require"
)

const goldenTxHex = "020000000001010ccc140e766b5dbc884ea2d780c5e91e4eb77597ae64288a42575228b79e2349" +
	"0000000000fdffffff01fd420f0000000000225120245091249f4f29d30820e5f36e1e5d477dc338" +
	"6144220bd6f35839e94de4b9ca0140838a1f0f1ee607b54abf0a3f55792f6f8d09c3eb7a9fa46cd4" +
	"976f2137ca2e3f4a901e314e1b827c3332d7e1865ffe1d7ff5f5d7576a9000f354487a09de44cd00000000"

func TestTransactionJSON(t *testing.T) {
	tx, err := chain.DecodeString(goldenTxHex)
	require.NoError(t, err)

	b, err := json.Marshal(tx)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"txid": "40501c979c3b86a04256c5697178c73ab258f5f60f39e23eb5503b29a4fe2e7e",
		"hash": "4a89a8b058f8403361149d5bff9a7faa4b1924c3d3f2e86a1da85515d79ad2e1",
		"version": 2,
		"size": 162,
		"vsize": 111,
		"weight": 444,
		"locktime": 0,
		"vin": [{
			"txid": "49239eb7285257428a2864ae9775b74e1ee9c580d7a24e88bc5d6b760e14cc0c",
			"vout": 0,
			"scriptSig": {"hex": ""},
			"txinwitness": ["838a1f0f1ee607b54abf0a3f55792f6f8d09c3eb7a9fa46cd4976f2137ca2e3f4a901e314e1b827c3332d7e1865ffe1d7ff5f5d7576a9000f354487a09de44cd"],
			"sequence": 4294967293
		}],
		"vout": [{
			"value": "0.01000189",
			"valueSat": 1000189,
			"n": 0,
			"scriptPubKey": {"hex": "5120245091249f4f29d30820e5f36e1e5d477dc3386144220bd6f35839e94de4b9ca"}
		}]
	}`, string(b))
}

func TestCoinbaseRecord(t *testing.T) {
	tx := model.Transaction{
		Version: 1,
		Inputs: []model.Input{
			{PrevTxIndex: model.CoinbaseIndex, Script: model.Script{0x03, 0xa0, 0xbb, 0x0d}, Sequence: model.MaxSequence},
		},
		Outputs: []model.Output{{Amount: 50 * model.SatoshiPerCoin, PKScript: model.Script{0x51}}},
	}
	require.True(t, tx.IsCoinbase())

	r := tx.Record()
	require.Len(t, r.Vin, 1)
	require.NotNil(t, r.Vin[0].Coinbase)
	require.Equal(t, "03a0bb0d", r.Vin[0].Coinbase.String())
	require.Empty(t, r.Vin[0].TxID)
	require.Nil(t, r.Vin[0].Vout)
	require.Nil(t, r.Vin[0].ScriptSig)
	require.Equal(t, "50.00000000", r.Vout[0].Value)

	b, err := json.Marshal(r.Vin[0])
	require.NoError(t, err)
	require.JSONEq(t, `{"coinbase": "03a0bb0d", "sequence": 4294967295}`, string(b))
}

func TestTotalOutOverflow(t *testing.T) {
	tx := model.Transaction{Outputs: []model.Output{{Amount: 1 << 63}, {Amount: 1 << 63}}}
	_, ok := tx.TotalOut()
	require.False(t, ok)
}

func TestInputSequenceFlags(t *testing.T) {
	require.True(t, model.Input{Sequence: model.MaxSequence}.IsFinal())
	require.False(t, model.Input{Sequence: model.MaxSequence}.SignalsRBF())
	require.False(t, model.Input{Sequence: model.MaxSequence - 1}.SignalsRBF())
	require.True(t, model.Input{Sequence: 0}.SignalsRBF())

	require.False(t, model.Input{PrevTxIndex: 0}.IsCoinbase())
}
