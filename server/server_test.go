package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/OdyseeTeam/fast-tx/blockchain/script"
	"github.com/OdyseeTeam/fast-tx/storage"
	"github.com/stretchr/testify/require"
)

const (
	goldenTxHex = "020000000001010ccc140e766b5dbc884ea2d780c5e91e4eb77597ae64288a42575228b79e2349" +
		"0000000000fdffffff01fd420f0000000000225120245091249f4f29d30820e5f36e1e5d477dc338" +
		"6144220bd6f35839e94de4b9ca0140838a1f0f1ee607b54abf0a3f55792f6f8d09c3eb7a9fa46cd4" +
		"976f2137ca2e3f4a901e314e1b827c3332d7e1865ffe1d7ff5f5d7576a9000f354487a09de44cd00000000"
	goldenTxID = "40501c979c3b86a04256c5697178c73ab258f5f60f39e23eb5503b29a4fe2e7e"
)

func newTestServer(t *testing.T) *httptest.Server {
	store, err := storage.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ts := httptest.NewServer(New(Config{}, store, script.Classifier{}).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func readBody(t *testing.T, res *http.Response) string {
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func TestDecodeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Post(ts.URL+"/decode", "text/plain", strings.NewReader(goldenTxHex+"\n"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var record struct {
		TxID string `json:"txid"`
		Vout []struct {
			Value        string `json:"value"`
			ValueSat     uint64 `json:"valueSat"`
			ScriptPubKey struct {
				Hex  string `json:"hex"`
				Type string `json:"type"`
			} `json:"scriptPubKey"`
		} `json:"vout"`
	}
	require.NoError(t, json.Unmarshal([]byte(readBody(t, res)), &record))
	require.Equal(t, goldenTxID, record.TxID)
	require.Len(t, record.Vout, 1)
	require.Equal(t, "0.01000189", record.Vout[0].Value)
	require.EqualValues(t, 1000189, record.Vout[0].ValueSat)
	require.NotEmpty(t, record.Vout[0].ScriptPubKey.Type)

	res, err = http.Get(ts.URL + "/tx/" + goldenTxID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, goldenTxHex, readBody(t, res))

	res, err = http.Get(ts.URL + "/sql?query=" + url.QueryEscape("SELECT value FROM outputs"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(readBody(t, res)), &rows))
	require.Len(t, rows, 1)
	require.Equal(t, "0.01000189", rows[0]["value"])
}

func TestDecodeEndpointForm(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.PostForm(ts.URL+"/decode", url.Values{"hex": {strings.ToUpper(goldenTxHex)}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, readBody(t, res), goldenTxID)
}

func TestDecodeEndpointErrors(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/decode")
	require.NoError(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	readBody(t, res)

	res, err = http.Post(ts.URL+"/decode", "text/plain", strings.NewReader(goldenTxHex+"00"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, readBody(t, res), "length")

	res, err = http.Get(ts.URL + "/tx/" + goldenTxID)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode, "nothing decoded yet")
	readBody(t, res)

	res, err = http.Get(ts.URL + "/tx/nothex")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	readBody(t, res)
}
