package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/OdyseeTeam/fast-tx/blockchain"
	"github.com/OdyseeTeam/fast-tx/blockchain/script"
	"github.com/OdyseeTeam/fast-tx/chain"
	"github.com/OdyseeTeam/fast-tx/storage"
	"github.com/cockroachdb/errors"
	"github.com/lbryio/lbcd/chaincfg/chainhash"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAddr = ":8855"

	// hex of the largest transaction a block can hold
	maxRequestBytes = 2 * 4_000_000
)

type Config struct {
	Addr string
}

type Server struct {
	config     Config
	store      *storage.Store
	classifier script.Classifier
	http       *http.Server
}

func New(config Config, store *storage.Store, classifier script.Classifier) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	s := &Server{config: config, store: store, classifier: classifier}
	s.http = &http.Server{
		Addr:              config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	httpServeMux := http.NewServeMux()
	httpServeMux.Handle("/decode", s.decode())
	httpServeMux.Handle("/tx/", s.rawTx())
	httpServeMux.Handle("/sql", s.query())
	return httpServeMux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.WithStack(err)
	}
	logrus.Infof("listening on %s", ln.Addr())

	go func() {
		err := s.http.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Error(err)
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return errors.WithStack(s.http.Shutdown(ctx))
}

func (s *Server) decode() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "use POST", http.StatusMethodNotAllowed)
			return
		}

		// either a form with a hex field or the bare hex as the body
		var txHex string
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			txHex = r.FormValue("hex")
		} else {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
				return
			}
			txHex = string(body)
		}
		txHex = strings.TrimSpace(txHex)

		tx, err := chain.DecodeString(txHex)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		raw, _ := hex.DecodeString(txHex)
		err = s.store.Put(raw, tx)
		if err != nil {
			logrus.Errorf("storing %s: %+v", tx.Hash, err)
		}

		writeJSON(w, blockchain.Describe(tx, s.classifier))
	})
}

func (s *Server) rawTx() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		txid, err := chainhash.NewHashFromStr(strings.TrimPrefix(r.URL.Path, "/tx/"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		raw, err := s.store.Raw(*txid)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		} else if err != nil {
			logrus.Errorf("%+v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(hex.EncodeToString(raw)))
	})
}

func (s *Server) query() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.FormValue("query")
		results, err := s.store.Query(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, results)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
