package storage

import (
	"sync"

	"github.com/OdyseeTeam/fast-tx/blockchain/model"
	"github.com/cockroachdb/errors"
	"github.com/genjidb/genji"
	"github.com/genjidb/genji/document"
	"github.com/genjidb/genji/types"
	"github.com/lbryio/lbcd/chaincfg/chainhash"
	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

var ErrNotFound = errors.New("transaction not found")

// Store keeps decoded transactions in memory: raw bytes in leveldb keyed by txid,
// and one row per transaction and per output in genji so they can be queried.
type Store struct {
	mu  sync.Mutex
	db  *genji.DB
	raw *leveldb.DB
}

func Open() (*Store, error) {
	db, err := genji.Open(":memory:")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, q := range []string{
		"CREATE TABLE transactions",
		"CREATE TABLE outputs",
	} {
		err = db.Exec(q)
		if err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, q)
		}
	}

	raw, err := leveldb.Open(lvlstorage.NewMemStorage(), nil)
	if err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}

	return &Store{db: db, raw: raw}, nil
}

func (s *Store) Close() error {
	err := s.raw.Close()
	if dbErr := s.db.Close(); err == nil {
		err = dbErr
	}
	return errors.WithStack(err)
}

// Put records a decoded transaction. Storing the same txid again is a no-op.
func (s *Store) Put(raw []byte, tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := tx.Hash[:]
	exists, err := s.raw.Has(key, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		logrus.Debugf("%s already stored", tx.Hash)
		return nil
	}

	err = s.db.Exec(`INSERT INTO transactions (txid, wtxid, version, segwit, inputs, outputs, locktime, size, vsize)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.Hash.String(), tx.WitnessHash.String(), int64(tx.Version), tx.IsSegWit,
		len(tx.Inputs), len(tx.Outputs), int64(tx.LockTime), tx.Size, tx.VSize())
	if err != nil {
		return errors.Wrap(err, "inserting transaction")
	}

	for n, out := range tx.Outputs {
		err = s.db.Exec(`INSERT INTO outputs (txid, n, value, script) VALUES (?, ?, ?, ?)`,
			tx.Hash.String(), n, out.Amount.String(), out.PKScript.String())
		if err != nil {
			return errors.Wrapf(err, "inserting output %d", n)
		}
	}

	return errors.WithStack(s.raw.Put(key, raw, nil))
}

// Raw returns the wire bytes of a stored transaction.
func (s *Store) Raw(txid chainhash.Hash) ([]byte, error) {
	b, err := s.raw.Get(txid[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, errors.Wrap(ErrNotFound, txid.String())
	}
	return b, errors.WithStack(err)
}

// Query runs a genji query and returns each resulting document as a map.
func (s *Store) Query(q string) ([]map[string]interface{}, error) {
	res, err := s.db.Query(q)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer res.Close()

	var results = make([]map[string]interface{}, 0)
	err = res.Iterate(func(d types.Document) error {
		m := make(map[string]interface{})
		err := document.MapScan(d, &m)
		if err != nil {
			return errors.WithStack(err)
		}
		results = append(results, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
