// Package store provides the partitioned key-value engine every DAO is
// built on. Partitions are independent sorted keyspaces; the only range
// query is an ordered prefix scan. A batch applies writes across any
// partitions all-or-nothing.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"

	domainerrors "gitcircles.github/internal/domain/errors"
)

// Partition names. These are the durable on-disk contract.
var (
	PartRepositories      = []byte("repositories")
	PartPullRequests      = []byte("pull_requests")
	PartBaseBranchHistory = []byte("base_branch_history")
	PartUserWallets       = []byte("user_wallets")
	PartWalletHistory     = []byte("user_wallet_history")
	PartWalletIndex       = []byte("wallet_index")
	PartProjects          = []byte("projects")
	PartProjectOwners     = []byte("project_owners")
	PartProjectRepos      = []byte("project_repos")
	PartOwnerProjects     = []byte("owner_projects")
)

func partitions() [][]byte {
	return [][]byte{
		PartRepositories,
		PartPullRequests,
		PartBaseBranchHistory,
		PartUserWallets,
		PartWalletHistory,
		PartWalletIndex,
		PartProjects,
		PartProjectOwners,
		PartProjectRepos,
		PartOwnerProjects,
	}
}

// Store is a single-process embedded store. The underlying file is
// exclusively locked; one writer process at a time.
type Store struct {
	db      *bolt.DB
	metrics *metrics
	closed  atomic.Bool
}

// Option configures a Store at open time.
type Option func(*options)

type options struct {
	noSync     bool
	registerer registerer
}

// WithNoSync disables the per-write fsync. The default is synchronous
// durability for every write and batch: the wallet and history partitions
// are an audit trail, so an acknowledged write must survive a crash.
// Callers opting in trade that guarantee for throughput.
func WithNoSync() Option {
	return func(o *options) { o.noSync = true }
}

// Open opens (creating if needed) the store at path and ensures all
// partitions exist.
func Open(path string, opts ...Option) (*Store, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, domainerrors.Persistence("open", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, domainerrors.Persistence("open", err)
	}
	db.NoSync = o.noSync

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range partitions() {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, domainerrors.Persistence("init partitions", err)
	}

	s := &Store{db: db}
	if o.registerer != nil {
		s.metrics = newMetrics(o.registerer)
	}
	return s, nil
}

// Close releases the file lock and closes the store. Operations on a
// closed store return ErrStoreClosed.
func (s *Store) Close() error {
	s.closed.Store(true)
	return s.db.Close()
}

// Get returns the value for key in partition, or nil when absent.
func (s *Store) Get(partition, key []byte) ([]byte, error) {
	if s.closed.Load() {
		return nil, domainerrors.ErrStoreClosed
	}
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(partition)
		if b == nil {
			return fmt.Errorf("unknown partition %q", partition)
		}
		if v := b.Get(key); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, domainerrors.Persistence("get", err)
	}
	return out, nil
}

// Put inserts or replaces key in partition and flushes to stable storage
// before returning.
func (s *Store) Put(partition, key, value []byte) error {
	if s.closed.Load() {
		return domainerrors.ErrStoreClosed
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(partition)
		if b == nil {
			return fmt.Errorf("unknown partition %q", partition)
		}
		return b.Put(key, value)
	})
	if err != nil {
		return domainerrors.Persistence("put", err)
	}
	s.metrics.write(partition)
	return nil
}

// Delete removes key from partition; deleting an absent key is a no-op.
func (s *Store) Delete(partition, key []byte) error {
	if s.closed.Load() {
		return domainerrors.ErrStoreClosed
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(partition)
		if b == nil {
			return fmt.Errorf("unknown partition %q", partition)
		}
		return b.Delete(key)
	})
	if err != nil {
		return domainerrors.Persistence("delete", err)
	}
	s.metrics.write(partition)
	return nil
}

// Scan calls fn for every entry in partition whose key starts with
// prefix, in key order. fn returning an error stops the scan.
func (s *Store) Scan(partition, prefix []byte, fn func(key, value []byte) error) error {
	if s.closed.Load() {
		return domainerrors.ErrStoreClosed
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(partition)
		if b == nil {
			return fmt.Errorf("unknown partition %q", partition)
		}
		c := b.Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domainerrors.Persistence("scan", err)
	}
	s.metrics.scan(partition)
	return nil
}

// Tx groups writes applied atomically by Batch.
type Tx struct {
	tx *bolt.Tx
}

// Put stages an upsert in the batch.
func (t *Tx) Put(partition, key, value []byte) error {
	b := t.tx.Bucket(partition)
	if b == nil {
		return fmt.Errorf("unknown partition %q", partition)
	}
	return b.Put(key, value)
}

// Delete stages a delete in the batch.
func (t *Tx) Delete(partition, key []byte) error {
	b := t.tx.Bucket(partition)
	if b == nil {
		return fmt.Errorf("unknown partition %q", partition)
	}
	return b.Delete(key)
}

// Get reads within the batch, observing staged writes.
func (t *Tx) Get(partition, key []byte) ([]byte, error) {
	b := t.tx.Bucket(partition)
	if b == nil {
		return nil, fmt.Errorf("unknown partition %q", partition)
	}
	if v := b.Get(key); v != nil {
		return append([]byte(nil), v...), nil
	}
	return nil, nil
}

// Batch runs fn inside a single read-write transaction. Either every
// staged write becomes durable or none does; it is never approximated by
// sequential single-key writes.
func (s *Store) Batch(fn func(tx *Tx) error) error {
	if s.closed.Load() {
		return domainerrors.ErrStoreClosed
	}
	err := s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
	if err != nil {
		return domainerrors.Persistence("batch", err)
	}
	s.metrics.batch()
	return nil
}
