package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "gitcircles.github/internal/domain/errors"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGetDelete(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Get(PartProjects, []byte("project:x"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Put(PartProjects, []byte("project:x"), []byte(`{"id":"x"}`)))

	got, err = s.Get(PartProjects, []byte("project:x"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"x"}`), got)

	// upsert replaces in place
	require.NoError(t, s.Put(PartProjects, []byte("project:x"), []byte(`{"id":"x2"}`)))
	got, err = s.Get(PartProjects, []byte("project:x"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"x2"}`), got)

	require.NoError(t, s.Delete(PartProjects, []byte("project:x")))
	got, err = s.Get(PartProjects, []byte("project:x"))
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting an absent key is a no-op
	require.NoError(t, s.Delete(PartProjects, []byte("project:x")))
}

func TestStore_ScanIsPrefixBoundedAndOrdered(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(PartPullRequests, []byte("pr:a/b:2"), []byte("two")))
	require.NoError(t, s.Put(PartPullRequests, []byte("pr:a/b:1"), []byte("one")))
	require.NoError(t, s.Put(PartPullRequests, []byte("pr:a/c:1"), []byte("other repo")))

	var keys []string
	err := s.Scan(PartPullRequests, []byte("pr:a/b:"), func(k, _ []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pr:a/b:1", "pr:a/b:2"}, keys)
}

func TestStore_PartitionsAreIndependent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(PartUserWallets, []byte("k"), []byte("wallet")))
	got, err := s.Get(PartWalletHistory, []byte("k"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_BatchIsAtomic(t *testing.T) {
	s := newTestStore(t)

	err := s.Batch(func(tx *Tx) error {
		require.NoError(t, tx.Put(PartUserWallets, []byte("login:github:alice"), []byte("a")))
		require.NoError(t, tx.Put(PartWalletHistory, []byte("history:github:alice:1"), []byte("h")))
		return errors.New("boom")
	})
	require.Error(t, err)

	// nothing from the failed batch is visible
	got, err := s.Get(PartUserWallets, []byte("login:github:alice"))
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = s.Get(PartWalletHistory, []byte("history:github:alice:1"))
	require.NoError(t, err)
	assert.Nil(t, got)

	err = s.Batch(func(tx *Tx) error {
		if err := tx.Put(PartUserWallets, []byte("login:github:alice"), []byte("a")); err != nil {
			return err
		}
		return tx.Put(PartWalletHistory, []byte("history:github:alice:1"), []byte("h"))
	})
	require.NoError(t, err)

	got, err = s.Get(PartUserWallets, []byte("login:github:alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)
}

func TestStore_BatchReadsSeeStagedWrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(PartRepositories, []byte("repo:a/b"), []byte("old")))

	err := s.Batch(func(tx *Tx) error {
		prev, err := tx.Get(PartRepositories, []byte("repo:a/b"))
		if err != nil {
			return err
		}
		assert.Equal(t, []byte("old"), prev)
		return tx.Put(PartRepositories, []byte("repo:a/b"), []byte("new"))
	})
	require.NoError(t, err)
}

func TestStore_UnknownPartition(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get([]byte("nope"), []byte("k"))
	assert.Error(t, err)
	assert.Error(t, s.Put([]byte("nope"), []byte("k"), []byte("v")))
}

func TestStore_OpenWithNoSyncAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newTestStore(t, WithNoSync(), WithMetrics(reg))

	require.NoError(t, s.Put(PartProjects, []byte("project:y"), []byte("v")))
	require.NoError(t, s.Scan(PartProjects, []byte("project:"), func(_, _ []byte) error { return nil }))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["gitcircles_store_writes_total"])
	assert.True(t, names["gitcircles_store_scans_total"])
}

func TestStore_UseAfterClose(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Get(PartProjects, []byte("k"))
	assert.ErrorIs(t, err, domainerrors.ErrStoreClosed)
	assert.ErrorIs(t, s.Put(PartProjects, []byte("k"), []byte("v")), domainerrors.ErrStoreClosed)
	assert.ErrorIs(t, s.Batch(func(tx *Tx) error { return nil }), domainerrors.ErrStoreClosed)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(PartProjects, []byte("project:z"), []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(PartProjects, []byte("project:z"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
