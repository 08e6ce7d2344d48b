package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/drinklog/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return NewStore(d)
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)

	value, ok, err := s.Get(context.Background(), "SavedDrinks")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestStorePutOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "SavedDrinks", []byte(`[]`)))
	require.NoError(t, s.Put(ctx, "SavedDrinks", []byte(`[{"id":"a"}]`)))

	value, ok, err := s.Get(ctx, "SavedDrinks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"a"}]`, string(value))
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "UserProfile", []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, "UserProfile"))
	require.NoError(t, s.Delete(ctx, "UserProfile"))

	_, ok, err := s.Get(ctx, "UserProfile")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreWrapsDriverErrors(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	boom := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT value FROM kv").WithArgs("k").WillReturnError(boom)
	mock.ExpectExec("INSERT INTO kv").WithArgs("k", []byte("v")).WillReturnError(boom)
	mock.ExpectExec("DELETE FROM kv").WithArgs("k").WillReturnError(boom)

	s := NewStore(d)
	ctx := context.Background()

	_, _, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Put(ctx, "k", []byte("v")), boom)
	assert.ErrorIs(t, s.Delete(ctx, "k"), boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
