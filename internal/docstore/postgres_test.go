package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("users/u1/cart", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"quantity":2}`)))

	data, err := store.Get(context.Background(), "users/u1/cart", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity":2}`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents")).
		WithArgs("products", "nope").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := store.Get(context.Background(), "products", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStore_SetUpserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (collection, id)")).
		WithArgs("products", "p1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Set(context.Background(), "products", "p1", json.RawMessage(`{"name":"Shoe"}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeletePropagatesErrors(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection refused")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents")).
		WithArgs("users/u1/cart", "p1").
		WillReturnError(boom)

	err := store.Delete(context.Background(), "users/u1/cart", "p1")
	assert.ErrorIs(t, err, boom)
}

func TestPostgresStore_List(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow("a", []byte(`{"quantity":1}`)).
		AddRow("b", []byte(`{"quantity":3}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents WHERE collection = $1")).
		WithArgs("users/u1/cart").
		WillReturnRows(rows)

	docs, err := store.List(context.Background(), "users/u1/cart")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.JSONEq(t, `{"quantity":3}`, string(docs[1].Data))
}
