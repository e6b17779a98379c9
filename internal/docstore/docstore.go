// Package docstore is a keyed document store: documents are addressed by a
// slash-separated collection path and a document id.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("document not found")

type Document struct {
	ID   string
	Data json.RawMessage
}

// Store reads and writes single documents. Writes to one document are atomic;
// nothing spans documents.
type Store interface {
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Set(ctx context.Context, collection, id string, data json.RawMessage) error
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([]Document, error)
}

// Path joins collection segments, e.g. Path("users", uid, "cart").
func Path(segments ...string) string {
	return strings.Join(segments, "/")
}

// GetJSON loads a document and decodes it into dst.
func GetJSON(ctx context.Context, s Store, collection, id string, dst any) error {
	data, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// SetJSON encodes v and stores it.
func SetJSON(ctx context.Context, s Store, collection, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, collection, id, data)
}
