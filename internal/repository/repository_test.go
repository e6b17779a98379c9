package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	"github.com/Cheertaboi/storefront-service/internal/docstore"
)

// brokenStore fails every call, standing in for an unreachable document store.
type brokenStore struct{}

var errUnavailable = errors.New("store unavailable")

func (brokenStore) Get(context.Context, string, string) (json.RawMessage, error) {
	return nil, errUnavailable
}
func (brokenStore) Set(context.Context, string, string, json.RawMessage) error { return errUnavailable }
func (brokenStore) Delete(context.Context, string, string) error              { return errUnavailable }
func (brokenStore) List(context.Context, string) ([]docstore.Document, error) {
	return nil, errUnavailable
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func assertCollaboratorError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errx.KindCollaborator, appErr.Kind)
	assert.ErrorIs(t, err, errUnavailable)
}
