//go:build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/region-sentiment/internal/adapter/file"
	"github.com/couchcryptid/region-sentiment/internal/adapter/postgres"
	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconStoreRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.Open(ctx, startPostgres(ctx, t))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := postgres.NewLexiconStore(pool, discardLogger())
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx), "schema creation is idempotent")

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	lex, err := file.LoadLexicon("../../data/sentiments.csv")
	require.NoError(t, err)

	n, err := store.Replace(ctx, lex)
	require.NoError(t, err)
	assert.Equal(t, int64(len(lex)), n)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lex, loaded)

	// A second replace drops words missing from the new lexicon.
	smaller, err := domain.NewMapLexicon(map[string]float64{"love": 0.5, "ok": 0})
	require.NoError(t, err)
	_, err = store.Replace(ctx, smaller)
	require.NoError(t, err)

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller, loaded)
	assert.Equal(t, domain.MustKnown(0), loaded.WordSentiment("ok"), "neutral words stay known")
}
