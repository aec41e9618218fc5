package rescache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/safevec/pkg/safevec/rescache"
	"github.com/randalmurphal/safevec/pkg/safevec/source"
)

type model struct {
	Speed    int `yaml:"speed"`
	Lifetime int `yaml:"lifetime"`
}

func TestSourceLoader(t *testing.T) {
	ctx := context.Background()
	store := source.NewMemoryStore()
	_, err := store.Put(ctx, "ship", []byte("speed: 3\nlifetime: 8\n"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "broken", []byte("speed: [oops"))
	require.NoError(t, err)

	models := rescache.New(rescache.SourceLoader[*model](store, rescache.DecodeYAML[model]))

	ship, err := models.Lookup(ctx, "ship")
	require.NoError(t, err)
	assert.Equal(t, &model{Speed: 3, Lifetime: 8}, ship)

	_, err = models.Lookup(ctx, "absent")
	assert.ErrorIs(t, err, rescache.ErrNotFound)
	assert.ErrorIs(t, err, source.ErrNotFound)

	_, err = models.Lookup(ctx, "broken")
	assert.ErrorIs(t, err, rescache.ErrNotFound)
	assert.Contains(t, err.Error(), "decode broken")
}

func TestSourceLoader_SeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := source.NewMemoryStore()
	_, err := source.LoadYAMLSeed(ctx, store, []byte("rock:\n  speed: 1\n"))
	require.NoError(t, err)

	models := rescache.New(rescache.SourceLoader[*model](store, rescache.DecodeYAML[model]))
	rock := models.MustLookup(ctx, "rock")
	assert.Equal(t, 1, rock.Speed)
}
