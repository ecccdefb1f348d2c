package interpreter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kullendorff/systembolaget/internal/domain"
	"github.com/Kullendorff/systembolaget/internal/infrastructure/cache"
)

// countingInterpreter records how often the inner interpreter actually runs.
type countingInterpreter struct {
	calls  int
	params *domain.FilterParams
	err    error
}

func (c *countingInterpreter) Interpret(ctx context.Context, query string) (*domain.FilterParams, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.params, nil
}

func TestCached_ServesRepeatsFromCache(t *testing.T) {
	inner := &countingInterpreter{params: &domain.FilterParams{Country: "Italien"}}
	cached := NewCached(inner, cache.NewMemoryCache(), time.Minute, nil)
	ctx := context.Background()

	first, err := cached.Interpret(ctx, "Italienskt rött")
	require.NoError(t, err)
	assert.Equal(t, "Italien", first.Country)
	assert.Equal(t, 1, inner.calls)

	second, err := cached.Interpret(ctx, "Italienskt rött")
	require.NoError(t, err)
	assert.Equal(t, "Italien", second.Country)
	assert.Equal(t, 1, inner.calls, "repeat question must not reach the model")
}

func TestCached_KeyNormalization(t *testing.T) {
	inner := &countingInterpreter{params: &domain.FilterParams{Dish: "lax"}}
	cached := NewCached(inner, cache.NewMemoryCache(), time.Minute, nil)
	ctx := context.Background()

	_, err := cached.Interpret(ctx, "Vad passar till lax?")
	require.NoError(t, err)
	_, err = cached.Interpret(ctx, "  vad  passar till LAX ")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "case, punctuation and spacing share an entry")
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	inner := &countingInterpreter{err: domain.ErrInterpreterFailure}
	cached := NewCached(inner, cache.NewMemoryCache(), time.Minute, nil)
	ctx := context.Background()

	_, err := cached.Interpret(ctx, "rött vin")
	require.Error(t, err)

	inner.err = nil
	inner.params = &domain.FilterParams{CategoryLevel1: "Rött vin"}
	params, err := cached.Interpret(ctx, "rött vin")
	require.NoError(t, err)
	assert.Equal(t, "Rött vin", params.CategoryLevel1)
	assert.Equal(t, 2, inner.calls)
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{name: "case insensitive", a: "Rött Vin", b: "rött vin", same: true},
		{name: "punctuation stripped", a: "vad passar till lax?", b: "vad passar till lax", same: true},
		{name: "whitespace collapsed", a: "  rött   vin  ", b: "rött vin", same: true},
		{name: "different questions differ", a: "rött vin", b: "vitt vin", same: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.same {
				assert.Equal(t, cacheKey(tt.a), cacheKey(tt.b))
			} else {
				assert.NotEqual(t, cacheKey(tt.a), cacheKey(tt.b))
			}
		})
	}
}
