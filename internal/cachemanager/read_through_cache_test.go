package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type wrappedInput struct {
	Id int
}

func newBackingCache() CacheManager[string, []*ExampleStruct] {
	return NewInMemoryCacheManager[string, []*ExampleStruct]("test-cache", DefaultExpiration, DefaultCleanupInterval)
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	calls := 0
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		newBackingCache(),
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			calls++
			return []*ExampleStruct{{ID: input.Id}}, nil
		},
		true,
	)

	for i := 0; i < 2; i++ {
		examples, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)
	}
	require.Equal(t, 2, calls, "disabled cache should call the loader every time")
}

func TestReadThroughCache_Get_PopulatesAndHitsCache(t *testing.T) {
	calls := 0
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		newBackingCache(),
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			calls++
			return []*ExampleStruct{{ID: input.Id}}, nil
		},
		false,
	)

	first, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1}}, first)

	second, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, 1, calls, "second lookup should be served from cache")
}

func TestReadThroughCache_Get_LoaderErrorNotCached(t *testing.T) {
	calls := 0
	loadErr := errors.New("load failed")
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		newBackingCache(),
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			calls++
			return nil, loadErr
		},
		false,
	)

	_, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.ErrorIs(t, err, loadErr)

	_, err = readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.ErrorIs(t, err, loadErr)

	require.Equal(t, 2, calls, "errors should not be cached")
}

func TestReadThroughCache_GetWithRefresh_WithCacheDisabled(t *testing.T) {
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		newBackingCache(),
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			return []*ExampleStruct{{ID: input.Id}}, nil
		},
		true,
	)

	examples, err := readThroughCache.GetWithRefresh(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*ExampleStruct{{ID: 1}}, examples)
}

func TestReadThroughCache_GetWithRefresh_HitsCache(t *testing.T) {
	calls := 0
	readThroughCache := NewReadThroughCache[string, []*ExampleStruct, wrappedInput](
		newBackingCache(),
		func(ctx context.Context, input wrappedInput) ([]*ExampleStruct, error) {
			calls++
			return []*ExampleStruct{{ID: input.Id}}, nil
		},
		false,
	)

	_, err := readThroughCache.GetWithRefresh(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)

	_, err = readThroughCache.GetWithRefresh(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)

	require.Equal(t, 1, calls, "refresh lookup should extend the entry, not reload it")
}
