package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunKeyValueStoreContract runs a suite of tests to verify that a KeyValueStore
// implementation adheres to the defined interface contract.
func RunKeyValueStoreContract(t *testing.T, store KeyValueStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		err := store.Set(ctx, key, "user@email.com")
		require.NoError(t, err, "Set should not return error")

		value, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, "user@email.com", value)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "first@email.com"))
		require.NoError(t, store.Set(ctx, key, "second@email.com"))

		value, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second@email.com", value)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "user@email.com"))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound, "Get after Delete should return ErrKeyNotFound")

		// Deleting again is a no-op
		assert.NoError(t, store.Delete(ctx, key))
	})

	t.Run("Keys", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Set(ctx, k1, "a")
		_ = store.Set(ctx, k2, "b")

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
