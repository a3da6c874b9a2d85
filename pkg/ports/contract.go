package ports

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/collatz/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a standard suite of tests against a StateStore implementation.
// The store must start empty.
func RunStateStoreContract(t *testing.T, store StateStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		result := &domain.SequenceResult{
			Start:     27,
			Steps:     111,
			MaxValue:  9232,
			Truncated: true,
			Sequence:  []int64{27, 82, 41, 124, 62},
		}

		require.NoError(t, store.Save(ctx, result), "Save should not return error")

		data, err := store.Load(ctx)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, json.Valid(data), "persisted document must be valid JSON")

		loaded, err := domain.UnmarshalDocument(data)
		require.NoError(t, err)
		assert.Equal(t, result, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		result := &domain.SequenceResult{Start: 6, Steps: 8, MaxValue: 16, Sequence: []int64{6, 3, 10, 5, 16, 8, 4, 2, 1}}
		require.NoError(t, store.Save(ctx, result))

		data, err := store.Load(ctx)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.EqualValues(t, 6, doc[domain.KeyStartValue])
		assert.Equal(t, false, doc[domain.KeyTruncated])
		assert.Len(t, doc[domain.KeySequence], 9)
	})

	t.Run("Save Is Isolated", func(t *testing.T) {
		result := &domain.SequenceResult{Start: 2, Steps: 1, MaxValue: 2, Sequence: []int64{2, 1}}
		require.NoError(t, store.Save(ctx, result))
		result.Sequence[0] = 99

		data, err := store.Load(ctx)
		require.NoError(t, err)
		loaded, err := domain.UnmarshalDocument(data)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1}, loaded.Sequence)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx))

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)

		assert.NoError(t, store.Delete(ctx), "deleting a missing document is not an error")
	})
}
