package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/collatz/pkg/adapters/memory"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_FromBytes(t *testing.T) {
	raw := []byte(`{"not": "a result"`)
	store := memory.NewStoreFromBytes(raw)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got[0] = 'X'
	again, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again[0], "Load must return a copy")
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			_ = store.Save(ctx, &domain.SequenceResult{Start: seed, MaxValue: seed, Sequence: []int64{seed}})
			_, _ = store.Load(ctx)
		}(i)
	}
	wg.Wait()

	data, err := store.Load(ctx)
	require.NoError(t, err)
	_, err = domain.UnmarshalDocument(data)
	assert.NoError(t, err)
}
