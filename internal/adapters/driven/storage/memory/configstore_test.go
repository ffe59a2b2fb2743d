package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStoreFrom_CopiesValues(t *testing.T) {
	seed := map[string]any{"pooling.scaling_factor": 0.2}
	store := NewConfigStoreFrom(seed)

	seed["pooling.scaling_factor"] = 0.9

	assert.InDelta(t, 0.2, store.GetFloat("pooling.scaling_factor"), 1e-12)
}

func TestConfigStore_SetGetDelete(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("hierarchy.grouping_column", "barcode"))
	val, ok := store.Get("hierarchy.grouping_column")
	assert.True(t, ok)
	assert.Equal(t, "barcode", val)

	require.NoError(t, store.Delete("hierarchy.grouping_column"))
	_, ok = store.Get("hierarchy.grouping_column")
	assert.False(t, ok)

	assert.NoError(t, store.Delete("never-set"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("string", "project_id")
	_ = store.Set("int", 96)
	_ = store.Set("int64", int64(48))
	_ = store.Set("float", 0.795)
	_ = store.Set("bool", true)
	_ = store.Set("slice", []any{"project_id", 3, "barcode"})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("string"), "project_id"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 96},
		{"int from int64", store.GetInt("int64"), 48},
		{"int from float", store.GetInt("float"), 0},
		{"int wrong type", store.GetInt("string"), 0},
		{"float", store.GetFloat("float"), 0.795},
		{"float from int", store.GetFloat("int"), 96.0},
		{"float from int64", store.GetFloat("int64"), 48.0},
		{"float wrong type", store.GetFloat("string"), 0.0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("string"), false},
		{"slice skips non-strings", store.GetStringSlice("slice"), []string{"project_id", "barcode"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveLoadNoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("key", "value")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "value", store.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key"
			_ = store.Set(key, float64(id))
			_ = store.GetFloat(key)
			if id%5 == 0 {
				_ = store.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var store driven.ConfigStore = NewConfigStore()
	assert.NotNil(t, store)
}
