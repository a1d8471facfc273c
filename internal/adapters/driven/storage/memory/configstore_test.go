package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("export.dir", "out"))

	val, ok := store.Get("export.dir")
	assert.True(t, ok)
	assert.Equal(t, "out", val)
	assert.Equal(t, "out", store.GetString("export.dir"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetInt_Conversions(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int", 50)
	_ = store.Set("int64", int64(40))
	_ = store.Set("float", 30.0)
	_ = store.Set("string", "20")
	_ = store.Set("junk", "twenty")

	assert.Equal(t, 50, store.GetInt("int"))
	assert.Equal(t, 40, store.GetInt("int64"))
	assert.Equal(t, 30, store.GetInt("float"))
	assert.Equal(t, 20, store.GetInt("string"))
	assert.Zero(t, store.GetInt("junk"))
}

func TestConfigStore_GetBool_Conversions(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("bool", true)
	_ = store.Set("string", "true")
	_ = store.Set("number", 1)

	assert.True(t, store.GetBool("bool"))
	assert.True(t, store.GetBool("string"))
	assert.False(t, store.GetBool("number"))
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("history.capacity", 50)

	assert.Empty(t, store.GetString("history.capacity"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("preview.device", "mobile")

	require.NoError(t, store.Delete("preview.device"))
	require.NoError(t, store.Delete("preview.device"))

	_, ok := store.Get("preview.device")
	assert.False(t, ok)
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
