package kvcache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	// Перезапись по тому же ключу
	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c := New[int64, string]()

	c.Set(1, "one")
	c.Delete(1)

	_, ok := c.Get(1)
	assert.False(t, ok)

	// Удаление отсутствующего ключа не паникует
	c.Delete(2)
}

func TestCache_Clear(t *testing.T) {
	c := New[string, string]()

	c.Set("a", "1")
	c.Set("b", "2")
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	// Кеш остается рабочим после очистки
	c.Set("c", "3")
	v, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(n%10, n)
			c.Get(n % 10)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, c.Len())
}
