package kvcache

import "sync"

// Cache потокобезопасный кеш ключ-значение без TTL
// Записи живут до явного Clear (операция refresh на стороне сервиса);
// параллельные записи по одному ключу работают по принципу last-writer-wins,
// что безопасно для идемпотентных справочных данных
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New создает пустой кеш
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

// Get возвращает значение по ключу
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

// Set сохраняет значение по ключу
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

// Delete удаляет значение по ключу
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear полностью очищает кеш
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

// Len возвращает количество записей в кеше
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
