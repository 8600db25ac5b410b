package figdriver

import (
	"sort"
	"sync"
	"sync/atomic"
)

// FontRegistry holds parsed fonts by name for a Renderer.
// It is safe for concurrent use.
//
// The registry is unbounded by default. With a maximum size it evicts the
// least recently used font when full:
// - a map gives O(1) lookups and a doubly-linked list tracks recency
// - RWMutex allows concurrent reads while protecting writes
// - atomic counters keep statistics off the lock
type FontRegistry struct {
	mu        sync.RWMutex
	fonts     map[string]*registryEntry
	lru       *lruList
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type registryEntry struct {
	font    *Font
	size    int64 // approximate memory size in bytes
	lruNode *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

type lruList struct {
	head *lruNode
	tail *lruNode
	size int
}

// NewFontRegistry creates a registry holding at most maxSize fonts.
// A maxSize of 0 or negative means unlimited.
func NewFontRegistry(maxSize int) *FontRegistry {
	return &FontRegistry{
		fonts:   make(map[string]*registryEntry),
		lru:     &lruList{},
		maxSize: maxSize,
	}
}

// Get returns the font registered under name.
//
// The existence check takes only the read lock so lookups run concurrently;
// the write lock is held just long enough to move the entry to the front.
func (r *FontRegistry) Get(name string) (*Font, bool) {
	r.mu.RLock()
	entry, exists := r.fonts[name]
	r.mu.RUnlock()

	if !exists {
		r.misses.Add(1)
		return nil, false
	}

	r.mu.Lock()
	// the entry may have been evicted or replaced between the locks
	if current, ok := r.fonts[name]; ok && current == entry {
		r.lru.moveToFront(entry.lruNode)
	}
	r.mu.Unlock()

	r.hits.Add(1)
	return entry.font, true
}

// Add registers font under name unless the name is taken, and returns the
// font that ends up registered.
func (r *FontRegistry) Add(name string, font *Font) *Font {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, exists := r.fonts[name]; exists {
		return entry.font
	}
	r.insert(name, font)
	return font
}

// Replace registers font under name, dropping any font previously there.
func (r *FontRegistry) Replace(name string, font *Font) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, exists := r.fonts[name]; exists {
		r.lru.remove(entry.lruNode)
		delete(r.fonts, name)
	}
	r.insert(name, font)
}

// insert adds a new entry, evicting first when the registry is full.
// The caller holds the write lock.
func (r *FontRegistry) insert(name string, font *Font) {
	if r.maxSize > 0 && len(r.fonts) >= r.maxSize {
		r.evictLRU()
	}

	node := r.lru.pushFront(name)
	r.fonts[name] = &registryEntry{
		font:    font,
		size:    estimateFontSize(font),
		lruNode: node,
	}
}

// evictLRU removes the least recently used font
func (r *FontRegistry) evictLRU() {
	if r.lru.tail == nil {
		return
	}

	key := r.lru.tail.key
	delete(r.fonts, key)
	r.lru.remove(r.lru.tail)
	r.evictions.Add(1)
}

// Names returns the registered font names, sorted.
func (r *FontRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all fonts. Statistics are kept.
func (r *FontRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fonts = make(map[string]*registryEntry)
	r.lru = &lruList{}
}

// Stats returns registry statistics.
func (r *FontRegistry) Stats() RegistryStats {
	r.mu.RLock()
	size := len(r.fonts)
	var bytes int64
	for _, entry := range r.fonts {
		bytes += entry.size
	}
	r.mu.RUnlock()

	return RegistryStats{
		Size:      size,
		MaxSize:   r.maxSize,
		Bytes:     bytes,
		Hits:      r.hits.Load(),
		Misses:    r.misses.Load(),
		Evictions: r.evictions.Load(),
	}
}

// RegistryStats contains registry statistics
type RegistryStats struct {
	Size      int    // Current number of fonts
	MaxSize   int    // Maximum number of fonts, 0 if unbounded
	Bytes     int64  // Approximate memory held by glyph data
	Hits      uint64 // Number of lookups that found a font
	Misses    uint64 // Number of lookups that did not
	Evictions uint64 // Number of evictions
}

// HitRate returns the hit rate as a percentage (0-100)
func (s RegistryStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateFontSize approximates the memory held by a font: glyph bytes plus
// slice and map overhead. It favours speed over accuracy.
func estimateFontSize(f *Font) int64 {
	if f == nil {
		return 0
	}

	size := int64(100) // base struct overhead

	for _, glyph := range f.glyphs {
		for _, line := range glyph {
			size += int64(len(line))
		}
		size += int64(len(glyph) * 8)
	}

	size += int64(len(f.glyphs) * 40)
	size += int64(len(f.Comment))

	return size
}

// LRU list operations
func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}

	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}

	l.size++
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == l.head {
		return
	}

	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == l.tail {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = l.head
	l.head.prev = node
	l.head = node
}

func (l *lruList) remove(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	node.prev, node.next = nil, nil
	l.size--
}
