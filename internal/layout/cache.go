package layout

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/zjrosen/fold/internal/document"
)

// DefaultCacheCapacity bounds how many paragraph layouts are retained.
const DefaultCacheCapacity = 1024

// Metrics counts cache traffic. Evictions counts evicted entries, not
// eviction passes.
type Metrics struct {
	Hits      int
	Misses    int
	Evictions int
}

type cacheEntry struct {
	hash        uint64
	wrapWidth   int
	leftPadding int
	layout      *paragraphLayout
	startLine   int
	lineCount   int
}

// Cache retains per-paragraph layouts keyed by content hash, paragraph
// index, wrap width, and left padding. Entries also remember the line range
// they occupied in the last stitched render so scroll positions can be
// maintained across incremental updates.
type Cache struct {
	capacity int
	entries  map[int]*cacheEntry
	metrics  Metrics
}

// NewCache returns a cache holding at most capacity paragraph layouts;
// capacity <= 0 selects DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[int]*cacheEntry),
	}
}

// Metrics returns a snapshot of the traffic counters.
func (c *Cache) Metrics() Metrics {
	return c.metrics
}

// ResetMetrics zeroes the traffic counters without touching entries.
func (c *Cache) ResetMetrics() {
	c.metrics = Metrics{}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.metrics.Evictions += len(c.entries)
	c.entries = make(map[int]*cacheEntry)
}

// Invalidate drops the entry for one paragraph index.
func (c *Cache) Invalidate(index int) {
	if _, ok := c.entries[index]; ok {
		c.metrics.Evictions++
		delete(c.entries, index)
	}
}

// LineRange reports the absolute line range the paragraph occupied in the
// last stitched render.
func (c *Cache) LineRange(index int) (start, count int, ok bool) {
	entry, ok := c.entries[index]
	if !ok {
		return 0, 0, false
	}
	return entry.startLine, entry.lineCount, true
}

// ShiftLineRanges moves the remembered line range of every paragraph after
// afterIndex by delta. A full render re-derives every range while stitching,
// so this only serves callers relaying out a single paragraph in place; such
// a caller applies the shift exactly once per relayout whose line count
// changed.
func (c *Cache) ShiftLineRanges(afterIndex, delta int) {
	if delta == 0 {
		return
	}
	for index, entry := range c.entries {
		if index > afterIndex {
			entry.startLine += delta
		}
	}
}

func (c *Cache) lookup(index int, hash uint64, wrapWidth, leftPadding int) (*paragraphLayout, bool) {
	entry, ok := c.entries[index]
	if !ok || entry.hash != hash || entry.wrapWidth != wrapWidth || entry.leftPadding != leftPadding {
		return nil, false
	}
	c.metrics.Hits++
	return entry.layout, true
}

func (c *Cache) store(index int, hash uint64, wrapWidth, leftPadding int, layout *paragraphLayout) {
	if _, present := c.entries[index]; !present && len(c.entries) >= c.capacity {
		// Wholesale eviction keeps the bookkeeping trivial; the very next
		// render repopulates the visible window.
		c.metrics.Evictions += len(c.entries)
		c.entries = make(map[int]*cacheEntry)
	}
	c.entries[index] = &cacheEntry{
		hash:        hash,
		wrapWidth:   wrapWidth,
		leftPadding: leftPadding,
		layout:      layout,
	}
}

func (c *Cache) setLineRange(index, start, count int) {
	if entry, ok := c.entries[index]; ok {
		entry.startLine = start
		entry.lineCount = count
	}
}

// paragraphHash fingerprints a paragraph subtree. Any content, style, or
// structure change produces a new hash; layout options are part of the cache
// key instead.
func paragraphHash(par *document.Paragraph) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	var hashSpans func(spans []document.Span)
	hashSpans = func(spans []document.Span) {
		writeInt(len(spans))
		for i := range spans {
			writeInt(int(spans[i].Style))
			writeInt(len(spans[i].Text))
			h.Write([]byte(spans[i].Text))
			h.Write([]byte(spans[i].LinkTarget))
			h.Write([]byte{0})
			hashSpans(spans[i].Children)
		}
	}
	var hashItems func(items []document.ChecklistItem)
	hashItems = func(items []document.ChecklistItem) {
		writeInt(len(items))
		for i := range items {
			if items[i].Checked {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
			hashSpans(items[i].Content)
			hashItems(items[i].Children)
		}
	}
	var hashParagraph func(par *document.Paragraph)
	hashParagraph = func(par *document.Paragraph) {
		writeInt(int(par.Type))
		hashSpans(par.Content)
		writeInt(len(par.Children))
		for i := range par.Children {
			hashParagraph(&par.Children[i])
		}
		writeInt(len(par.Entries))
		for i := range par.Entries {
			writeInt(len(par.Entries[i]))
			for j := range par.Entries[i] {
				hashParagraph(&par.Entries[i][j])
			}
		}
		hashItems(par.Items)
	}
	hashParagraph(par)
	return h.Sum64()
}
