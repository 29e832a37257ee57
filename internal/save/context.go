// Package save persists and restores the full game state. The core writes
// through a Context of named sections and typed key-value pairs and stays
// agnostic of the encoding; the SQLite store is one Context backend.
package save

import (
	"errors"
	"strconv"
	"strings"
)

// ErrPersistence is the root of every storage failure.
var ErrPersistence = errors.New("persistence failure")

// Context is the key-value surface the state codec reads and writes.
// Sections nest; reads fall back to the given default when the key is
// absent or malformed.
type Context interface {
	BeginSection(name string)
	EndSection()

	WriteString(key, v string)
	WriteInt(key string, v int64)
	WriteUint(key string, v uint64)
	WriteDouble(key string, v float64)
	WriteBool(key string, v bool)

	ReadString(key, def string) string
	ReadInt(key string, def int64) int64
	ReadUint(key string, def uint64) uint64
	ReadDouble(key string, def float64) float64
	ReadBool(key string, def bool) bool

	// EnterSection reports whether the section holds any data.
	EnterSection(name string) bool
	LeaveSection()
}

// MemoryContext is a Context over a flat map, with section nesting encoded
// as dotted key prefixes. It backs both tests and the SQLite store.
type MemoryContext struct {
	Values map[string]string

	path []string
}

// NewMemoryContext creates an empty in-memory context.
func NewMemoryContext() *MemoryContext {
	return &MemoryContext{Values: map[string]string{}}
}

// FromValues wraps an existing value map, as loaded from a store.
func FromValues(values map[string]string) *MemoryContext {
	if values == nil {
		values = map[string]string{}
	}
	return &MemoryContext{Values: values}
}

func (c *MemoryContext) fullKey(key string) string {
	if len(c.path) == 0 {
		return key
	}
	return strings.Join(c.path, ".") + "." + key
}

// BeginSection pushes a section for subsequent writes.
func (c *MemoryContext) BeginSection(name string) {
	c.path = append(c.path, name)
}

// EndSection pops the current section.
func (c *MemoryContext) EndSection() {
	if len(c.path) > 0 {
		c.path = c.path[:len(c.path)-1]
	}
}

// EnterSection pushes a section for reads and reports whether it has data.
func (c *MemoryContext) EnterSection(name string) bool {
	c.path = append(c.path, name)
	prefix := strings.Join(c.path, ".") + "."
	for k := range c.Values {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// LeaveSection pops the current section.
func (c *MemoryContext) LeaveSection() {
	c.EndSection()
}

func (c *MemoryContext) WriteString(key, v string) {
	c.Values[c.fullKey(key)] = v
}

func (c *MemoryContext) WriteInt(key string, v int64) {
	c.Values[c.fullKey(key)] = strconv.FormatInt(v, 10)
}

func (c *MemoryContext) WriteUint(key string, v uint64) {
	c.Values[c.fullKey(key)] = strconv.FormatUint(v, 10)
}

func (c *MemoryContext) WriteDouble(key string, v float64) {
	c.Values[c.fullKey(key)] = strconv.FormatFloat(v, 'g', -1, 64)
}

func (c *MemoryContext) WriteBool(key string, v bool) {
	c.Values[c.fullKey(key)] = strconv.FormatBool(v)
}

func (c *MemoryContext) ReadString(key, def string) string {
	if v, ok := c.Values[c.fullKey(key)]; ok {
		return v
	}
	return def
}

func (c *MemoryContext) ReadInt(key string, def int64) int64 {
	v, ok := c.Values[c.fullKey(key)]
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func (c *MemoryContext) ReadUint(key string, def uint64) uint64 {
	v, ok := c.Values[c.fullKey(key)]
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func (c *MemoryContext) ReadDouble(key string, def float64) float64 {
	v, ok := c.Values[c.fullKey(key)]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func (c *MemoryContext) ReadBool(key string, def bool) bool {
	v, ok := c.Values[c.fullKey(key)]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
