package grid

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type cellKey struct {
	row, col int
}

// CachedAccessor memoizes reads of an underlying accessor in a bounded cache.
type CachedAccessor struct {
	inner Accessor
	cache *lru.Cache[cellKey, string]
}

// NewCached wraps inner with a cache holding at most size cells.
// A non-positive size returns inner unchanged.
func NewCached(inner Accessor, size int) (Accessor, error) {
	if size <= 0 {
		return inner, nil
	}
	c, err := lru.New[cellKey, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedAccessor{inner: inner, cache: c}, nil
}

func (c *CachedAccessor) Cell(row, col int) string {
	k := cellKey{row, col}
	if v, ok := c.cache.Get(k); ok {
		return v
	}
	v := c.inner.Cell(row, col)
	c.cache.Add(k, v)
	return v
}

func (c *CachedAccessor) Rows() int { return c.inner.Rows() }
func (c *CachedAccessor) Cols() int { return c.inner.Cols() }

// Len reports how many cells are currently cached.
func (c *CachedAccessor) Len() int { return c.cache.Len() }
