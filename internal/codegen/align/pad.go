// Package align computes tab-stop padding the way a fixed-width editor
// lays out columns.
package align

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TabSize is the width of one tab stop in bytes.
const TabSize = 4

// Pad returns the tabs that move a cursor at byte column current to the
// column reserved for text of width target. When tabUnit is set, target is
// already a count of tab stops. The reserved column is the first tab stop
// strictly past target, so the widest text still gets one tab. extraTabs
// are appended unconditionally.
func Pad(target, current int, tabUnit bool, extraTabs int) string {
	return strings.Repeat("\t", PadCount(target, current, tabUnit)+max(extraTabs, 0))
}

// PadCount is the number of tabs Pad emits before extra tabs.
func PadCount(target, current int, tabUnit bool) int {
	stop := StopFor(target, tabUnit)
	n := stop/TabSize - max(current, 0)/TabSize
	if n < 1 {
		n = 1
	}
	return n
}

// StopFor returns the byte column text of width target is padded to.
func StopFor(target int, tabUnit bool) int {
	if tabUnit {
		return max(target, 1) * TabSize
	}
	return (max(target, 0)/TabSize + 1) * TabSize
}

// DefaultPadCacheSize bounds the padding strings a Padder keeps.
const DefaultPadCacheSize = 256

type padKey struct {
	target, current int
	tabUnit         bool
	extra           int
}

// Padder memoizes Pad in a bounded cache. It is owned by one emitter; a nil
// Padder pads without caching.
type Padder struct {
	cache *lru.Cache[padKey, string]
}

// NewPadder returns a Padder holding at most size entries. A non-positive
// size disables caching.
func NewPadder(size int) *Padder {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[padKey, string](size)
	if err != nil {
		return nil
	}
	return &Padder{cache: c}
}

// Pad is the cached form of the package-level Pad.
func (p *Padder) Pad(target, current int, tabUnit bool, extraTabs int) string {
	if p == nil {
		return Pad(target, current, tabUnit, extraTabs)
	}
	k := padKey{target, current, tabUnit, extraTabs}
	if v, ok := p.cache.Get(k); ok {
		return v
	}
	v := Pad(target, current, tabUnit, extraTabs)
	p.cache.Add(k, v)
	return v
}

// Len reports how many padding strings are cached.
func (p *Padder) Len() int {
	if p == nil {
		return 0
	}
	return p.cache.Len()
}
