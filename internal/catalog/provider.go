// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
)

// Resolves catalog IDs. Built-in and synthetic catalogs are always available.
// Others are looked up in the database first, then in the CSV directory.
type Resolver struct {
	Store *Store       // optional
	Dir   *DirProvider // optional
}

func (r *Resolver) Load(id ID) (*Catalog, error) {
	if id == Bright {
		return BrightCatalog(), nil
	}
	if n, ok := id.SyntheticSize(); ok {
		return NewSynthetic(n), nil
	} else if id.IsSynthetic() {
		return nil, fmt.Errorf("%w: %s, synthetic catalogs hold 0 to %d stars", ErrUnknownCatalog, id, MaxSyntheticStars)
	}

	var errs []error
	if r.Store != nil {
		c, err := r.Store.Load(id)
		if err == nil {
			return c, nil
		}
		errs = append(errs, err)
	}
	if r.Dir != nil {
		c, err := r.Dir.Load(id)
		if err == nil {
			return c, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: %s, no catalog database or directory configured", ErrUnknownCatalog, id)
	}
	return nil, errors.Join(errs...)
}

// Memoizes catalogs from another provider, as long as they fit into
// a memory budget. Safe for concurrent use. Cached catalogs are shared
// between callers and must be treated as read-only
type Cache struct {
	next    Provider
	log     zerolog.Logger
	mu      sync.Mutex
	entries map[ID]*Catalog
	budget  uint64
	used    uint64
}

// Creates a cache which may use the given fraction of physical memory
func NewCache(next Provider, memoryFraction float64, log zerolog.Logger) *Cache {
	return NewCacheWithBudget(next, uint64(float64(memory.TotalMemory())*memoryFraction), log)
}

// Creates a cache with the given memory budget in bytes
func NewCacheWithBudget(next Provider, budget uint64, log zerolog.Logger) *Cache {
	return &Cache{
		next:    next,
		log:     log,
		entries: make(map[ID]*Catalog),
		budget:  budget,
	}
}

func (c *Cache) Load(id ID) (*Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cat, ok := c.entries[id]; ok {
		return cat, nil
	}
	cat, err := c.next.Load(id)
	if err != nil {
		return nil, err
	}
	size := cat.SizeBytes()
	if c.used+size > c.budget {
		c.log.Debug().Str("catalog", string(id)).Uint64("bytes", size).Uint64("budgetBytes", c.budget).
			Msg("Catalog exceeds cache budget, not caching")
		return cat, nil
	}
	c.entries[id] = cat
	c.used += size
	c.log.Debug().Str("catalog", string(id)).Int("rows", len(cat.Rows)).Msg("Cached catalog")
	return cat, nil
}

// Drops all cached catalogs
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[ID]*Catalog)
	c.used = 0
}
