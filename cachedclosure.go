// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package fca

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
)

// CachedClosure memoizes context.Context.Closure behind an LRU cache keyed
// on the description's canonical string encoding. The core enumerators
// never need this — each visits a closure exactly once by construction
// (spec §5 "Shared resources") — but a façade issuing many ad-hoc closure
// queries against the same context benefits from not recomputing the Galois
// connection twice for the same input. The cmd/fcamine "closure" subcommand
// goes through it, issuing one query per invocation.
type CachedClosure struct {
	ctx   *context.Context
	cache *lru.Cache[string, *bitset.Bitset]
}

// NewCachedClosure wraps ctx with an LRU cache of the given size.
func NewCachedClosure(ctx *context.Context, size int) (*CachedClosure, error) {
	cache, err := lru.New[string, *bitset.Bitset](size)
	if err != nil {
		return nil, err
	}
	return &CachedClosure{ctx: ctx, cache: cache}, nil
}

// Closure returns ctx.Closure(b), serving a cached result when b's encoding
// was seen before.
func (c *CachedClosure) Closure(b *bitset.Bitset) *bitset.Bitset {
	if cached, ok := c.cache.Get(b.Key()); ok {
		return cached
	}
	result := c.ctx.Closure(b)
	c.cache.Add(b.Key(), result)
	return result
}

// Len reports the number of entries currently cached.
func (c *CachedClosure) Len() int { return c.cache.Len() }

// Purge clears the cache.
func (c *CachedClosure) Purge() { c.cache.Purge() }
