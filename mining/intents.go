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

// Package mining holds the combinatorial enumerators that walk a formal
// context's closed sets: the LCM-style intent enumerator, the apriori-style
// key/passkey enumerator, the gSofia stable-extent enumerator, and a handful
// of level-wise relatives (minimal rare itemsets, minimal broad clusterings)
// that share the same candidate-generation machinery.
package mining

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
)

// ErrSupportOutOfRange is returned when a caller passes a min-support
// threshold outside [0, |O|] — a parameter domain violation per spec §7.2.
var ErrSupportOutOfRange = errors.New("mining: min support out of range")

// IntentOptions configures ListIntents.
type IntentOptions struct {
	logger *zap.Logger
}

// IntentOption is a functional option for ListIntents.
type IntentOption func(*IntentOptions)

// WithLogger attaches a zap logger for progress reporting; a nil logger
// (the default) disables logging entirely, mirroring the Python original's
// use_tqdm=False default.
func WithLogger(l *zap.Logger) IntentOption {
	return func(o *IntentOptions) { o.logger = l }
}

// ListIntents enumerates every closed attribute set (intent) whose extent
// has at least minSupport objects, topologically sorted ascending (spec
// §4.2). The bottom intent (closure of ∅) is always present; the top intent
// (all attributes) is present only if its extent meets minSupport — this
// asymmetry is intentional, see SPEC_FULL.md Open Question (b).
func ListIntents(ctx *context.Context, minSupport int, opts ...IntentOption) ([]*bitset.Bitset, error) {
	o := &IntentOptions{logger: zap.NewNop()}
	for _, apply := range opts {
		apply(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	numObjects := ctx.NumObjects()
	if minSupport < 0 || minSupport > numObjects {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrSupportOutOfRange, minSupport, numObjects)
	}

	numAttrs := uint(ctx.NumAttributes())
	bottom := ctx.Closure(bitset.New(numAttrs))

	var intents []*bitset.Bitset
	seen := map[string]bool{bottom.Key(): true}
	intents = append(intents, bottom)

	var dfs func(b *bitset.Bitset, ext *bitset.Bitset, minAttr uint)
	dfs = func(b, ext *bitset.Bitset, minAttr uint) {
		for m := minAttr; m < numAttrs; m++ {
			if b.Test(m) {
				continue
			}
			candidateExt := ext.And(ctx.Extents[m])
			if int(candidateExt.Count()) < minSupport {
				continue
			}
			child := ctx.Intention(candidateExt)
			// Canonicity test: every attribute child introduces beyond b
			// must exceed m, i.e. child and b agree below m. Otherwise
			// this closed set is reachable through a smaller-indexed
			// insertion order and we skip it here to avoid duplicates.
			if !agreesBelow(child, b, m) {
				continue
			}
			key := child.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			intents = append(intents, child)
			o.logger.Debug("intent found", zap.Uint("support", candidateExt.Count()), zap.Uint("size", child.Count()))
			dfs(child, candidateExt, m+1)
		}
	}
	dfs(bottom, ctx.Extension(bottom), 0)

	sort.Slice(intents, func(i, j int) bool { return bitset.Less(intents[i], intents[j]) })
	return intents, nil
}

// agreesBelow reports whether child and b have identical bits strictly
// below attribute m — the canonicity test of spec §4.2: child ∩ [0, m) = b
// ∩ [0, m).
func agreesBelow(child, b *bitset.Bitset, m uint) bool {
	for i := uint(0); i < m; i++ {
		if child.Test(i) != b.Test(i) {
			return false
		}
	}
	return true
}
