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

// Package fca assembles the core enumerators (bitset, context, mining,
// implications, order, indices) into the full extraction pipeline spec §2
// describes, and provides the functional-options configuration layer the
// distilled spec itself is silent on.
package fca

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrSupportOutOfRange is returned by Options.Validate when MinSupport
// resolves outside [0, numObjects].
var ErrSupportOutOfRange = errors.New("fca: min support out of range")

// ErrDeltaOutOfRange is returned by Options.Validate when MinDeltaStability
// resolves to a negative value.
var ErrDeltaOutOfRange = errors.New("fca: min delta-stability out of range")

// Options configures a Pipeline run. Zero value is valid: every threshold
// defaults to its most permissive setting (mine everything), gSofia is
// skipped unless MinDeltaStability or StableExtentCap is set, and logging is
// a no-op logger.
type Options struct {
	// MinSupport is the minimum extent size an intent must have to be
	// emitted (spec §4.2). A value in (0, 1] is interpreted as a fraction
	// of the object count; NaturalOrRatio.ToAbsolute resolves it.
	MinSupport NaturalOrRatio

	// MinDeltaStability, if non-zero (including implicitly via
	// StableExtentCap), enables the gSofia stable-extent enumerator
	// (spec §4.4).
	MinDeltaStability NaturalOrRatio

	// StableExtentCap bounds the number of stable extents gSofia returns;
	// zero means uncapped.
	StableExtentCap int

	// ComputeImplications enables the proper-premise and pseudo-intent
	// enumerators (spec §4.5-4.6).
	ComputeImplications bool

	// ComputeOrder enables lattice-order derivation (spec §4.7).
	ComputeOrder bool

	// ComputeIndices enables the structural indices (spec §4.8); implies
	// ComputeOrder since linearity/distributivity need the transitive
	// closure.
	ComputeIndices bool

	// StripTopBottomInIndices, if set, excludes the top and bottom
	// intents from the linearity/distributivity denominators.
	StripTopBottomInIndices bool

	logger *zap.Logger
}

// Option is a functional option for Options.
type Option func(*Options)

// WithMinSupport sets the minimum-support threshold.
func WithMinSupport(s NaturalOrRatio) Option { return func(o *Options) { o.MinSupport = s } }

// WithMinDeltaStability sets the gSofia delta-stability threshold.
func WithMinDeltaStability(d NaturalOrRatio) Option {
	return func(o *Options) { o.MinDeltaStability = d }
}

// WithStableExtentCap bounds the number of stable extents returned.
func WithStableExtentCap(n int) Option { return func(o *Options) { o.StableExtentCap = n } }

// WithImplications enables the implication-base stage.
func WithImplications() Option { return func(o *Options) { o.ComputeImplications = true } }

// WithOrder enables lattice-order derivation.
func WithOrder() Option { return func(o *Options) { o.ComputeOrder = true } }

// WithIndices enables the structural indices (and implicitly the order they
// depend on).
func WithIndices() Option {
	return func(o *Options) { o.ComputeIndices = true; o.ComputeOrder = true }
}

// WithStripTopBottomInIndices excludes the top/bottom intents from the
// linearity/distributivity denominators.
func WithStripTopBottomInIndices() Option {
	return func(o *Options) { o.StripTopBottomInIndices = true }
}

// WithLogger attaches a zap logger for progress reporting through the
// enumerators; a nil logger (the default, via zap.NewNop()) disables
// logging entirely.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.logger = l } }

// NewOptions builds an Options from the given functional options.
func NewOptions(opts ...Option) *Options {
	o := &Options{logger: zap.NewNop()}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// Validate resolves MinSupport/MinDeltaStability against numObjects and
// checks they land in their legal ranges, returning the resolved absolute
// integers. This is where spec §6's "a floating value in (0,1] passed by
// the façade is multiplied by |O| and floored" convention is implemented.
func (o *Options) Validate(numObjects int) (minSupport, minDelta int, err error) {
	minSupport = o.MinSupport.ToAbsolute(numObjects)
	if minSupport < 0 || minSupport > numObjects {
		return 0, 0, fmt.Errorf("%w: %d not in [0, %d]", ErrSupportOutOfRange, minSupport, numObjects)
	}
	minDelta = o.MinDeltaStability.ToAbsolute(numObjects)
	if minDelta < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrDeltaOutOfRange, minDelta)
	}
	return minSupport, minDelta, nil
}

func (o *Options) logOrNop() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}
