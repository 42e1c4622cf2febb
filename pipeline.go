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
	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
	"github.com/erigontech/fca/implications"
	"github.com/erigontech/fca/indices"
	"github.com/erigontech/fca/mining"
	"github.com/erigontech/fca/order"
)

// Result holds everything a Pipeline run produced, following the
// unidirectional data flow of spec §2: context -> attribute extents ->
// {intents, stable extents} -> {keys, passkeys} -> {proper premises,
// pseudo-intents} -> {covering order, indices}. Fields left nil/zero were
// not requested by the Options the pipeline ran with.
type Result struct {
	Intents []*bitset.Bitset

	Keys     *mining.KeyMap
	Passkeys *mining.KeyMap

	StableExtents []mining.StableExtent

	ProperPremises []implications.Implication
	PseudoIntents  []implications.Implication

	Order *order.Order

	Linearity      float64
	Distributivity float64
}

// Pipeline runs the full extraction over a single Context, per the Options
// it was built with.
type Pipeline struct {
	Options *Options
}

// NewPipeline returns a Pipeline configured by opts.
func NewPipeline(opts ...Option) *Pipeline {
	return &Pipeline{Options: NewOptions(opts...)}
}

// Run executes every enabled stage against ctx and returns the assembled
// Result. Components never depend on anything downstream of themselves, so
// stages run strictly in the order spec §2 lists them.
func (p *Pipeline) Run(ctx *context.Context) (*Result, error) {
	o := p.Options
	logger := o.logOrNop()

	minSupport, minDelta, err := o.Validate(ctx.NumObjects())
	if err != nil {
		return nil, err
	}

	intents, err := mining.ListIntents(ctx, minSupport, mining.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Sugar().Debugw("intents mined", "count", len(intents))

	result := &Result{Intents: intents}

	numAttrs := uint(ctx.NumAttributes())
	result.Keys = mining.ListKeys(intents, numAttrs)
	result.Passkeys = mining.ListPasskeys(intents, numAttrs)

	if o.MinDeltaStability != 0 || o.StableExtentCap != 0 {
		stable, err := mining.ListStableExtents(
			ctx.Extents, ctx.NumObjects(), minDelta,
			mining.WithCap(o.StableExtentCap),
			mining.WithGSofiaLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		result.StableExtents = stable
	}

	if o.ComputeImplications {
		result.ProperPremises = implications.ListProperPremises(intents, result.Keys)
		result.PseudoIntents = implications.BuildPseudoIntents(result.ProperPremises, intents)
	}

	if o.ComputeOrder || o.ComputeIndices {
		built := order.Build(intents, numAttrs)
		result.Order = &built
	}

	if o.ComputeIndices {
		result.Linearity = indices.Linearity(result.Order.Ancestry, o.StripTopBottomInIndices)
		result.Distributivity = indices.Distributivity(intents, o.StripTopBottomInIndices)
	}

	return result, nil
}
