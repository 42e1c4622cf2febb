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

// Command fcamine is a thin CLI façade over package fca: read a formal
// context from a Burmeister .cxt or CSV file, run the mining pipeline, and
// print the resulting intents/keys/implications as text. Everything
// interesting lives in the library packages; this file only wires flags to
// fca.Options and formats the fca.Result for a terminal.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	fca "github.com/erigontech/fca"
	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
	"github.com/erigontech/fca/iofca"
)

var (
	minSupport       float64
	minDelta         float64
	stableCap        int
	withImplications bool
	withIndices      bool
	withMermaid      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fcamine <context-file>",
		Short: "Mine the concepts, keys and implications of a formal context",
		Args:  cobra.ExactArgs(1),
		RunE:  runMine,
	}
	root.Flags().Float64Var(&minSupport, "min-support", 0, "minimum intent support: an absolute count (>1) or a fraction of |O| (0,1]")
	root.Flags().Float64Var(&minDelta, "min-delta", 0, "minimum delta-stability for the stable-extent enumerator")
	root.Flags().IntVar(&stableCap, "stable-cap", 0, "cap the number of stable extents returned (0 = uncapped)")
	root.Flags().BoolVar(&withImplications, "implications", false, "compute proper premises and pseudo-intents")
	root.Flags().BoolVar(&withIndices, "indices", false, "compute lattice order and structural indices")
	root.Flags().BoolVar(&withMermaid, "mermaid", false, "also render the lattice's covering relation as a Mermaid flowchart (implies --indices)")
	root.AddCommand(newClosureCmd())
	return root
}

// newClosureCmd is an ad-hoc closure query against one context:
// fcamine closure <context-file> <attr> [attr...] treats all named
// attributes as one subset and prints its closure on a single line. The
// query runs through fca.CachedClosure rather than calling
// context.Context.Closure directly; the cache lives only for the one
// invocation, so it is not shared between separate runs of the command.
func newClosureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "closure <context-file> <attr>...",
		Short: "Print the closure of one attribute subset",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runClosure,
	}
}

func runClosure(cmd *cobra.Command, args []string) error {
	ctx, err := loadContext(args[0])
	if err != nil {
		return err
	}
	cached, err := fca.NewCachedClosure(ctx, 128)
	if err != nil {
		return fmt.Errorf("building cached closure: %w", err)
	}

	b := bitset.New(uint(ctx.NumAttributes()))
	for _, name := range args[1:] {
		idx := -1
		for i, n := range ctx.AttributeNames {
			if n == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown attribute %q", name)
		}
		b.Set(uint(idx))
	}

	closure := cached.Closure(b)
	fmt.Fprintf(cmd.OutOrStdout(), "closure(%s) = %s\n", verbalize(ctx.AttributeNames, b), verbalize(ctx.AttributeNames, closure))
	return nil
}

func runMine(cmd *cobra.Command, args []string) error {
	ctx, err := loadContext(args[0])
	if err != nil {
		return err
	}

	var opts []fca.Option
	opts = append(opts, fca.WithMinSupport(fca.NaturalOrRatio(minSupport)))
	if minDelta != 0 || stableCap != 0 {
		opts = append(opts, fca.WithMinDeltaStability(fca.NaturalOrRatio(minDelta)), fca.WithStableExtentCap(stableCap))
	}
	if withImplications {
		opts = append(opts, fca.WithImplications())
	}
	if withIndices || withMermaid {
		opts = append(opts, fca.WithIndices())
	}

	result, err := fca.NewPipeline(opts...).Run(ctx)
	if err != nil {
		return err
	}
	printResult(cmd, ctx, result)
	return nil
}

func loadContext(path string) (*context.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".csv") {
		return iofca.ReadCSV(strings.NewReader(string(data)))
	}
	return iofca.ReadCxt(string(data))
}

func printResult(cmd *cobra.Command, ctx *context.Context, result *fca.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "intents (%d):\n", len(result.Intents))
	for i, in := range result.Intents {
		fmt.Fprintf(out, "  [%d] %s  (support=%d)\n", i, verbalize(ctx.AttributeNames, in), ctx.Extension(in).Count())
	}

	fmt.Fprintf(out, "passkeys (%d):\n", len(result.Passkeys.Keys()))
	for _, k := range result.Passkeys.Keys() {
		idx, _ := result.Passkeys.IntentIndex(k)
		fmt.Fprintf(out, "  %s -> intent[%d]\n", verbalize(ctx.AttributeNames, k), idx)
	}

	if result.ProperPremises != nil {
		fmt.Fprintf(out, "canonical direct base (%d implications):\n", len(result.ProperPremises))
		for _, im := range result.ProperPremises {
			fmt.Fprintf(out, "  %s => %s\n", verbalize(ctx.AttributeNames, im.Premise), verbalize(ctx.AttributeNames, result.Intents[im.ConclusionIdx]))
		}
	}
	if result.PseudoIntents != nil {
		fmt.Fprintf(out, "canonical (Duquenne-Guigues) base (%d implications):\n", len(result.PseudoIntents))
		for _, im := range result.PseudoIntents {
			fmt.Fprintf(out, "  %s => %s\n", verbalize(ctx.AttributeNames, im.Premise), verbalize(ctx.AttributeNames, result.Intents[im.ConclusionIdx]))
		}
	}
	if result.Order != nil {
		fmt.Fprintf(out, "linearity=%.4f distributivity=%.4f\n", result.Linearity, result.Distributivity)
	}
	if withMermaid && result.Order != nil {
		fmt.Fprintln(out, renderMermaid(ctx, result))
	}
}

// renderMermaid turns the lattice's covering relation into a Mermaid
// flowchart: one node per intent (labeled by its verbalized attribute set),
// one edge per (intent, upper cover) pair.
func renderMermaid(ctx *context.Context, result *fca.Result) string {
	labels := make([]string, len(result.Intents))
	for i, in := range result.Intents {
		labels[i] = verbalize(ctx.AttributeNames, in)
	}
	neighbours := make([][]int, len(result.Order.Covers))
	for i, cov := range result.Order.Covers {
		for _, j := range cov.Indices() {
			neighbours[i] = append(neighbours[i], int(j))
		}
	}
	return iofca.ToMermaidDiagram(labels, neighbours)
}

func verbalize(names []string, b *bitset.Bitset) string {
	idx := b.Indices()
	labels := make([]string, len(idx))
	for i, m := range idx {
		if int(m) < len(names) {
			labels[i] = names[m]
		} else {
			labels[i] = fmt.Sprintf("m%d", m)
		}
	}
	if len(labels) == 0 {
		return "{}"
	}
	return "{" + strings.Join(labels, ",") + "}"
}
