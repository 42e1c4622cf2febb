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

package iofca

import (
	"fmt"
	"strings"
)

// nodeSymbol assigns every node an increasing base-26 letter code (A, B,
// ..., Z, AA, AB, ...), matching the original's itertools.combinations walk
// over ascii_uppercase used purely to mint short, distinct Mermaid node IDs.
func nodeSymbol(i int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < 26 {
		return string(alphabet[i])
	}
	return nodeSymbol(i/26-1) + string(alphabet[i%26])
}

// ToMermaidDiagram renders a lattice (or any labeled directed graph) as a
// Mermaid flowchart: one node per label, one edge per (node, neighbour)
// pair in neighbours[node]. Intended for order.Order.Covers, paired with
// the intents' or attribute concepts' labels, for lattice visualization —
// genuinely out-of-core per spec §6 and never imported by the core.
func ToMermaidDiagram(nodeLabels []string, neighbours [][]int) string {
	symbols := make([]string, len(nodeLabels))
	for i := range nodeLabels {
		symbols[i] = nodeSymbol(i)
	}

	var sb strings.Builder
	sb.WriteString("flowchart TD\n")
	for i, label := range nodeLabels {
		fmt.Fprintf(&sb, "%s[\"%s\"];\n", symbols[i], label)
	}
	sb.WriteByte('\n')
	for i, neigh := range neighbours {
		for _, j := range neigh {
			fmt.Fprintf(&sb, "%s --> %s;\n", symbols[i], symbols[j])
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
