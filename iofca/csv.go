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
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
)

// ReadCSV reads a tabular context: a header row of attribute names (its
// first cell, the object-name column header, is ignored), then one row per
// object whose first cell is the object's name and whose remaining cells
// are truthy/falsy booleans ("1"/"0", "true"/"false", "X"/"."), matching the
// reduced, CLI-relevant form of the original's to_named_itemsets /
// to_bools tabular adapters (spec §6's "Object and attribute names ... used
// only by the surrounding façade for verbalization").
func ReadCSV(r io.Reader) (*context.Context, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "iofca: reading csv")
	}
	if len(records) == 0 {
		return context.New(nil, nil, nil), nil
	}

	attributeNames := records[0][1:]
	var objectNames []string
	var rows []*bitset.Bitset
	for _, rec := range records[1:] {
		objectNames = append(objectNames, rec[0])
		row := bitset.New(uint(len(attributeNames)))
		for m, cell := range rec[1:] {
			truthy, err := parseBool(cell)
			if err != nil {
				return nil, errors.Wrapf(err, "iofca: cell (%s, %s)", rec[0], attributeNames[m])
			}
			if truthy {
				row.Set(uint(m))
			}
		}
		rows = append(rows, row)
	}
	return context.New(objectNames, attributeNames, rows), nil
}

func parseBool(cell string) (bool, error) {
	switch cell {
	case "1", "X", "x", "true", "True", "TRUE":
		return true, nil
	case "0", ".", "", "false", "False", "FALSE":
		return false, nil
	}
	return strconv.ParseBool(cell)
}

// WriteCSV renders ctx as a tabular CSV: header row of attribute names
// (with a leading blank object-name column), then one "1"/"0" row per
// object.
func WriteCSV(w io.Writer, ctx *context.Context) error {
	cw := csv.NewWriter(w)
	header := append([]string{""}, ctx.AttributeNames...)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "iofca: writing csv header")
	}
	for g, row := range ctx.Rows {
		rec := make([]string, 0, len(ctx.AttributeNames)+1)
		name := ""
		if g < len(ctx.ObjectNames) {
			name = ctx.ObjectNames[g]
		}
		rec = append(rec, name)
		for m := uint(0); m < row.Width(); m++ {
			if row.Test(m) {
				rec = append(rec, "1")
			} else {
				rec = append(rec, "0")
			}
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "iofca: writing csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "iofca: flushing csv writer")
}
