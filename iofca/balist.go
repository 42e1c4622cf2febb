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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/numeric"
)

// BalistOptions configures SaveBitsetList/LoadBitsetList.
type BalistOptions struct {
	compressed bool
}

// BalistOption is a functional option for the bitset-list codec.
type BalistOption func(*BalistOptions)

// Compressed wraps the stream in a zstd encoder/decoder, for contexts large
// enough that the persisted extent list benefits from compression.
func Compressed(v bool) BalistOption { return func(o *BalistOptions) { o.compressed = v } }

// SaveBitsetList writes bitsets in the format spec §6 describes: the
// decimal ASCII bit width, a newline, then each bitset's packed bytes in
// order, each occupying ceil(width/8) bytes, most-significant-bit first
// within each byte.
func SaveBitsetList(w io.Writer, bitsets []*bitset.Bitset, opts ...BalistOption) error {
	o := &BalistOptions{}
	for _, apply := range opts {
		apply(o)
	}
	if len(bitsets) == 0 {
		return nil
	}
	width := bitsets[0].Width()

	var dst io.Writer = w
	var enc *zstd.Encoder
	if o.compressed {
		var err error
		enc, err = zstd.NewWriter(w)
		if err != nil {
			return errors.Wrap(err, "iofca: opening zstd writer")
		}
		dst = enc
	}

	if _, err := io.WriteString(dst, strconv.Itoa(int(width))+"\n"); err != nil {
		return errors.Wrap(err, "iofca: writing balist header")
	}
	for _, b := range bitsets {
		if b.Width() != width {
			return errors.Errorf("iofca: all bitsets in a list must share one width, got %d and %d", width, b.Width())
		}
		if _, err := dst.Write(packMSBFirst(b)); err != nil {
			return errors.Wrap(err, "iofca: writing packed bitset")
		}
	}
	if enc != nil {
		return errors.Wrap(enc.Close(), "iofca: closing zstd writer")
	}
	return nil
}

// LoadBitsetList reads back a stream written by SaveBitsetList.
func LoadBitsetList(r io.Reader, opts ...BalistOption) ([]*bitset.Bitset, error) {
	o := &BalistOptions{}
	for _, apply := range opts {
		apply(o)
	}

	var src io.Reader = r
	if o.compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "iofca: opening zstd reader")
		}
		defer dec.Close()
		src = dec
	}

	br := bufio.NewReader(src)
	header, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && header == "" {
			return nil, nil
		}
		return nil, errors.Wrap(err, "iofca: reading balist header")
	}
	width, err := strconv.Atoi(strings.TrimRight(header, "\n"))
	if err != nil {
		return nil, errors.Wrap(err, "iofca: parsing balist width")
	}
	numBytes := numeric.CeilDiv(width, 8)

	var out []*bitset.Bitset
	buf := make([]byte, numBytes)
	for {
		_, err := io.ReadFull(br, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iofca: reading packed bitset")
		}
		out = append(out, unpackMSBFirst(buf, uint(width)))
	}
	return out, nil
}

// packMSBFirst packs b's bits into ceil(width/8) bytes, most-significant-bit
// first within each byte (bit 0 at the top of byte 0).
func packMSBFirst(b *bitset.Bitset) []byte {
	width := b.Width()
	out := make([]byte, numeric.CeilDiv(int(width), 8))
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out[i/8] |= 1 << (7 - i%8)
	}
	return out
}

func unpackMSBFirst(data []byte, width uint) *bitset.Bitset {
	b := bitset.New(width)
	for i := uint(0); i < width; i++ {
		if data[i/8]&(1<<(7-i%8)) != 0 {
			b.Set(i)
		}
	}
	return b
}
