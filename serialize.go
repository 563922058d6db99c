// seehuhn.de/go/pathdata - shared storage for 2D vector paths
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package pathdata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Serialized layout, little-endian.  The byte sequence is part of the
// enclosing file format and must stay stable across versions:
//
//	uint32   packed flags; bit 25 carries the finite flag
//	uint32   point count
//	uint32   verb count
//	uint32   conic weight count
//	uint32   generation ID at write time (advisory; readers discard it)
//	[]byte   verb bytes in memory order (logical verbs reversed)
//	float64  point coordinates, x then y per point
//	float64  conic weights
//	float64  bounds: LLx, LLy, URx, URy

const (
	headerWords = 5

	// isFiniteSerializationShift is the bit position of the finite
	// flag within the packed header word.
	isFiniteSerializationShift = 25
)

// ErrCorrupt is returned by [FromBytes] when the input cannot be a
// serialized path.
var ErrCorrupt = errors.New("pathdata: corrupt serialized path")

// SerializedSize returns the number of bytes [Store.AppendBinary]
// appends for this store.
func (s *Store) SerializedSize() int {
	return 4*headerWords +
		s.verbCnt +
		s.pointCnt*pointSize +
		len(s.weights)*8 +
		4*8
}

// AppendBinary appends the serialized form of the store to dst and
// returns the extended slice.
func (s *Store) AppendBinary(dst []byte) []byte {
	// Computing the bounds first makes sure the finite flag is valid.
	bounds := s.Bounds()

	var packed uint32
	if s.finite {
		packed |= 1 << isFiniteSerializationShift
	}
	dst = binary.LittleEndian.AppendUint32(dst, packed)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(s.pointCnt))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(s.verbCnt))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s.weights)))
	dst = binary.LittleEndian.AppendUint32(dst, s.generationID)

	dst = append(dst, s.Verbs()...)
	for _, p := range s.points() {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(p.X))
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(p.Y))
	}
	for _, w := range s.weights {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(w))
	}
	for _, c := range [4]float64{bounds.LLx, bounds.LLy, bounds.URx, bounds.URy} {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(c))
	}
	return dst
}

// FromBytes reconstructs a store from the serialized form at the start
// of data and returns it together with the number of bytes consumed.
// The reconstructed store has valid bounds and no generation ID:
// identity is process-local and is assigned on first use.
func FromBytes(data []byte) (*Store, int, error) {
	if len(data) < 4*headerWords {
		return nil, 0, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	packed := binary.LittleEndian.Uint32(data[0:])
	pointCnt := int(binary.LittleEndian.Uint32(data[4:]))
	verbCnt := int(binary.LittleEndian.Uint32(data[8:]))
	conicCnt := int(binary.LittleEndian.Uint32(data[12:]))
	// data[16:20] holds the writer's generation ID, which carries no
	// meaning in this process.

	need := 4*headerWords + verbCnt + pointCnt*pointSize + conicCnt*8 + 4*8
	if len(data) < need {
		return nil, 0, fmt.Errorf("%w: %d bytes, need %d", ErrCorrupt, len(data), need)
	}

	s := newStore()
	s.resetToSize(verbCnt, pointCnt, conicCnt, 0, 0)
	off := 4 * headerWords

	copy(s.Verbs(), data[off:off+verbCnt])
	off += verbCnt
	if n := countConicVerbs(s.Verbs()); n != conicCnt {
		return nil, 0, fmt.Errorf("%w: %d conic verbs but %d weights", ErrCorrupt, n, conicCnt)
	}

	pts := s.points()
	for i := range pts {
		x := math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
		y := math.Float64frombits(binary.LittleEndian.Uint64(data[off+8:]))
		pts[i] = vec.Vec2{X: x, Y: y}
		off += 16
	}
	for i := range s.weights {
		s.weights[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}

	var bounds rect.Rect
	bounds.LLx = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
	bounds.LLy = math.Float64frombits(binary.LittleEndian.Uint64(data[off+8:]))
	bounds.URx = math.Float64frombits(binary.LittleEndian.Uint64(data[off+16:]))
	bounds.URy = math.Float64frombits(binary.LittleEndian.Uint64(data[off+24:]))
	off += 32
	if bounds.LLx > bounds.URx || bounds.LLy > bounds.URy {
		return nil, 0, fmt.Errorf("%w: inverted bounds", ErrCorrupt)
	}
	s.bounds = bounds
	s.boundsDirty = false
	s.finite = packed&(1<<isFiniteSerializationShift) != 0

	return s, off, nil
}
