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
	"slices"
	"unsafe"

	"seehuhn.de/go/geom/vec"
)

// Buffer layout: one allocation serves two monotonically growing
// sequences whose relative sizes are unknown in advance.  Points are
// wide and sit at offset 0; verbs are single bytes and fill the top of
// the allocation downwards, so both sides index from their own end
// with positive offsets and only the gap in the middle moves.

const (
	// pointSize is the byte size of one stored point (two float64s).
	pointSize = int(unsafe.Sizeof(vec.Vec2{}))

	// minAllocSize is the smallest growth step for the buffer.
	minAllocSize = 256
)

// bytes returns the whole allocation as a byte slice.
func (s *Store) bytes() []byte {
	if len(s.words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s.words))), len(s.words)*8)
}

// points returns the point region at the low end of the allocation.
func (s *Store) points() []vec.Vec2 {
	if s.pointCnt == 0 {
		return nil
	}
	return unsafe.Slice((*vec.Vec2)(unsafe.Pointer(unsafe.SliceData(s.words))), s.pointCnt)
}

// pointBytes returns the raw bytes of the point region.
func (s *Store) pointBytes() []byte {
	return s.bytes()[:s.pointCnt*pointSize]
}

// currSize returns the total allocated bytes: logical content plus the
// free gap.
func (s *Store) currSize() int {
	return len(s.words) * 8
}

// makeSpace grows the allocation until at least size bytes are free
// between the points and the verbs.  The growth amount is rounded up
// to a multiple of 8 bytes, and the allocation at least doubles, so
// repeated appends are amortized.  The verb bytes stay flush with the
// high end; the points do not move relative to the start.
func (s *Store) makeSpace(size int) {
	grow := size - s.freeSpace
	if grow <= 0 {
		return
	}
	oldSize := s.currSize()
	grow = (grow + 7) &^ 7
	if grow < oldSize {
		grow = oldSize
	}
	if grow < minAllocSize {
		grow = minAllocSize
	}
	newSize := oldSize + grow

	words := make([]float64, newSize/8)
	copy(words, s.words[:s.pointCnt*pointSize/8])
	newBytes := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), newSize)
	copy(newBytes[newSize-s.verbCnt:], s.Verbs())
	s.words = words
	s.freeSpace += grow
}

// incReserve makes room for additional verbs and points without
// changing the counts or the generation ID.
func (s *Store) incReserve(additionalVerbs, additionalPoints int) {
	s.makeSpace(additionalVerbs + additionalPoints*pointSize)
}

// grow increases the verb count by newVerbs and the point count by
// newPoints.  The new verb and point slots are uninitialized.
func (s *Store) grow(newVerbs, newPoints int) {
	space := newVerbs + newPoints*pointSize
	s.makeSpace(space)
	s.verbCnt += newVerbs
	s.pointCnt += newPoints
	s.freeSpace -= space
	s.boundsDirty = true // this also invalidates the finite flag
}

// growForVerb appends verb v and allocates the point slots it
// consumes.  It returns the new point slots, uninitialized.
func (s *Store) growForVerb(v Verb) []vec.Vec2 {
	n := PointsPerVerb(v)
	space := n*pointSize + 1
	s.makeSpace(space)
	s.verbCnt++
	b := s.bytes()
	b[len(b)-s.verbCnt] = byte(v)
	oldPoints := s.pointCnt
	s.pointCnt += n
	s.freeSpace -= space
	s.boundsDirty = true
	return s.points()[oldPoints:]
}

// resetToSize resets the store to verbCount verbs, pointCount points
// and conicCount weights, all uninitialized, and additionally reserves
// room for reserveVerbs verbs and reservePoints points.  The existing
// allocation is reused unless it is too small or carries more than 4x
// the required size.
func (s *Store) resetToSize(verbCount, pointCount, conicCount, reserveVerbs, reservePoints int) {
	s.boundsDirty = true // this also invalidates the finite flag
	s.generationID = 0

	newSize := verbCount + pointCount*pointSize
	minSize := newSize + reserveVerbs + reservePoints*pointSize

	sizeDelta := s.currSize() - minSize
	if sizeDelta < 0 || sizeDelta >= 3*minSize {
		s.words = nil
		s.freeSpace = 0
		s.verbCnt = 0
		s.pointCnt = 0
		s.makeSpace(minSize)
		s.verbCnt = verbCount
		s.pointCnt = pointCount
		s.freeSpace -= newSize
	} else {
		s.verbCnt = verbCount
		s.pointCnt = pointCount
		s.freeSpace = s.currSize() - newSize
	}
	s.weights = slices.Grow(s.weights[:0], conicCount)[:conicCount]
}

// copyFrom replaces the contents of s with a copy of src, reserving
// room for the given number of additional verbs and points.  The
// bounds cache and the generation ID carry over: a copy made only to
// be shared is still cheaply comparable.
func (s *Store) copyFrom(src *Store, reserveVerbs, reservePoints int) {
	s.resetToSize(src.verbCnt, src.pointCnt, len(src.weights), reserveVerbs, reservePoints)
	copy(s.Verbs(), src.Verbs())
	copy(s.points(), src.points())
	copy(s.weights, src.weights)
	s.generationID = src.generationID
	s.boundsDirty = src.boundsDirty
	if !s.boundsDirty {
		s.bounds = src.bounds
		s.finite = src.finite
	}
}
