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
	"bytes"
	"fmt"
	"math"
	"sync/atomic"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Store holds the verbs, points and conic weights of one path.
// Multiple path handles may share a Store; sharing is tracked by an
// atomic reference count, and mutation goes through an [Editor] which
// un-shares the Store first.
//
// A Store is not safe for concurrent mutation.  Multiple goroutines
// may call read-only methods concurrently as long as no Editor is
// attached.
type Store struct {
	// words is the single allocation backing both sequences: points at
	// the low end, verb bytes flush with the high end.  Allocating in
	// 8-byte units keeps the point view aligned.
	words     []float64
	pointCnt  int
	verbCnt   int
	freeSpace int // bytes between the end of the points and the start of the verbs

	weights []float64 // one entry per conic verb, in verb order

	bounds      rect.Rect
	boundsDirty bool
	finite      bool // meaningful only when boundsDirty is false

	// generationID identifies the current contents.  0 means no stable
	// identity yet; emptyGenID is reserved for zero verbs and points.
	generationID uint32

	refs    atomic.Int32
	editors atomic.Int32 // at most one Editor may be attached
}

const emptyGenID = 1

// poisonCount is installed in a released Store so that any later
// access panics instead of reading stale data.
const poisonCount = 0x7fffffff

var genCounter atomic.Uint32

// emptyStore is the canonical Store with no verbs and no points.  The
// package itself holds the initial reference, so the singleton is
// never released.
var emptyStore = newStore()

// CreateEmpty returns a reference to the canonical empty Store.  The
// caller owns one reference and must release it with [Store.Unref].
func CreateEmpty() *Store {
	return emptyStore.Ref()
}

func newStore() *Store {
	s := &Store{
		boundsDirty:  true,
		generationID: emptyGenID,
	}
	s.refs.Store(1)
	return s
}

// Ref acquires an additional reference to s and returns s.
func (s *Store) Ref() *Store {
	s.refs.Add(1)
	return s
}

// Unref releases one reference.  When the last reference is dropped
// the Store's buffers are released and s must not be used again.
func (s *Store) Unref() {
	n := s.refs.Add(-1)
	if n == 0 {
		s.release()
	} else if n < 0 {
		panic("pathdata: Unref of released Store")
	}
}

func (s *Store) unique() bool {
	return s.refs.Load() == 1
}

func (s *Store) release() {
	s.words = nil
	s.weights = nil
	s.verbCnt = poisonCount
	s.pointCnt = poisonCount
	s.freeSpace = 0
	s.generationID = 0
}

// CountPoints returns the number of points in the store.
func (s *Store) CountPoints() int {
	return s.pointCnt
}

// CountVerbs returns the number of verbs in the store.
func (s *Store) CountVerbs() int {
	return s.verbCnt
}

// Verbs returns the verb bytes in memory order, which is the reverse
// of insertion order: the first logical verb is the last element.
// Logical verb i is vs[len(vs)+^i].  Callers must not modify the
// returned slice.
func (s *Store) Verbs() []byte {
	b := s.bytes()
	return b[len(b)-s.verbCnt:]
}

// AtVerb returns logical verb i, counting in insertion order.
func (s *Store) AtVerb(i int) Verb {
	vs := s.Verbs()
	return Verb(vs[len(vs)+^i])
}

// Points returns the point coordinates in insertion order.  Callers
// must not modify the returned slice; mutation goes through an
// [Editor].
func (s *Store) Points() []vec.Vec2 {
	return s.points()
}

// AtPoint returns point i.
func (s *Store) AtPoint(i int) vec.Vec2 {
	return s.points()[i]
}

// ConicWeights returns one weight per conic verb, in verb order.
// Callers must not modify the returned slice.
func (s *Store) ConicWeights() []float64 {
	return s.weights
}

// GenID returns an ID that identifies the current contents of the
// store, assigning a fresh one if none has been assigned yet.  Two
// stores with the same non-zero ID hold the same verbs, points and
// weights.  The converse does not hold: equal contents may carry
// different IDs until [Store.Equals] unifies them.
//
// GenID must not be called while an Editor is attached.
func (s *Store) GenID() uint32 {
	if s.editors.Load() != 0 {
		panic("pathdata: GenID called while an Editor is attached")
	}
	if s.generationID == 0 {
		if s.pointCnt == 0 && s.verbCnt == 0 {
			s.generationID = emptyGenID
		} else {
			s.generationID = nextGenID()
		}
	}
	return s.generationID
}

// nextGenID draws a fresh generation ID from the process-wide counter.
// The loop handles counter wrap-around: 0 and emptyGenID are reserved.
func nextGenID() uint32 {
	for {
		if id := genCounter.Add(1); id > emptyGenID {
			return id
		}
	}
}

// Equals reports whether s and other hold the same verbs, points and
// conic weights.  Matching non-zero generation IDs short-circuit the
// comparison.  After a successful deep comparison the two stores adopt
// a common generation ID, so repeating the comparison is cheap.
func (s *Store) Equals(other *Store) bool {
	if s.generationID != 0 && s.generationID == other.generationID {
		return true
	}
	if s.pointCnt != other.pointCnt || s.verbCnt != other.verbCnt {
		return false
	}
	if !bytes.Equal(s.Verbs(), other.Verbs()) {
		return false
	}
	// Compare point and weight bits rather than values, so that NaN
	// coordinates compare equal to themselves.
	if !bytes.Equal(s.pointBytes(), other.pointBytes()) {
		return false
	}
	if len(s.weights) != len(other.weights) {
		return false
	}
	for i, w := range s.weights {
		if math.Float64bits(w) != math.Float64bits(other.weights[i]) {
			return false
		}
	}
	if s.generationID == 0 {
		s.generationID = other.GenID()
	} else if other.generationID == 0 {
		other.generationID = s.GenID()
	}
	return true
}

// Rewind resets *ref to zero verbs and points, assuming that the path
// will be repopulated with a similar amount of data.  A uniquely owned
// Store keeps its allocation; a shared Store is replaced by a fresh
// one sized with the previous counts as reservation hints.
func Rewind(ref **Store) {
	s := *ref
	if s.unique() {
		s.boundsDirty = true // this also invalidates the finite flag
		s.verbCnt = 0
		s.pointCnt = 0
		s.freeSpace = s.currSize()
		s.generationID = 0
		s.weights = s.weights[:0]
	} else {
		oldVerbs := s.verbCnt
		oldPoints := s.pointCnt
		s.Unref()
		fresh := newStore()
		fresh.resetToSize(0, 0, 0, oldVerbs, oldPoints)
		*ref = fresh
	}
}

// validate checks the structural invariants of the store.  It is
// called from the tests after every operation; a panic here indicates
// a bug in this package (or a SetBounds rectangle that does not match
// the points).
func (s *Store) validate() {
	if s.freeSpace < 0 {
		panic("pathdata: negative free space")
	}
	if len(s.words) == 0 && (s.pointCnt != 0 || s.verbCnt != 0 || s.freeSpace != 0) {
		panic("pathdata: counts without allocation")
	}
	if s.currSize() != s.freeSpace+s.pointCnt*pointSize+s.verbCnt {
		panic(fmt.Sprintf("pathdata: buffer arithmetic: size=%d free=%d points=%d verbs=%d",
			s.currSize(), s.freeSpace, s.pointCnt, s.verbCnt))
	}
	if n := countConicVerbs(s.Verbs()); n != len(s.weights) {
		panic(fmt.Sprintf("pathdata: %d conic verbs but %d weights", n, len(s.weights)))
	}
	if !s.boundsDirty && s.bounds != (rect.Rect{}) {
		finite := true
		for _, p := range s.points() {
			if p.X < s.bounds.LLx || p.X > s.bounds.URx ||
				p.Y < s.bounds.LLy || p.Y > s.bounds.URy {
				panic(fmt.Sprintf("pathdata: point (%g,%g) outside cached bounds %v",
					p.X, p.Y, s.bounds))
			}
			if !isFinite(p.X) || !isFinite(p.Y) {
				finite = false
			}
		}
		if s.finite != finite {
			panic("pathdata: cached finite flag does not match points")
		}
	}
}
