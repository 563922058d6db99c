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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Bounds returns the tight axis-aligned bounding rectangle of all
// points, computing it on first use after a mutation.  Control points
// of curves are included, so the result may be larger than the
// rendered shape.  A path with zero or one points has empty bounds: a
// single move-to contributes no extent.
func (s *Store) Bounds() rect.Rect {
	if s.boundsDirty {
		s.computeBounds()
	}
	return s.bounds
}

// IsFinite reports whether every point coordinate is finite, i.e. the
// path contains no infinities and no NaNs.
func (s *Store) IsFinite() bool {
	if s.boundsDirty {
		s.computeBounds()
	}
	return s.finite
}

// HasComputedBounds reports whether the bounds cache is valid, so that
// [Store.Bounds] returns without recomputation.
func (s *Store) HasComputedBounds() bool {
	return !s.boundsDirty
}

// SetBounds installs rect as the cached bounds and marks the cache
// valid.  The rectangle must not be inverted, and it must contain all
// points of the path.
func (s *Store) SetBounds(r rect.Rect) {
	if r.LLx > r.URx || r.LLy > r.URy {
		panic("pathdata: SetBounds with inverted rectangle")
	}
	s.bounds = r
	s.boundsDirty = false
	s.finite = rectIsFinite(r)
}

func (s *Store) computeBounds() {
	pts := s.points()
	if len(pts) <= 1 {
		s.bounds = rect.Rect{}
		s.finite = len(pts) == 0 || isFinite(pts[0].X) && isFinite(pts[0].Y)
	} else {
		llx, urx := pts[0].X, pts[0].X
		lly, ury := pts[0].Y, pts[0].Y
		for _, p := range pts[1:] {
			// min and max propagate NaN, so a single bad coordinate
			// makes the whole rectangle non-finite.
			llx = min(llx, p.X)
			urx = max(urx, p.X)
			lly = min(lly, p.Y)
			ury = max(ury, p.Y)
		}
		s.bounds = rect.Rect{LLx: llx, LLy: lly, URx: urx, URy: ury}
		s.finite = rectIsFinite(s.bounds)
		if !s.finite {
			s.bounds = rect.Rect{}
		}
	}
	s.boundsDirty = false
}

// CreateTransformedCopy replaces *dst with src mapped through m,
// allocating a new Store only if necessary.
//
// For the identity matrix, *dst simply becomes another reference to
// src.  Otherwise *dst is un-shared first, and the points of src are
// mapped into it; dst == &src is allowed, in which case the points are
// mapped in place.  When src has valid bounds and m maps rectangles to
// rectangles, the cached bounds are transformed too, saving the full
// recomputation on the next read.
func CreateTransformedCopy(dst **Store, src *Store, m matrix.Matrix) {
	if m == matrix.Identity {
		if *dst != src {
			(*dst).Unref()
			*dst = src.Ref()
		}
		return
	}

	if !(*dst).unique() {
		(*dst).Unref()
		*dst = newStore()
	}
	d := *dst
	if d != src {
		d.resetToSize(src.verbCnt, src.pointCnt, len(src.weights), 0, 0)
		copy(d.Verbs(), src.Verbs())
		copy(d.weights, src.weights)
	}

	// Evaluate before mapping: when d == src these are d's own flags.
	canXformBounds := !src.boundsDirty && rectStaysRect(m) && src.pointCnt > 1

	mapPoints(d.points(), src.points(), m)

	if canXformBounds {
		d.boundsDirty = false
		if src.finite {
			d.bounds = mapRect(m, src.bounds)
			if d.finite = rectIsFinite(d.bounds); !d.finite {
				d.bounds = rect.Rect{}
			}
		} else {
			d.finite = false
			d.bounds = rect.Rect{}
		}
	} else {
		d.boundsDirty = true
	}
	d.generationID = 0
}

// rectStaysRect reports whether m maps every axis-aligned rectangle to
// an axis-aligned rectangle: scale, translation and flips, but no
// rotation or skew.
func rectStaysRect(m matrix.Matrix) bool {
	return m[1] == 0 && m[2] == 0 && m[0] != 0 && m[3] != 0
}

// mapPoints maps src through m into dst.  dst and src may be the same
// slice.
func mapPoints(dst, src []vec.Vec2, m matrix.Matrix) {
	for i, p := range src {
		dst[i] = vec.Vec2{
			X: m[0]*p.X + m[2]*p.Y + m[4],
			Y: m[1]*p.X + m[3]*p.Y + m[5],
		}
	}
}

// mapRect maps r through m.  m must satisfy rectStaysRect; the result
// is normalized so that flips keep LL below UR.
func mapRect(m matrix.Matrix, r rect.Rect) rect.Rect {
	x0 := m[0]*r.LLx + m[4]
	x1 := m[0]*r.URx + m[4]
	y0 := m[3]*r.LLy + m[5]
	y1 := m[3]*r.URy + m[5]
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return rect.Rect{LLx: x0, LLy: y0, URx: x1, URy: y1}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func rectIsFinite(r rect.Rect) bool {
	return isFinite(r.LLx) && isFinite(r.LLy) && isFinite(r.URx) && isFinite(r.URy)
}
