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

import "seehuhn.de/go/geom/vec"

// Editor is the only way to mutate a [Store].  Creating an Editor
// un-shares the Store (copy-on-write) and resets its generation ID;
// at most one Editor may be attached to a Store at a time.  Callers
// must call [Editor.Close] when they are done editing.
type Editor struct {
	store *Store
}

// NewEditor attaches an editor to *ref.  If the Store is shared, *ref
// is redirected to a private deep copy first; the previous reference
// is released.  incVerbs and incPoints are reservation hints for the
// amount of data about to be appended.
func NewEditor(ref **Store, incVerbs, incPoints int) *Editor {
	s := *ref
	if s.unique() {
		s.incReserve(incVerbs, incPoints)
	} else {
		private := newStore()
		private.copyFrom(s, incVerbs, incPoints)
		s.Unref()
		*ref = private
		s = private
	}
	s.generationID = 0
	if s.editors.Add(1) != 1 {
		panic("pathdata: a second Editor attached to the same Store")
	}
	return &Editor{store: s}
}

// Close detaches the editor.  The Editor must not be used afterwards.
func (e *Editor) Close() {
	e.store.editors.Add(-1)
	e.store = nil
}

// Store returns the Store the editor is attached to.
func (e *Editor) Store() *Store {
	return e.store
}

// Points returns the mutable point slice of the edited store.
func (e *Editor) Points() []vec.Vec2 {
	return e.store.points()
}

// GrowForVerb appends verb v and returns the point slots it consumes,
// uninitialized, for the caller to fill in.
func (e *Editor) GrowForVerb(v Verb) []vec.Vec2 {
	return e.store.growForVerb(v)
}

// GrowForConic appends a conic verb with weight w and returns its two
// point slots, uninitialized.
func (e *Editor) GrowForConic(w float64) []vec.Vec2 {
	pts := e.store.growForVerb(VerbConic)
	e.store.weights = append(e.store.weights, w)
	return pts
}

// Grow appends newVerbs verb slots and newPoints point slots in bulk,
// all uninitialized.  The returned verb slice covers the new verb
// region in memory order: new logical verb i is verbs[len(verbs)+^i].
// pts holds the new point slots in insertion order.
func (e *Editor) Grow(newVerbs, newPoints int) (verbs []byte, pts []vec.Vec2) {
	s := e.store
	oldPoints := s.pointCnt
	s.grow(newVerbs, newPoints)
	return s.Verbs()[:newVerbs], s.points()[oldPoints:]
}

// ResetToSize discards the current contents and resizes the store to
// newVerbs verb slots, newPoints point slots and newConics weight
// slots, all uninitialized.
func (e *Editor) ResetToSize(newVerbs, newPoints, newConics int) {
	e.store.resetToSize(newVerbs, newPoints, newConics, 0, 0)
}
