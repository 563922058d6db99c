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

// Verb is one drawing command in a path.  The store does not interpret
// verbs geometrically; it only uses [PointsPerVerb] to allocate point
// slots when a verb is appended.
type Verb uint8

const (
	VerbMove Verb = iota
	VerbLine
	VerbQuad
	VerbConic
	VerbCubic
	VerbClose
	VerbDone
)

var pointsPerVerb = [...]int{
	VerbMove:  1,
	VerbLine:  1,
	VerbQuad:  2,
	VerbConic: 2,
	VerbCubic: 3,
	VerbClose: 0,
	VerbDone:  0,
}

// PointsPerVerb returns the number of point slots verb v consumes.
func PointsPerVerb(v Verb) int {
	return pointsPerVerb[v]
}

func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "Move"
	case VerbLine:
		return "Line"
	case VerbQuad:
		return "Quad"
	case VerbConic:
		return "Conic"
	case VerbCubic:
		return "Cubic"
	case VerbClose:
		return "Close"
	case VerbDone:
		return "Done"
	}
	return "Verb(invalid)"
}

// countConicVerbs returns the number of conic verbs in vs.
func countConicVerbs(vs []byte) int {
	n := 0
	for _, v := range vs {
		if Verb(v) == VerbConic {
			n++
		}
	}
	return n
}
