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

// Package pathdata implements the shared, versioned backing store for a
// 2D vector path: the drawing verbs, the point coordinates the verbs
// consume, and the weights of rational quadratic (conic) segments.
//
// A [Store] holds points and verbs in a single allocation.  The points
// sit at the low end of the buffer and grow upwards, the verbs sit at
// the high end and grow downwards, so both sequences share one free gap
// in the middle.  Verbs are stored in reverse: [Store.Verbs] returns
// the bytes in memory order, and logical verb i lives at index
// len(vs)+^i.
//
// None of the Store methods modify the path contents.  To mutate,
// callers wrap a shared reference in an [Editor], which performs
// copy-on-write if the Store is shared and resets the generation ID.
// The generation ID in turn gives cheap equality checks and downstream
// cache invalidation: two stores with the same non-zero ID hold the
// same verbs and points.
package pathdata
