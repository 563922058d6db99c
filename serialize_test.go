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
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestRoundTrip(t *testing.T) {
	ref := CreateEmpty()
	defer func() { ref.Unref() }()

	ed := NewEditor(&ref, 4, 5)
	copy(ed.GrowForVerb(VerbMove), []vec.Vec2{{X: 0, Y: 0}})
	copy(ed.GrowForConic(math.Sqrt2/2), []vec.Vec2{{X: 1, Y: 0}, {X: 1, Y: 1}})
	copy(ed.GrowForVerb(VerbLine), []vec.Vec2{{X: 0, Y: 1}})
	ed.GrowForVerb(VerbClose)
	ed.Close()

	data := ref.AppendBinary(nil)
	if len(data) != ref.SerializedSize() {
		t.Fatalf("wrote %d bytes, SerializedSize = %d", len(data), ref.SerializedSize())
	}

	got, n, err := FromBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Unref()
	if n != len(data) {
		t.Errorf("consumed %d of %d bytes", n, len(data))
	}
	got.validate()

	if !got.Equals(ref) {
		t.Error("round trip changed the contents")
	}
	if !got.HasComputedBounds() {
		t.Error("bounds cache dirty after read")
	}
	if got.Bounds() != ref.Bounds() {
		t.Errorf("bounds %v, want %v", got.Bounds(), ref.Bounds())
	}
	if !got.IsFinite() {
		t.Error("IsFinite = false after round trip")
	}
}

func TestRoundTripEmpty(t *testing.T) {
	ref := CreateEmpty()
	defer func() { ref.Unref() }()

	data := ref.AppendBinary(nil)
	got, _, err := FromBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Unref()
	got.validate()

	if got.CountVerbs() != 0 || got.CountPoints() != 0 {
		t.Error("empty round trip produced content")
	}
	if id := got.GenID(); id != emptyGenID {
		t.Errorf("genID = %d, want %d", id, emptyGenID)
	}
}

func TestAppendBinaryToPrefix(t *testing.T) {
	ref := CreateEmpty()
	defer func() { ref.Unref() }()
	buildPath(t, &ref, []Verb{VerbMove, VerbLine},
		[]vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}})

	prefix := []byte("header")
	data := ref.AppendBinary(prefix)
	if string(data[:len(prefix)]) != "header" {
		t.Fatal("AppendBinary clobbered the prefix")
	}

	got, n, err := FromBytes(data[len(prefix):])
	if err != nil {
		t.Fatal(err)
	}
	defer got.Unref()
	if n != len(data)-len(prefix) {
		t.Errorf("consumed %d bytes, want %d", n, len(data)-len(prefix))
	}
	if !got.Equals(ref) {
		t.Error("round trip with prefix changed the contents")
	}
}

func TestSerializeNonFinite(t *testing.T) {
	ref := CreateEmpty()
	defer func() { ref.Unref() }()
	buildPath(t, &ref,
		[]Verb{VerbMove, VerbLine},
		[]vec.Vec2{{X: math.NaN(), Y: 0}, {X: 1, Y: 1}})

	got, _, err := FromBytes(ref.AppendBinary(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer got.Unref()

	if !got.HasComputedBounds() {
		t.Fatal("bounds cache dirty after read")
	}
	if got.IsFinite() {
		t.Error("finite flag not restored from the header bit")
	}
	if got.Bounds() != (rect.Rect{}) {
		t.Errorf("bounds = %v, want empty", got.Bounds())
	}
	if !got.Equals(ref) {
		t.Error("NaN coordinates did not survive the round trip")
	}
}

func TestFromBytesTruncated(t *testing.T) {
	ref := CreateEmpty()
	defer func() { ref.Unref() }()
	buildPath(t, &ref, []Verb{VerbMove}, []vec.Vec2{{X: 1, Y: 2}})

	data := ref.AppendBinary(nil)
	for _, n := range []int{0, 4, 19, len(data) - 1} {
		if _, _, err := FromBytes(data[:n]); !errors.Is(err, ErrCorrupt) {
			t.Errorf("FromBytes with %d bytes: err = %v, want ErrCorrupt", n, err)
		}
	}
}

func TestFromBytesWeightMismatch(t *testing.T) {
	ref := CreateEmpty()
	defer func() { ref.Unref() }()

	ed := NewEditor(&ref, 2, 3)
	copy(ed.GrowForVerb(VerbMove), []vec.Vec2{{X: 0, Y: 0}})
	copy(ed.GrowForConic(0.5), []vec.Vec2{{X: 1, Y: 0}, {X: 1, Y: 1}})
	ed.Close()

	data := ref.AppendBinary(nil)
	// Claim zero weights while a conic verb is present.
	binary.LittleEndian.PutUint32(data[12:], 0)
	if _, _, err := FromBytes(data); !errors.Is(err, ErrCorrupt) {
		t.Errorf("weight count mismatch: err = %v, want ErrCorrupt", err)
	}
}

func TestFromBytesInvertedBounds(t *testing.T) {
	ref := CreateEmpty()
	defer func() { ref.Unref() }()
	buildPath(t, &ref, []Verb{VerbMove, VerbLine},
		[]vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}})

	data := ref.AppendBinary(nil)
	// Swap LLx and URx in the trailing bounds rectangle.
	llxOff := len(data) - 32
	urxOff := len(data) - 16
	llx := binary.LittleEndian.Uint64(data[llxOff:])
	urx := binary.LittleEndian.Uint64(data[urxOff:])
	binary.LittleEndian.PutUint64(data[llxOff:], urx)
	binary.LittleEndian.PutUint64(data[urxOff:], llx)

	if _, _, err := FromBytes(data); !errors.Is(err, ErrCorrupt) {
		t.Errorf("inverted bounds: err = %v, want ErrCorrupt", err)
	}
}
