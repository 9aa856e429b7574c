/*
Copyright © 2026 the Despike authors.
This file is part of Despike.

Despike is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Despike is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Despike.  If not, see <http://www.gnu.org/licenses/>.
*/

package despike

import (
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestRows(t *testing.T) {
	cfg := Config{Angle: 5}
	in := []Row{
		{Fields: map[string]string{"name": "line"}, Geom: spikyLine},
		{Fields: map[string]string{"name": "poly"}, Geom: geom.Polygon{spikyRing}},
		{Fields: map[string]string{"name": "none"}, Geom: nil},
		{Fields: map[string]string{"name": "ok"}, Geom: cleanLine},
	}
	out, rowErrs, err := Rows(in, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	want := []Row{
		{Fields: map[string]string{"name": "line"}, Geom: cleanLine},
		{Fields: map[string]string{"name": "poly"}, Geom: geom.Polygon{cleanRing}},
		{Fields: map[string]string{"name": "none"}, Geom: nil},
		{Fields: map[string]string{"name": "ok"}, Geom: cleanLine},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("have %v, want %v", out, want)
	}
}

// TestRowsMatchGeom checks that batch processing gives the same result
// as filtering each row's geometry on its own.
func TestRowsMatchGeom(t *testing.T) {
	cfg := Config{Angle: 5, Distance: 150}
	in := []Row{
		{Geom: spikyLine},
		{Geom: geom.MultiPolygon{{spikyRing}, {squareRing}}},
		{Geom: geom.MultiLineString{spikyLine, cleanLine}},
	}
	out, _, err := Rows(in, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range in {
		want, err := Geom(r.Geom, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(out[i].Geom, want) {
			t.Errorf("row %d: have %v, want %v", i, out[i].Geom, want)
		}
	}
}

func TestRowsUnsupported(t *testing.T) {
	in := []Row{
		{Fields: map[string]string{"name": "line"}, Geom: spikyLine},
		{Fields: map[string]string{"name": "pt"}, Geom: geom.Point{X: 1, Y: 2}},
	}

	// By default the first failure aborts the run.
	_, _, err := Rows(in, Config{Angle: 5})
	rowErr, ok := err.(*RowError)
	if !ok {
		t.Fatalf("have error %v of type %T, want *RowError", err, err)
	}
	if rowErr.Row != 1 {
		t.Errorf("have row %d, want 1", rowErr.Row)
	}
	if _, ok := rowErr.Err.(UnsupportedGeometryError); !ok {
		t.Errorf("have cause %T, want UnsupportedGeometryError", rowErr.Err)
	}

	// With SkipInvalid the failing row passes through unchanged and its
	// error is reported alongside the result.
	out, rowErrs, err := Rows(in, Config{Angle: 5, SkipInvalid: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(rowErrs) != 1 || rowErrs[0].Row != 1 {
		t.Fatalf("have row errors %v, want one error for row 1", rowErrs)
	}
	if !reflect.DeepEqual(out[0].Geom, cleanLine) {
		t.Errorf("row 0: have %v, want %v", out[0].Geom, cleanLine)
	}
	if !reflect.DeepEqual(out[1], in[1]) {
		t.Errorf("row 1 should pass through unchanged; have %v", out[1])
	}
}

func TestRowsInvalidConfig(t *testing.T) {
	if _, _, err := Rows([]Row{{Geom: spikyLine}}, Config{Angle: -1}); err == nil {
		t.Error("expected an error for a negative angle threshold")
	}
}

func TestRowsEmpty(t *testing.T) {
	out, rowErrs, err := Rows(nil, Config{Angle: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 || len(rowErrs) != 0 {
		t.Errorf("have %v, %v; want empty results", out, rowErrs)
	}
}
