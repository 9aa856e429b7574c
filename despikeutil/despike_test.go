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

package despikeutil

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/spatialmodel/despike"
)

const testInput = `{"type": "FeatureCollection", "features": [
	{"type": "Feature", "properties": {"name": "spiky"}, "geometry":
		{"type": "LineString", "coordinates": [[0,0],[1,100],[2,0]]}}
]}`

func writeTestInput(t *testing.T, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	fmt.Fprint(f, testInput)
}

func TestClean(t *testing.T) {
	const (
		input  = "tmp_clean_in.geojson"
		output = "tmp_clean_out.geojson"
	)
	writeTestInput(t, input)
	defer os.Remove(input)
	defer os.Remove(output)

	if err := Clean(input, output, despike.Config{Angle: 5}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ds, err := despike.ReadGeoJSON(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Rows) != 1 {
		t.Fatalf("have %d rows, want 1", len(ds.Rows))
	}
	want := geom.LineString{geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}}
	if !reflect.DeepEqual(ds.Rows[0].Geom, want) {
		t.Errorf("have %v, want %v", ds.Rows[0].Geom, want)
	}
	if ds.Rows[0].Fields["name"] != "spiky" {
		t.Errorf("have fields %v, want name=spiky", ds.Rows[0].Fields)
	}
}

func TestCleanUnsupportedExtension(t *testing.T) {
	if err := Clean("input.csv", "output.geojson", despike.Config{Angle: 5}); err == nil {
		t.Error("expected an error for a .csv input file")
	}
	const input = "tmp_ext_in.geojson"
	writeTestInput(t, input)
	defer os.Remove(input)
	if err := Clean(input, "output.csv", despike.Config{Angle: 5}); err == nil {
		t.Error("expected an error for a .csv output file")
	}
}

func TestCleanCmd(t *testing.T) {
	const (
		input  = "tmp_cmd_in.geojson"
		output = "tmp_cmd_out.geojson"
	)
	writeTestInput(t, input)
	defer os.Remove(input)
	defer os.Remove(output)

	Cfg.Set("input", input)
	Cfg.Set("output", output)
	Cfg.Set("angle", 5.0)
	Root.SetArgs([]string{"clean"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatal(err)
	}
}

func TestCleanCmdMissingInput(t *testing.T) {
	Cfg.Set("input", "")
	Cfg.Set("output", "out.geojson")
	Root.SetArgs([]string{"clean"})
	Root.SetOutput(new(bytes.Buffer))
	if err := Root.Execute(); err == nil {
		t.Error("expected an error when no input file is given")
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), despike.Version) {
		t.Errorf("output %q does not contain version %s", buf.String(), despike.Version)
	}
}

func TestOptionDefaults(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"input", ""},
		{"output", ""},
		{"angle", "1"},
		{"distance", "0"},
		{"max-passes", "1"},
		{"skip-invalid", "false"},
	}
	for _, test := range tests {
		flag := cleanCmd.Flags().Lookup(test.name)
		if flag == nil {
			t.Errorf("%s: flag not registered", test.name)
			continue
		}
		if flag.DefValue != test.want {
			t.Errorf("%s: have default %q, want %q", test.name, flag.DefValue, test.want)
		}
	}
}
