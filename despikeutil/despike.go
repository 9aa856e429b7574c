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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/despike"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// Clean reads the geometries in the input file, removes their spike
// vertices according to cfg, and writes the result to the output file.
// The file formats are chosen by the file extensions.
func Clean(input, output string, cfg despike.Config) error {
	ds, err := read(input)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"file":     input,
		"features": len(ds.Rows),
	}).Info("cleaning geometries")

	before := countVertices(ds.Rows)
	rows, rowErrs, err := despike.Rows(ds.Rows, cfg)
	if err != nil {
		return err
	}
	for _, e := range rowErrs {
		logger.WithField("row", e.Row).Warnf("skipping row: %v", e.Err)
	}
	ds.Rows = rows

	logger.WithFields(logrus.Fields{
		"file":    output,
		"removed": before - countVertices(ds.Rows),
		"skipped": len(rowErrs),
	}).Info("writing cleaned geometries")
	return write(ds, output)
}

func read(filename string) (*despike.Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".shp":
		return despike.ReadShapefile(filename)
	case ".geojson", ".json":
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("despike: opening %s: %v", filename, err)
		}
		defer f.Close()
		return despike.ReadGeoJSON(f)
	default:
		return nil, fmt.Errorf("despike: unsupported input file extension %q", ext)
	}
}

func write(ds *despike.Dataset, filename string) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".shp":
		return ds.WriteShapefile(filename)
	case ".geojson", ".json":
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("despike: creating %s: %v", filename, err)
		}
		defer f.Close()
		return ds.WriteGeoJSON(f)
	default:
		return fmt.Errorf("despike: unsupported output file extension %q", ext)
	}
}

func countVertices(rows []despike.Row) int {
	var n int
	for _, r := range rows {
		n += despike.NumVertices(r.Geom)
	}
	return n
}
