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
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
	"github.com/spf13/cast"
)

// A Dataset holds the rows of a geospatial file together with enough
// of the file's metadata to write the rows back out without changing
// anything except the geometries.
type Dataset struct {
	Rows       []Row
	FieldNames []string

	// fields is the attribute schema of an input shapefile, reused on
	// output so attribute types and widths survive the round trip.
	fields []goshp.Field

	// projection holds the contents of an input shapefile's .prj file.
	// Despike never reprojects; the spatial reference is copied to the
	// output untouched.
	projection string

	// properties holds the original (typed) properties of input
	// GeoJSON features, reused on output.
	properties []map[string]interface{}
}

// ReadShapefile reads a shapefile into a Dataset, decoding every
// attribute column. The spatial reference in the accompanying .prj
// file, if there is one, is carried through to the output.
func ReadShapefile(filename string) (*Dataset, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("despike: opening shapefile %s: %v", filename, err)
	}
	defer d.Close()

	ds := new(Dataset)
	ds.fields = d.Reader.Fields()
	ds.FieldNames = make([]string, len(ds.fields))
	for i, f := range ds.fields {
		ds.FieldNames[i] = f.String()
	}
	for {
		g, fields, more := d.DecodeRowFields(ds.FieldNames...)
		if !more {
			break
		}
		// Attribute values come back padded to the DBF field width.
		for k, v := range fields {
			fields[k] = strings.Trim(v, "\x00 ")
		}
		ds.Rows = append(ds.Rows, Row{Fields: fields, Geom: g})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("despike: reading shapefile %s: %v", filename, err)
	}

	prj := strings.TrimSuffix(filename, ".shp") + ".prj"
	if b, err := ioutil.ReadFile(prj); err == nil {
		ds.projection = string(b)
	}
	return ds, nil
}

// WriteShapefile writes the dataset to a shapefile, preserving the
// attribute schema and spatial reference of the input.
func (ds *Dataset) WriteShapefile(filename string) error {
	t, err := ds.shapeType()
	if err != nil {
		return err
	}
	e, err := shp.NewEncoderFromFields(filename, t, ds.fieldSchema()...)
	if err != nil {
		return fmt.Errorf("despike: creating shapefile %s: %v", filename, err)
	}
	for i, r := range ds.Rows {
		vals := make([]interface{}, len(ds.FieldNames))
		for j, name := range ds.FieldNames {
			vals[j] = r.Fields[name]
		}
		if err := e.EncodeFields(shapefileGeom(r.Geom), vals...); err != nil {
			return fmt.Errorf("despike: writing row %d of %s: %v", i, filename, err)
		}
	}
	e.Close()

	if ds.projection != "" {
		prj := strings.TrimSuffix(filename, ".shp") + ".prj"
		f, err := os.Create(prj)
		if err != nil {
			return fmt.Errorf("despike: creating %s: %v", prj, err)
		}
		fmt.Fprint(f, ds.projection)
		f.Close()
	}
	return nil
}

// shapeType chooses the shapefile geometry type from the first non-nil
// geometry in the dataset.
func (ds *Dataset) shapeType() (goshp.ShapeType, error) {
	for _, r := range ds.Rows {
		switch r.Geom.(type) {
		case nil:
			continue
		case geom.Polygon, geom.MultiPolygon:
			return goshp.POLYGON, nil
		case geom.LineString, geom.MultiLineString:
			return goshp.POLYLINE, nil
		default:
			return goshp.NULL, UnsupportedGeometryError{Geom: r.Geom}
		}
	}
	return goshp.NULL, nil
}

// fieldSchema returns the attribute schema to write: the input
// shapefile's own schema when there is one, otherwise generic string
// fields for each field name.
func (ds *Dataset) fieldSchema() []goshp.Field {
	if ds.fields != nil {
		return ds.fields
	}
	fields := make([]goshp.Field, len(ds.FieldNames))
	for i, name := range ds.FieldNames {
		fields[i] = goshp.StringField(name, 50)
	}
	return fields
}

// shapefileGeom maps geometry variants onto what the shapefile format
// can store: lines become multi-part polylines and multipolygons
// become single multi-ring polygons.
func shapefileGeom(g geom.Geom) geom.Geom {
	switch g := g.(type) {
	case geom.LineString:
		return geom.MultiLineString{g}
	case geom.MultiPolygon:
		var p geom.Polygon
		for _, pp := range g {
			p = append(p, pp...)
		}
		return p
	}
	return g
}

// geojsonFeature and geojsonFeatureCollection mirror the GeoJSON
// Feature and FeatureCollection object structure.
type geojsonFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   *geojson.Geometry      `json:"geometry"`
}

type geojsonFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

// ReadGeoJSON reads a GeoJSON FeatureCollection into a Dataset.
// Feature properties are preserved for output; for filtering purposes
// they are also exposed as string fields on each Row.
func ReadGeoJSON(r io.Reader) (*Dataset, error) {
	var fc geojsonFeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("despike: decoding GeoJSON: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("despike: expected a GeoJSON FeatureCollection; got %q", fc.Type)
	}

	ds := new(Dataset)
	names := make(map[string]bool)
	for i, f := range fc.Features {
		var g geom.Geom
		if f.Geometry != nil {
			var err error
			g, err = fromGeoJSON(f.Geometry)
			if err != nil {
				return nil, fmt.Errorf("despike: feature %d: %v", i, err)
			}
		}
		fields := make(map[string]string, len(f.Properties))
		for k, v := range f.Properties {
			fields[k] = cast.ToString(v)
			names[k] = true
		}
		ds.Rows = append(ds.Rows, Row{Fields: fields, Geom: g})
		ds.properties = append(ds.properties, f.Properties)
	}
	for name := range names {
		ds.FieldNames = append(ds.FieldNames, name)
	}
	return ds, nil
}

// WriteGeoJSON writes the dataset as a GeoJSON FeatureCollection,
// reattaching the original typed properties of each feature.
func (ds *Dataset) WriteGeoJSON(w io.Writer) error {
	fc := geojsonFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geojsonFeature, len(ds.Rows)),
	}
	for i, r := range ds.Rows {
		var g *geojson.Geometry
		if r.Geom != nil {
			var err error
			g, err = toGeoJSON(r.Geom)
			if err != nil {
				return fmt.Errorf("despike: feature %d: %v", i, err)
			}
		}
		props := map[string]interface{}{}
		if ds.properties != nil {
			props = ds.properties[i]
		} else {
			for k, v := range r.Fields {
				props[k] = v
			}
		}
		fc.Features[i] = geojsonFeature{
			Type:       "Feature",
			Properties: props,
			Geometry:   g,
		}
	}
	return json.NewEncoder(w).Encode(fc)
}

// fromGeoJSON converts a decoded GeoJSON geometry object into a geom
// type, handling the multi-part types by decoding each part.
func fromGeoJSON(g *geojson.Geometry) (geom.Geom, error) {
	switch g.Type {
	case "MultiLineString":
		parts, ok := g.Coordinates.([]interface{})
		if !ok {
			return nil, fmt.Errorf("geojson: invalid MultiLineString coordinates")
		}
		out := make(geom.MultiLineString, len(parts))
		for i, part := range parts {
			gg, err := geojson.FromGeoJSON(&geojson.Geometry{Type: "LineString", Coordinates: part})
			if err != nil {
				return nil, err
			}
			out[i] = gg.(geom.LineString)
		}
		return out, nil
	case "MultiPolygon":
		parts, ok := g.Coordinates.([]interface{})
		if !ok {
			return nil, fmt.Errorf("geojson: invalid MultiPolygon coordinates")
		}
		out := make(geom.MultiPolygon, len(parts))
		for i, part := range parts {
			gg, err := geojson.FromGeoJSON(&geojson.Geometry{Type: "Polygon", Coordinates: part})
			if err != nil {
				return nil, err
			}
			out[i] = gg.(geom.Polygon)
		}
		return out, nil
	default:
		return geojson.FromGeoJSON(g)
	}
}

// toGeoJSON converts a geom type into a GeoJSON geometry object,
// handling the multi-part types by encoding each part.
func toGeoJSON(g geom.Geom) (*geojson.Geometry, error) {
	switch g := g.(type) {
	case geom.MultiLineString:
		coords := make([]interface{}, len(g))
		for i, l := range g {
			gg, err := geojson.ToGeoJSON(l)
			if err != nil {
				return nil, err
			}
			coords[i] = gg.Coordinates
		}
		return &geojson.Geometry{Type: "MultiLineString", Coordinates: coords}, nil
	case geom.MultiPolygon:
		coords := make([]interface{}, len(g))
		for i, p := range g {
			gg, err := geojson.ToGeoJSON(p)
			if err != nil {
				return nil, err
			}
			coords[i] = gg.Coordinates
		}
		return &geojson.Geometry{Type: "MultiPolygon", Coordinates: coords}, nil
	default:
		return geojson.ToGeoJSON(g)
	}
}
