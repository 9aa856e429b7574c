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
	"fmt"

	"github.com/ctessum/geom"
)

// UnsupportedGeometryError is returned when a geometry variant cannot
// be decomposed into rings, such as a point.
type UnsupportedGeometryError struct {
	Geom geom.Geom
}

func (e UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("despike: unsupported geometry type %T", e.Geom)
}

// RingError reports a ring that violates its minimum vertex count.
type RingError struct {
	Vertices int
	Min      int
	Closed   bool
}

func (e *RingError) Error() string {
	kind := "open"
	if e.Closed {
		kind = "closed"
	}
	return fmt.Sprintf("despike: %s ring has %d vertices; at least %d are required",
		kind, e.Vertices, e.Min)
}

// Geom returns a copy of g with spike vertices removed from each of its
// rings. Line endpoints and polygon ring closures are preserved, as is
// the ordering of parts in multi-part geometries and the role of each
// polygon ring as boundary or hole. Supported types are LineString,
// MultiLineString, Polygon, MultiPolygon, and GeometryCollection;
// anything else returns an UnsupportedGeometryError.
func Geom(g geom.Geom, c Config) (geom.Geom, error) {
	if err := c.valid(); err != nil {
		return nil, err
	}
	return c.geom(g)
}

func (c Config) geom(g geom.Geom) (geom.Geom, error) {
	switch g := g.(type) {
	case geom.LineString:
		if len(g) == 0 {
			return g, nil
		}
		out := c.filterRing(g, false)
		if err := validRing(out, false); err != nil {
			return nil, err
		}
		return geom.LineString(out), nil
	case geom.MultiLineString:
		out := make(geom.MultiLineString, len(g))
		for i, l := range g {
			ol, err := c.geom(l)
			if err != nil {
				return nil, err
			}
			out[i] = ol.(geom.LineString)
		}
		return out, nil
	case geom.Polygon:
		out := make(geom.Polygon, len(g))
		for i, r := range g {
			if len(r) == 0 {
				out[i] = r
				continue
			}
			or := c.filterRing(r, true)
			if err := validRing(or, true); err != nil {
				return nil, err
			}
			out[i] = or
		}
		return out, nil
	case geom.MultiPolygon:
		out := make(geom.MultiPolygon, len(g))
		for i, p := range g {
			op, err := c.geom(p)
			if err != nil {
				return nil, err
			}
			out[i] = op.(geom.Polygon)
		}
		return out, nil
	case geom.GeometryCollection:
		out := make(geom.GeometryCollection, len(g))
		for i, gg := range g {
			var err error
			if out[i], err = c.geom(gg); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, UnsupportedGeometryError{Geom: g}
	}
}

// NumVertices returns the total number of stored coordinates in g,
// counting repeated ring closures. Unrecognized geometry types count
// as zero.
func NumVertices(g geom.Geom) int {
	var n int
	switch g := g.(type) {
	case geom.LineString:
		n = len(g)
	case geom.MultiLineString:
		for _, l := range g {
			n += len(l)
		}
	case geom.Polygon:
		for _, r := range g {
			n += len(r)
		}
	case geom.MultiPolygon:
		for _, p := range g {
			n += NumVertices(p)
		}
	case geom.GeometryCollection:
		for _, gg := range g {
			n += NumVertices(gg)
		}
	}
	return n
}
