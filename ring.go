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

import "github.com/ctessum/geom"

// Minimum vertex counts for a valid ring, not counting a repeated
// closing coordinate.
const (
	minOpenVertices   = 2 // a line segment
	minClosedVertices = 3 // a triangle
)

// filterRing removes spike vertices from a ring, running up to
// c.MaxPasses filter passes until a pass removes nothing.
func (c Config) filterRing(ring []geom.Point, closed bool) []geom.Point {
	passes := c.MaxPasses
	if passes < 1 {
		passes = 1
	}
	out := ring
	for p := 0; p < passes; p++ {
		var removed int
		out, removed = c.filterPass(out, closed)
		if removed == 0 {
			break
		}
	}
	return out
}

// filterPass makes a single left-to-right pass over the ring, deciding
// each interior vertex against the most recently kept vertex on its
// left and the next original vertex on its right. Decisions read from
// the output accumulator, so removing a vertex changes the angle
// context seen by the following candidate; there is no re-evaluation
// within a pass.
func (c Config) filterPass(ring []geom.Point, closed bool) ([]geom.Point, int) {
	if closed {
		return c.filterClosed(ring)
	}
	return c.filterOpen(ring)
}

// filterOpen filters an open ring. The two endpoints define the line's
// extent and are never candidates for removal.
func (c Config) filterOpen(ring []geom.Point) ([]geom.Point, int) {
	if len(ring) < 3 {
		return append([]geom.Point(nil), ring...), 0
	}
	out := make([]geom.Point, 1, len(ring))
	out[0] = ring[0]
	removed := 0
	for i := 1; i < len(ring)-1; i++ {
		// Forcibly keep the candidate if removing it would drop the
		// ring below its minimum vertex count.
		if len(out)+len(ring)-1-i < minOpenVertices {
			out = append(out, ring[i])
			continue
		}
		if c.isSpike(out[len(out)-1], ring[i], ring[i+1]) {
			removed++
			continue
		}
		out = append(out, ring[i])
	}
	out = append(out, ring[len(ring)-1])
	return out, removed
}

// filterClosed filters a closed ring. The shared first/last coordinate
// is one conceptual vertex with wrap-around adjacency; it is never a
// candidate for removal, and closure is re-asserted after the pass. A
// ring may arrive with or without an explicit repeated closing
// coordinate; the stored convention is preserved in the output.
func (c Config) filterClosed(ring []geom.Point) ([]geom.Point, int) {
	explicit := len(ring) > 1 && ring[0] == ring[len(ring)-1]
	pts := ring
	if explicit {
		pts = ring[:len(ring)-1]
	}
	if len(pts) <= minClosedVertices {
		// Already at the minimum; removing anything would degenerate
		// the ring.
		return append([]geom.Point(nil), ring...), 0
	}
	out := make([]geom.Point, 1, len(pts))
	out[0] = pts[0]
	removed := 0
	for i := 1; i < len(pts); i++ {
		next := pts[0] // the last vertex wraps to the closure vertex
		if i < len(pts)-1 {
			next = pts[i+1]
		}
		if len(out)+len(pts)-1-i < minClosedVertices {
			out = append(out, pts[i])
			continue
		}
		if c.isSpike(out[len(out)-1], pts[i], next) {
			removed++
			continue
		}
		out = append(out, pts[i])
	}
	if explicit {
		out = append(out, out[0])
	}
	return out, removed
}

// validRing checks the minimum-vertex invariant on a filtered ring.
// The filter's stop condition makes a violation unreachable through
// normal filtering, so a failure here means the input ring was already
// degenerate or an invariant has been broken.
func validRing(ring []geom.Point, closed bool) error {
	n := len(ring)
	if closed && n > 1 && ring[0] == ring[n-1] {
		n--
	}
	min := minOpenVertices
	if closed {
		min = minClosedVertices
	}
	if n < min {
		return &RingError{Vertices: n, Min: min, Closed: closed}
	}
	return nil
}
