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
	"math"

	"github.com/ctessum/geom"
)

// interiorAngle returns the angle at vertex b between the vectors b→a
// and b→c, in degrees in the range [0, 180]. A straight line through b
// gives 180; a full reversal gives 0. If either edge has zero length
// the angle is degenerate and 0 is returned.
func interiorAngle(a, b, c geom.Point) float64 {
	ux, uy := a.X-b.X, a.Y-b.Y
	vx, vy := c.X-b.X, c.Y-b.Y
	nu := math.Hypot(ux, uy)
	nv := math.Hypot(vx, vy)
	if nu == 0 || nv == 0 {
		return 0
	}
	cos := (ux*vx + uy*vy) / (nu * nv)
	// Guard against floating-point drift outside acos's domain.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

func distance(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// isSpike reports whether the vertex cur, with neighbors prev and next,
// is a spike under the configured thresholds. A vertex coincident with
// either neighbor contributes no shape and counts as a spike. An
// angle-flagged vertex additionally passes the distance test (when one
// is configured) only if it is within the distance threshold of both
// neighbors; a sharp but large-scale feature is not a spike.
func (c Config) isSpike(prev, cur, next geom.Point) bool {
	dPrev := distance(cur, prev)
	dNext := distance(cur, next)
	if dPrev == 0 || dNext == 0 {
		return true
	}
	if interiorAngle(prev, cur, next) >= c.Angle {
		return false
	}
	if c.Distance <= 0 {
		return true
	}
	return dPrev <= c.Distance && dNext <= c.Distance
}
