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

// Package despike removes spike vertices from vector geometries.
//
// A spike is a vertex where the interior angle between the edges to its
// two neighbors is sharper than a configured threshold. Spikes are a
// common artifact of digitization errors and GPS noise. Despike walks
// each ring of a geometry once from left to right, dropping spike
// vertices while preserving ring closure, vertex order, and the minimum
// vertex counts that keep the geometry valid.
package despike

import "fmt"

// Version gives the version number of this version of Despike.
const Version = "0.1.0"

// Config holds the thresholds that define a spike, plus run policy.
type Config struct {
	// Angle is the interior angle threshold in degrees. A vertex whose
	// interior angle is strictly less than Angle is flagged as a spike.
	// Must be greater than 0 and less than 180.
	Angle float64

	// Distance is an optional length threshold in the coordinate units
	// of the data. When greater than zero, an angle-flagged vertex is
	// only removed if its distances to both neighbors are less than or
	// equal to Distance; sharp but large-scale features are kept. A
	// value of zero or less disables the distance test.
	Distance float64

	// MaxPasses is the maximum number of filter passes over each ring.
	// Values less than 2 mean a single pass. With more than one pass,
	// filtering repeats until a pass removes nothing or MaxPasses is
	// reached; removing a vertex changes the angle context of its
	// former neighbors, so a second pass can remove vertices the first
	// pass created as artifacts.
	MaxPasses int

	// SkipInvalid determines what happens when a row of a dataset
	// cannot be processed, for example because its geometry type is
	// unsupported. If true, the row passes through unchanged and the
	// error is reported alongside the results; if false, the first
	// such error aborts the run.
	SkipInvalid bool
}

// valid checks the thresholds before any geometry is touched.
func (c Config) valid() error {
	if !(c.Angle > 0 && c.Angle < 180) {
		return fmt.Errorf("despike: angle threshold must be greater than 0 and less than 180 degrees; got %g", c.Angle)
	}
	if c.Distance < 0 {
		return fmt.Errorf("despike: distance threshold must not be negative; got %g", c.Distance)
	}
	return nil
}
