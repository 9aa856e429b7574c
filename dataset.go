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
	"runtime"
	"sync"

	"github.com/ctessum/geom"
)

// A Row is one feature of a dataset: its attribute fields plus its
// geometry. Fields are passed through filtering untouched.
type Row struct {
	Fields map[string]string
	Geom   geom.Geom
}

// A RowError reports a failure to process one row of a dataset.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("despike: row %d: %v", e.Row, e.Err)
}

// Rows removes spikes from the geometry of each row, returning a new
// slice in the original row order with all attribute fields unchanged.
// Rows are independent, so they are processed in parallel. Rows with a
// nil geometry pass through unmodified.
//
// When c.SkipInvalid is true, rows that fail pass through unchanged
// and their errors are returned in the second return value; otherwise
// the first failure aborts the run.
func Rows(rows []Row, c Config) ([]Row, []*RowError, error) {
	if err := c.valid(); err != nil {
		return nil, nil, err
	}

	out := make([]Row, len(rows))
	errs := make([]error, len(rows))

	rowChan := make(chan int)
	var wg sync.WaitGroup
	nprocs := runtime.GOMAXPROCS(-1)
	for p := 0; p < nprocs; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rowChan {
				r := rows[i]
				if r.Geom == nil {
					out[i] = r
					continue
				}
				g, err := c.geom(r.Geom)
				if err != nil {
					out[i] = r
					errs[i] = err
					continue
				}
				out[i] = Row{Fields: r.Fields, Geom: g}
			}
		}()
	}
	for i := range rows {
		rowChan <- i
	}
	close(rowChan)
	wg.Wait()

	var rowErrs []*RowError
	for i, err := range errs {
		if err == nil {
			continue
		}
		if !c.SkipInvalid {
			return nil, nil, &RowError{Row: i, Err: err}
		}
		rowErrs = append(rowErrs, &RowError{Row: i, Err: err})
	}
	return out, rowErrs, nil
}
