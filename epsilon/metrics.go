// SPDX-License-Identifier: MIT

package epsilon

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
)

// Disagreements returns, per member, a 0/1 vector over the rows of ds that
// marks where the member's prediction differs from the baseline's.
func Disagreements[M linear.Model](baseline M, members []M, ds *dataset.Dataset) ([][]float64, error) {
	n := ds.Len()
	ref := make([]bool, n)
	for i := 0; i < n; i++ {
		p, err := baseline.Predict(ds.PointView(i))
		if err != nil {
			return nil, err
		}
		ref[i] = p
	}

	out := make([][]float64, len(members))
	for k, m := range members {
		out[k] = make([]float64, n)
		for i := 0; i < n; i++ {
			p, err := m.Predict(ds.PointView(i))
			if err != nil {
				return nil, err
			}
			if p != ref[i] {
				out[k][i] = 1
			}
		}
	}

	return out, nil
}

// Ambiguity is the share of rows on which at least one member disagrees
// with the baseline. Zero for an empty dataset or member list.
func Ambiguity[M linear.Model](baseline M, members []M, ds *dataset.Dataset) (float64, error) {
	if ds.Len() == 0 || len(members) == 0 {
		return 0, nil
	}
	dis, err := Disagreements(baseline, members, ds)
	if err != nil {
		return 0, err
	}
	hit := make([]float64, ds.Len())
	for _, row := range dis {
		floats.Add(hit, row)
	}
	for i, v := range hit {
		if v > 0 {
			hit[i] = 1
		}
	}

	return stat.Mean(hit, nil), nil
}

// Discrepancy is the largest share of rows on which a single member
// disagrees with the baseline. Zero for an empty dataset or member list.
func Discrepancy[M linear.Model](baseline M, members []M, ds *dataset.Dataset) (float64, error) {
	if ds.Len() == 0 || len(members) == 0 {
		return 0, nil
	}
	dis, err := Disagreements(baseline, members, ds)
	if err != nil {
		return 0, err
	}
	shares := make([]float64, len(dis))
	for k, row := range dis {
		shares[k] = stat.Mean(row, nil)
	}

	return floats.Max(shares), nil
}
