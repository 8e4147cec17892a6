package dataset

import (
	"cmp"
	"slices"
)

// Join inner-joins left and right on their keys.
//
// Rows whose key is missing from either table are dropped. Each point is the
// left features followed by the right features, and the result is ordered
// ascending by key. A key repeated within either table is an error.
func Join(left, right *Table) (*PointSet, error) {
	rightIndex, err := indexKeys(right)
	if err != nil {
		return nil, err
	}
	if _, err := indexKeys(left); err != nil {
		return nil, err
	}

	type pair struct {
		key   int64
		left  int
		right int
	}

	pairs := make([]pair, 0, min(left.Len(), right.Len()))
	for i, key := range left.Keys {
		if j, ok := rightIndex[key]; ok {
			pairs = append(pairs, pair{key: key, left: i, right: j})
		}
	}
	slices.SortFunc(pairs, func(a, b pair) int { return cmp.Compare(a.key, b.key) })

	keys := make([]int64, len(pairs))
	points := make([][]float64, len(pairs))
	dim := left.Width() + right.Width()
	// One backing array keeps the points contiguous.
	backing := make([]float64, len(pairs)*dim)
	for i, p := range pairs {
		keys[i] = p.key
		pt := backing[i*dim : (i+1)*dim : (i+1)*dim]
		n := copy(pt, left.Rows[p.left])
		copy(pt[n:], right.Rows[p.right])
		points[i] = pt
	}

	return NewPointSet(keys, points)
}

func indexKeys(t *Table) (map[int64]int, error) {
	idx := make(map[int64]int, t.Len())
	for i, key := range t.Keys {
		if _, dup := idx[key]; dup {
			return nil, &ErrDuplicateKey{Key: key}
		}
		idx[key] = i
	}
	return idx, nil
}
