package report

import (
	"bufio"
	"io"
	"strconv"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/dataset"
)

// Report is the serializable outcome of a run.
type Report struct {
	SeedKeys     []int64     `json:"seed_keys"`
	SeedIndices  []int       `json:"seed_indices"`
	Centroids    [][]float64 `json:"centroids"`
	Iterations   int         `json:"iterations"`
	Converged    bool        `json:"converged"`
	Inertia      float64     `json:"inertia"`
	ClusterSizes []int       `json:"cluster_sizes"`
	Members      [][]int64   `json:"members,omitempty"`
}

// New builds a Report from res. When withMembers is set the keys of every
// cluster's points are included.
func New(res *kmeanspp.Result, ps *dataset.PointSet, withMembers bool) *Report {
	rep := &Report{
		SeedKeys:     res.SeedKeys,
		SeedIndices:  res.SeedIndices,
		Centroids:    res.Centroids(),
		Iterations:   res.Iterations,
		Converged:    res.Converged,
		Inertia:      res.Inertia,
		ClusterSizes: make([]int, len(res.Clusters)),
	}
	for c := range res.Clusters {
		rep.ClusterSizes[c] = res.Clusters[c].Size()
	}
	if withMembers {
		rep.Members = make([][]int64, len(res.Clusters))
		for c := range res.Clusters {
			rep.Members[c] = res.Clusters[c].Keys(ps)
		}
	}
	return rep
}

// WriteText writes the seed keys and the centroids at four decimals.
func WriteText(w io.Writer, rep *Report) error {
	bw := bufio.NewWriter(w)
	var buf []byte

	for i, key := range rep.SeedKeys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, key, 10)
	}
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for _, centroid := range rep.Centroids {
		buf = buf[:0]
		for j, v := range centroid {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendFloat(buf, v, 'f', 4, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteJSON encodes rep with c, or codec.Default when c is nil.
func WriteJSON(w io.Writer, rep *Report, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(rep)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadJSON decodes a report written by WriteJSON.
func ReadJSON(data []byte, c codec.Codec) (*Report, error) {
	if c == nil {
		c = codec.Default
	}
	rep := &Report{}
	if err := c.Unmarshal(data, rep); err != nil {
		return nil, err
	}
	return rep, nil
}
