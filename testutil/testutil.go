package testutil

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformPoints generates random points with coordinates in [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)

	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}

	return points
}

// Blobs generates perCenter points around each of centers random centers.
// Centers are spaced 10 units apart along every axis, so blobs with a small
// spread do not overlap. Points are emitted center by center.
func (r *RNG) Blobs(centers, perCenter, dim int, spread float64) ([][]float64, [][]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cs := make([][]float64, centers)
	for c := range cs {
		cs[c] = make([]float64, dim)
		for j := range cs[c] {
			cs[c][j] = float64(c)*10 + r.rand.Float64()
		}
	}

	points := make([][]float64, 0, centers*perCenter)
	for c := range cs {
		for range perCenter {
			p := make([]float64, dim)
			for j := range p {
				p[j] = cs[c][j] + r.rand.NormFloat64()*spread
			}
			points = append(points, p)
		}
	}

	return points, cs
}

// Sequence returns keys 0..n-1.
func Sequence(n int) []int64 {
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = int64(i)
	}
	return keys
}

// TableCSV renders keys and rows as a CSV table with a header row.
// The key column is written as a float (e.g. "3.0"), matching the files the
// command line tool is usually fed.
func TableCSV(keys []int64, rows [][]float64) string {
	var b strings.Builder

	b.WriteString("id")
	if len(rows) > 0 {
		for j := range rows[0] {
			b.WriteString(",x")
			b.WriteString(strconv.Itoa(j))
		}
	}
	b.WriteByte('\n')

	for i, key := range keys {
		b.WriteString(strconv.FormatFloat(float64(key), 'f', 1, 64))
		for _, v := range rows[i] {
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// Mean returns the componentwise arithmetic mean of points.
func Mean(points [][]float64) []float64 {
	if len(points) == 0 {
		return nil
	}
	mean := make([]float64, len(points[0]))
	for _, p := range points {
		for j, v := range p {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(points))
	}
	return mean
}
