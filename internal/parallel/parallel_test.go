package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	var counter int64
	n := 1000
	seen := make([]int32, n)

	For(n, func(i int) {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
	for i, v := range seen {
		assert.Equal(t, int32(1), v, "index %d visited %d times", i, v)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, cfg)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_SmallChunk(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1
	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestForRows_CoversAllRows(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 2}
	rows, cols := 10, 10
	hits := make([]int32, rows)

	ForRows(rows, cols, func(start, end int) {
		for r := start; r < end; r++ {
			atomic.AddInt32(&hits[r], 1)
		}
	}, cfg)

	for r, h := range hits {
		assert.Equal(t, int32(1), h, "row %d", r)
	}
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, Describe(), "cores")
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	data := make([]float32, 1<<16)
	for i := 0; i < b.N; i++ {
		For(len(data), func(j int) {
			data[j] = data[j]*0.5 + 1
		}, cfg)
	}
}
