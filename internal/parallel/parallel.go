// Package parallel provides the chunked parallel loops used by the CPU backend.
package parallel

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on the number of physical cores,
// falling back to the logical CPU count when cpuid can't detect it.
func DefaultConfig() Config {
	n := cpuid.CPU.PhysicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Describe returns a one-line description of the host CPU, e.g.
// "AMD EPYC 7B13 (8 cores, AVX2)".
func Describe() string {
	simd := "no AVX"
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ):
		simd = "AVX512"
	case cpuid.CPU.Supports(cpuid.AVX2):
		simd = "AVX2"
	case cpuid.CPU.Supports(cpuid.AVX):
		simd = "AVX"
	}
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = runtime.GOARCH
	}
	cores := cpuid.CPU.PhysicalCores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	return fmt.Sprintf("%s (%d cores, %s)", brand, cores, simd)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize || cfg.NumWorkers <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// ForRows runs f over row ranges [start, end) of a rows x cols workload,
// splitting by rows so each goroutine touches a contiguous block.
func ForRows(rows, cols int, f func(start, end int), cfg Config) {
	if !cfg.Enabled || rows*cols < cfg.MinChunkSize*cfg.MinChunkSize || rows < 2 || cfg.NumWorkers <= 1 {
		f(0, rows)
		return
	}

	var g errgroup.Group
	chunk := (rows + cfg.NumWorkers - 1) / cfg.NumWorkers
	for start := 0; start < rows; start += chunk {
		end := min(start+chunk, rows)
		g.Go(func() error {
			f(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
