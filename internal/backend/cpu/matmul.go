package cpu

import (
	"github.com/born-ml/keras/internal/parallel"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Rows of the output are computed in parallel.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		exceptions.Panicf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		exceptions.Panicf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n)
	}

	result := newResult("matmul", tensor.Shape{m, n}, a.Device())
	c, aData, bData := result.Data(), a.Data(), b.Data()

	parallel.ForRows(m, n*k, func(start, end int) {
		matmulRows(c, aData, bData, start, end, k, n)
	}, cpu.par)
	return result
}

// matmulRows computes rows [start, end) of C = A @ B using the i-k-j loop order,
// which walks B and C row-wise.
func matmulRows(c, a, b []float32, start, end, k, n int) {
	for i := start; i < end; i++ {
		cRow := c[i*n : (i+1)*n]
		for kIdx := 0; kIdx < k; kIdx++ {
			aVal := a[i*k+kIdx]
			if aVal == 0 {
				continue
			}
			bRow := b[kIdx*n : (kIdx+1)*n]
			for j, bVal := range bRow {
				cRow[j] += aVal * bVal
			}
		}
	}
}
