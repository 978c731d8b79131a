package cpu

import (
	"github.com/born-ml/keras/internal/tensor"
)

// computeBroadcastStridesForShape computes strides for reading inShape as if it
// had outShape. Broadcast and padded dimensions get stride 0.
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(inShape)
	origStrides := inShape.ComputeStrides()

	for i := range outShape {
		inIdx := i - offset
		if inIdx < 0 || inShape[inIdx] == 1 {
			continue
		}
		strides[i] = origStrides[inIdx]
	}
	return strides
}

// computeFlatIndex maps a flat output index to the flat index of a broadcast input.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i, s := range outStrides {
		coord := outIdx / s
		outIdx %= s
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}
