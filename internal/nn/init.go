package nn

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/born-ml/keras/internal/tensor"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // weight initialization
)

// SetSeed reseeds the generator used for weight initialization and dropout
// masks, making model construction reproducible.
func SetSeed(seed int64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewSource(seed)) //nolint:gosec // weight initialization
}

// uniform fills data with values from U[lo, hi).
func uniform(data []float32, lo, hi float64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	for i := range data {
		data[i] = float32(lo + rng.Float64()*(hi-lo))
	}
}

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	t := tensor.Zeros(shape, backend)
	uniform(t.Data(), -bound, bound)
	return t
}

// Zeros creates a tensor filled with zeros, commonly used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[B] {
	return tensor.Zeros(shape, backend)
}
