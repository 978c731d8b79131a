package nn

import (
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// CrossEntropyLoss computes cross-entropy between logits and class indices.
//
// For logits x of shape [N, C] and integer class indices y of shape [N]
// (stored as float32), with smoothing ε and optional class weights w:
//
//	target = onehot(y)*(1-ε) + ε/C
//	loss_i = -Σ_c target_c * w_c * log_softmax(x_i)_c
//
// Log-softmax is computed with the max-subtraction trick for stability.
//
// Example:
//
//	ce := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{LabelSmoothing: 0.1})
//	loss := ce.Forward(logits, labels)
type CrossEntropyLoss[B tensor.Backend] struct {
	cfg CrossEntropyConfig
}

// CrossEntropyConfig configures CrossEntropyLoss.
type CrossEntropyConfig struct {
	Reduction      Reduction // Default ReductionMean.
	LabelSmoothing float32   // In [0, 1). Default 0.
	ClassWeight    []float32 // Optional, one weight per class.
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend](cfg CrossEntropyConfig) *CrossEntropyLoss[B] {
	if cfg.LabelSmoothing < 0 || cfg.LabelSmoothing >= 1 {
		exceptions.Panicf("NewCrossEntropyLoss: label smoothing must be in [0, 1), got %g", cfg.LabelSmoothing)
	}
	return &CrossEntropyLoss[B]{cfg: cfg}
}

// Reduction returns the loss's reduction mode.
func (c *CrossEntropyLoss[B]) Reduction() Reduction {
	return c.cfg.Reduction
}

// Forward computes the loss for logits [N, C] and labels [N].
func (c *CrossEntropyLoss[B]) Forward(logits, labels *tensor.Tensor[B]) *tensor.Tensor[B] {
	shape := logits.Shape()
	if len(shape) != 2 {
		exceptions.Panicf("CrossEntropyLoss: expected logits [N, C], got %v", shape)
	}
	if labels.Rank() == 2 && labels.Shape()[1] == 1 {
		labels = labels.Reshape(shape[0])
	}
	if !labels.Shape().Equal(shape[:1]) {
		exceptions.Panicf("CrossEntropyLoss: expected labels [%d], got %v", shape[0], labels.Shape())
	}
	numClasses := shape[1]

	logProbs := logits.LogSoftmax()
	if c.cfg.ClassWeight != nil {
		if len(c.cfg.ClassWeight) != numClasses {
			exceptions.Panicf("CrossEntropyLoss: %d class weights for %d classes", len(c.cfg.ClassWeight), numClasses)
		}
		w := tensor.MustFromSlice(c.cfg.ClassWeight, tensor.Shape{numClasses}, logits.Backend())
		logProbs = logProbs.Mul(w)
	}

	eps := c.cfg.LabelSmoothing
	perSample := logProbs.Gather(labels).MulScalar(-(1 - eps))
	if eps > 0 {
		perSample = perSample.Sub(logProbs.SumDim(-1, false).MulScalar(eps / float32(numClasses)))
	}
	return reduce(perSample, c.cfg.Reduction)
}
