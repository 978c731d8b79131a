package tensor

// Add performs element-wise addition with broadcasting.
func (t *Tensor[B]) Add(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[B]) Sub(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[B]) Mul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[B]) Div(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Div(t.raw, other.raw), t.backend)
}

// MatMul performs 2-D matrix multiplication.
func (t *Tensor[B]) MatMul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.MatMul(t.raw, other.raw), t.backend)
}

// MulScalar multiplies every element by a scalar.
func (t *Tensor[B]) MulScalar(scalar float32) *Tensor[B] {
	return New(t.backend.MulScalar(t.raw, scalar), t.backend)
}

// AddScalar adds a scalar to every element.
func (t *Tensor[B]) AddScalar(scalar float32) *Tensor[B] {
	return New(t.backend.AddScalar(t.raw, scalar), t.backend)
}

// Neg negates every element.
func (t *Tensor[B]) Neg() *Tensor[B] {
	return t.MulScalar(-1)
}

// Exp computes e^x element-wise.
func (t *Tensor[B]) Exp() *Tensor[B] {
	return New(t.backend.Exp(t.raw), t.backend)
}

// Log computes the natural logarithm element-wise.
func (t *Tensor[B]) Log() *Tensor[B] {
	return New(t.backend.Log(t.raw), t.backend)
}

// Sqrt computes the square root element-wise.
func (t *Tensor[B]) Sqrt() *Tensor[B] {
	return New(t.backend.Sqrt(t.raw), t.backend)
}

// Abs computes the absolute value element-wise.
func (t *Tensor[B]) Abs() *Tensor[B] {
	return New(t.backend.Abs(t.raw), t.backend)
}

// Square multiplies the tensor by itself element-wise.
func (t *Tensor[B]) Square() *Tensor[B] {
	return t.Mul(t)
}

// ReLU applies max(0, x).
func (t *Tensor[B]) ReLU() *Tensor[B] {
	return New(t.backend.ReLU(t.raw), t.backend)
}

// Sigmoid applies 1 / (1 + exp(-x)).
func (t *Tensor[B]) Sigmoid() *Tensor[B] {
	return New(t.backend.Sigmoid(t.raw), t.backend)
}

// Tanh applies the hyperbolic tangent.
func (t *Tensor[B]) Tanh() *Tensor[B] {
	return New(t.backend.Tanh(t.raw), t.backend)
}

// LogSoftmax computes log(softmax(x)) along the last dimension.
func (t *Tensor[B]) LogSoftmax() *Tensor[B] {
	return New(t.backend.LogSoftmax(t.raw), t.backend)
}

// Softmax computes softmax(x) along the last dimension.
func (t *Tensor[B]) Softmax() *Tensor[B] {
	return t.LogSoftmax().Exp()
}

// Sum reduces all elements to a rank-0 tensor.
func (t *Tensor[B]) Sum() *Tensor[B] {
	return New(t.backend.Sum(t.raw), t.backend)
}

// Mean averages all elements into a rank-0 tensor.
func (t *Tensor[B]) Mean() *Tensor[B] {
	return t.Sum().MulScalar(1 / float32(t.NumElements()))
}

// SumDim sums along dimension dim. Negative dims count from the end.
func (t *Tensor[B]) SumDim(dim int, keepDim bool) *Tensor[B] {
	return New(t.backend.SumDim(t.raw, t.normalizeDim(dim), keepDim), t.backend)
}

// MeanDim averages along dimension dim. Negative dims count from the end.
func (t *Tensor[B]) MeanDim(dim int, keepDim bool) *Tensor[B] {
	return New(t.backend.MeanDim(t.raw, t.normalizeDim(dim), keepDim), t.backend)
}

// Argmax returns the index of the maximum along the last dimension.
// The result is not differentiable.
func (t *Tensor[B]) Argmax() *Tensor[B] {
	return New(t.backend.Argmax(t.raw), t.backend)
}

// Gather selects x[..., index[...]] along the last dimension.
// index has the shape of t without its last dimension.
func (t *Tensor[B]) Gather(index *Tensor[B]) *Tensor[B] {
	return New(t.backend.Gather(t.raw, index.raw), t.backend)
}

func (t *Tensor[B]) normalizeDim(dim int) int {
	if dim < 0 {
		return dim + t.Rank()
	}
	return dim
}
