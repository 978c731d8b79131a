package tensor

// Backend defines the operations every compute backend implements.
//
// Implementations:
//   - CPU: pure Go (internal/backend/cpu)
//   - Autodiff: decorator over any Backend that records operations on a gradient tape
//
// Operations never modify their inputs and panic on shape violations.
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies 2-D matrices: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations.
	MulScalar(x *RawTensor, scalar float32) *RawTensor
	AddScalar(x *RawTensor, scalar float32) *RawTensor

	// Element-wise math.
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor

	// Activations.
	ReLU(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor
	LogSoftmax(x *RawTensor) *RawTensor // along the last dimension

	// Reductions.
	Sum(x *RawTensor) *RawTensor // total sum, rank-0 result
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Argmax(x *RawTensor) *RawTensor // index of the maximum along the last dimension

	// Indexing and manipulation.
	Gather(x, index *RawTensor) *RawTensor // x[..., index[...]] along the last dimension
	Cat(tensors []*RawTensor) *RawTensor   // concatenation along dimension 0

	// Metadata.
	Name() string
	Device() Device
}
