package serialization

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStateDict(t *testing.T) map[string]*tensor.RawTensor {
	t.Helper()
	weight, err := tensor.RawFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	bias, err := tensor.RawFromSlice([]float32{0.1, 0.2, 0.3}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	return map[string]*tensor.RawTensor{"0.weight": weight, "0.bias": bias}
}

func TestSafeTensorsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.safetensors")
	require.NoError(t, WriteSafeTensors(path, testStateDict(t), map[string]string{"epoch": "3"}))

	loaded, meta, err := ReadSafeTensors(path, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, "3", meta["epoch"])
	assert.Equal(t, FrameworkName, meta["framework"])

	require.Len(t, loaded, 2)
	assert.Equal(t, tensor.Shape{2, 3}, loaded["0.weight"].Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, loaded["0.weight"].Data())
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, loaded["0.bias"].Data())
}

func TestEncode_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Encode(&a, testStateDict(t), nil))
	require.NoError(t, Encode(&b, testStateDict(t), nil))
	assert.Equal(t, a.Bytes(), b.Bytes())

	// Bias sorts before weight, so it comes first in the data section.
	headerSize := binary.LittleEndian.Uint64(a.Bytes()[:8])
	data := a.Bytes()[8+headerSize:]
	assert.Len(t, data, (3+6)*4)
	var first float32
	require.NoError(t, binary.Read(bytes.NewReader(data[:4]), binary.LittleEndian, &first))
	assert.Equal(t, float32(0.1), first)
}

func TestEncode_RejectsBadNames(t *testing.T) {
	raw := tensor.MustNewRaw(tensor.Shape{1}, tensor.CPU)
	for _, name := range []string{"", "../evil", "a/b"} {
		err := Encode(&bytes.Buffer{}, map[string]*tensor.RawTensor{name: raw}, nil)
		assert.ErrorIs(t, err, ErrInvalidTensorName, name)
	}
}

func TestDecode_Truncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testStateDict(t), nil))
	truncated := buf.Bytes()[:buf.Len()-4]

	_, _, err := Decode(bytes.NewReader(truncated), tensor.CPU)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecode_HeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1)))
	_, _, err := Decode(&buf, tensor.CPU)
	assert.True(t, errors.Is(err, ErrHeaderTooLarge))
}

func TestReadSafeTensors_MissingFile(t *testing.T) {
	_, _, err := ReadSafeTensors(filepath.Join(t.TempDir(), "missing"), tensor.CPU)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name    string
		tensors map[string]TensorInfo
		want    error
	}{
		{
			name: "adjacent",
			tensors: map[string]TensorInfo{
				"a": {DataOffsets: [2]int64{0, 100}},
				"b": {DataOffsets: [2]int64{100, 200}},
			},
		},
		{
			name: "overlap",
			tensors: map[string]TensorInfo{
				"a": {DataOffsets: [2]int64{0, 100}},
				"b": {DataOffsets: [2]int64{99, 200}},
			},
			want: ErrOffsetOverlap,
		},
		{
			name: "out of bounds",
			tensors: map[string]TensorInfo{
				"a": {DataOffsets: [2]int64{0, 201}},
			},
			want: ErrOutOfBounds,
		},
		{
			name: "negative",
			tensors: map[string]TensorInfo{
				"a": {DataOffsets: [2]int64{-4, 4}},
			},
			want: ErrOutOfBounds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, 200)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestValidateHeader_DType(t *testing.T) {
	h := &Header{Tensors: map[string]TensorInfo{
		"w": {DType: "F16", Shape: []int{2}, DataOffsets: [2]int64{0, 4}},
	}}
	assert.ErrorIs(t, ValidateHeader(h, 4), ErrUnsupportedDType)

	h.Tensors["w"] = TensorInfo{DType: "F32", Shape: []int{2}, DataOffsets: [2]int64{0, 4}}
	assert.ErrorIs(t, ValidateHeader(h, 8), ErrOutOfBounds, "size does not match the shape")
}
