package data

import (
	"math"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
	"github.com/pkoukk/tiktoken-go"
)

// Encoder splits text into token IDs. *tiktoken.Tiktoken satisfies it.
type Encoder interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
}

// TextVectorizer turns text into fixed-size feature rows: tokens are hashed
// into Dim buckets and counted, and each row is L2-normalized.
//
// Example:
//
//	vec, err := data.NewTextVectorizer("cl100k_base", 1024)
//	x := data.Vectorize(vec, []string{"great movie", "awful plot"}, backend) // [2, 1024]
type TextVectorizer struct {
	encoder Encoder
	dim     int
}

// NewTextVectorizer loads the named tiktoken encoding ("cl100k_base", "p50k_base", ...).
func NewTextVectorizer(encodingName string, dim int) (*TextVectorizer, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load tiktoken encoding %q", encodingName)
	}
	return NewTextVectorizerWithEncoder(encoding, dim)
}

// NewTextVectorizerWithEncoder builds a vectorizer over any Encoder.
func NewTextVectorizerWithEncoder(encoder Encoder, dim int) (*TextVectorizer, error) {
	if dim <= 0 {
		return nil, errors.Errorf("feature dimension must be positive, got %d", dim)
	}
	return &TextVectorizer{encoder: encoder, dim: dim}, nil
}

// Dim returns the number of features per text.
func (v *TextVectorizer) Dim() int {
	return v.dim
}

// Features returns the feature row of text.
func (v *TextVectorizer) Features(text string) []float32 {
	row := make([]float32, v.dim)
	v.fill(row, text)
	return row
}

func (v *TextVectorizer) fill(row []float32, text string) {
	for _, tok := range v.encoder.Encode(text, nil, nil) {
		row[bucket(tok, v.dim)]++
	}
	var norm float64
	for _, c := range row {
		norm += float64(c) * float64(c)
	}
	if norm == 0 {
		return
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range row {
		row[i] *= scale
	}
}

// bucket hashes a token ID with FNV-1a over its bytes.
func bucket(token, dim int) int {
	h := uint32(2166136261)
	for i := 0; i < 4; i++ {
		h ^= uint32(token>>(8*i)) & 0xff
		h *= 16777619
	}
	return int(h % uint32(dim)) //nolint:gosec // dim is positive
}

// Vectorize stacks the feature rows of texts into a [len(texts), Dim] tensor.
func Vectorize[B tensor.Backend](v *TextVectorizer, texts []string, b B) *tensor.Tensor[B] {
	t := tensor.Zeros(tensor.Shape{len(texts), v.dim}, b)
	data := t.Data()
	for i, text := range texts {
		v.fill(data[i*v.dim:(i+1)*v.dim], text)
	}
	return t
}
