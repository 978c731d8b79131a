// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides datasets and batch loaders for Model.FitLoader.
package data

import (
	"github.com/born-ml/keras/internal/data"
	"github.com/born-ml/keras/internal/tensor"
)

// Dataset is an indexable collection of samples.
type Dataset[B tensor.Backend] = data.Dataset[B]

// Batch holds the inputs, targets and optional sample weights of a batch.
type Batch[B tensor.Backend] = data.Batch[B]

// TensorDataset pairs input and target tensors along dimension 0.
type TensorDataset[B tensor.Backend] = data.TensorDataset[B]

// NewTensorDataset pairs x and y, which must have the same number of rows.
func NewTensorDataset[B tensor.Backend](x, y *tensor.Tensor[B]) (*TensorDataset[B], error) {
	return data.NewTensorDataset(x, y)
}

// LoaderConfig configures NewLoader. BatchSize defaults to 32.
type LoaderConfig = data.LoaderConfig

// Loader yields the batches of a dataset.
type Loader[B tensor.Backend] = data.Loader[B]

// NewLoader creates a Loader over ds.
func NewLoader[B tensor.Backend](ds Dataset[B], cfg LoaderConfig) (*Loader[B], error) {
	return data.NewLoader(ds, cfg)
}

// Subset is a view of some samples of a dataset.
type Subset[B tensor.Backend] = data.Subset[B]

// RandomSplit splits ds into random subsets of the given lengths.
func RandomSplit[B tensor.Backend](ds Dataset[B], lengths []int, seed int64) ([]*Subset[B], error) {
	return data.RandomSplit(ds, lengths, seed)
}

// TextVectorizer turns text into hashed bag-of-token features.
type TextVectorizer = data.TextVectorizer

// NewTextVectorizer creates a TextVectorizer over a tiktoken encoding,
// e.g. "cl100k_base", with dim features.
func NewTextVectorizer(encodingName string, dim int) (*TextVectorizer, error) {
	return data.NewTextVectorizer(encodingName, dim)
}

// Vectorize returns the [len(texts), dim] features of texts.
func Vectorize[B tensor.Backend](v *TextVectorizer, texts []string, b B) *tensor.Tensor[B] {
	return data.Vectorize(v, texts, b)
}
