package metrics

import (
	"math"
	"sort"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Accuracy is the fraction of samples whose highest-scoring class equals the
// target class index. Predictions have shape [N, C], targets hold N indices.
type Accuracy[B tensor.Backend] struct{}

// NewAccuracy creates an Accuracy metric.
func NewAccuracy[B tensor.Backend]() *Accuracy[B] {
	return &Accuracy[B]{}
}

// Score returns the accuracy as a rank-0 tensor.
func (a *Accuracy[B]) Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	if predictions.Rank() < 2 {
		exceptions.Panicf("Accuracy: predictions must be [N, C], got %v", predictions.Shape())
	}
	classes := predictions.Argmax().Data()
	labels := targets.Data()
	if len(classes) != len(labels) {
		exceptions.Panicf("Accuracy: %d predictions for %d targets", len(classes), len(labels))
	}
	correct := 0
	for i, c := range classes {
		if c == labels[i] {
			correct++
		}
	}
	return scalar(float64(correct)/float64(len(labels)), predictions)
}

// Abbr returns "acc".
func (a *Accuracy[B]) Abbr() string {
	return "acc"
}

// BinaryAccuracy is the fraction of predictions that round to their 0/1 target.
// Predictions are probabilities, not logits.
type BinaryAccuracy[B tensor.Backend] struct{}

// NewBinaryAccuracy creates a BinaryAccuracy metric.
func NewBinaryAccuracy[B tensor.Backend]() *BinaryAccuracy[B] {
	return &BinaryAccuracy[B]{}
}

// Score returns the binary accuracy as a rank-0 tensor.
func (a *BinaryAccuracy[B]) Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	pred, labels := sameLength("BinaryAccuracy", predictions, targets)
	correct := 0
	for i, p := range pred {
		if float32(math.RoundToEven(float64(p))) == labels[i] {
			correct++
		}
	}
	return scalar(float64(correct)/float64(len(labels)), predictions)
}

// Abbr returns "acc".
func (a *BinaryAccuracy[B]) Abbr() string {
	return "acc"
}

// ROCAUC computes the area under the ROC curve for binary targets.
//
// Predictions are scores of shape [N], [N, 1], or [N, 2] (the positive class
// is column 1). Targets above 0.5 count as positive. The area is the
// Mann-Whitney rank statistic, with tied scores sharing their average rank.
// When only one class is present the area is undefined and NaN is returned.
type ROCAUC[B tensor.Backend] struct{}

// NewROCAUC creates a ROCAUC metric.
func NewROCAUC[B tensor.Backend]() *ROCAUC[B] {
	return &ROCAUC[B]{}
}

// Score returns the area under the curve as a rank-0 tensor.
func (a *ROCAUC[B]) Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	scores := positiveScores(predictions)
	labels := targets.Data()
	if len(scores) != len(labels) {
		exceptions.Panicf("ROCAUC: %d scores for %d targets", len(scores), len(labels))
	}
	return scalar(rocAUC(scores, labels), predictions)
}

// Abbr returns "auc".
func (a *ROCAUC[B]) Abbr() string {
	return "auc"
}

func positiveScores[B tensor.Backend](predictions *tensor.Tensor[B]) []float32 {
	shape := predictions.Shape()
	data := predictions.Data()
	if len(shape) == 2 && shape[1] == 2 {
		scores := make([]float32, shape[0])
		for i := range scores {
			scores[i] = data[i*2+1]
		}
		return scores
	}
	if len(shape) > 1 && shape.NumElements() != shape[0] {
		exceptions.Panicf("ROCAUC: predictions must be [N], [N, 1] or [N, 2], got %v", shape)
	}
	return data
}

func rocAUC(scores, labels []float32) float64 {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return scores[order[i]] < scores[order[j]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && scores[order[j+1]] == scores[order[i]] {
			j++
		}
		// 1-based ranks i+1..j+1 share their mean.
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}

	var positives, negatives int
	var rankSum float64
	for i, y := range labels {
		if y > 0.5 {
			positives++
			rankSum += ranks[i]
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return math.NaN()
	}
	p := float64(positives)
	return (rankSum - p*(p+1)/2) / (p * float64(negatives))
}

// sameLength returns the data of both tensors, which must hold the same number
// of elements ([N] and [N, 1] are interchangeable).
func sameLength[B tensor.Backend](name string, predictions, targets *tensor.Tensor[B]) ([]float32, []float32) {
	if predictions.NumElements() != targets.NumElements() {
		exceptions.Panicf("%s: predictions %v and targets %v have different sizes", name, predictions.Shape(), targets.Shape())
	}
	if targets.NumElements() == 0 {
		exceptions.Panicf("%s: empty targets", name)
	}
	return predictions.Data(), targets.Data()
}
