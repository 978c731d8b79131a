package training

import (
	"iter"
	"strings"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/data"
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
)

// Loader is the batch source of a pass. *data.Loader implements it.
type Loader[B tensor.Backend] interface {
	// Batches returns an iterator over one pass.
	Batches() iter.Seq[data.Batch[B]]
	// Len returns the number of samples.
	Len() int
	// HasWeights reports whether batches carry sample weights.
	HasWeights() bool
}

var _ Loader[tensor.Backend] = (*data.Loader[tensor.Backend])(nil)

// outputs buffers the predictions, targets and weights of a pass.
type outputs[B tensor.Backend] struct {
	pred, target, weight []*tensor.Tensor[B]
}

func (o *outputs[B]) add(pred, target, weight *tensor.Tensor[B]) {
	o.pred = append(o.pred, pred)
	o.target = append(o.target, target)
	if weight != nil {
		o.weight = append(o.weight, weight)
	}
}

func (o *outputs[B]) empty() bool {
	return len(o.pred) == 0
}

// trainFast steps through the pass and scores the buffered predictions,
// made before each step, once at the end.
func (t *Trainer[B]) trainFast(loader Loader[B]) (*Snapshot, error) {
	nn.SetTraining(t.ctx.Model, true)
	hasWeights := loader.HasWeights()

	var out outputs[B]
	for batch := range loader.Batches() {
		pred, y, w, err := t.step(batch, hasWeights)
		if err != nil {
			return nil, err
		}
		out.add(pred, y, w)
	}
	if out.empty() {
		return nil, ErrEmptyDataset
	}
	return t.score(&out)
}

// trainPrecise steps through the pass, then scores the updated model with an
// evaluation pass over the same loader.
func (t *Trainer[B]) trainPrecise(loader Loader[B]) (*Snapshot, error) {
	nn.SetTraining(t.ctx.Model, true)
	hasWeights := loader.HasWeights()

	steps := 0
	for batch := range loader.Batches() {
		if _, _, _, err := t.step(batch, hasWeights); err != nil {
			return nil, err
		}
		steps++
	}
	if steps == 0 {
		return nil, ErrEmptyDataset
	}
	return t.Evaluate(loader)
}

// step runs one optimization step on batch. It returns the detached
// predictions with the device copies of the targets and weights.
func (t *Trainer[B]) step(batch data.Batch[B], hasWeights bool) (pred, y, w *tensor.Tensor[B], err error) {
	ctx := t.ctx
	tape := ctx.Backend.Tape()
	tape.Clear()
	tape.StartRecording()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	x := batch.X.To(ctx.Device)
	y = batch.Y.To(ctx.Device)
	ctx.Optimizer.ZeroGrad()

	pred = ctx.Model.Forward(x)
	loss := ctx.Loss.Forward(pred, y)
	if hasWeights {
		if loss.IsScalar() {
			return nil, nil, nil, ErrUnreducedLoss
		}
		w = batch.Weight.To(ctx.Device)
		loss = loss.Mul(w)
	}

	grads := autodiff.Backward(loss.Mean(), ctx.Backend)
	ctx.Optimizer.Step(grads)
	return pred.Detach(), y, w, nil
}

// Evaluate scores the model on loader in inference mode, without recording
// gradients or touching the parameters.
func (t *Trainer[B]) Evaluate(loader Loader[B]) (*Snapshot, error) {
	ctx := t.ctx
	nn.SetTraining(ctx.Model, false)
	hasWeights := loader.HasWeights()

	var out outputs[B]
	autodiff.NoGrad(ctx.Backend, func() {
		for batch := range loader.Batches() {
			y := batch.Y.To(ctx.Device)
			var w *tensor.Tensor[B]
			if hasWeights {
				w = batch.Weight.To(ctx.Device)
			}
			out.add(ctx.Model.Forward(batch.X.To(ctx.Device)), y, w)
		}
	})
	if out.empty() {
		return nil, ErrEmptyDataset
	}
	return t.score(&out)
}

// score computes every metric over the concatenated outputs of a pass.
func (t *Trainer[B]) score(out *outputs[B]) (*Snapshot, error) {
	pred := tensor.Cat(out.pred)
	target := tensor.Cat(out.target)
	var weight *tensor.Tensor[B]
	if len(out.weight) > 0 {
		weight = tensor.Cat(out.weight)
	}

	snapshot := NewSnapshot()
	var err error
	autodiff.NoGrad(t.ctx.Backend, func() {
		for _, m := range t.ctx.Metrics {
			var value *tensor.Tensor[B]
			value, err = scoreMetric(m.Name, m.Fn, pred, target, weight)
			if err != nil {
				return
			}
			snapshot.Set(m.Name, float64(value.Detach().Item()))
		}
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// scoreMetric applies the weighting rule: with sample weights, a metric whose
// name contains "loss" is scored per sample, multiplied by the weights and
// averaged. Any other score is averaged when it is not already a scalar.
func scoreMetric[B tensor.Backend](name string, fn metrics.ScoreFunc[B], pred, target, weight *tensor.Tensor[B]) (*tensor.Tensor[B], error) {
	value := fn(pred, target)
	if weight != nil && strings.Contains(name, "loss") {
		if value.IsScalar() {
			return nil, ErrUnreducedLoss
		}
		return value.Mul(weight).Mean(), nil
	}
	if !value.IsScalar() {
		value = value.Mean()
	}
	return value, nil
}
