package training_test

import (
	"bytes"
	"iter"
	"testing"
	"time"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/data"
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/born-ml/keras/internal/training"
	"github.com/stretchr/testify/require"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// fixture is y = 2x on x = 1..4, fitted by a 1x1 Linear starting at w=0.5, b=0.
type fixture struct {
	backend Backend
	model   *nn.Linear[Backend]
	opt     *optim.SGD[Backend]
	ds      *data.TensorDataset[Backend]
	out     *bytes.Buffer
	clock   *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := autodiff.New(cpu.New())
	model := nn.NewLinear(1, 1, backend)
	model.Weight().Tensor().Data()[0] = 0.5
	model.Bias().Tensor().Data()[0] = 0

	ds, err := data.NewTensorDataset(
		tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4, 1}, backend),
		tensor.MustFromSlice([]float32{2, 4, 6, 8}, tensor.Shape{4, 1}, backend),
	)
	require.NoError(t, err)

	return &fixture{
		backend: backend,
		model:   model,
		opt:     optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01}),
		ds:      ds,
		out:     &bytes.Buffer{},
		clock:   &fakeClock{now: time.Unix(0, 0), step: 500 * time.Millisecond},
	}
}

func (f *fixture) trainer(t *testing.T, loss nn.Loss[Backend], extra ...metrics.Named[Backend]) *training.Trainer[Backend] {
	t.Helper()
	var named []metrics.Named[Backend]
	if len(extra) > 0 {
		named = append([]metrics.Named[Backend]{metrics.NewNamed("loss", metrics.ScoreFunc[Backend](loss.Forward))}, extra...)
	}
	tr, err := training.New(training.Config[Backend]{
		Backend:   f.backend,
		Model:     f.model,
		Optimizer: f.opt,
		Loss:      loss,
		Metrics:   named,
		Output:    f.out,
		Clock:     f.clock.Now,
	})
	require.NoError(t, err)
	return tr
}

func (f *fixture) loader(t *testing.T, ds data.Dataset[Backend], batchSize int) *data.Loader[Backend] {
	t.Helper()
	loader, err := data.NewLoader(ds, data.LoaderConfig{BatchSize: batchSize})
	require.NoError(t, err)
	return loader
}

func (f *fixture) weight() float32 {
	return f.model.Weight().Tensor().Data()[0]
}

// fakeClock advances by step on every reading.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// emptyLoader yields no batches.
type emptyLoader struct{}

func (emptyLoader) Batches() iter.Seq[data.Batch[Backend]] {
	return func(func(data.Batch[Backend]) bool) {}
}

func (emptyLoader) Len() int { return 0 }

func (emptyLoader) HasWeights() bool { return false }

// recorder collects the names of the handlers it creates, in call order.
type recorder struct {
	calls []string
}

func (r *recorder) handler(name string) training.Handler[Backend] {
	return func(*training.Context[Backend]) error {
		r.calls = append(r.calls, name)
		return nil
	}
}

func mse() nn.Loss[Backend] {
	return nn.NewMSELoss[Backend](nn.ReductionNone)
}
