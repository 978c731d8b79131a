package training

import (
	"io"
	"os"
	"time"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Config configures a Trainer.
type Config[B autodiff.BackwardCapable] struct {
	Backend   B
	Model     nn.Module[B]
	Optimizer optim.Optimizer
	Loss      nn.Loss[B]

	// Metrics are scored after every pass, in order. Default: the loss alone,
	// under the name "loss".
	Metrics []metrics.Named[B]

	// Device receives every batch before use. Default tensor.CPU.
	Device tensor.Device

	// Output receives the progress lines. Default os.Stdout.
	Output io.Writer

	// Clock times the epochs. Default time.Now.
	Clock func() time.Time
}

// Trainer runs the epoch loop over a model.
//
// Example:
//
//	trainer, err := training.New(training.Config[Backend]{
//	    Backend:   backend,
//	    Model:     model,
//	    Optimizer: optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1}),
//	    Loss:      nn.NewMSELoss[Backend](nn.ReductionMean),
//	})
//	history, err := trainer.Run(trainLoader, nil, 10, 1, false)
type Trainer[B autodiff.BackwardCapable] struct {
	ctx        *Context[B]
	dispatcher Dispatcher[B]
	logger     *Logger
}

// New validates cfg and creates a Trainer.
func New[B autodiff.BackwardCapable](cfg Config[B]) (*Trainer[B], error) {
	if cfg.Model == nil {
		return nil, errors.New("trainer: model is required")
	}
	if cfg.Optimizer == nil {
		return nil, errors.New("trainer: optimizer is required")
	}
	if cfg.Loss == nil {
		return nil, errors.New("trainer: loss is required")
	}
	if len(cfg.Optimizer.ParamGroups()) == 0 {
		return nil, errors.New("trainer: optimizer has no parameter groups")
	}

	named := cfg.Metrics
	if len(named) == 0 {
		named = []metrics.Named[B]{metrics.NewNamed("loss", metrics.ScoreFunc[B](cfg.Loss.Forward))}
	}
	seen := make(map[string]bool, len(named))
	for _, m := range named {
		if m.Name == "" || m.Fn == nil {
			return nil, errors.Errorf("trainer: metric %q needs a name and a function", m.Name)
		}
		if seen[m.Name] {
			return nil, errors.Errorf("trainer: duplicate metric name %q", m.Name)
		}
		seen[m.Name] = true
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Trainer[B]{
		ctx: &Context[B]{
			Backend:   cfg.Backend,
			Device:    cfg.Device,
			Model:     cfg.Model,
			Optimizer: cfg.Optimizer,
			Loss:      cfg.Loss,
			Metrics:   named,
			History:   NewHistory(),
		},
		logger: NewLogger(cfg.Output, cfg.Clock),
	}, nil
}

// Context returns the run state handed to callbacks.
func (t *Trainer[B]) Context() *Context[B] {
	return t.ctx
}

// RegisterCallbacks replaces the registered callbacks.
func (t *Trainer[B]) RegisterCallbacks(callbacks ...Callback[B]) {
	t.dispatcher.Register(callbacks...)
}

// Run trains for up to maxEpochs epochs and returns the History of the run.
//
// val may be nil. A handler returning ErrStopTraining at EpochEnd ends the
// loop after that epoch's row was recorded; TrainEnd still fires. Any other
// handler, metric or loader error aborts the run and is returned as is.
func (t *Trainer[B]) Run(train, val Loader[B], maxEpochs, verbose int, precise bool) (*History, error) {
	if maxEpochs < 0 {
		return nil, errors.Errorf("trainer: max epochs must be non-negative, got %d", maxEpochs)
	}
	ctx := t.ctx
	ctx.Epoch = 0
	ctx.MaxEpochs = maxEpochs
	ctx.Verbose = verbose
	ctx.History = NewHistory()
	ctx.Logs = nil

	t.logger.Reset()
	t.logger.SetVerbose(verbose)
	valSamples := -1
	if val != nil {
		valSamples = val.Len()
	}
	t.logger.TrainBegin(train.Len(), valSamples)

	if err := t.dispatcher.Fire(TrainBegin, ctx); err != nil {
		return nil, err
	}

	trainPass := t.trainFast
	if precise {
		trainPass = t.trainPrecise
	}
	klog.V(1).Infof("training for %d epochs on %s (precise=%v, %d train samples, %d validation samples)",
		maxEpochs, ctx.Device, precise, train.Len(), max(valSamples, 0))

	for epoch := 1; epoch <= maxEpochs; epoch++ {
		ctx.Epoch = epoch
		t.logger.EpochBegin()
		if err := t.dispatcher.Fire(EpochBegin, ctx); err != nil {
			return nil, err
		}

		trainMetrics, err := trainPass(train)
		if err != nil {
			return nil, err
		}
		valMetrics := NewSnapshot()
		if val != nil {
			if valMetrics, err = t.Evaluate(val); err != nil {
				return nil, err
			}
		}

		row, err := t.logger.EpochEnd(ctx.History, epoch, maxEpochs, trainMetrics, valMetrics, ctx.LR())
		if err != nil {
			return nil, err
		}
		ctx.Logs = row

		if err := t.dispatcher.Fire(EpochEnd, ctx); err != nil {
			if errors.Is(err, ErrStopTraining) {
				klog.V(1).Infof("training stopped at epoch %d/%d", epoch, maxEpochs)
				break
			}
			return nil, err
		}
	}

	if err := t.dispatcher.Fire(TrainEnd, ctx); err != nil {
		return nil, err
	}
	return ctx.History, nil
}
