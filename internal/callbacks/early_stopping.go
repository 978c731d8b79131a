package callbacks

import (
	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/training"
	"k8s.io/klog/v2"
)

// EarlyStoppingConfig configures EarlyStopping.
type EarlyStoppingConfig struct {
	Monitor  string  // Default "val_loss".
	Mode     Mode    // Default ModeAuto.
	Patience int     // Epochs without improvement before stopping.
	MinDelta float64 // Smallest change that counts as an improvement.
}

// EarlyStopping ends training once the monitored metric stops improving.
type EarlyStopping[B autodiff.BackwardCapable] struct {
	monitor   *monitor
	patience  int
	wait      int
	stoppedAt int
	bestEpoch int
}

// NewEarlyStopping creates an EarlyStopping callback.
func NewEarlyStopping[B autodiff.BackwardCapable](cfg EarlyStoppingConfig) (*EarlyStopping[B], error) {
	if cfg.Monitor == "" {
		cfg.Monitor = "val_loss"
	}
	m, err := newMonitor(cfg.Monitor, cfg.Mode, cfg.MinDelta)
	if err != nil {
		return nil, err
	}
	return &EarlyStopping[B]{monitor: m, patience: cfg.Patience}, nil
}

// Hooks implements training.Callback.
func (e *EarlyStopping[B]) Hooks() []training.Hook[B] {
	return []training.Hook[B]{
		{Event: training.TrainBegin, Handler: e.onTrainBegin},
		{Event: training.EpochEnd, Handler: e.onEpochEnd},
	}
}

func (e *EarlyStopping[B]) onTrainBegin(*training.Context[B]) error {
	e.monitor.reset()
	e.wait = 0
	e.stoppedAt = 0
	e.bestEpoch = 0
	return nil
}

func (e *EarlyStopping[B]) onEpochEnd(ctx *training.Context[B]) error {
	v, ok := e.monitor.value(ctx.Logs)
	if !ok {
		return nil
	}
	if e.monitor.improve(v) {
		e.wait = 0
		e.bestEpoch = ctx.Epoch
		return nil
	}
	e.wait++
	if e.wait < e.patience {
		return nil
	}
	e.stoppedAt = ctx.Epoch
	klog.V(1).Infof("early stopping at epoch %d: %s did not improve on %.4f (epoch %d) for %d epochs",
		ctx.Epoch, e.monitor.name, e.monitor.best, e.bestEpoch, e.wait)
	return training.ErrStopTraining
}

// StoppedEpoch returns the epoch that stopped training, or 0.
func (e *EarlyStopping[B]) StoppedEpoch() int {
	return e.stoppedAt
}

// BestEpoch returns the epoch with the best monitored value.
func (e *EarlyStopping[B]) BestEpoch() int {
	return e.bestEpoch
}
