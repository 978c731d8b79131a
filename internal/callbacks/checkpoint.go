package callbacks

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/serialization"
	"github.com/born-ml/keras/internal/training"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// CheckpointConfig configures ModelCheckpoint.
type CheckpointConfig struct {
	// Path of the safetensors file. "{epoch}" is replaced by the epoch number.
	Path string

	Monitor string // Default "val_loss". Only used with SaveBestOnly.
	Mode    Mode   // Default ModeAuto.

	// SaveBestOnly writes only when the monitored value improves.
	SaveBestOnly bool
}

// ModelCheckpoint writes the model's state dict at the end of every epoch.
type ModelCheckpoint[B autodiff.BackwardCapable] struct {
	path         string
	monitor      *monitor
	saveBestOnly bool
	saved        []string
}

// NewModelCheckpoint creates a ModelCheckpoint callback.
func NewModelCheckpoint[B autodiff.BackwardCapable](cfg CheckpointConfig) (*ModelCheckpoint[B], error) {
	if cfg.Path == "" {
		return nil, errors.New("model checkpoint: path is required")
	}
	if cfg.Monitor == "" {
		cfg.Monitor = "val_loss"
	}
	m, err := newMonitor(cfg.Monitor, cfg.Mode, 0)
	if err != nil {
		return nil, err
	}
	return &ModelCheckpoint[B]{path: cfg.Path, monitor: m, saveBestOnly: cfg.SaveBestOnly}, nil
}

// Hooks implements training.Callback.
func (c *ModelCheckpoint[B]) Hooks() []training.Hook[B] {
	return []training.Hook[B]{
		{Event: training.TrainBegin, Handler: func(*training.Context[B]) error {
			c.monitor.reset()
			c.saved = nil
			return nil
		}},
		{Event: training.EpochEnd, Handler: c.onEpochEnd},
	}
}

func (c *ModelCheckpoint[B]) onEpochEnd(ctx *training.Context[B]) error {
	metadata := map[string]string{"epoch": strconv.Itoa(ctx.Epoch)}
	if c.saveBestOnly {
		v, ok := c.monitor.value(ctx.Logs)
		if !ok || !c.monitor.improve(v) {
			return nil
		}
		metadata[c.monitor.name] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	path := strings.ReplaceAll(c.path, "{epoch}", strconv.Itoa(ctx.Epoch))
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrapf(err, "model checkpoint: creating %s", dir)
		}
	}
	if err := serialization.WriteSafeTensors(path, nn.StateDict(ctx.Model), metadata); err != nil {
		return errors.Wrapf(err, "model checkpoint at epoch %d", ctx.Epoch)
	}
	klog.V(1).Infof("epoch %d: saved checkpoint to %s", ctx.Epoch, path)
	c.saved = append(c.saved, path)
	return nil
}

// Saved returns the paths written during the last run, in order.
func (c *ModelCheckpoint[B]) Saved() []string {
	return c.saved
}
