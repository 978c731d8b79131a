// Package callbacks provides ready-made training callbacks: EarlyStopping,
// ModelCheckpoint, LRScheduler, CSVLogger and the Lambda adapter.
//
// Every callback implements training.Callback and is passed to Model.Fit
// (or Trainer.RegisterCallbacks).
package callbacks

import (
	"math"
	"strings"

	"github.com/born-ml/keras/internal/training"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Mode tells whether a monitored value improves by decreasing or increasing.
type Mode string

// Supported modes. ModeAuto maximizes accuracy-like metrics ("acc", "auc")
// and minimizes everything else.
const (
	ModeAuto Mode = "auto"
	ModeMin  Mode = "min"
	ModeMax  Mode = "max"
)

const fallbackMonitor = "loss"

// monitor tracks the best value of one History column.
type monitor struct {
	name     string
	maximize bool
	minDelta float64
	best     float64
	warned   bool
}

func newMonitor(name string, mode Mode, minDelta float64) (*monitor, error) {
	m := &monitor{name: name, minDelta: math.Abs(minDelta)}
	switch mode {
	case ModeMin:
	case ModeMax:
		m.maximize = true
	case ModeAuto, "":
		m.maximize = strings.Contains(name, "acc") || strings.Contains(name, "auc")
	default:
		return nil, errors.Errorf("invalid mode %q, we support [auto min max]", mode)
	}
	m.reset()
	return m, nil
}

func (m *monitor) reset() {
	m.warned = false
	m.best = math.Inf(1)
	if m.maximize {
		m.best = math.Inf(-1)
	}
}

// value reads the monitored column from logs, falling back to "loss" when
// the column is absent (e.g. "val_loss" without validation data).
func (m *monitor) value(logs *training.Snapshot) (float64, bool) {
	if logs == nil {
		return 0, false
	}
	if v, ok := logs.Get(m.name); ok {
		return v, true
	}
	if !m.warned {
		klog.Warningf("monitored metric %q is not available, falling back to %q (available: %v)", m.name, fallbackMonitor, logs.Keys())
		m.warned = true
	}
	return logs.Get(fallbackMonitor)
}

// improve records v and reports whether it beats the best value by more than minDelta.
func (m *monitor) improve(v float64) bool {
	better := v < m.best-m.minDelta
	if m.maximize {
		better = v > m.best+m.minDelta
	}
	if better {
		m.best = v
	}
	return better
}
