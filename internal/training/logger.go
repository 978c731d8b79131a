package training

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const lrColumn = "lr"

// Logger records one History row per epoch and prints the progress line.
//
// Verbosity 0 prints nothing. Verbosity 1 prints
//
//	Epoch 3/10 - 0.4s - loss: 0.1234 - val_loss: 0.2345 - lr: 1e-03
//
// and verbosity 2 prints the same fields compacted to
//
//	3/10|0.4s|loss:0.1234|val_loss:0.2345|lr:1e-03
type Logger struct {
	out     io.Writer
	now     func() time.Time
	verbose int
	start   time.Time
	columns []string
}

// NewLogger creates a logger writing to out and timing epochs with now.
func NewLogger(out io.Writer, now func() time.Time) *Logger {
	return &Logger{out: out, now: now}
}

// SetVerbose sets the verbosity level.
func (l *Logger) SetVerbose(verbose int) {
	l.verbose = verbose
}

// Reset forgets the column schema of a previous run.
func (l *Logger) Reset() {
	l.columns = nil
}

// TrainBegin prints the dataset sizes. valSamples < 0 means no validation.
func (l *Logger) TrainBegin(trainSamples, valSamples int) {
	if l.verbose == 0 {
		return
	}
	if valSamples >= 0 {
		fmt.Fprintf(l.out, "Train on %d samples, validate on %d samples:\n", trainSamples, valSamples)
		return
	}
	fmt.Fprintf(l.out, "Train on %d samples:\n", trainSamples)
}

// EpochBegin starts the epoch timer.
func (l *Logger) EpochBegin() {
	l.start = l.now()
}

// EpochEnd merges the train and validation metrics with the learning rate,
// appends the row to history and prints the progress line. The first call
// fixes the column order: train metrics, then val_ metrics, then lr.
func (l *Logger) EpochEnd(history *History, epoch, maxEpochs int, train, val *Snapshot, lr float64) (*Snapshot, error) {
	elapsed := l.now().Sub(l.start).Seconds()

	row := NewSnapshot()
	row.Merge(train, "")
	row.Merge(val, "val_")
	if l.columns == nil {
		l.columns = row.Keys()
	}
	row.Set(lrColumn, lr)
	if err := history.Append(epoch, row); err != nil {
		return nil, err
	}

	if l.verbose == 0 {
		return row, nil
	}
	content := []string{fmt.Sprintf("Epoch %d/%d", epoch, maxEpochs), formatElapsed(elapsed)}
	for _, k := range l.columns {
		v, _ := row.Get(k)
		content = append(content, fmt.Sprintf("%s: %.4f", k, v))
	}
	content = append(content, fmt.Sprintf("lr: %.0e", lr))

	switch l.verbose {
	case 1:
		fmt.Fprintln(l.out, strings.Join(content, " - "))
	case 2:
		line := strings.Join(content, "|")
		line = strings.ReplaceAll(line, " ", "")
		line = strings.ReplaceAll(line, "Epoch", "")
		fmt.Fprintln(l.out, line)
	}
	return row, nil
}

// formatElapsed renders tenths of a second under 10s, whole seconds otherwise.
func formatElapsed(seconds float64) string {
	if seconds < 10 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	return fmt.Sprintf("%ds", int(seconds+0.5))
}
