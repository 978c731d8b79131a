package callbacks

import (
	"os"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/training"
	"github.com/pkg/errors"
)

// CSVLogger writes the training history to a CSV file when training ends.
type CSVLogger[B autodiff.BackwardCapable] struct {
	path string
}

// NewCSVLogger creates a CSVLogger writing to path.
func NewCSVLogger[B autodiff.BackwardCapable](path string) *CSVLogger[B] {
	return &CSVLogger[B]{path: path}
}

// Hooks implements training.Callback.
func (c *CSVLogger[B]) Hooks() []training.Hook[B] {
	return []training.Hook[B]{{Event: training.TrainEnd, Handler: c.onTrainEnd}}
}

func (c *CSVLogger[B]) onTrainEnd(ctx *training.Context[B]) (err error) {
	f, err := os.Create(c.path)
	if err != nil {
		return errors.Wrap(err, "csv logger")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "csv logger")
		}
	}()
	return ctx.History.WriteCSV(f)
}
