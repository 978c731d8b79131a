// Package training implements the epoch loop behind Model.Fit.
//
// The Trainer drives
//
//	TrainBegin → (EpochBegin → train pass → [validation pass] → EpochEnd)* → TrainEnd
//
// running each pass over a Loader, firing the four callback events through
// a Dispatcher, and recording one History row per epoch via the Logger.
//
// Train passes come in two modes. Fast mode scores the predictions made
// while stepping (buffered for the whole pass, scored once at the end).
// Precise mode steps through the pass and then re-scores the data with a
// separate evaluation pass, so metrics reflect the parameters after the
// last step. The two modes report different values by construction.
package training

import (
	"github.com/pkg/errors"
)

// Sentinel errors.
var (
	// ErrStopTraining is returned by an EpochEnd handler to end training
	// after the current epoch. Returned from any other event it is an error.
	ErrStopTraining = errors.New("stop training")

	// ErrUnreducedLoss reports a scalar loss where sample weights need one value per sample.
	ErrUnreducedLoss = errors.New("loss must be unreduced (ReductionNone) when using sample weights")

	// ErrSchemaMismatch reports a History row whose columns differ from the first row's.
	ErrSchemaMismatch = errors.New("history row does not match the column schema")

	// ErrEmptyDataset reports a pass over a loader that yielded no batches.
	ErrEmptyDataset = errors.New("loader yielded no batches")
)
