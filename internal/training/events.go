package training

import (
	"github.com/born-ml/keras/internal/autodiff"
)

// Event identifies a point of the training lifecycle.
type Event int

// The four lifecycle events, in the order a run fires them.
const (
	TrainBegin Event = iota
	EpochBegin
	EpochEnd
	TrainEnd

	numEvents
)

// String returns the handler name of the event.
func (e Event) String() string {
	switch e {
	case TrainBegin:
		return "on_train_begin"
	case EpochBegin:
		return "on_epoch_begin"
	case EpochEnd:
		return "on_epoch_end"
	case TrainEnd:
		return "on_train_end"
	default:
		return "unknown"
	}
}

// Handler reacts to an event. It may read and modify the context.
type Handler[B autodiff.BackwardCapable] func(ctx *Context[B]) error

// Hook binds a handler to an event.
type Hook[B autodiff.BackwardCapable] struct {
	Event   Event
	Handler Handler[B]
}

// Callback contributes hooks to a run. Hooks are registered in the order
// returned, so a callback with two EpochEnd hooks gets them called in that order.
type Callback[B autodiff.BackwardCapable] interface {
	Hooks() []Hook[B]
}

// Hooks is a Callback made of a fixed hook list.
type Hooks[B autodiff.BackwardCapable] []Hook[B]

// Hooks returns h.
func (h Hooks[B]) Hooks() []Hook[B] {
	return h
}

// Dispatcher holds the handlers of each event.
type Dispatcher[B autodiff.BackwardCapable] struct {
	handlers [numEvents][]Handler[B]
}

// Register replaces the handler table with the hooks of callbacks,
// in order across callbacks and within each callback.
func (d *Dispatcher[B]) Register(callbacks ...Callback[B]) {
	d.handlers = [numEvents][]Handler[B]{}
	for _, cb := range callbacks {
		if cb == nil {
			continue
		}
		for _, hook := range cb.Hooks() {
			if hook.Event < 0 || hook.Event >= numEvents || hook.Handler == nil {
				continue
			}
			d.handlers[hook.Event] = append(d.handlers[hook.Event], hook.Handler)
		}
	}
}

// Len returns the number of handlers registered for event.
func (d *Dispatcher[B]) Len(event Event) int {
	return len(d.handlers[event])
}

// Fire calls the handlers of event in registration order. The first handler
// returning an error aborts the firing; its error is returned as is.
func (d *Dispatcher[B]) Fire(event Event, ctx *Context[B]) error {
	for _, h := range d.handlers[event] {
		if err := h(ctx); err != nil {
			return err
		}
	}
	return nil
}
