package training_test

import (
	"testing"

	"github.com/born-ml/keras/internal/training"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "on_train_begin", training.TrainBegin.String())
	assert.Equal(t, "on_epoch_begin", training.EpochBegin.String())
	assert.Equal(t, "on_epoch_end", training.EpochEnd.String())
	assert.Equal(t, "on_train_end", training.TrainEnd.String())
}

func TestDispatcher_Order(t *testing.T) {
	var rec recorder
	var d training.Dispatcher[Backend]
	d.Register(
		training.Hooks[Backend]{
			{Event: training.EpochEnd, Handler: rec.handler("a1")},
			{Event: training.TrainBegin, Handler: rec.handler("a0")},
			{Event: training.EpochEnd, Handler: rec.handler("a2")},
		},
		nil,
		training.Hooks[Backend]{
			{Event: training.EpochEnd, Handler: rec.handler("b1")},
		},
	)

	assert.Equal(t, 1, d.Len(training.TrainBegin))
	assert.Equal(t, 3, d.Len(training.EpochEnd))
	assert.Equal(t, 0, d.Len(training.TrainEnd))

	ctx := &training.Context[Backend]{}
	assert.NoError(t, d.Fire(training.TrainBegin, ctx))
	assert.NoError(t, d.Fire(training.EpochEnd, ctx))
	assert.NoError(t, d.Fire(training.TrainEnd, ctx))
	assert.Equal(t, []string{"a0", "a1", "a2", "b1"}, rec.calls)
}

func TestDispatcher_RegisterReplaces(t *testing.T) {
	var rec recorder
	var d training.Dispatcher[Backend]
	d.Register(training.Hooks[Backend]{{Event: training.EpochBegin, Handler: rec.handler("old")}})
	d.Register(training.Hooks[Backend]{{Event: training.EpochBegin, Handler: rec.handler("new")}})

	assert.NoError(t, d.Fire(training.EpochBegin, &training.Context[Backend]{}))
	assert.Equal(t, []string{"new"}, rec.calls)
}

func TestDispatcher_FirstErrorAborts(t *testing.T) {
	var rec recorder
	var d training.Dispatcher[Backend]
	boom := errors.New("boom")
	d.Register(training.Hooks[Backend]{
		{Event: training.EpochEnd, Handler: rec.handler("first")},
		{Event: training.EpochEnd, Handler: func(*training.Context[Backend]) error { return boom }},
		{Event: training.EpochEnd, Handler: rec.handler("skipped")},
	})

	err := d.Fire(training.EpochEnd, &training.Context[Backend]{})
	assert.Same(t, boom, err)
	assert.Equal(t, []string{"first"}, rec.calls)
}
