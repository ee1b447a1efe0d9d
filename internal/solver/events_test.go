package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manukrishna804/logic-solver-ai/internal/logging"
	"github.com/manukrishna804/logic-solver-ai/internal/streaming"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

func subscribe(t *testing.T, hub *streaming.MemoryHub) <-chan streaming.Event {
	t.Helper()
	ch, cancel, err := hub.Subscribe(context.Background(), streaming.EventFilter{})
	require.NoError(t, err)
	t.Cleanup(cancel)
	return ch
}

func nextEvent(t *testing.T, ch <-chan streaming.Event) streaming.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return streaming.Event{}
	}
}

func TestEvents_PublishedWithHistory(t *testing.T) {
	hub := streaming.NewMemoryHub()
	ch := subscribe(t, hub)
	st := &memStore{}
	svc := New(Options{Store: st, Events: hub, Logger: quietLogger()})

	ctx := logging.WithRequestID(context.Background(), "req-7")
	_, err := svc.Flowchart(ctx, schema.FlowchartRequest{Algorithm: "1. Read n\n2. Print n"})
	require.NoError(t, err)

	ev := nextEvent(t, ch)
	assert.Equal(t, streaming.EventGenerated, ev.Type)
	assert.Equal(t, schema.KindFlowchart, ev.Kind)
	assert.Equal(t, schema.SourceFallback, ev.Source)
	assert.Equal(t, "req-7", ev.RequestID)

	gens := st.all()
	require.Len(t, gens, 1)
	assert.Equal(t, gens[0].ID, ev.GenerationID)
}

func TestEvents_PublishedWithoutHistory(t *testing.T) {
	hub := streaming.NewMemoryHub()
	ch := subscribe(t, hub)
	svc := New(Options{Generator: &fakeGenerator{text: "x = 1"}, Events: hub, Logger: quietLogger()})

	_, err := svc.Code(context.Background(), schema.CodeRequest{Algorithm: "1. Set x"})
	require.NoError(t, err)

	ev := nextEvent(t, ch)
	assert.Equal(t, schema.KindCode, ev.Kind)
	assert.Equal(t, schema.SourceAI, ev.Source)
	assert.Empty(t, ev.GenerationID, "unsaved generations carry no ID")
}

func TestEvents_SaveFailureStillPublishes(t *testing.T) {
	hub := streaming.NewMemoryHub()
	ch := subscribe(t, hub)
	st := &memStore{saveErr: errors.New("disk full")}
	svc := New(Options{Store: st, Events: hub, Logger: quietLogger()})

	_, err := svc.Flowchart(context.Background(), schema.FlowchartRequest{Algorithm: "1. Read n"})
	require.NoError(t, err)

	ev := nextEvent(t, ch)
	assert.Equal(t, schema.KindFlowchart, ev.Kind)
	assert.Empty(t, ev.GenerationID)
}

func TestEvents_CleanAndRenderPublishNothing(t *testing.T) {
	hub := streaming.NewMemoryHub()
	ch := subscribe(t, hub)
	svc := New(Options{Events: hub, Logger: quietLogger()})
	ctx := context.Background()

	_, err := svc.Clean(ctx, schema.CleanRequest{Code: "x = 1"})
	require.NoError(t, err)
	_, err = svc.Render(ctx, schema.RenderRequest{Algorithm: "1. Read n"})
	require.NoError(t, err)

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
