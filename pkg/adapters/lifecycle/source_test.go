package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notelifecycle "github.com/aretw0/notemeta/pkg/adapters/lifecycle"
	"github.com/aretw0/notemeta/pkg/core"
)

func TestSource_Forwards(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 1)
	src := notelifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))
	assert.ErrorIs(t, src.Start(ctx), notelifecycle.ErrStarted)

	in <- core.Event{Type: core.EventModify, Path: "notes/a.md"}

	select {
	case e := <-src.Events():
		assert.Equal(t, "MODIFY notes/a.md", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for forwarded event")
	}

	close(in)
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output must close after input closes")
	case <-time.After(2 * time.Second):
		t.Fatal("output channel was not closed")
	}
}

func TestSource_FiltersTypes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 3)
	in <- core.Event{Type: core.EventDelete, Path: "a.md"}
	in <- core.Event{Type: core.EventCreate, Path: "b.md"}
	in <- core.Event{Type: core.EventModify, Path: "c.md"}
	close(in)

	src := notelifecycle.NewSource(in, core.EventCreate, core.EventModify)
	require.NoError(t, src.Start(ctx))

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"CREATE b.md", "MODIFY c.md"}, got)
}

func TestSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := notelifecycle.NewSource(make(chan core.Event))
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("output channel was not closed after cancel")
	}
}
