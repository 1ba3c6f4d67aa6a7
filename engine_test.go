package loom

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestEngine(t *testing.T) *Engine {
	t.Helper()
	desc, err := FromYAML([]byte(appYAML))
	require.NoError(t, err)
	e, err := Build(desc, WithTransforms(countTransforms()), WithSize(40, 10))
	require.NoError(t, err)
	return e
}

func TestEngine_InjectKeyEndToEnd(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()

	// Key -> event -> handler -> store -> binding -> layout, in one tick.
	e.Bus().Subscribe(tree.Root(), "increment", func(*Event) {
		e.Store().Update("count", func(v any) any { return v.(int) + 1 })
	})

	e.InjectKey(MustChord("ctrl+n"))
	require.True(t, e.Step())

	v, ok := e.GetState("count")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	status, _ := tree.FindByID("status")
	c, err := tree.Get(status)
	require.NoError(t, err)
	assert.Equal(t, "count: 1", c.Text())
	assert.False(t, tree.Dirty(), "tick must end with fresh layout")
}

func TestEngine_StepEmptyQueue(t *testing.T) {
	e := buildTestEngine(t)
	assert.False(t, e.Step())
}

func TestEngine_DefaultNavigation(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()
	one, _ := tree.FindByID("one")
	two, err := tree.FindByPath("list.two")
	require.NoError(t, err)

	step := func(chord string) {
		e.InjectKey(MustChord(chord))
		require.True(t, e.Step())
	}

	// Tab enters the cycle at the first focusable item.
	step("tab")
	assert.Equal(t, one, e.Focus().Focused())

	step("tab")
	assert.Equal(t, two, e.Focus().Focused())

	step("shift+tab")
	assert.Equal(t, one, e.Focus().Focused())

	// Arrows navigate the column container directly.
	step("down")
	assert.Equal(t, two, e.Focus().Focused())

	// Escape clears focus.
	step("escape")
	assert.Equal(t, NodeRef(0), e.Focus().Focused())
}

func TestEngine_UnboundKeyDeliveredRaw(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()
	one, _ := tree.FindByID("one")

	var got []*Event
	e.Bus().Subscribe(tree.Root(), EventKey, func(ev *Event) { got = append(got, ev) })

	step := func(chord string) {
		e.InjectKey(MustChord(chord))
		require.True(t, e.Step())
	}

	// Nothing focused: the raw key originates at the root.
	step("q")
	require.Len(t, got, 1)
	assert.Equal(t, MustChord("q"), got[0].Data)
	assert.Equal(t, tree.Root(), got[0].Origin)

	// Bound chords and default navigation never surface as raw keys.
	step("ctrl+n")
	step("tab")
	require.Len(t, got, 1)

	// With focus, the raw key bubbles up from the focused component.
	step("q")
	require.Len(t, got, 2)
	assert.Equal(t, one, got[1].Origin)
}

func TestEngine_EnterTogglesActivation(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()
	one, _ := tree.FindByID("one")
	list, _ := tree.FindByID("list")

	var events []string
	e.Bus().Subscribe(one, EventActivate, func(*Event) { events = append(events, "activate") })
	e.Bus().Subscribe(one, EventDeactivate, func(*Event) { events = append(events, "deactivate") })

	step := func(chord string) {
		e.InjectKey(MustChord(chord))
		require.True(t, e.Step())
	}

	step("tab") // focus one
	step("enter")
	group := tree.mustGet(list).Group()
	assert.True(t, group.IsActive(one))

	// single_null allows toggling back off.
	step("enter")
	assert.False(t, group.IsActive(one))
	assert.Equal(t, []string{"activate", "deactivate"}, events)
}

func TestEngine_InjectResize(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()

	resized := false
	e.Bus().Subscribe(tree.Root(), EventResize, func(ev *Event) {
		resized = true
		assert.Equal(t, Size{Width: 80, Height: 24}, ev.Data)
	})

	e.InjectResize(80, 24)
	require.True(t, e.Step())

	assert.True(t, resized)
	status, _ := tree.FindByID("status")
	geo, err := e.GetGeometry(status)
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 0, 80, 1), geo)
}

func TestEngine_InjectStateUpdate(t *testing.T) {
	e := buildTestEngine(t)

	e.InjectStateUpdate("count", 7)
	require.True(t, e.Step())

	status, _ := e.Tree().FindByID("status")
	c, err := e.Tree().Get(status)
	require.NoError(t, err)
	assert.Equal(t, "count: 7", c.Text())
}

func TestEngine_Snapshot(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()
	one, _ := tree.FindByID("one")
	require.NoError(t, e.Focus().SetFocus(one))

	views := e.Snapshot()
	require.Len(t, views, 5)

	byPath := make(map[string]ComponentView, len(views))
	for _, v := range views {
		byPath[v.Path] = v
	}
	status := byPath["status"]
	assert.Equal(t, "count: 0", status.DisplayText)
	assert.Equal(t, NewRect(0, 0, 40, 1), status.Geometry)
	assert.True(t, byPath["list.one"].Focused)
	assert.False(t, byPath["list.two"].Focused)

	// Mutating a snapshot's maps does not touch the live component.
	if status.Props == nil {
		status.Props = map[string]any{}
	}
	status.Props["injected"] = true
	c, _ := tree.Get(byPath["status"].Ref)
	_, leaked := c.Property("injected")
	assert.False(t, leaked)
}

func TestEngine_SnapshotOmitsHidden(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()
	status, _ := tree.FindByID("status")
	tree.mustGet(status).SetVisible(false)

	// Hiding the first child must not swallow the siblings after it.
	views := e.Snapshot()
	require.Len(t, views, 4) // root, list, and both list items
	paths := make([]string, len(views))
	for i, v := range views {
		paths[i] = v.Path
	}
	assert.NotContains(t, paths, "status")
	assert.Contains(t, paths, "list.one")
	assert.Contains(t, paths, "list.two")
}

func TestEngine_MountUnmountEvents(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()
	root := tree.Root()

	var events []string
	e.Bus().Subscribe(root, Wildcard, func(ev *Event) {
		if ev.Type == EventMount || ev.Type == EventUnmount {
			events = append(events, ev.Type)
		}
	})

	ref, err := tree.Insert(root, NewItem("transient"))
	require.NoError(t, err)
	require.NoError(t, tree.Remove(ref))

	assert.Equal(t, []string{EventMount, EventUnmount}, events)
}

func TestEngine_TaskCompletionRunsOnTick(t *testing.T) {
	e := buildTestEngine(t)

	ch := make(chan int, 1)
	got := 0
	e.StartTask(0, NewChannelTask(ch, func(v int) { got = v }))
	ch <- 41

	require.Eventually(t, func() bool { return e.Step() }, time.Second, time.Millisecond)
	assert.Equal(t, 41, got)
}

func TestEngine_TaskCompletionDiscardedAfterRemoval(t *testing.T) {
	e := buildTestEngine(t)
	tree := e.Tree()
	owner, err := tree.Insert(tree.Root(), NewItem("worker"))
	require.NoError(t, err)

	ch := make(chan int, 1)
	ran := false
	e.StartTask(owner, NewChannelTask(ch, func(int) { ran = true }))

	require.NoError(t, tree.Remove(owner))
	ch <- 1

	require.Eventually(t, func() bool { return e.Step() }, time.Second, time.Millisecond)
	assert.False(t, ran, "completion for a removed owner must be discarded")
}

func TestEngine_TimerTask(t *testing.T) {
	e := buildTestEngine(t)

	ticks := 0
	e.StartTask(0, OnTimer(time.Millisecond, func() { ticks++ }))
	defer e.Close()

	require.Eventually(t, func() bool {
		e.Step()
		return ticks > 0
	}, time.Second, time.Millisecond)
}

func TestEngine_RunStopsOnCancel(t *testing.T) {
	e := buildTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	e.InjectStateUpdate("count", 3)
	require.Eventually(t, func() bool {
		v, _ := e.GetState("count")
		return v == 3
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
