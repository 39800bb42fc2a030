package resource

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/tickq"
	"github.com/viant/tickq/service/watch"
)

type hostState struct{}

func newHarness(t *testing.T) (*tickq.Runtime[*hostState], *Service[*hostState]) {
	t.Helper()
	svc := tickq.New[*hostState](tickq.WithClock[*hostState](tickq.NewManualClock()))
	return svc.Runtime(), New[*hostState](nil)
}

// stepUntil drives the runtime until cond holds or the test times out.
func stepUntil(t *testing.T, rt *tickq.Runtime[*hostState], cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rt.Step(context.Background(), &hostState{})
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out driving the runtime")
}

func TestService_LoadSuccess(t *testing.T) {
	ctx := context.Background()
	rt, resources := newHarness(t)
	fs := afs.New()

	URL := "mem://localhost/tickq/asset.yaml"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader("name: tower\ncount: 3\n")))

	future := resources.Load(ctx, rt.NewHandle(), URL)
	stepUntil(t, rt, func() bool { return resources.StateOf(URL) == StateLoaded })

	res, err := future.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateLoaded, res.State)
	assert.NoError(t, res.Err)

	var decoded struct {
		Name  string
		Count int
	}
	require.NoError(t, res.Decode(&decoded))
	assert.Equal(t, "tower", decoded.Name)
	assert.Equal(t, 3, decoded.Count)
}

func TestService_LoadFailureIsAValue(t *testing.T) {
	ctx := context.Background()
	rt, resources := newHarness(t)

	URL := "mem://localhost/tickq/absent.yaml"
	future := resources.Load(ctx, rt.NewHandle(), URL)
	stepUntil(t, rt, func() bool { return resources.StateOf(URL) == StateFailed })

	res, err := future.Wait(ctx)
	require.NoError(t, err, "a failed download is a domain result, not a scheduler error")
	assert.Equal(t, StateFailed, res.State)
	assert.Error(t, res.Err)
	assert.Error(t, res.Decode(&struct{}{}))
}

func TestService_WatchLoadStates(t *testing.T) {
	ctx := context.Background()
	rt, resources := newHarness(t)

	table, err := resources.StateTable()
	require.NoError(t, err)
	rt.RegisterTicker(table)

	URL := "mem://localhost/tickq/watched.yaml"
	h := rt.NewHandle()
	stream := watch.Subscribe(h, table, URL)
	rt.Step(ctx, &hostState{})

	// Drive the registry through the transitions a Load performs, one tick
	// apart, so every intermediate state is observable.
	h.Post(func(*hostState) { resources.set(&Resource{URL: URL, State: StateLoading}) })
	rt.Step(ctx, &hostState{})
	h.Post(func(*hostState) { resources.set(&Resource{URL: URL, State: StateLoaded}) })
	rt.Step(ctx, &hostState{})
	rt.Step(ctx, &hostState{})

	var observed []State
	for len(observed) < 3 {
		value, err := stream.Next(ctx)
		require.NoError(t, err)
		observed = append(observed, value)
	}
	assert.Equal(t, []State{StateUnknown, StateLoading, StateLoaded}, observed)
}
