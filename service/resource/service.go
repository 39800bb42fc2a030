// Package resource loads external resources through the abstract file system
// without ever touching shared state outside a drain step: the loading and
// loaded markers are both recorded via job submissions, while the download
// itself runs on its own goroutine.
package resource

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/tickq"
	"github.com/viant/tickq/service/watch"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// Resource holds the outcome of one asynchronous load. A failed download is a
// domain-level result carried in Err, never a scheduler failure.
type Resource struct {
	URL   string
	State State
	Data  []byte
	Err   error
}

// Decode unmarshals a YAML or JSON payload into target, converting loosely
// typed values on assignment.
func (r *Resource) Decode(target interface{}) error {
	if r.State != StateLoaded {
		return fmt.Errorf("resource %s is %s, not loaded", r.URL, r.State)
	}
	var raw interface{}
	if err := yaml.Unmarshal(r.Data, &raw); err != nil {
		return fmt.Errorf("failed to decode resource %s: %w", r.URL, err)
	}
	if err := toolbox.DefaultConverter.AssignConverted(target, raw); err != nil {
		return fmt.Errorf("failed to assign resource %s: %w", r.URL, err)
	}
	return nil
}

// Service tracks resource loads keyed by URL. The registry is mutated only
// inside drain jobs, so load states observed through a watch table are always
// tick-consistent.
type Service[S any] struct {
	fs        afs.Service
	mu        sync.RWMutex
	resources map[string]*Resource
}

// New creates a resource service over the supplied abstract file system;
// passing nil selects the default service with file, http and mem schemes.
func New[S any](fs afs.Service) *Service[S] {
	if fs == nil {
		fs = afs.New()
	}
	return &Service[S]{fs: fs, resources: make(map[string]*Resource)}
}

// Load begins fetching URL. The loading marker is recorded on the next drain
// step, the download runs concurrently, and the returned future resolves on
// the drain step after the download finishes. Awaiting tasks therefore see a
// registry that already reflects the final state.
func (s *Service[S]) Load(ctx context.Context, h *tickq.Handle[S], URL string) *tickq.Future[*Resource] {
	future, resolve := tickq.NewFuture[*Resource]()
	h.Post(func(S) {
		s.set(&Resource{URL: URL, State: StateLoading})
	})
	go func() {
		data, err := s.fs.DownloadWithURL(ctx, URL)
		loaded := &Resource{URL: URL, State: StateLoaded, Data: data}
		if err != nil {
			loaded = &Resource{URL: URL, State: StateFailed, Err: err}
		}
		h.Post(func(S) {
			s.set(loaded)
			resolve(loaded)
		})
	}()
	return future
}

// Lookup returns the load state of URL, for use as a watch table lookup.
func (s *Service[S]) Lookup() watch.Lookup[S, string, State] {
	return func(_ S, URL string) State {
		return s.StateOf(URL)
	}
}

// StateTable builds a watch table over load states; register it as a runtime
// ticker and subscribe with watch.Subscribe to observe state transitions.
func (s *Service[S]) StateTable() (*watch.Table[S, string, State], error) {
	return watch.NewTable[S, string, State](s.Lookup(), watch.Comparable[State]())
}

// StateOf reports the current load state of URL.
func (s *Service[S]) StateOf(URL string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if res, ok := s.resources[URL]; ok {
		return res.State
	}
	return StateUnknown
}

// Get returns the tracked resource for URL, or nil when never requested.
func (s *Service[S]) Get(URL string) *Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources[URL]
}

func (s *Service[S]) set(res *Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[res.URL] = res
}
