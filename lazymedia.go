package reveal

import (
	"context"
	"fmt"
)

// Media is a loaded resource.
type Media struct {
	URL         string
	ContentType string
	Data        []byte
}

// Loader fetches a resource. Implementations must honor ctx cancellation;
// LazyMedia cancels it on Dispose.
type Loader interface {
	Load(ctx context.Context, url string) (Media, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, url string) (Media, error)

// Load calls f(ctx, url).
func (f LoaderFunc) Load(ctx context.Context, url string) (Media, error) {
	return f(ctx, url)
}

// LoadState is the observable state of a LazyMedia.
type LoadState struct {
	Requested bool
	Loaded    bool
	Failed    bool
}

type loadResult struct {
	media Media
	err   error
}

// LazyMedia defers loading a resource until Request is called, which a
// Section does the first time the media's region enters the viewport.
// The load runs on its own goroutine; its result is delivered by Update on
// the frame goroutine, so callbacks never race the host.
type LazyMedia struct {
	ID     uint32
	url    string
	loader Loader

	onLoaded func(Media)
	onError  func(error)

	state   LoadState
	media   Media
	err     error
	results chan loadResult
	cancel  context.CancelFunc

	disposed bool
}

// NewLazyMedia creates an unrequested media handle.
func NewLazyMedia(url string, loader Loader) *LazyMedia {
	return &LazyMedia{ID: nextHandleID(), url: url, loader: loader}
}

// OnLoaded registers the success callback. It runs at most once.
func (m *LazyMedia) OnLoaded(fn func(Media)) {
	m.onLoaded = fn
}

// OnError registers the failure callback. It runs at most once. A failed
// load is not retried; the placeholder stays up.
func (m *LazyMedia) OnError(fn func(error)) {
	m.onError = fn
}

// Request starts the load. Only the first call has any effect.
func (m *LazyMedia) Request() error {
	if m.disposed {
		return useAfterDispose("Request", "media", m.ID)
	}
	if m.state.Requested {
		return nil
	}
	m.state.Requested = true
	if m.loader == nil {
		m.results = make(chan loadResult, 1)
		m.results <- loadResult{err: fmt.Errorf("load %q: no loader configured", m.url)}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	results := make(chan loadResult, 1)
	m.results = results
	loader, url := m.loader, m.url
	go func() {
		media, err := loader.Load(ctx, url)
		if err != nil {
			err = fmt.Errorf("load %q: %w", url, err)
		}
		results <- loadResult{media: media, err: err}
	}()
	return nil
}

// Update delivers a finished load, if any. It never blocks.
func (m *LazyMedia) Update() {
	if m.disposed || m.results == nil {
		return
	}
	var res loadResult
	select {
	case res = <-m.results:
	default:
		return
	}
	m.results = nil
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if res.err != nil {
		m.state.Failed = true
		m.err = res.err
		if fn := m.onError; fn != nil {
			m.onError = nil
			fn(res.err)
		}
		return
	}
	m.state.Loaded = true
	m.media = res.media
	if fn := m.onLoaded; fn != nil {
		m.onLoaded = nil
		fn(res.media)
	}
}

// Pending reports whether a requested load has not been delivered yet.
func (m *LazyMedia) Pending() bool {
	return m.results != nil
}

// Placeholder reports whether consumers should still render a placeholder.
func (m *LazyMedia) Placeholder() bool {
	return !m.state.Loaded
}

// State returns a snapshot of the load state.
func (m *LazyMedia) State() LoadState {
	return m.state
}

// Media returns the loaded resource; ok is false until loaded.
func (m *LazyMedia) Media() (media Media, ok bool) {
	return m.media, m.state.Loaded
}

// Err returns the load error, if the load failed.
func (m *LazyMedia) Err() error {
	return m.err
}

// URL returns the resource URL.
func (m *LazyMedia) URL() string {
	return m.url
}

// Dispose cancels an in-flight load and drops its result and callbacks.
// Safe to call more than once.
func (m *LazyMedia) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.results = nil
	m.onLoaded = nil
	m.onError = nil
}
