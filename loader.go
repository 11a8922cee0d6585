package reveal

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"
	"sync"

	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	defaultMaxConcurrent = 4
	defaultMaxBytes      = 32 << 20
)

// HTTPLoader fetches media over HTTP. Concurrent requests for the same URL
// share one fetch, and at most MaxConcurrent fetches run at once.
type HTTPLoader struct {
	client   *http.Client
	maxBytes int64
	sem      *semaphore.Weighted
	group    singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the shared context of one URL's fetch and the number of Load
// calls waiting on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// HTTPLoaderConfig configures an HTTPLoader. Zero fields take defaults.
type HTTPLoaderConfig struct {
	// Client is the HTTP client; http.DefaultClient when nil.
	Client *http.Client
	// MaxConcurrent bounds parallel fetches. Default 4.
	MaxConcurrent int64
	// MaxBytes caps a response body. Default 32 MiB.
	MaxBytes int64
}

// NewHTTPLoader creates an HTTPLoader.
func NewHTTPLoader(cfg HTTPLoaderConfig) *HTTPLoader {
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	return &HTTPLoader{
		client:   cfg.Client,
		maxBytes: cfg.MaxBytes,
		sem:      semaphore.NewWeighted(cfg.MaxConcurrent),
		flights:  make(map[string]*flight),
	}
}

// Load fetches url. A shared fetch keeps running while any caller still
// waits on it; when the last waiter's ctx is cancelled the fetch is aborted.
func (l *HTTPLoader) Load(ctx context.Context, url string) (Media, error) {
	f := l.join(ctx, url)
	ch := l.group.DoChan(url, func() (any, error) {
		return l.fetch(f.ctx, url)
	})
	select {
	case <-ctx.Done():
		l.leave(url, f)
		return Media{}, ctx.Err()
	case res := <-ch:
		l.leave(url, f)
		if res.Err != nil {
			return Media{}, res.Err
		}
		return res.Val.(Media), nil
	}
}

func (l *HTTPLoader) join(ctx context.Context, url string) *flight {
	l.mu.Lock()
	defer l.mu.Unlock()
	f := l.flights[url]
	if f == nil {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		l.flights[url] = f
	}
	f.waiters++
	return f
}

// leave drops one waiter. The last one out cancels the fetch and forgets the
// call so a later Load starts afresh.
func (l *HTTPLoader) leave(url string, f *flight) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if l.flights[url] == f {
		delete(l.flights, url)
		l.group.Forget(url)
	}
}

func (l *HTTPLoader) fetch(ctx context.Context, url string) (Media, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return Media{}, err
	}
	defer l.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Media{}, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return Media{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Media{}, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return Media{}, err
	}
	if int64(len(data)) > l.maxBytes {
		return Media{}, fmt.Errorf("body exceeds %d bytes", l.maxBytes)
	}
	return Media{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// DecodeImage decodes loaded media as an image. PNG, JPEG, GIF and WebP are
// supported.
func DecodeImage(m Media) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(m.Data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %q: %w", m.URL, err)
	}
	return img, format, nil
}
