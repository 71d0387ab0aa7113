package assets

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/sjt-catalog/internal/http"
	ioutils "github.com/handiism/sjt-catalog/internal/io"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a preload progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Request names one background to load.
type Request struct {
	// Index is the slide index the result belongs to.
	Index int

	// Ref is a local path (relative to the manager's base dir) or URL.
	Ref string
}

// Options configures a Manager.
type Options struct {
	BaseDir       string
	MaxConcurrent int
	Cols          int
	Rows          int
}

// Manager preloads slide backgrounds and turns them into thumbnails.
type Manager struct {
	opts         Options
	httpClient   *http.Client
	imageService *ioutils.ImageService

	loaded int32
	failed int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new Manager.
func NewManager(opts Options, client *http.Client, onProgress func(ProgressEvent)) *Manager {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if client == nil {
		client = http.NewClient()
	}
	return &Manager{
		opts:         opts,
		httpClient:   client,
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Load fetches every request concurrently. A background that cannot be
// loaded is reported as a warning and left out of the result; the slide
// still renders, just without an image. Only cancellation is an error.
func (m *Manager) Load(ctx context.Context, reqs []Request) (map[int]*ioutils.Thumbnail, error) {
	out := make(map[int]*ioutils.Thumbnail, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.MaxConcurrent)

	for _, req := range reqs {
		if req.Ref == "" {
			continue
		}
		g.Go(func() error {
			thumb, err := m.loadOne(ctx, req)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				atomic.AddInt32(&m.failed, 1)
				m.progress(ProgressEvent{Message: fmt.Sprintf("Background %s unavailable: %v", req.Ref, err), Level: LevelWarning})
				return nil
			}

			m.mu.Lock()
			out[req.Index] = thumb
			m.mu.Unlock()

			atomic.AddInt32(&m.loaded, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded background %s", req.Ref), Level: LevelVerbose})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(out) > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d background(s)", len(out)), Level: LevelSuccess})
	}
	return out, nil
}

// GetProgress returns how many backgrounds loaded and failed so far.
func (m *Manager) GetProgress() (loaded, failed int32) {
	return atomic.LoadInt32(&m.loaded), atomic.LoadInt32(&m.failed)
}

func (m *Manager) loadOne(ctx context.Context, req Request) (*ioutils.Thumbnail, error) {
	ref := ioutils.ResolveRef(m.opts.BaseDir, req.Ref)

	var data []byte
	var err error
	if ioutils.IsRemote(ref) {
		data, err = m.httpClient.Get(ctx, ref)
	} else {
		data, err = ioutils.ReadFile(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	return m.imageService.Thumbnail(ctx, data, m.opts.Cols, m.opts.Rows)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
