package raster3d

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
	"github.com/gogpu/raster3d/internal/pipeline"
)

// ErrClosed is returned by DrawIndexed after Close.
var ErrClosed = errors.New("raster3d: renderer closed")

// Renderer executes draw calls on a pool of worker goroutines.
//
// Draws are serialised: DrawIndexed may be called from several goroutines
// but only one draw runs at a time, using every worker. Intermediate
// buffers live in an arena that is recycled between draws.
type Renderer struct {
	mu     sync.Mutex
	opts   rendererOptions
	pool   *parallel.WorkerPool
	arena  *arena.Arena
	closed bool
}

// NewRenderer creates a renderer and starts its workers.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	r := &Renderer{
		opts:  o,
		pool:  parallel.NewWorkerPool(o.workers),
		arena: arena.New(),
	}
	Logger().Info("raster3d: renderer started",
		slog.Int("workers", r.pool.Workers()),
		slog.Bool("hierarchical_z", o.hierarchicalZ),
		slog.Int("batch_size", o.batchSize),
	)
	return r
}

// Workers returns the number of worker goroutines.
func (r *Renderer) Workers() int { return r.pool.Workers() }

// DrawIndexed draws the first indexCount indices of state.IndexBuffer as a
// triangle list into state.Target.
//
// Triangles are processed in parallel and written to the framebuffer in an
// order that may differ between runs. Fragments at exactly equal depth
// therefore resolve to the last triangle in that order, which is not
// stable; give coplanar geometry distinct depths when the winner matters.
func (r *Renderer) DrawIndexed(state PipelineState, indexCount int) (DrawStats, error) {
	if err := state.Validate(indexCount); err != nil {
		Logger().Warn("raster3d: draw rejected", slog.Any("error", err))
		return DrawStats{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return DrawStats{}, ErrClosed
	}

	cfg := state.config(indexCount, &r.opts)
	st := pipeline.Draw(&cfg, r.pool, r.arena)
	r.arena.Reset()
	return newDrawStats(st), nil
}

// Close stops the workers. Close is idempotent.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.pool.Close()
	Logger().Info("raster3d: renderer closed")
}
