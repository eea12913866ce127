package raster3d

import (
	"log/slog"

	"github.com/gogpu/raster3d/internal/pipeline"
)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// Default: one worker per CPU, hierarchical depth on
//	r := raster3d.NewRenderer()
//
//	// Four workers, larger parallel chunks
//	r := raster3d.NewRenderer(raster3d.WithWorkers(4), raster3d.WithBatchSize(1024))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers       int
	hierarchicalZ bool
	batchSize     int
	logger        *slog.Logger
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers:       0, // GOMAXPROCS
		hierarchicalZ: true,
		batchSize:     pipeline.DefaultGrain,
	}
}

// WithWorkers sets the number of pipeline worker goroutines.
// Values <= 0 select runtime.GOMAXPROCS(0).
//
// Example:
//
//	r := raster3d.NewRenderer(raster3d.WithWorkers(runtime.NumCPU()))
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithHierarchicalZ enables or disables per-tile depth rejection in the
// rasterizer. Output is identical either way; disabling it only costs time.
func WithHierarchicalZ(enabled bool) RendererOption {
	return func(o *rendererOptions) {
		o.hierarchicalZ = enabled
	}
}

// WithBatchSize sets the number of items (records, triangles) handed to a
// worker per parallel chunk. Values <= 0 keep the default.
func WithBatchSize(n int) RendererOption {
	return func(o *rendererOptions) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithLogger installs l as the package logger when the Renderer is
// created. It is shorthand for calling SetLogger before NewRenderer.
//
// Example:
//
//	r := raster3d.NewRenderer(raster3d.WithLogger(slog.Default()))
func WithLogger(l *slog.Logger) RendererOption {
	return func(o *rendererOptions) {
		o.logger = l
	}
}
