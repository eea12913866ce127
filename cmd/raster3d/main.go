// Command raster3d renders built-in scenes with the raster3d software
// pipeline and writes the last frame to a PNG file.
//
// Usage:
//
//	raster3d -scene cube -width 800 -height 600 -frames 60 -output cube.png
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/raster3d"
	"github.com/gogpu/raster3d/texture"
)

func main() {
	var (
		width    = flag.Int("width", 800, "image width")
		height   = flag.Int("height", 600, "image height")
		sceneArg = flag.String("scene", "cube", "scene: suprematist, cube or env")
		frames   = flag.Int("frames", 1, "frames to render; the camera turns between frames")
		workers  = flag.Int("workers", 0, "pipeline workers (0 = one per logical CPU)")
		texPath  = flag.String("texture", "", "texture or environment image (default: procedural)")
		meshPath = flag.String("mesh", "", "mesh file to draw instead of the cube (cube scene)")
		output   = flag.String("output", "raster3d.png", "output file")
		scale    = flag.Int("scale", 1, "integer upscale factor of the saved image")
		verbose  = flag.Bool("v", false, "log per-draw pipeline statistics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logCPU(logger)

	sc, err := newScene(*sceneArg, sceneOptions{
		width:   *width,
		height:  *height,
		texture: *texPath,
		mesh:    *meshPath,
		library: texture.NewLibrary(0),
	})
	if err != nil {
		log.Fatalf("Failed to set up scene: %v", err)
	}
	fb := raster3d.NewFramebuffer(sc.width, sc.height)

	r := raster3d.NewRenderer(raster3d.WithWorkers(*workers), raster3d.WithLogger(logger))
	defer r.Close()

	var total raster3d.DrawStats
	start := time.Now()
	for i := range max(*frames, 1) {
		if i > 0 {
			sc.advance()
		}
		st, err := sc.render(r, fb)
		if err != nil {
			log.Fatalf("Failed to draw frame %d: %v", i, err)
		}
		total.Add(st)
	}
	elapsed := time.Since(start)

	printStats(*sceneArg, max(*frames, 1), elapsed, total)

	if err := fb.SaveScaledPNG(*output, *scale); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d)\n", *output, sc.width*max(*scale, 1), sc.height*max(*scale, 1))
}

func logCPU(l *slog.Logger) {
	l.Info("cpu",
		slog.String("brand", cpuid.CPU.BrandName),
		slog.Int("physical_cores", cpuid.CPU.PhysicalCores),
		slog.Int("logical_cores", cpuid.CPU.LogicalCores),
		slog.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		slog.Bool("avx2", cpuid.CPU.Supports(cpuid.AVX2)),
		slog.Bool("asimd", cpuid.CPU.Supports(cpuid.ASIMD)),
	)
}

func printStats(name string, frames int, elapsed time.Duration, st raster3d.DrawStats) {
	p := message.NewPrinter(language.English)
	perFrame := elapsed / time.Duration(frames)

	p.Printf("scene %s: %d frames in %v (%v per frame, %.1f fps)\n",
		name, frames, elapsed.Round(time.Millisecond), perFrame.Round(time.Microsecond),
		float64(frames)/elapsed.Seconds())
	p.Printf("  triangles  %d submitted, %d rasterized, %d clipped, %d culled, %d rejected\n",
		st.InputTriangles, st.Triangles, st.Clipped, st.Culled, st.FrustumRejected+st.Degenerate)
	p.Printf("  bins       %d tiles, %d entries, %d hidden by depth\n",
		st.Bins, st.BinEntries, st.HierZRejected)
	p.Printf("  fragments  %d\n", st.Fragments)
}
