package main

import (
	"testing"

	"github.com/gogpu/raster3d"
)

func TestNewScene_Unknown(t *testing.T) {
	if _, err := newScene("teapot", sceneOptions{width: 8, height: 8}); err == nil {
		t.Error("newScene(\"teapot\") = nil error, want unknown scene")
	}
}

func TestScenes_Render(t *testing.T) {
	r := raster3d.NewRenderer(raster3d.WithWorkers(2))
	defer r.Close()

	for _, name := range []string{"suprematist", "cube", "env"} {
		t.Run(name, func(t *testing.T) {
			sc, err := newScene(name, sceneOptions{width: 64, height: 48})
			if err != nil {
				t.Fatalf("newScene() = %v", err)
			}
			fb := raster3d.NewFramebuffer(sc.width, sc.height)

			for frame := range 2 {
				if frame > 0 {
					sc.advance()
				}
				st, err := sc.render(r, fb)
				if err != nil {
					t.Fatalf("frame %d: render() = %v", frame, err)
				}
				if st.Fragments == 0 {
					t.Errorf("frame %d: no fragments written", frame)
				}
			}
		})
	}
}

func TestSuprematistScene_Aspect(t *testing.T) {
	sc := suprematistScene(sceneOptions{width: 1, height: 500})
	if sc.width != 410 || sc.height != 500 {
		t.Errorf("size = %dx%d, want 410x500", sc.width, sc.height)
	}
}
