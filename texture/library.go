package texture

import (
	"fmt"
	"path/filepath"

	"github.com/gogpu/raster3d/internal/cache"
)

// DefaultLibrarySize is the number of textures a Library keeps decoded
// when created with a non-positive size.
const DefaultLibrarySize = 16

// libraryKey identifies a decoded file at one resolution. Zero width and
// height mean the native size.
type libraryKey struct {
	path          string
	width, height int
}

// Library loads image files once and keeps the most recently used
// textures decoded. It is safe for concurrent use.
type Library struct {
	textures *cache.Cache[libraryKey, *Texture]
}

// NewLibrary creates a library holding at most size textures.
func NewLibrary(size int) *Library {
	if size <= 0 {
		size = DefaultLibrarySize
	}
	return &Library{textures: cache.New[libraryKey, *Texture](size)}
}

// Load returns the texture decoded from path.
func (l *Library) Load(path string) (*Texture, error) {
	key := libraryKey{path: filepath.Clean(path)}
	return l.textures.GetOrLoad(key, func() (*Texture, error) {
		return Load(key.path)
	})
}

// LoadResized returns the texture decoded from path and resampled to
// width x height. The native-size texture is cached as well.
func (l *Library) LoadResized(path string, width, height int) (*Texture, error) {
	src, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if src.Width() == width && src.Height() == height {
		return src, nil
	}
	key := libraryKey{path: filepath.Clean(path), width: width, height: height}
	return l.textures.GetOrLoad(key, func() (*Texture, error) {
		t, err := src.Resized(width, height)
		if err != nil {
			return nil, fmt.Errorf("texture: resize %s: %w", key.path, err)
		}
		return t, nil
	})
}

// Len returns the number of textures held.
func (l *Library) Len() int { return l.textures.Len() }
