package paint

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// DirAssets resolves bitmap references against a directory on disk,
// decoding each image once in the background. It satisfies AssetStore.
type DirAssets struct {
	mu      sync.Mutex
	dir     string
	images  map[string]image.Image
	loading map[string]bool
	pending map[string][]func()
}

// NewDirAssets creates a DirAssets rooted at dir.
func NewDirAssets(dir string) *DirAssets {
	a := new(DirAssets)
	a.dir = dir
	a.images = make(map[string]image.Image)
	a.loading = make(map[string]bool)
	a.pending = make(map[string][]func())
	return a
}

// Image returns the decoded image for ref, starting a background load
// on first request. The second return is false until the decode
// completes.
func (a *DirAssets) Image(ref string) (image.Image, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if img, ok := a.images[ref]; ok {
		return img, true
	}
	if !a.loading[ref] {
		a.loading[ref] = true
		go a.load(ref)
	}
	return nil, false
}

// OnLoad registers fn to run when ref resolves. If the asset is already
// loaded fn runs immediately.
func (a *DirAssets) OnLoad(ref string, fn func()) {
	a.mu.Lock()
	_, loaded := a.images[ref]
	if !loaded {
		a.pending[ref] = append(a.pending[ref], fn)
	}
	a.mu.Unlock()

	if loaded {
		fn()
	}
}

func (a *DirAssets) load(ref string) {
	path := filepath.Join(a.dir, ref)
	f, err := os.Open(path)
	if err != nil {
		log.Printf("asset '%s': %v", ref, err)
		return
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Printf("asset '%s': %v", ref, err)
		return
	}

	a.mu.Lock()
	a.images[ref] = img
	callbacks := a.pending[ref]
	delete(a.pending, ref)
	a.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
