package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Image kinds, used as key prefixes.
const (
	KindSprite   = "sprites"
	KindPortrait = "portraits"
	KindTileset  = "tilesets"
)

func Key(kind, name string) string { return kind + "/" + name }

// Loader builds the game's images off the game thread and reports when they
// are ready. Images are plain image.Image; front-ends convert them.
type Loader struct {
	// Dir is searched for PNG overrides named <kind>/<name>.png.
	Dir    string
	Logger *log.Logger

	ready   atomic.Bool
	mu      sync.RWMutex
	images  map[string]image.Image
	palette Palette
	err     error
	once    sync.Once
	done    chan struct{}
}

func NewLoader(dir string, logger *log.Logger) *Loader {
	return &Loader{Dir: dir, Logger: logger, images: map[string]image.Image{}, done: make(chan struct{})}
}

// Start loads in the background. Ready flips once it finishes, even on
// error, so the game can still run with whatever loaded.
func (l *Loader) Start() {
	l.once.Do(func() {
		go func() {
			defer close(l.done)
			if err := l.load(); err != nil {
				l.warnf("assets: %v", err)
				l.mu.Lock()
				l.err = err
				l.mu.Unlock()
			}
			l.ready.Store(true)
		}()
	})
}

// Load runs synchronously.
func (l *Loader) Load() error {
	l.Start()
	<-l.done
	return l.Err()
}

func (l *Loader) Ready() bool { return l.ready.Load() }

func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

func (l *Loader) Palette() Palette {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.palette
}

func (l *Loader) Image(key string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[key]
	return img, ok
}

// Keys lists loaded image keys in order.
func (l *Loader) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.images))
	for k := range l.images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Portraits resolves dialogue portrait names.
func (l *Loader) Portraits() Namespace { return Namespace{loader: l, kind: KindPortrait} }

// Namespace looks up images of one kind by bare name.
type Namespace struct {
	loader *Loader
	kind   string
}

func (n Namespace) HasImage(name string) bool {
	if n.loader == nil || name == "" {
		return false
	}
	_, ok := n.loader.Image(Key(n.kind, name))
	return ok
}

func (l *Loader) load() error {
	p, err := LoadPalette()
	if err != nil {
		return err
	}
	images := map[string]image.Image{}

	for name, sw := range p.Sprites {
		body, trim, err := swatchColors(sw)
		if err != nil {
			return fmt.Errorf("sprite %s: %w", name, err)
		}
		images[Key(KindSprite, name)] = walkSheet(p.FrameW, p.FrameH, body, trim)
	}
	for name, sw := range p.Portraits {
		body, trim, err := swatchColors(sw)
		if err != nil {
			return fmt.Errorf("portrait %s: %w", name, err)
		}
		images[Key(KindPortrait, name)] = portrait(p.PortraitSize, body, trim)
	}
	for name, names := range p.Tilesets {
		colors := make([]color.RGBA, len(names))
		for i, n := range names {
			c, err := ParseColor(n)
			if err != nil {
				return fmt.Errorf("tileset %s: %w", name, err)
			}
			colors[i] = c
		}
		images[Key(KindTileset, name)] = tileStrip(p.FrameW, colors)
	}

	if l.Dir != "" {
		for _, kind := range []string{KindSprite, KindPortrait, KindTileset} {
			matches, _ := filepath.Glob(filepath.Join(l.Dir, kind, "*.png"))
			for _, path := range matches {
				img, err := decodePNG(path)
				if err != nil {
					l.warnf("assets: %s: %v", path, err)
					continue
				}
				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				images[Key(kind, name)] = img
			}
		}
	}

	l.mu.Lock()
	l.palette = p
	l.images = images
	l.mu.Unlock()
	return nil
}

func swatchColors(sw Swatch) (color.RGBA, color.RGBA, error) {
	body, err := ParseColor(sw.Body)
	if err != nil {
		return color.RGBA{}, color.RGBA{}, err
	}
	trim, err := ParseColor(sw.Trim)
	if err != nil {
		return color.RGBA{}, color.RGBA{}, err
	}
	return body, trim, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func (l *Loader) warnf(format string, args ...any) {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("warn: "+format, args...)
}
