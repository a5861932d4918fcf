package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// DefaultFetchTimeout bounds remote image downloads when the caller does not
// set ImageCache.FetchTimeout.
const DefaultFetchTimeout = 10 * time.Second

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads and network fetches.
//
// The cache stores decoded image.Image objects keyed by their source string
// (file path or URL). Once an image is loaded, subsequent calls for the same
// source return the cached copy without I/O.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). For long-running processes handling many images, consider periodic
// cleanup to prevent unbounded memory growth.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image

	// FetchTimeout bounds remote downloads made by LoadSource. Zero means
	// DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// NewImageCache creates and initializes a new empty image cache.
//
// The returned cache is ready for immediate use and is safe for concurrent
// access.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// LoadSource loads an image from a local file path or an http(s) URL.
//
// Sources starting with "http://" or "https://" are downloaded with a bounded
// timeout; anything else is treated as a filesystem path. Results are cached
// under the exact source string provided.
func (c *ImageCache) LoadSource(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return c.fetch(source)
	}
	return c.Load(source)
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Supported formats are PNG, JPEG, and GIF. The image is cached using the
// exact path string provided, so different paths to the same file result in
// separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	if img, ok := c.cached(path); ok {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	c.store(path, img)
	return img, nil
}

// fetch downloads and decodes a remote image. Non-2xx responses are errors.
func (c *ImageCache) fetch(url string) (image.Image, error) {
	if img, ok := c.cached(url); ok {
		return img, nil
	}

	timeout := c.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download image from %s: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body from %s: %w", url, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image from %s: %w", url, err)
	}

	c.store(url, img)
	return img, nil
}

func (c *ImageCache) cached(key string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[key]
	return img, ok
}

func (c *ImageCache) store(key string, img image.Image) {
	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()
}

// Clear removes all images from the cache, freeing the associated memory.
// After Clear(), all images must be reloaded on subsequent calls.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its source string.
// If the source is not in the cache, this method does nothing.
func (c *ImageCache) Evict(source string) {
	c.mu.Lock()
	delete(c.images, source)
	c.mu.Unlock()
}

// Save writes an image to the given path. The output format is chosen from
// the file extension (.png, .jpg, .jpeg, .gif, .tif, .bmp).
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image to %s: %w", path, err)
	}
	return nil
}
