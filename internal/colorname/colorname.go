// Package colorname looks up human-friendly names for hex colors. Lookups are
// best effort: every failure yields an empty name.
package colorname

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/metafates/gache"
	"github.com/spf13/afero"
)

type Options struct {
	Endpoint   string
	CachePath  string // empty disables the disk cache
	CacheTTL   time.Duration
	FileSystem afero.Fs // defaults to the OS filesystem
	HTTPClient *http.Client
}

type Client struct {
	endpoint string
	http     *http.Client
	cache    *gache.Cache[map[string]string]
	mu       sync.Mutex
}

type lookupResponse struct {
	Name struct {
		Value string `json:"value"`
	} `json:"name"`
}

func New(opts Options) *Client {
	c := &Client{
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		http:     opts.HTTPClient,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 5 * time.Second}
	}

	if opts.CachePath != "" {
		fs := opts.FileSystem
		if fs == nil {
			fs = afero.NewOsFs()
		}
		c.cache = gache.New[map[string]string](&gache.Options{
			Path:       opts.CachePath,
			Lifetime:   opts.CacheTTL,
			FileSystem: &gacheFs{fs: fs},
		})
	}
	return c
}

// Name returns the display name for a hex color, or "" when unknown
func (c *Client) Name(ctx context.Context, hex palette.Color) string {
	key, ok := cacheKey(hex)
	if !ok {
		return ""
	}

	if name, ok := c.cached(key); ok {
		return name
	}

	name, err := c.fetch(ctx, key)
	if err != nil {
		log.Printf("Color names: lookup of %s failed: %v", key, err)
		return ""
	}

	c.store(key, name)
	return name
}

// Names looks up every color of a palette, in order
func (c *Client) Names(ctx context.Context, colors []palette.Color) []string {
	names := make([]string, len(colors))
	for i, color := range colors {
		names[i] = c.Name(ctx, color)
	}
	return names
}

// cacheKey normalises #RGB and #RRGGBB in any case to upper-case RRGGBB
func cacheKey(hex palette.Color) (string, bool) {
	col, err := colorful.Hex(strings.ToLower(palette.Normalize(hex)))
	if err != nil {
		return "", false
	}
	return strings.ToUpper(strings.TrimPrefix(col.Hex(), "#")), true
}

func (c *Client) fetch(ctx context.Context, key string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("no endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/id?hex="+url.QueryEscape(key), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if decoded.Name.Value == "" {
		return "", fmt.Errorf("response has no name")
	}
	return decoded.Name.Value, nil
}

func (c *Client) cached(key string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	names, expired, err := c.cache.Get()
	if err != nil || expired || names == nil {
		return "", false
	}
	name, ok := names[key]
	return name, ok
}

func (c *Client) store(key, name string) {
	if c.cache == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	names, expired, err := c.cache.Get()
	if err != nil || expired || names == nil {
		names = make(map[string]string)
	}
	names[key] = name
	if err := c.cache.Set(names); err != nil {
		log.Printf("Color names: failed to update cache: %v", err)
	}
}

// gacheFs lets gache persist through an afero filesystem
type gacheFs struct {
	fs afero.Fs
}

func (g *gacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return g.fs.OpenFile(name, flag, perm)
}

func (g *gacheFs) MkdirAll(path string, perm os.FileMode) error {
	return g.fs.MkdirAll(path, perm)
}
