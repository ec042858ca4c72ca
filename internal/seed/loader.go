// Package seed loads menu documents used to (re)initialise the menu catalog.
//
// A menu document is JSON of the form {"menu": [{"id", "title", "desc", "price"}, ...]}.
// Sources are file paths or http(s) URLs and may be gzip-compressed.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/brewline/coffee-api/internal/models"
)

// DefaultTimeout bounds the download of a single remote menu document
const DefaultTimeout = 30 * time.Second

var (
	ErrNoSources   = errors.New("no menu sources provided")
	ErrInvalidItem = errors.New("invalid menu item")
	ErrDuplicateID = errors.New("duplicate menu item id")
	ErrEmptyMenu   = errors.New("menu document has no items")
)

// Loader reads menu documents from files and URLs
type Loader struct {
	client *http.Client
}

// NewLoader creates a loader whose remote fetches time out after timeout
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
	}
}

// LoadMenu reads and merges the menu documents at sources with a default loader
func LoadMenu(ctx context.Context, sources ...string) ([]models.MenuItem, error) {
	return NewLoader(DefaultTimeout).Load(ctx, sources...)
}

// loadResult holds the result of loading a single source
type loadResult struct {
	index int
	items []models.MenuItem
	err   error
}

// Load reads every source concurrently and merges the items in source order.
// Any failing source fails the whole load; an id may appear only once across sources.
func (l *Loader) Load(ctx context.Context, sources ...string) ([]models.MenuItem, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	resultChan := make(chan loadResult, len(sources))

	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		go func(index int, source string) {
			defer wg.Done()

			items, err := l.loadSource(ctx, source)
			resultChan <- loadResult{index: index, items: items, err: err}
		}(i, source)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]loadResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	seen := make(map[int64]string)
	var menu []models.MenuItem
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", sources[i], result.err)
		}
		for _, item := range result.items {
			if first, dup := seen[item.ID]; dup {
				return nil, fmt.Errorf("%w: %d in %s (first seen in %s)", ErrDuplicateID, item.ID, sources[i], first)
			}
			seen[item.ID] = sources[i]
			menu = append(menu, item)
		}
	}

	return menu, nil
}

func (l *Loader) loadSource(ctx context.Context, source string) ([]models.MenuItem, error) {
	var body io.ReadCloser
	var err error

	if isURL(source) {
		body, err = l.fetch(ctx, source)
	} else {
		body, err = os.Open(source)
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r, err := decompress(body)
	if err != nil {
		return nil, err
	}
	return ParseMenu(r)
}

// fetch downloads a remote menu document
func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// gzip bodies are unwrapped by decompress, brotli ones here
	req.Header.Set("Accept-Encoding", "br, gzip")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download menu: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		return &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}, nil
	}
	return resp.Body, nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

// decompress transparently unwraps gzip content, detected by its magic bytes,
// so both .gz files and gzip-encoded responses are handled.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read menu: %w", err)
	}
	if len(magic) < 2 || magic[0] != 0x1f || magic[1] != 0x8b {
		return br, nil
	}

	gzReader, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gzReader, nil
}

// ParseMenu decodes a menu document and checks every item
func ParseMenu(r io.Reader) ([]models.MenuItem, error) {
	var doc models.MenuFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}

	if len(doc.Menu) == 0 {
		return nil, ErrEmptyMenu
	}

	seen := make(map[int64]struct{}, len(doc.Menu))
	for i, item := range doc.Menu {
		switch {
		case item.ID <= 0:
			return nil, fmt.Errorf("%w: entry %d has no positive id", ErrInvalidItem, i)
		case strings.TrimSpace(item.Title) == "":
			return nil, fmt.Errorf("%w: item %d has no title", ErrInvalidItem, item.ID)
		case item.Price.IsNegative():
			return nil, fmt.Errorf("%w: item %d has a negative price", ErrInvalidItem, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	return doc.Menu, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
