package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseMenu = `{"menu": [
	{"id": 1, "title": "Bryggkaffe", "desc": "Bryggd på månadens bönor.", "price": 39},
	{"id": 2, "title": "Caffè Doppio", "desc": "Bryggd på månadens bönor.", "price": 49}
]}`

const seasonalMenu = `{"menu": [
	{"id": 10, "title": "Pepparkakslatte", "desc": "Endast i december.", "price": "59.50"}
]}`

func gzipped(t *testing.T, s string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadMenu_File(t *testing.T) {
	path := writeFile(t, "menu.json", []byte(baseMenu))

	items, err := LoadMenu(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "Caffè Doppio", items[1].Title)
	assert.Equal(t, "49", items[1].Price.String())
}

func TestLoadMenu_GzipFile(t *testing.T) {
	path := writeFile(t, "menu.json.gz", gzipped(t, baseMenu))

	items, err := LoadMenu(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestLoadMenu_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/menu.json":
			_, _ = w.Write([]byte(baseMenu))
		case "/seasonal.json.gz":
			w.Header().Set("Content-Type", "application/gzip")
			_, _ = w.Write(gzipped(t, seasonalMenu))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	items, err := LoadMenu(context.Background(), srv.URL+"/menu.json", srv.URL+"/seasonal.json.gz")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(10), items[2].ID)
	assert.Equal(t, "59.5", items[2].Price.String())

	_, err = LoadMenu(context.Background(), srv.URL+"/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 404")
}

func TestLoadMenu_EncodedResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/br" && strings.Contains(r.Header.Get("Accept-Encoding"), "br"):
			w.Header().Set("Content-Encoding", "br")
			bw := brotli.NewWriter(w)
			_, _ = bw.Write([]byte(baseMenu))
			_ = bw.Close()
		case r.URL.Path == "/gzip":
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(gzipped(t, seasonalMenu))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	items, err := LoadMenu(context.Background(), srv.URL+"/br")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = LoadMenu(context.Background(), srv.URL+"/gzip")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pepparkakslatte", items[0].Title)
}

func TestLoader_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewLoader(50*time.Millisecond).Load(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestLoadMenu_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sources func(t *testing.T) []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no sources",
			sources: func(t *testing.T) []string { return nil },
			wantErr: ErrNoSources,
		},
		{
			name:    "missing file",
			sources: func(t *testing.T) []string { return []string{"/non/existent/menu.json"} },
			wantMsg: "no such file",
		},
		{
			name: "duplicate across sources",
			sources: func(t *testing.T) []string {
				return []string{writeFile(t, "a.json", []byte(baseMenu)), writeFile(t, "b.json", []byte(baseMenu))}
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "one bad source fails the load",
			sources: func(t *testing.T) []string {
				return []string{writeFile(t, "a.json", []byte(baseMenu)), writeFile(t, "b.json", []byte("not json"))}
			},
			wantMsg: "failed to decode menu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMenu(context.Background(), tt.sources(t)...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseMenu(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"empty menu", `{"menu": []}`, ErrEmptyMenu},
		{"missing id", `{"menu": [{"title": "t", "price": 1}]}`, ErrInvalidItem},
		{"missing title", `{"menu": [{"id": 1, "price": 1}]}`, ErrInvalidItem},
		{"negative price", `{"menu": [{"id": 1, "title": "t", "price": -1}]}`, ErrInvalidItem},
		{"duplicate id", `{"menu": [{"id": 1, "title": "a", "price": 1}, {"id": 1, "title": "b", "price": 2}]}`, ErrDuplicateID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMenu(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMenu_BundledMenu(t *testing.T) {
	path := filepath.Join("..", "..", "data", "menu.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("skipping test: %s not found", path)
	}

	items, err := LoadMenu(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}
