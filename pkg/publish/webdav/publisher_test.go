package webdav

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// davRecorder accepts MKCOL/PUT and records what the client asked for.
type davRecorder struct {
	mu       sync.Mutex
	requests []string
}

func (d *davRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.requests = append(d.requests, r.Method+" "+r.URL.Path)
	d.mu.Unlock()
	switch r.Method {
	case "MKCOL":
		w.WriteHeader(http.StatusCreated)
	case "PUT":
		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func TestNewPublisher_Validation(t *testing.T) {
	_, err := NewPublisher(Options{Owner: "ops"})
	assert.Error(t, err)

	_, err = NewPublisher(Options{Hostname: "https://dav.example.com"})
	assert.Error(t, err)
}

func TestPublish_UploadsUnderDateScopedPath(t *testing.T) {
	// Given: a recording WebDAV endpoint and a local report file
	rec := &davRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	local := filepath.Join(t.TempDir(), "某门户_2026-08-16至2026-08-22安全运维周报.docx")
	require.NoError(t, os.WriteFile(local, []byte("doc"), 0o644))

	p, err := NewPublisher(Options{Hostname: srv.URL, Login: "u", Password: "p", Owner: "ops"})
	require.NoError(t, err)

	// When
	runDate := time.Date(2026, 8, 23, 12, 0, 0, 0, time.Local)
	err = p.Publish(context.Background(), local, runDate)

	// Then
	require.NoError(t, err)
	joined := ""
	for _, r := range rec.requests {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "/report/ops/20260823/")
	assert.Contains(t, joined, "PUT")
}

func TestPublish_MissingLocalFile(t *testing.T) {
	p, err := NewPublisher(Options{Hostname: "https://dav.example.com", Owner: "ops"})
	require.NoError(t, err)

	err = p.Publish(context.Background(), filepath.Join(t.TempDir(), "absent.docx"), time.Now())

	assert.Error(t, err)
}
