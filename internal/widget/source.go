package widget

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	gojson "github.com/goccy/go-json"
)

//go:generate mockgen -source=source.go -destination=mock_source.go -package=widget

var ErrFetch = errors.New("widget data fetch failed")

// Source fetches and decodes one API response. path is the API path with
// its query string, e.g. "/api/perceval/map".
type Source interface {
	Fetch(ctx context.Context, path string) (any, error)
}

// HTTPSource fetches from a remote API.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	// Username and Password, when set, are sent as basic auth.
	Username string
	Password string
}

func (s HTTPSource) Fetch(ctx context.Context, path string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(s.BaseURL, "/")+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.Password != "" {
		req.SetBasicAuth(s.Username, s.Password)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	defer resp.Body.Close()
	return decode(path, resp.StatusCode, resp.Body)
}

// HandlerSource serves fetches from an in-process handler, without a
// network round trip.
type HandlerSource struct {
	Handler http.Handler
}

// Fetch routes path on its own chi context. ctx usually belongs to a page
// request that is still being routed, and chi reuses a route context found
// in the request context.
func (s HandlerSource) Fetch(ctx context.Context, path string) (any, error) {
	ctx = context.WithValue(ctx, chi.RouteCtxKey, (*chi.Context)(nil))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	rw := &bufferWriter{header: http.Header{}, status: http.StatusOK}
	s.Handler.ServeHTTP(rw, req)
	return decode(path, rw.status, &rw.body)
}

// decode reads a JSON body. Lookup misses answer 404 with an empty object,
// which is data, not a failure.
func decode(path string, status int, body io.Reader) (any, error) {
	if status >= 400 && status != http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, path, status)
	}
	var v any
	if err := gojson.NewDecoder(body).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	return v, nil
}

type bufferWriter struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func (w *bufferWriter) Header() http.Header { return w.header }

func (w *bufferWriter) Write(p []byte) (int, error) {
	w.wroteHeader = true
	return w.body.Write(p)
}

func (w *bufferWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
}
