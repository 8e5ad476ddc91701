package http_server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	gojson "github.com/goccy/go-json"
	"github.com/golang/mock/gomock"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/service"
	"github.com/dayanaadylkhanova/barnum/internal/widget"
)

func TestPages_AllSectionsBuild(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	seen := map[string]bool{}
	for _, p := range Pages() {
		if seen[p.Path] {
			t.Fatalf("duplicate page %q", p.Path)
		}
		seen[p.Path] = true
		for _, s := range p.Sections {
			if _, err := buildSection(srv.WidgetDeps(), s); err != nil {
				t.Fatalf("page %s: %v", p.Path, err)
			}
		}
	}
	for _, path := range []string{"/", "/ma-gendarmerie", "/perceval", "/pre-plainte-en-ligne", "/recrutement",
		"/site-web", "/service-public-plus", "/reseaux-sociaux", "/iggn"} {
		if !seen[path] {
			t.Fatalf("missing page %q", path)
		}
	}
}

// recordingSource serves widget fetches from the API router and keeps the
// status of every call.
type recordingSource struct {
	h      http.Handler
	mu     sync.Mutex
	status map[string]int
}

func (s *recordingSource) Fetch(ctx context.Context, path string) (any, error) {
	req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	s.mu.Lock()
	s.status[path] = rec.Code
	s.mu.Unlock()
	var v any
	err := gojson.Unmarshal(rec.Body.Bytes(), &v)
	return v, err
}

// Every widget of every page must fetch a catalogue route with valid
// parameters.
func TestPages_WidgetURLsExist(t *testing.T) {
	srv, store := newTestServer(t, Options{})
	store.EXPECT().Select(gomock.Any(), gomock.Any()).Return([]entity.Row{}, nil).AnyTimes()

	internal := chi.NewRouter()
	internal.Mount("/api", srv.api)
	src := &recordingSource{h: internal, status: map[string]int{}}
	deps := srv.WidgetDeps()
	deps.Source = src

	for _, p := range Pages() {
		for _, s := range p.Sections {
			g, err := buildSection(deps, s)
			if err != nil {
				t.Fatalf("page %s: %v", p.Path, err)
			}
			_ = g.Init(context.Background())
		}
	}
	if len(src.status) == 0 {
		t.Fatalf("no fetch recorded")
	}
	for path, code := range src.status {
		switch code {
		case http.StatusOK:
		case http.StatusNotFound:
			if !strings.Contains(path, "map-detail") && !strings.Contains(path, "/iggn/") {
				t.Fatalf("%s: no route", path)
			}
		default:
			t.Fatalf("%s: status %d", path, code)
		}
	}
}

func TestPage_Render(t *testing.T) {
	srv, store := newTestServer(t, Options{})
	store.EXPECT().Select(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q service.Query) ([]entity.Row, error) {
			switch {
			case strings.Contains(q.Name, "n-signalements-total"):
				return []entity.Row{{"n_signalements_total": int64(516957)}}, nil
			case q.Name == "perceval/map":
				return []entity.Row{{"geo_dpt_iso": "FR-69", "geo_dpt_name": "Rhône", "n_signalements": int64(10)}}, nil
			default:
				return []entity.Row{}, nil
			}
		}).AnyTimes()

	rec := do(t, srv.Handler(), "/perceval", map[string]string{"Accept": "text/html"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Perceval |",
		`aria-current="page">Perceval</a>`,
		"Signalements par département",
		`class="chart-parent"`,
		`class="map-parent"`,
		"#FR-69 { fill: #000091; }",
		"Compte National",
		widget.Placeholder,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page misses %q", want)
		}
	}
}

func TestWidgetRoute(t *testing.T) {
	srv, store := newTestServer(t, Options{})
	store.EXPECT().Select(gomock.Any(), gomock.Any()).
		Return([]entity.Row{{"age_cat": "00", "n_signalements": int64(3)}, {"age_cat": "15-24", "n_signalements": int64(1)}}, nil)

	rec := do(t, srv.Handler(), "/widgets/category-chart?data-url=/api/perceval/age-category&data-transform=percevalAgeCat&tag=week", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "00-14") || !strings.Contains(rec.Body.String(), "75.0%") {
		t.Fatalf("unexpected fragment %q", rec.Body.String())
	}

	if rec := do(t, srv.Handler(), "/widgets/pie-chart", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown kind, got %d", rec.Code)
	}
	if rec := do(t, srv.Handler(), "/widgets/category-chart", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing attributes, got %d", rec.Code)
	}
}

func TestWidgetRoute_UpdateFailureRendersPlaceholder(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	rec := do(t, srv.Handler(), "/widgets/timeline-chart?url=/api/perceval/signalements-timeline&label-key=time_dim&value-key=n_signalements&start=2022-05-01&end=2022-01-01", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), widget.Placeholder) {
		t.Fatalf("expected placeholder, got %d %q", rec.Code, rec.Body.String())
	}
}
