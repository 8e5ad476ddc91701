package http_server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dayanaadylkhanova/barnum/internal/service"
)

// Dispatcher runs one catalogue endpoint.
type Dispatcher interface {
	Dispatch(ctx context.Context, ep service.Endpoint, p service.Params) (service.Result, error)
}

type endpointInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
}

// newAPIRouter mounts one GET route per catalogue endpoint, relative to /api.
func newAPIRouter(log *zap.Logger, cat service.Catalogue, disp Dispatcher) *chi.Mux {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	var index []endpointInfo
	for _, ep := range cat.Endpoints() {
		h := handleEndpoint(log, disp, ep)
		path := "/" + ep.Topic + "/" + ep.Path
		r.Get(path, h)
		index = append(index, endpointInfo{Name: ep.Name(), Path: "/api" + path, Summary: ep.Summary})
		if ep.Year == service.YearQuery {
			r.Get(path+"/{year}", h)
		}
	}
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, index)
	})
	return r
}

func handleEndpoint(log *zap.Logger, disp Dispatcher, ep service.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		p := service.Params{
			Timespan:   chi.URLParam(r, "timespan"),
			Start:      chi.URLParam(r, "start"),
			End:        chi.URLParam(r, "end"),
			Year:       chi.URLParam(r, "year"),
			MaxResults: q.Get("maxResults"),
		}
		if p.Year == "" {
			p.Year = q.Get("year")
		}
		if ep.KeyParam != "" {
			p.Key = chi.URLParam(r, ep.KeyParam)
		}

		res, err := disp.Dispatch(r.Context(), ep, p)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrInvalidPeriod), errors.Is(err, service.ErrInvalidParam):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, service.ErrUnknownLookupKey):
			writeJSON(w, http.StatusNotFound, map[string]any{})
			return
		default:
			log.Error("dispatch",
				zap.String("endpoint", ep.Name()),
				zap.String("request_id", requestID(r)),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if res.Single {
			writeJSON(w, http.StatusOK, res.Object)
			return
		}
		writeJSON(w, http.StatusOK, res.Rows)
	}
}
