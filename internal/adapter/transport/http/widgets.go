package http_server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dayanaadylkhanova/barnum/internal/metrics"
	"github.com/dayanaadylkhanova/barnum/internal/widget"
)

// handleWidget renders one widget fragment. The query carries the data-*
// attributes plus the tag, start and end of the update-data selection.
func (s *Server) handleWidget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")
		q := r.URL.Query()
		sel := widget.Selection{Tag: q.Get("tag"), Start: q.Get("start"), End: q.Get("end")}
		q.Del("tag")
		q.Del("start")
		q.Del("end")

		wd, err := widget.Build(kind, s.deps, widget.AttributesFromQuery(q))
		switch {
		case errors.Is(err, widget.ErrUnknownKind):
			s.notFound(w, r)
			return
		case err != nil:
			metrics.RecordWidgetRender(kind, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// a failed update renders the placeholder, as in the browser
		err = wd.UpdateData(r.Context(), sel)
		if err != nil {
			s.log.Warn("widget update",
				zap.String("kind", kind),
				zap.String("request_id", requestID(r)),
				zap.Error(err),
			)
		}
		metrics.RecordWidgetRender(kind, err)

		var buf bytes.Buffer
		if err := wd.Render(&buf); err != nil {
			s.log.Error("widget render", zap.String("kind", kind), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusOK, buf.Bytes())
	}
}
