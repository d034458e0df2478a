package htmltable

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/plan-dashboard/go-retable/datatable"
)

// Handler serves the widget of a table whose data comes from a Loader.
// Every request renders a fresh Table with the State
// decoded from the request query.
type Handler struct {
	loader  *datatable.Loader
	writer  *TableWriter
	options []datatable.Option
	logger  *slog.Logger
}

// NewHandler returns a Handler that starts the loader
// on the first request if it was not started before.
// A nil logger uses slog.Default().
func NewHandler(loader *datatable.Loader, writer *TableWriter, logger *slog.Logger, options ...datatable.Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		loader:  loader,
		writer:  writer,
		options: options,
		logger:  logger.With("table", writer.ID()),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	// The load outlives the request that triggered it
	h.loader.Start(context.WithoutCancel(r.Context()))

	var (
		buf    bytes.Buffer
		status = http.StatusOK
	)
	loadStatus, data, loadErr := h.loader.Result()
	switch loadStatus {
	case datatable.Loading:
		h.logger.Debug("Table still loading")
		if err := h.writer.WriteLoading(&buf); err != nil {
			h.internalError(w, err)
			return
		}

	case datatable.Failed:
		h.logger.Error("Table load failed", "err", loadErr)
		status = http.StatusBadGateway
		if err := h.writer.WriteError(&buf, loadErr); err != nil {
			h.internalError(w, err)
			return
		}

	case datatable.Ready:
		table, err := datatable.New(*data, h.options...)
		if err != nil {
			h.internalError(w, err)
			return
		}
		table.ApplyQuery(r.URL.Query())
		if err = h.writer.WriteTable(r.Context(), &buf, table); err != nil {
			h.internalError(w, err)
			return
		}
		h.logger.Debug("Rendered table", "query", r.URL.RawQuery, "rows", len(data.Rows))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method == http.MethodGet {
		_, _ = w.Write(buf.Bytes())
	}
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("Rendering table failed", "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
