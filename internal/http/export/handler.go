package export

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spend/internal/export"
	"github.com/MrJamesThe3rd/spend/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.exportCSV)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	// Buffer first so a failure can still become a proper error response.
	var buf bytes.Buffer
	if _, err := h.svc.WriteCSV(&buf); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.svc.Filename()))
	_, _ = buf.WriteTo(w)
}
