package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spend/internal/http/respond"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Delete("/", h.clear)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, toResponseList(h.svc.Transactions()))
}

// delete removes one log entry. Unknown ids succeed too.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearTransactions(r.Context()); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
