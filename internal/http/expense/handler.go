package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/http/respond"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/audit", h.audit)
}

type createExpenseRequest struct {
	Name     string       `json:"name" validate:"required,max=200"`
	Amount   money.Amount `json:"amount" validate:"gt=0"`
	Category string       `json:"category" validate:"required,category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.AddExpense(r.Context(), req.Name, req.Amount, expense.Category(req.Category))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, toResponseList(h.svc.Expenses()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Expense(id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

// updateExpenseRequest carries either a signed delta (the +/- buttons) or an
// absolute amount (the edit form), plus an optional category.
type updateExpenseRequest struct {
	Delta    *money.Amount `json:"delta,omitempty"`
	Amount   *money.Amount `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Category *string       `json:"category,omitempty" validate:"omitempty,category"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateExpenseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Delta == nil && req.Amount == nil && req.Category == nil {
		respond.Error(w, r, &expense.ValidationError{Field: "body", Message: "nothing to update"})
		return
	}

	params := ledger.UpdateParams{Delta: req.Delta, Amount: req.Amount}
	if req.Category != nil {
		params.Category = new(expense.Category(*req.Category))
	}

	e, err := h.svc.UpdateExpense(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.DeleteExpense(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) audit(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	a, err := h.svc.Audit(id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toAuditResponse(a))
}

func (h *Handler) Summary(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, toSummaryResponse(h.svc.Summary()))
}

func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	resp := make([]categoryResponse, len(expense.Categories))
	for i, c := range expense.Categories {
		resp[i] = categoryResponse{Value: c, Label: c.Label()}
	}

	respond.JSON(w, http.StatusOK, resp)
}
