package importcsv

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/http/respond"
	"github.com/MrJamesThe3rd/spend/internal/importer"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/matching"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledgerSvc *ledger.Service
	matchSvc  *matching.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledgerSvc: ledgerSvc,
		matchSvc:  matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedExpense struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Amount   money.Amount     `json:"amount"`
	Category expense.Category `json:"category"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Expenses []importedExpense `json:"expenses"`
}

type importForm struct {
	Source string `json:"source" validate:"required,oneof=spend cgd"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, r, fmt.Errorf("%w: failed to parse form: %w", respond.ErrBadRequest, err))
		return
	}

	form := importForm{Source: r.FormValue("source")}
	if err := respond.Validate(form); err != nil {
		respond.Error(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, fmt.Errorf("%w: file field is required", respond.ErrBadRequest))
		return
	}
	defer file.Close()

	items, err := h.importSvc.Import(importer.Source(form.Source), file)
	if err != nil {
		respond.Error(w, r, fmt.Errorf("%w: %w", respond.ErrBadRequest, err))
		return
	}

	created, err := h.ledgerSvc.ImportExpenses(r.Context(), h.matchSvc.Apply(items))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := importResponse{
		Imported: len(created),
		Expenses: make([]importedExpense, 0, len(created)),
	}

	for _, e := range created {
		resp.Expenses = append(resp.Expenses, importedExpense{
			ID:       e.ID.String(),
			Name:     e.Name,
			Amount:   e.Amount,
			Category: e.Category,
		})
	}

	respond.JSON(w, http.StatusCreated, resp)
}
