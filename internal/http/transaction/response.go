package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/money"
	"github.com/MrJamesThe3rd/spend/internal/transaction"
)

type transactionResponse struct {
	ID             uuid.UUID        `json:"id"`
	ExpenseID      uuid.UUID        `json:"expenseId"`
	ExpenseName    string           `json:"expenseName"`
	Kind           transaction.Kind `json:"kind"`
	KindLabel      string           `json:"kindLabel"`
	Change         money.Amount     `json:"change"`
	PreviousAmount money.Amount     `json:"previousAmount"`
	NewAmount      money.Amount     `json:"newAmount"`
	Timestamp      time.Time        `json:"timestamp"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		ExpenseID:      tx.ExpenseID,
		ExpenseName:    tx.ExpenseName,
		Kind:           tx.Kind,
		KindLabel:      tx.Kind.Label(),
		Change:         tx.Change,
		PreviousAmount: tx.PreviousAmount,
		NewAmount:      tx.NewAmount,
		Timestamp:      tx.Timestamp,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
