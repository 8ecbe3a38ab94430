package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

type transactionResponse struct {
	ID              uuid.UUID           `json:"id"`
	Amount          decimal.Decimal     `json:"amount"`
	Date            string              `json:"date"`
	AccountDebited  uuid.UUID           `json:"account_debited"`
	AccountCredited uuid.UUID           `json:"account_credited"`
	ContactID       *uuid.UUID          `json:"contact_id,omitempty"`
	Rate            decimal.Decimal     `json:"rate"`
	RateDirection   model.RateDirection `json:"rate_direction"`
	InvoiceNumber   string              `json:"invoice_number,omitempty"`
	Checked         bool                `json:"checked"`
	ParentID        *uuid.UUID          `json:"parent_id,omitempty"`
	Detailed        bool                `json:"detailed"`
	StatementDate   string              `json:"statement_date,omitempty"`
	Created         int64               `json:"created"`
	Modified        int64               `json:"modified"`
}

func toResponse(t model.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:              t.UUID,
		Amount:          t.Amount,
		Date:            t.Date.Format(time.DateOnly),
		AccountDebited:  t.AccountDebitedUUID,
		AccountCredited: t.AccountCreditedUUID,
		Rate:            t.Rate,
		RateDirection:   t.RateDirection,
		InvoiceNumber:   t.InvoiceNumber,
		Checked:         t.Checked,
		Detailed:        t.Detailed,
		Created:         t.Created,
		Modified:        t.Modified,
	}

	if t.ContactUUID != uuid.Nil {
		contact := t.ContactUUID
		resp.ContactID = &contact
	}

	if t.ParentUUID != uuid.Nil {
		parent := t.ParentUUID
		resp.ParentID = &parent
	}

	if !t.StatementDate.IsZero() {
		resp.StatementDate = t.StatementDate.Format(time.DateOnly)
	}

	return resp
}

func toResponseList(txs []model.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = toResponse(t)
	}

	return resp
}
