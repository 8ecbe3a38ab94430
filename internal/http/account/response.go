package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

type accountResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Comment        string             `json:"comment,omitempty"`
	AccountNumber  string             `json:"account_number,omitempty"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	AccountLimit   decimal.Decimal    `json:"account_limit"`
	Type           model.CategoryType `json:"type"`
	CategoryID     uuid.UUID          `json:"category_id"`
	CurrencyID     *uuid.UUID         `json:"currency_id,omitempty"`
	IconID         *uuid.UUID         `json:"icon_id,omitempty"`
	Enabled        bool               `json:"enabled"`
	Total          decimal.Decimal    `json:"total"`
	Created        int64              `json:"created"`
	Modified       int64              `json:"modified"`
}

func toResponse(a model.Account) accountResponse {
	resp := accountResponse{
		ID:             a.UUID,
		Name:           a.Name,
		Comment:        a.Comment,
		AccountNumber:  a.AccountNumber,
		OpeningBalance: a.OpeningBalance,
		AccountLimit:   a.AccountLimit,
		Type:           a.Type,
		CategoryID:     a.CategoryUUID,
		Enabled:        a.Enabled,
		Total:          a.Total,
		Created:        a.Created,
		Modified:       a.Modified,
	}

	if a.CurrencyUUID != uuid.Nil {
		currency := a.CurrencyUUID
		resp.CurrencyID = &currency
	}

	if a.IconUUID != uuid.Nil {
		icon := a.IconUUID
		resp.IconID = &icon
	}

	return resp
}

func toResponseList(accounts []model.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}
