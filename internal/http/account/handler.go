package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/balance"
	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

type Handler struct {
	svc   *ledger.Service
	store *cache.Store
	calc  *balance.Calculator
}

func NewHandler(svc *ledger.Service, store *cache.Store) *Handler {
	return &Handler{
		svc:   svc,
		store: store,
		calc:  balance.New(store),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.save)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/balance", h.balance)
	r.Post("/{id}/close", h.close)
	r.Delete("/{id}", h.delete)
}

type accountRequest struct {
	ID             *uuid.UUID         `json:"id,omitempty"`
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
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a := model.Account{
		Name:           req.Name,
		Comment:        req.Comment,
		AccountNumber:  req.AccountNumber,
		OpeningBalance: req.OpeningBalance,
		AccountLimit:   req.AccountLimit,
		Type:           req.Type,
		CategoryUUID:   req.CategoryID,
		Enabled:        req.Enabled,
	}

	if req.ID != nil {
		a.UUID = *req.ID
	}

	if req.CurrencyID != nil {
		a.CurrencyUUID = *req.CurrencyID
	}

	if req.IconID != nil {
		a.IconUUID = *req.IconID
	}

	saved, err := h.svc.SaveAccount(r.Context(), a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(saved)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts := h.store.Accounts()

	if s := r.URL.Query().Get("category"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		accounts = h.store.AccountsByCategory(id)
	}

	if r.URL.Query().Get("enabled") == "true" {
		filtered := accounts[:0:0]

		for _, a := range accounts {
			if a.Enabled {
				filtered = append(filtered, a)
			}
		}

		accounts = filtered
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(accounts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.account(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type balanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	a, ok := h.account(w, r)
	if !ok {
		return
	}

	filter := balance.Any
	if r.URL.Query().Get("unchecked") == "true" {
		filter = balance.UncheckedOnly
	}

	includeOpening := r.URL.Query().Get("opening") != "false"

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(balanceResponse{
		AccountID: a.UUID,
		Balance:   h.calc.Calculate(a, includeOpening, filter),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.svc.CloseAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) (model.Account, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return model.Account{}, false
	}

	a, ok := h.store.Account(id)
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return model.Account{}, false
	}

	return a, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrAccountInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
