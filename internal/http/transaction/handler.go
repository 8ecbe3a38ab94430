package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

type Handler struct {
	svc   *ledger.Service
	store *cache.Store
}

func NewHandler(svc *ledger.Service, store *cache.Store) *Handler {
	return &Handler{svc: svc, store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/check", h.check)
}

type transactionRequest struct {
	Amount          decimal.Decimal     `json:"amount"`
	Date            string              `json:"date"`
	AccountDebited  uuid.UUID           `json:"account_debited"`
	AccountCredited uuid.UUID           `json:"account_credited"`
	ContactID       *uuid.UUID          `json:"contact_id,omitempty"`
	ContactName     string              `json:"contact_name,omitempty"`
	Rate            decimal.Decimal     `json:"rate"`
	RateDirection   model.RateDirection `json:"rate_direction"`
	InvoiceNumber   string              `json:"invoice_number,omitempty"`
	Checked         bool                `json:"checked"`
	ParentID        *uuid.UUID          `json:"parent_id,omitempty"`
	Detailed        bool                `json:"detailed"`
}

func (r transactionRequest) params() (ledger.TransactionParams, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return ledger.TransactionParams{}, err
	}

	params := ledger.TransactionParams{
		Amount:          r.Amount,
		Date:            date,
		AccountDebited:  r.AccountDebited,
		AccountCredited: r.AccountCredited,
		ContactName:     r.ContactName,
		Rate:            r.Rate,
		RateDirection:   r.RateDirection,
		InvoiceNumber:   r.InvoiceNumber,
		Checked:         r.Checked,
		Detailed:        r.Detailed,
	}

	if r.ContactID != nil {
		params.ContactUUID = *r.ContactID
	}

	if r.ParentID != nil {
		params.ParentUUID = *r.ParentID
	}

	return params, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.params()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Post(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs := h.store.Transactions()

	if s := r.URL.Query().Get("account"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}

		txs = h.store.TransactionsByAccount(id)
	}

	from, to, err := dateRangeQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !from.IsZero() || !to.IsZero() {
		filtered := txs[:0:0]

		for _, t := range txs {
			if !from.IsZero() && t.Date.Before(from) {
				continue
			}

			if !to.IsZero() && t.Date.After(to) {
				continue
			}

			filtered = append(filtered, t)
		}

		txs = filtered
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, ok := h.store.Transaction(id)
	if !ok {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.params()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Edit(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type checkRequest struct {
	IDs           []uuid.UUID `json:"ids"`
	Checked       bool        `json:"checked"`
	StatementDate string      `json:"statement_date,omitempty"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var statementDate time.Time

	if req.StatementDate != "" {
		var err error

		statementDate, err = time.Parse(time.DateOnly, req.StatementDate)
		if err != nil {
			http.Error(w, "invalid statement_date", http.StatusBadRequest)
			return
		}
	}

	if err := h.svc.SetChecked(r.Context(), req.IDs, req.Checked, statementDate); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func dateRangeQuery(r *http.Request) (from, to time.Time, err error) {
	if s := r.URL.Query().Get("start_date"); s != "" {
		from, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid start_date")
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		to, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid end_date")
		}
	}

	return from, to, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrAccountInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
