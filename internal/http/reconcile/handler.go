package reconcile

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/reconcile"
	"github.com/petr-panteleyev/money-manager-sub002/internal/statement"
)

type Handler struct {
	parser *statement.Parser
	svc    *reconcile.Service
	ledger *ledger.Service
	store  *cache.Store
}

func NewHandler(svc *reconcile.Service, ledgerSvc *ledger.Service, store *cache.Store) *Handler {
	return &Handler{
		parser: statement.NewParser(),
		svc:    svc,
		ledger: ledgerSvc,
		store:  store,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.match)
	r.Post("/confirm", h.confirm)
}

type recordDTO struct {
	Actual       string          `json:"actual"`
	Execution    string          `json:"execution,omitempty"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

type matchDTO struct {
	Record       recordDTO   `json:"record"`
	Transactions []uuid.UUID `json:"transactions"`
}

type matchResponse struct {
	AccountNumber string          `json:"account_number,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Matches       []matchDTO      `json:"matches"`
}

// match parses an uploaded bank statement and pairs each of its records
// with the non-reconciled transactions of the given account.
func (h *Handler) match(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	accountID, err := uuid.Parse(r.FormValue("account"))
	if err != nil {
		http.Error(w, "account field is required", http.StatusBadRequest)
		return
	}

	account, ok := h.store.Account(accountID)
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	stmt, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ignoreExecutionDate := r.FormValue("ignore_execution_date") == "true"

	matches := h.svc.MatchStatement(account, stmt, ignoreExecutionDate)

	resp := matchResponse{
		AccountNumber: stmt.AccountNumber,
		Balance:       stmt.Balance,
		Matches:       make([]matchDTO, 0, len(matches)),
	}

	for _, m := range matches {
		dto := matchDTO{
			Record: recordDTO{
				Actual:       m.Record.Actual.Format(time.DateOnly),
				Description:  m.Record.Description,
				Counterparty: m.Record.Counterparty,
				Amount:       m.Record.Amount,
			},
		}

		if !m.Record.Execution.IsZero() {
			dto.Record.Execution = m.Record.Execution.Format(time.DateOnly)
		}

		for _, t := range m.Transactions {
			dto.Transactions = append(dto.Transactions, t.UUID)
		}

		resp.Matches = append(resp.Matches, dto)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmRequest struct {
	IDs           []uuid.UUID `json:"ids"`
	StatementDate string      `json:"statement_date,omitempty"`
}

// confirm marks the reviewed transactions as reconciled.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
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

	if err := h.ledger.SetChecked(r.Context(), req.IDs, true, statementDate); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
