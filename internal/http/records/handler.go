package records

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/importer"
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.export)
	r.Post("/transactions", h.exportTransactions)
	r.Post("/accounts", h.exportAccounts)
	r.Post("/import", h.importRecords)
	r.Put("/", h.importFullDump)
}

func writeXMLHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"records_%s.xml\"", time.Now().Format("20060102")))
}

func (h *Handler) export(w http.ResponseWriter, _ *http.Request) {
	writeXMLHeaders(w)

	if err := h.svc.Export(w); err != nil {
		slog.Error("failed to export records", "error", err)
	}
}

type idsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *Handler) exportTransactions(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeXMLHeaders(w)

	if err := h.svc.ExportTransactions(w, req.IDs); err != nil {
		slog.Error("failed to export transactions", "error", err)
	}
}

func (h *Handler) exportAccounts(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeXMLHeaders(w)

	if err := h.svc.ExportAccounts(w, req.IDs); err != nil {
		slog.Error("failed to export accounts", "error", err)
	}
}

type importResponse struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Ignored  int `json:"ignored"`
}

func (h *Handler) importRecords(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	summary, err := h.svc.ImportRecords(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(importResponse{
		Inserted: summary.Inserted,
		Updated:  summary.Updated,
		Ignored:  summary.Ignored,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) importFullDump(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := h.svc.ImportFullDump(r.Context(), file); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
