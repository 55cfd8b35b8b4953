package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"mymoney/internal/core"
	"mymoney/internal/ledger"
)

type transactionRequest struct {
	Description string      `json:"descricao"`
	Kind        string      `json:"tipo"`
	Amount      json.Number `json:"valor"`
	Date        string      `json:"data"`
}

// transactionPatch uses pointers so absent fields stay untouched on update.
type transactionPatch struct {
	Description *string      `json:"descricao"`
	Kind        *string      `json:"tipo"`
	Amount      *json.Number `json:"valor"`
	Date        *string      `json:"data"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.ledger.List()
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	candidate := ledger.Candidate{
		Description: req.Description,
		Kind:        core.Kind(req.Kind),
		Amount:      req.Amount.String(),
	}
	if req.Date != "" {
		occurred, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			http.Error(w, "data inválida, use RFC 3339", http.StatusBadRequest)
			return
		}
		candidate.OccurredAt = occurred
	}

	tx, err := s.ledger.Add(r.Context(), candidate)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	s.reportCache.Purge()
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req transactionPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	patch := ledger.Patch{Description: req.Description}
	if req.Kind != nil {
		kind := core.Kind(*req.Kind)
		patch.Kind = &kind
	}
	if req.Amount != nil {
		amount := req.Amount.String()
		patch.Amount = &amount
	}
	if req.Date != nil {
		occurred, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			http.Error(w, "data inválida, use RFC 3339", http.StatusBadRequest)
			return
		}
		patch.OccurredAt = &occurred
	}

	tx, err := s.ledger.Update(r.Context(), id, patch)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	s.reportCache.Purge()
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	s.reportCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		http.Error(w, "transação não encontrada", http.StatusNotFound)
	case core.IsInvalidInput(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.ErrorContext(r.Context(), "Ledger operation failed", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}
