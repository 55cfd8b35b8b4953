package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mymoney/internal/core"
	"mymoney/internal/export"
	"mymoney/internal/report"
)

type reportResponse struct {
	Month        int                `json:"mes"`
	Year         int                `json:"ano"`
	Balance      string             `json:"saldo"`
	TotalIncome  string             `json:"totalEntradas"`
	TotalExpense string             `json:"totalSaidas"`
	Categories   []reportCategory   `json:"categorias"`
	Transactions []core.Transaction `json:"transacoes"`
}

type reportCategory struct {
	Category string `json:"categoria"`
	Total    string `json:"total"`
}

func parsePeriod(r *http.Request) (time.Month, int, error) {
	mes, err := strconv.Atoi(r.URL.Query().Get("mes"))
	if err != nil || mes < 1 || mes > 12 {
		return 0, 0, fmt.Errorf("parâmetro mes inválido")
	}
	ano, err := strconv.Atoi(r.URL.Query().Get("ano"))
	if err != nil || ano < 1 {
		return 0, 0, fmt.Errorf("parâmetro ano inválido")
	}
	return time.Month(mes), ano, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := fmt.Sprintf("%d-%d", year, month)
	if cached, ok := s.reportCache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		_, _ = w.Write(cached)
		return
	}

	txs := make([]core.Transaction, 0)
	for tx := range s.ledger.FilterByPeriod(month, year) {
		txs = append(txs, tx)
	}
	totals := core.ComputeTotals(txs)

	resp := reportResponse{
		Month:        int(month),
		Year:         year,
		Balance:      totals.Balance.String(),
		TotalIncome:  totals.TotalIncome.String(),
		TotalExpense: totals.TotalExpense.String(),
		Categories:   make([]reportCategory, 0),
		Transactions: txs,
	}
	for _, g := range report.ExpenseByCategory(txs) {
		resp.Categories = append(resp.Categories, reportCategory{
			Category: g.Category,
			Total:    g.Total.String(),
		})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report encode failed", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	s.reportCache.Set(cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(body)
}

func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	formato := r.URL.Query().Get("formato")
	if formato == "" {
		formato = "csv"
	}
	if formato != "csv" && formato != "html" {
		http.Error(w, "parâmetro formato inválido: use csv ou html", http.StatusBadRequest)
		return
	}

	var txs []core.Transaction
	if r.URL.Query().Get("mes") != "" || r.URL.Query().Get("ano") != "" {
		month, year, err := parsePeriod(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for tx := range s.ledger.FilterByPeriod(month, year) {
			txs = append(txs, tx)
		}
	} else {
		txs = s.ledger.List()
	}

	if len(txs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	totals := core.ComputeTotals(txs)
	rows := report.BuildRows(txs, totals.Balance)

	var buf bytes.Buffer
	var contentType, filename string
	switch formato {
	case "csv":
		contentType, filename = "text/csv; charset=utf-8", export.CSVFileName
		if err := export.WriteCSV(&buf, rows); err != nil {
			slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
			http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
			return
		}
	case "html":
		contentType, filename = "text/html; charset=utf-8", export.HTMLFileName
		if err := export.WriteHTML(&buf, rows); err != nil {
			slog.ErrorContext(r.Context(), "HTML export failed", "error", err)
			http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = buf.WriteTo(w)
}
