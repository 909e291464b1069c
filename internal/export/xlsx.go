// Package export writes reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"finance-reports/internal/report"
)

// Sheet names of the exported workbook, in order.
const (
	SheetSummary      = "Resumo"
	SheetCategories   = "Categorias"
	SheetTrend        = "Tendência"
	SheetTransactions = "Transações"
)

// ContentType is the MIME type of the exported workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteWorkbook renders the report and its transactions as an XLSX file.
// Every figure comes from rep; the transaction sheet only lists rows.
func WriteWorkbook(w io.Writer, f report.Filters, txs []report.Transaction, rep report.Report) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	if err := wb.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetTrend, SheetTransactions} {
		if _, err := wb.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	writers := []struct {
		sheet string
		rows  [][]any
	}{
		{SheetSummary, summaryRows(f, rep)},
		{SheetCategories, categoryRows(rep)},
		{SheetTrend, trendRows(rep.Trend)},
		{SheetTransactions, transactionRows(txs)},
	}
	for _, sw := range writers {
		if err := writeRows(wb, sw.sheet, sw.rows); err != nil {
			return err
		}
	}

	wb.SetActiveSheet(0)
	if err := wb.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(wb *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func summaryRows(f report.Filters, rep report.Report) [][]any {
	s := rep.Summary
	return [][]any{
		{"Período", string(f.Period)},
		{"Início", f.StartDate},
		{"Fim", f.EndDate},
		{},
		{"Receitas", num(s.Income)},
		{"Despesas", num(s.Expense)},
		{"Saldo", num(s.Balance)},
		{"Despesas Fixas", num(s.FixedExpense)},
		{"Despesas Variáveis", num(s.VariableExpense)},
		{"Transações", s.TransactionCount},
	}
}

func categoryRows(rep report.Report) [][]any {
	rows := [][]any{{"Categoria", "Receitas", "Despesas", "Total"}}
	for _, name := range rep.ByCategory.Names() {
		ct := rep.ByCategory[name]
		rows = append(rows, []any{name, num(ct.Income), num(ct.Expense), num(ct.Net)})
	}
	return rows
}

func trendRows(points []report.TrendPoint) [][]any {
	rows := [][]any{{"Mês", "Fixas", "Variáveis", "Outros"}}
	for _, p := range points {
		rows = append(rows, []any{p.Month, num(p.Fixed), num(p.Variable), num(p.Other)})
	}
	return rows
}

func transactionRows(txs []report.Transaction) [][]any {
	rows := [][]any{{"Data", "Estabelecimento", "Categoria", "Tipo", "Subtipo", "Valor"}}
	for _, t := range txs {
		date := "-"
		if t.OccurredOn != nil {
			date = t.OccurredOn.Format(time.DateOnly)
		}
		subtype := ""
		if t.Kind == report.KindExpense {
			subtype = string(t.ExpenseSubtype)
		}
		rows = append(rows, []any{
			date, t.CounterpartyName(), t.CategoryName(), string(t.Kind), subtype, num(t.SignedValue()),
		})
	}
	return rows
}
