package export

import (
	"fmt"
	"html/template"
	"io"

	"mymoney/internal/report"
)

// documentTmpl mirrors the shareable report document: title, balance line and
// a table whose amount cells are classed entrada/saida.
var documentTmpl = template.Must(template.New("relatorio").Parse(`<html>
<head>
<meta charset="utf-8" />
<style>
body { font-family: Arial; padding: 20px; }
h1 { color: #2e86de; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
th { background-color: #f5f5f5; }
.entrada { color: #27ae60; font-weight: bold; }
.saida { color: #c0392b; font-weight: bold; }
</style>
</head>
<body>
<h1>Relatório MyMoney</h1>
<p><strong>Saldo Atual:</strong> R$ {{.Balance}}</p>
<table>
<tr><th>ID</th><th>Descrição</th><th>Tipo</th><th>Valor</th><th>Data</th></tr>
{{range .Rows}}<tr>
<td>{{.ID}}</td>
<td>{{.Description}}</td>
<td>{{.Kind}}</td>
<td class="{{if eq .Kind "saida"}}saida{{else}}entrada{{end}}">R$ {{.Amount}}</td>
<td>{{.Date}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

type documentData struct {
	Balance string
	Rows    []report.Row
}

// WriteHTML renders the report document. The trailing summary row becomes the
// balance line; the remaining rows fill the table.
func WriteHTML(w io.Writer, rows []report.Row) error {
	data := documentData{Balance: "0.00", Rows: rows}
	if n := len(rows); n > 0 && rows[n-1].ID == "" && rows[n-1].Description == report.SummaryLabel {
		data.Balance = rows[n-1].Amount
		data.Rows = rows[:n-1]
	}
	if err := documentTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report document: %w", err)
	}
	return nil
}
