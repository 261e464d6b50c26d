// Package worddoc renders a quotation as an HTML document that Word opens
// as a .doc file.
package worddoc

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/quote/document"
)

var tmpl = template.Must(template.New("quotation").Funcs(template.FuncMap{
	"inr":     func(d decimal.Decimal) string { return quote.FormatINR(d) },
	"percent": func(d decimal.Decimal) string { return quote.FormatPercent(d) },
	"date":    func(doc document.Document) string { return doc.Date.Format("02/01/2006") },
}).Parse(page))

type Generator struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

func (g *Generator) ContentType() string { return "application/msword" }
func (g *Generator) Extension() string   { return "doc" }

func (g *Generator) Generate(doc document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		g.log.Error("quote doc: render failed", zap.String("number", doc.Number), zap.Error(err))
		return nil, fmt.Errorf("render quotation doc: %w", err)
	}
	return buf.Bytes(), nil
}

const page = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head>
<meta charset="utf-8">
<title>Quotation {{.Number}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 10pt; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 6px; }
th { background: #f0f0f0; text-align: left; }
td.num, th.num { text-align: right; }
td.label { text-align: right; font-weight: bold; border: none; }
td.blank { border: none; }
h1 { font-size: 18pt; margin: 0; }
h2 { font-size: 13pt; margin: 16px 0 6px; }
.proposal { text-align: center; }
.proposal .value { font-size: 20pt; font-weight: bold; }
</style>
</head>
<body>
<table>
<tr>
<td class="blank">
<h2>{{.Company.Name}}</h2>
<p>{{.Company.Address}}<br>Phone: {{.Company.Phone}}<br>Email: {{.Company.Email}}{{with .Company.Website}}<br>{{.}}{{end}}</p>
</td>
<td class="blank num">
<h1>Quotation</h1>
<p>Quotation #: {{.Number}}<br>Date: {{date .}}</p>
</td>
</tr>
</table>

<h2>Customer Information</h2>
<p><b>Name:</b> {{.CustomerName}}<br><b>Address:</b> {{.CustomerAddress}}<br><b>GST:</b> {{.CustomerGST}}</p>
{{range .Sections}}
<h2>{{.Name}}</h2>
<table>
<tr><th>No</th><th>Product</th><th>Description</th><th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Total Price</th></tr>
{{range .Lines}}<tr><td>{{.No}}</td><td>{{.Name}}</td><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{inr .UnitPrice}}</td><td class="num">{{inr .Total}}</td></tr>
{{end}}<tr><td class="blank" colspan="4"></td><td class="label">Subtotal:</td><td class="num"><b>{{inr .Subtotal}}</b></td></tr>
<tr><td class="blank" colspan="4"></td><td class="label">Discount ({{percent .DiscountPercent}}):</td><td class="num"><b>{{inr .DiscountAmount}}</b></td></tr>
<tr><td class="blank" colspan="4"></td><td class="label">Tax ({{percent .TaxPercent}}):</td><td class="num"><b>{{inr .TaxAmount}}</b></td></tr>
<tr><td class="blank" colspan="4"></td><td class="label">Total:</td><td class="num"><b>{{inr .Total}}</b></td></tr>
</table>
{{end}}
<h2>Installation Charges</h2>
<table>
<tr><th>Description</th><th class="num">Total Price</th></tr>
<tr><td>Installation and Setup</td><td class="num">{{inr .InstallationCharge}}</td></tr>
</table>

<h2>Proposal Value <small>(inclusive of applicable taxes)</small></h2>
<div class="proposal">
<p class="value">{{inr .GrandTotal}}</p>
<p>{{.AmountInWords}}</p>
</div>
{{if .Terms}}
<h2>Terms and Conditions</h2>
<p>{{range $i, $t := .Terms}}{{if $i}}<br>{{end}}{{$t}}{{end}}</p>
{{end}}
<hr>
<p><b>Sales Person:</b> {{.SalespersonName}}<br><b>Contact:</b> {{.SalespersonContact}}</p>
</body>
</html>
`
