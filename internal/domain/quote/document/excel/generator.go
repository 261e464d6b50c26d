package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/quote/document"
)

const lastCol = "F"

type Generator struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

func (g *Generator) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (g *Generator) Extension() string { return "xlsx" }

type styles struct {
	title, bold, header, cell, money, label, moneyBold int
}

// Generate writes one sheet: header block, a table per room, then the
// installation charge, proposal value and terms.
func (g *Generator) Generate(doc document.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(doc.Number)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := map[string]float64{"A": 6, "B": 34, "C": 40, "D": 8, "E": 16, "F": 18}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet, st: st, row: 1}
	w.merged(doc.Company.Name, st.title)
	w.merged(doc.Company.Address, 0)
	w.merged(fmt.Sprintf("Phone: %s  Email: %s", doc.Company.Phone, doc.Company.Email), 0)
	w.row++
	w.merged("Quotation #: "+doc.Number, st.bold)
	w.merged("Date: "+doc.Date.Format("02/01/2006"), 0)
	w.row++
	w.merged("Customer: "+doc.CustomerName, st.bold)
	w.merged("Address: "+doc.CustomerAddress, 0)
	w.merged("GST: "+doc.CustomerGST, 0)
	w.row++

	for _, s := range doc.Sections {
		w.merged(s.Name, st.bold)
		w.values([]any{"No", "Product", "Description", "Qty", "Unit Price", "Total Price"}, st.header)
		for _, l := range s.Lines {
			w.set("A", l.No, st.cell)
			w.set("B", sanitizeCell(l.Name), st.cell)
			w.set("C", sanitizeCell(l.Description), st.cell)
			w.set("D", l.Quantity, st.cell)
			w.set("E", number(l.UnitPrice), st.money)
			w.set("F", number(l.Total), st.money)
			w.row++
		}
		w.summary("Subtotal:", s.Subtotal)
		w.summary(fmt.Sprintf("Discount (%s):", quote.FormatPercent(s.DiscountPercent)), s.DiscountAmount)
		w.summary(fmt.Sprintf("Tax (%s):", quote.FormatPercent(s.TaxPercent)), s.TaxAmount)
		w.summary("Total:", s.Total)
		w.row++
	}

	w.summary("Installation Charges:", doc.InstallationCharge)
	w.summary("Proposal Value:", doc.GrandTotal)
	w.merged(doc.AmountInWords, st.bold)
	w.row++

	if len(doc.Terms) > 0 {
		w.merged("Terms and Conditions", st.bold)
		for _, t := range doc.Terms {
			w.merged(sanitizeCell(t), 0)
		}
		w.row++
	}
	w.merged("Sales Person: "+doc.SalespersonName, 0)
	w.merged("Contact: "+doc.SalespersonContact, 0)

	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		g.log.Error("quote xlsx: write failed", zap.String("number", doc.Number), zap.Error(err))
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	st    styles
	row   int
	err   error
}

func (w *sheetWriter) cell(col string) string { return fmt.Sprintf("%s%d", col, w.row) }

func (w *sheetWriter) set(col string, v any, style int) {
	if w.err != nil {
		return
	}
	ref := w.cell(col)
	if err := w.f.SetCellValue(w.sheet, ref, v); err != nil {
		w.err = fmt.Errorf("set %s: %w", ref, err)
		return
	}
	if style != 0 {
		if err := w.f.SetCellStyle(w.sheet, ref, ref, style); err != nil {
			w.err = fmt.Errorf("style %s: %w", ref, err)
		}
	}
}

func (w *sheetWriter) merged(text string, style int) {
	if w.err != nil {
		return
	}
	if err := w.f.MergeCell(w.sheet, w.cell("A"), w.cell(lastCol)); err != nil {
		w.err = fmt.Errorf("merge row %d: %w", w.row, err)
		return
	}
	w.set("A", text, style)
	w.row++
}

func (w *sheetWriter) values(vs []any, style int) {
	cols := []string{"A", "B", "C", "D", "E", "F"}
	for i, v := range vs {
		w.set(cols[i], v, style)
	}
	w.row++
}

func (w *sheetWriter) summary(label string, amount decimal.Decimal) {
	w.set("E", label, w.st.label)
	w.set("F", number(amount), w.st.moneyBold)
	w.row++
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	moneyFmt := `[$₹-4009] #,##,##0.00`
	defs := []struct {
		dst *int
		s   *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&st.bold, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}},
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&st.cell, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&st.money, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &moneyFmt}},
		{&st.label, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&st.moneyBold, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, CustomNumFmt: &moneyFmt}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.s)
		if err != nil {
			return st, fmt.Errorf("create style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

// number stores amounts as numeric cells so the sheet can be summed.
func number(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}

var sheetNameReplacer = strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")")

const maxSheetName = 31

// sheetName keeps within Excel's 31 character limit and character set.
func sheetName(number string) string {
	name := "Quotation"
	if n := sheetNameReplacer.Replace(number); n != "" {
		name = n
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// sanitizeCell prefixes characters Excel would treat as the start of a
// formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
