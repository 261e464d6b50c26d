package gofpdf

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/quote/document"
)

const (
	regularFontFile = "DejaVuSans.ttf"
	boldFontFile    = "DejaVuSans-Bold.ttf"
)

// column widths in mm; they add up to the 190mm printable A4 width
var colWidths = [6]float64{10, 50, 65, 15, 25, 25}

type Generator struct {
	fontDir string
	log     *zap.Logger
}

// New returns a PDF generator. With a non-empty fontDir the DejaVu TTF
// fonts are embedded and amounts carry the ₹ sign; otherwise the core
// Helvetica font is used and amounts are printed as "Rs.".
func New(fontDir string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{fontDir: fontDir, log: log}
}

func (g *Generator) ContentType() string { return "application/pdf" }
func (g *Generator) Extension() string   { return "pdf" }

type writer struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
	money  func(decimal.Decimal) string
}

func (g *Generator) Generate(doc document.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quotation "+doc.Number, true)
	pdf.SetAutoPageBreak(true, 15)

	w := &writer{pdf: pdf}
	if g.fontDir != "" {
		regular := filepath.Join(g.fontDir, regularFontFile)
		bold := filepath.Join(g.fontDir, boldFontFile)
		g.log.Debug("quote pdf: load fonts", zap.String("regular", regular), zap.String("bold", bold))
		pdf.AddUTF8Font("DejaVu", "", regular)
		pdf.AddUTF8Font("DejaVu", "B", bold)
		w.family = "DejaVu"
		w.tr = func(s string) string { return s }
		w.money = quote.FormatINR
	} else {
		w.family = "Helvetica"
		w.tr = pdf.UnicodeTranslatorFromDescriptor("")
		w.money = quote.FormatRs
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("quote pdf: fonts: %w", err)
	}
	pdf.AddPage()

	w.header(doc)
	w.customer(doc)
	for _, s := range doc.Sections {
		w.section(s)
	}
	w.installation(doc)
	w.proposal(doc)
	w.terms(doc)
	w.footer(doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.log.Error("quote pdf: output failed", zap.String("number", doc.Number), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *writer) font(style string, size float64) {
	w.pdf.SetFont(w.family, style, size)
}

func (w *writer) text(width, height float64, s, border, align string, fill bool) {
	w.pdf.CellFormat(width, height, w.tr(s), border, 0, align, fill, 0, "")
}

func (w *writer) header(doc document.Document) {
	c := doc.Company
	w.font("B", 14)
	w.text(120, 7, c.Name, "", "L", false)
	w.font("B", 18)
	w.text(0, 7, "Quotation", "", "R", false)
	w.pdf.Ln(7)

	w.font("", 9)
	w.text(120, 5, c.Address, "", "L", false)
	w.text(0, 5, "Quotation #: "+doc.Number, "", "R", false)
	w.pdf.Ln(5)
	w.text(120, 5, "Phone: "+c.Phone, "", "L", false)
	w.text(0, 5, "Date: "+doc.Date.Format("02/01/2006"), "", "R", false)
	w.pdf.Ln(5)
	w.text(120, 5, "Email: "+c.Email, "", "L", false)
	w.pdf.Ln(5)
	if c.Website != "" {
		w.text(120, 5, c.Website, "", "L", false)
		w.pdf.Ln(5)
	}
	w.pdf.Ln(4)
}

func (w *writer) customer(doc document.Document) {
	w.font("B", 11)
	w.text(0, 7, "Customer Information", "LTR", "L", false)
	w.pdf.Ln(7)
	w.font("", 10)
	rows := [][2]string{
		{"Name", doc.CustomerName},
		{"Address", doc.CustomerAddress},
		{"GST", doc.CustomerGST},
	}
	for i, r := range rows {
		border := "LR"
		if i == len(rows)-1 {
			border = "LRB"
		}
		w.text(0, 6, r[0]+": "+r[1], border, "L", false)
		w.pdf.Ln(6)
	}
	w.pdf.Ln(5)
}

func (w *writer) section(s document.Section) {
	w.font("B", 12)
	w.text(0, 8, s.Name, "", "L", false)
	w.pdf.Ln(8)

	w.pdf.SetFillColor(240, 240, 240)
	w.font("B", 9)
	headers := []string{"No", "Product", "Description", "Qty", "Unit Price", "Total Price"}
	aligns := []string{"L", "L", "L", "R", "R", "R"}
	for i, h := range headers {
		w.text(colWidths[i], 7, h, "1", aligns[i], true)
	}
	w.pdf.Ln(7)

	w.font("", 9)
	for _, l := range s.Lines {
		w.text(colWidths[0], 6, fmt.Sprintf("%d", l.No), "1", "L", false)
		w.text(colWidths[1], 6, trim(l.Name, 30), "1", "L", false)
		w.text(colWidths[2], 6, trim(l.Description, 40), "1", "L", false)
		w.text(colWidths[3], 6, fmt.Sprintf("%d", l.Quantity), "1", "R", false)
		w.text(colWidths[4], 6, w.money(l.UnitPrice), "1", "R", false)
		w.text(colWidths[5], 6, w.money(l.Total), "1", "R", false)
		w.pdf.Ln(6)
	}

	w.summaryRow("Subtotal:", w.money(s.Subtotal))
	w.summaryRow(fmt.Sprintf("Discount (%s):", quote.FormatPercent(s.DiscountPercent)), w.money(s.DiscountAmount))
	w.summaryRow(fmt.Sprintf("Tax (%s):", quote.FormatPercent(s.TaxPercent)), w.money(s.TaxAmount))
	w.summaryRow("Total:", w.money(s.Total))
	w.pdf.Ln(5)
}

func (w *writer) summaryRow(label, value string) {
	lead := colWidths[0] + colWidths[1] + colWidths[2] + colWidths[3]
	w.font("B", 9)
	w.text(lead, 6, "", "", "L", false)
	w.text(colWidths[4], 6, label, "", "R", false)
	w.text(colWidths[5], 6, value, "", "R", false)
	w.pdf.Ln(6)
}

func (w *writer) installation(doc document.Document) {
	w.font("B", 12)
	w.text(0, 8, "Installation Charges", "", "L", false)
	w.pdf.Ln(8)
	w.font("", 10)
	w.text(150, 7, "Installation and Setup", "1", "L", false)
	w.text(40, 7, w.money(doc.InstallationCharge), "1", "R", false)
	w.pdf.Ln(12)
}

func (w *writer) proposal(doc document.Document) {
	w.font("B", 12)
	w.text(0, 8, "Proposal Value (inclusive of applicable taxes)", "", "L", false)
	w.pdf.Ln(9)
	w.font("B", 18)
	w.text(0, 9, w.money(doc.GrandTotal), "", "C", false)
	w.pdf.Ln(9)
	w.font("", 11)
	w.text(0, 7, doc.AmountInWords, "", "C", false)
	w.pdf.Ln(11)
}

func (w *writer) terms(doc document.Document) {
	if len(doc.Terms) == 0 {
		return
	}
	w.font("B", 12)
	w.text(0, 8, "Terms and Conditions", "", "L", false)
	w.pdf.Ln(8)
	w.font("", 9)
	for _, t := range doc.Terms {
		w.pdf.MultiCell(0, 5, w.tr(t), "", "L", false)
	}
	w.pdf.Ln(6)
}

func (w *writer) footer(doc document.Document) {
	w.pdf.Line(10, w.pdf.GetY(), 200, w.pdf.GetY())
	w.pdf.Ln(3)
	w.font("B", 10)
	w.text(30, 6, "Sales Person:", "", "L", false)
	w.font("", 10)
	w.text(0, 6, doc.SalespersonName, "", "L", false)
	w.pdf.Ln(6)
	w.font("B", 10)
	w.text(30, 6, "Contact:", "", "L", false)
	w.font("", 10)
	w.text(0, 6, doc.SalespersonContact, "", "L", false)
	w.pdf.Ln(6)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
