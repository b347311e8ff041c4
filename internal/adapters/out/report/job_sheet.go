// Package report renders the printable job sheet of an order and the wallet
// statement of a company.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/jung-kurt/gofpdf"
)

// JobSheetGenerator renders an A4 sheet the installer takes to the customer.
// The core Helvetica font is used; UTF-8 text is translated to cp1252,
// which covers German addresses.
type JobSheetGenerator struct{}

func NewJobSheetGenerator() *JobSheetGenerator {
	return &JobSheetGenerator{}
}

func (g *JobSheetGenerator) Generate(o queries.OrderDetails, loc *time.Location) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Montageauftrag "+o.Number), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Status: "+o.Status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, tr, "Kunde")
	field(pdf, tr, "Name", o.CustomerName)
	field(pdf, tr, "Adresse", o.Address)
	field(pdf, tr, "Telefon", o.Phone)
	pdf.Ln(2)

	section(pdf, tr, "Termin")
	field(pdf, tr, "Datum", formatDate(o.Date))
	field(pdf, tr, "Zeitfenster", o.TimeFrom+" - "+o.TimeTo)
	field(pdf, tr, "Firma", o.CurrentCompanyName)
	field(pdf, tr, "Preis", o.BasePrice.String()+" EUR")
	if o.BonusPot.IsPositive() {
		field(pdf, tr, "Bonus", o.BonusPot.String()+" EUR")
	}
	pdf.Ln(2)

	if o.Delivery != nil {
		section(pdf, tr, "Lieferung")
		field(pdf, tr, "Status", o.Delivery.Status)
		field(pdf, tr, "Spedition", o.Delivery.Carrier)
		field(pdf, tr, "Sendung", o.Delivery.TrackingNumber)
		if o.Delivery.PlannedDate != nil {
			field(pdf, tr, "Geplant", formatDate(*o.Delivery.PlannedDate))
		}
		pdf.Ln(2)
	}

	if len(o.Assignments) > 0 {
		section(pdf, tr, "Verlauf")
		widths := []float64{60, 45, 45, 30}
		row(pdf, tr, []string{"Firma", "Zugewiesen", "Abgegeben", "Grund"}, widths, true)
		for _, a := range o.Assignments {
			unassigned := "-"
			if a.UnassignedAt != nil {
				unassigned = formatDateTime(*a.UnassignedAt, loc)
			}
			row(pdf, tr, []string{
				a.CompanyName,
				formatDateTime(a.AssignedAt, loc),
				unassigned,
				a.UnassignReason,
			}, widths, false)
		}
		pdf.Ln(4)
	}

	section(pdf, tr, "Abnahme")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, tr("Kunde: ______________________   Monteur: ______________________"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render job sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func field(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 6, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr(safeValue(value)), "", "L", false)
}

func row(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}

func formatDateTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02.01.2006 15:04")
}
