package booking

import (
	"bytes"
	"fmt"
	"strings"

	"lrbook/internal/domain"

	"github.com/phpdave11/gofpdf"
)

var lrTypeLabels = map[domain.LRType]string{
	domain.LRPaid:      "PAID",
	domain.LRToPay:     "TO PAY",
	domain.LROnAccount: "ON ACCOUNT",
}

// BuildReceiptPDF renders a printable lading receipt and a file name for it.
func BuildReceiptPDF(b *domain.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Lading Receipt "+b.LRNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "LADING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "LR Number : "+b.LRNumber)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Type      : "+lrTypeLabels[b.LRType])
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date      : "+b.CreatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status    : "+strings.ToUpper(string(b.Status)))
	pdf.Ln(10)

	pdf.Cell(0, 7, fmt.Sprintf("From : %s (%s)", safe(b.FromLocation.Name), b.FromLocation.Code))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("To   : %s (%s)", safe(b.ToLocation.Name), b.ToLocation.Code))
	pdf.Ln(10)

	party(pdf, "Consignor", b.Sender)
	party(pdf, "Consignee", b.Receiver)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Weight (kg)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Freight", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, it := range b.Items {
		pdf.CellFormat(80, 7, safe(it.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", it.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, amount(it.FreightCharge), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	c := b.Charges
	for _, row := range []struct {
		label string
		value float64
	}{
		{"Freight subtotal", c.ItemFreightSubtotal},
		{"Handling", c.HandlingCharges},
		{"Book delivery", c.BookDeliveryCharges},
		{"Door delivery", c.DoorDeliveryCharges},
		{"Pickup", c.PickupCharges},
		{"LR charges", c.LRCharges},
		{"Other", c.OtherCharges},
	} {
		pdf.CellFormat(140, 6, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, amount(row.value), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(140, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, amount(c.TotalAmount), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), b.LRNumber + ".pdf", nil
}

func party(pdf *gofpdf.Fpdf, title string, p domain.PartySnapshot) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Name  : "+safe(p.Name))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Phone : "+safe(p.Phone))
	pdf.Ln(6)
	if p.GSTNumber != "" {
		pdf.Cell(0, 6, "GSTIN : "+p.GSTNumber)
		pdf.Ln(6)
	}
	if p.Address != "" {
		pdf.MultiCell(0, 6, "Address : "+p.Address, "", "", false)
	}
	pdf.Ln(4)
}

func amount(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
