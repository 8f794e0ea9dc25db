package export

import (
	"bytes"
	"fmt"

	"tevo-service/internal/demand"

	"github.com/go-pdf/fpdf"
)

var (
	pdfWidths  = []float64{20, 28, 16, 16, 24, 28, 26, 32}
	pdfHeaders = []string{"Tarih", "Alıcı", "İstenen", "Teslim", "Fiyat", "Durum", "Telefon", "Adres"}
)

// pdfRow Excel ile aynı sütun sırasını üretir.
func pdfRow(d demand.Response) []string {
	return []string{
		d.Date.Format("02.01.2006"),
		d.RecipientUserName,
		trimFloat(d.Demanded),
		deliveredLabel(d),
		priceLabel(d),
		string(d.State),
		contactLabel(d),
		addressLabel(d),
	}
}

// BuildPDF talep tablosunu ve altına toplam satırlarını basar. Çekirdek
// fontlar cp1254'e çevrilerek Türkçe karakterler korunur.
func BuildPDF(ds []demand.Response, totals demand.Totals) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, tr("Talep Dökümü"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range pdfHeaders {
		pdf.CellFormat(pdfWidths[i], 7, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range ds {
		for i, v := range pdfRow(d) {
			pdf.CellFormat(pdfWidths[i], 6, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Toplam Kayıt: %d", totals.Count)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Toplam Talep: %s", trimFloat(totals.Demanded))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Toplam Teslim: %s", trimFloat(totals.Delivered))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Toplam Tutar: %s", trimFloat(totals.Amount))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
