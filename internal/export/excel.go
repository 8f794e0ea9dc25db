package export

import (
	"bytes"
	"fmt"

	"tevo-service/internal/demand"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Talepler"

var excelHeaders = []string{"Tarih", "Alıcı", "İstenen", "Teslim", "Fiyat", "Durum", "Telefon", "Adres"}

// BuildExcel filtrelenmiş talep listesini tek sayfalık bir çalışma kitabına
// yazar. Sütun sırası ekrandaki tabloyla aynıdır.
func BuildExcel(ds []demand.Response) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for i, h := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for row, d := range ds {
		values := []any{
			d.Date.Format("02.01.2006"),
			d.RecipientUserName,
			d.Demanded,
			deliveredLabel(d),
			priceLabel(d),
			string(d.State),
			contactLabel(d),
			addressLabel(d),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}

func deliveredLabel(d demand.Response) string {
	if d.Delivered == nil {
		return "-"
	}
	return trimFloat(*d.Delivered)
}

func priceLabel(d demand.Response) string {
	if d.Price == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s", trimFloat(*d.Price), d.Currency)
}

func contactLabel(d demand.Response) string {
	if d.ContactInfo == nil {
		return ""
	}
	return d.ContactInfo.Value
}

func addressLabel(d demand.Response) string {
	if d.AddressInfo == nil {
		return ""
	}
	return d.AddressInfo.Value
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
