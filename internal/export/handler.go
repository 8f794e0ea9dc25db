package export

import (
	"fmt"
	"time"

	"tevo-service/internal/demand"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const excelMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// demandsForExport liste uçlarıyla aynı filtre parametrelerini kabul eder;
// export her zaman ekranda görünen kümeyi yansıtır.
func demandsForExport(c *fiber.Ctx) ([]demand.Response, error) {
	userID, err := demand.UserIDParam(c)
	if err != nil {
		return nil, err
	}

	ds, err := demand.ForSeller(userID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Talepler okunamadı")
	}

	ds = demand.Filter(ds, demand.CriteriaFromQuery(c), time.Now())
	demand.SortForSeller(ds)
	return ds, nil
}

// GET /Demand/ExportExcel?userId=
func ExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ds, err := demandsForExport(c)
		if err != nil {
			return err
		}

		buf, err := BuildExcel(ds)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel oluşturulamadı")
		}

		name := fmt.Sprintf("talepler-%s.xlsx", uuid.NewString()[:8])
		c.Set(fiber.HeaderContentType, excelMIME)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
		return c.Send(buf.Bytes())
	}
}

// GET /Demand/ExportPdf?userId=
func PDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ds, err := demandsForExport(c)
		if err != nil {
			return err
		}

		out, err := BuildPDF(ds, demand.Sum(ds))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "PDF oluşturulamadı")
		}

		name := fmt.Sprintf("talepler-%s.pdf", uuid.NewString()[:8])
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
		return c.Send(out)
	}
}
