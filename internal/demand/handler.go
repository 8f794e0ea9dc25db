package demand

import (
	"errors"
	"time"

	"tevo-service/internal/audit"
	"tevo-service/internal/auth"
	"tevo-service/internal/database"
	"tevo-service/internal/models"
	"tevo-service/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateRequest struct {
	Demanded        float64            `json:"demanded" validate:"required,gt=0"`
	DelivererUserID uint               `json:"delivererUserId" validate:"required"`
	RecipientUserID uint               `json:"recipientUserId" validate:"required"`
	Currency        string             `json:"currency"`
	ContactInfoID   uint               `json:"contactInfoId" validate:"required"`
	AddressInfoID   uint               `json:"addressInfoId" validate:"required"`
	ProductID       uint               `json:"productId" validate:"required"`
	Date            time.Time          `json:"date" validate:"required"`
}

type AddManuallyRequest struct {
	RecipientUserID uint      `json:"recipientUserId" validate:"required"`
	Demanded        float64   `json:"demanded" validate:"required,gt=0"`
	Price           float64   `json:"price" validate:"required,gt=0"`
	Currency        string    `json:"currency"`
	ContactInfoID   uint      `json:"contactInfoId" validate:"required"`
	AddressInfoID   uint      `json:"addressInfoId" validate:"required"`
	ProductID       uint      `json:"productId" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
}

type DemandIDRequest struct {
	DemandID uint `json:"demandId" validate:"required"`
}

type UpdateBySellerRequest struct {
	DemandID  uint               `json:"demandId" validate:"required"`
	Price     *float64           `json:"price"`
	Delivered *float64           `json:"delivered"`
	State     models.DemandState `json:"state" validate:"required"`
}

// CriteriaFromQuery liste ve export uçlarının ortak filtre parametreleri.
// customDate verilirse adlandırılmış dönem temizlenir; iki mod birbirini
// dışlar.
func CriteriaFromQuery(c *fiber.Ctx) Criteria {
	cr := Criteria{
		State:            models.DemandState(c.Query("state")),
		CounterpartyName: c.Query("buyer"),
		ProductID:        uint(c.QueryInt("productId")),
		DateFilter:       c.Query("dateFilter"),
	}
	if cd := c.Query("customDate"); cd != "" {
		if t, err := time.Parse("2006-01-02", cd); err == nil {
			cr.CustomDate = t
			cr.DateFilter = ""
		}
	}
	return cr
}

// UserIDParam ?userId= parametresini okur ve sahiplik denetimi yapar: admin
// olmayan kullanıcı yalnızca kendi taleplerini görebilir.
func UserIDParam(c *fiber.Ctx) (uint, error) {
	userID := c.QueryInt("userId")
	if userID <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "userId zorunlu")
	}

	tokenUserID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return 0, err
	}
	role, err := auth.RoleFromCtx(c)
	if err != nil {
		return 0, err
	}
	if role != models.RoleAdmin && uint(userID) != tokenUserID {
		return 0, fiber.NewError(fiber.StatusForbidden, "Sadece kendi taleplerinizi görebilirsiniz")
	}
	return uint(userID), nil
}

// POST /Demand/Create: alıcı yeni talep açar, durum "Talep Oluşturuldu".
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		tokenUserID, err := auth.UserIDFromCtx(c)
		if err != nil {
			return err
		}
		role, err := auth.RoleFromCtx(c)
		if err != nil {
			return err
		}
		if role != models.RoleAdmin && body.RecipientUserID != tokenUserID {
			return fiber.NewError(fiber.StatusForbidden, "Sadece kendi adınıza talep açabilirsiniz")
		}

		var deliverer models.User
		if err := database.DB.First(&deliverer, body.DelivererUserID).Error; err != nil || deliverer.Role != models.RoleSeller {
			return fiber.NewError(fiber.StatusBadRequest, "Satıcı bulunamadı")
		}
		if err := ensureProduct(body.ProductID); err != nil {
			return err
		}
		if err := ensureOwnedInfos(body.RecipientUserID, body.ContactInfoID, body.AddressInfoID); err != nil {
			return err
		}

		if body.Currency == "" {
			body.Currency = "₺"
		}

		d := models.Demand{
			RecipientUserID: body.RecipientUserID,
			DelivererUserID: body.DelivererUserID,
			ProductID:       body.ProductID,
			Demanded:        body.Demanded,
			Currency:        body.Currency,
			ContactInfoID:   body.ContactInfoID,
			AddressInfoID:   body.AddressInfoID,
			State:           models.StateCreated,
			Date:            body.Date,
		}

		if err := database.DB.Create(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep oluşturulamadı")
		}

		res, err := buildResponses([]models.Demand{d})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep okunamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"state": true, "model": res[0]})
	}
}

// POST /Demand/AddManually: satıcı, telefonla gelen siparişi kendisi girer.
// Fiyat baştan bellidir; talep doğrudan "Alıcı Onayladı" durumunda açılır.
func AddManuallyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddManuallyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		sellerID, err := auth.UserIDFromCtx(c)
		if err != nil {
			return err
		}

		var recipient models.User
		if err := database.DB.First(&recipient, body.RecipientUserID).Error; err != nil || recipient.Role != models.RoleBuyer {
			return fiber.NewError(fiber.StatusBadRequest, "Alıcı bulunamadı")
		}
		if err := ensureProduct(body.ProductID); err != nil {
			return err
		}
		// Manuel talepte iletişim/adres satıcının kendi profilinden seçilir
		if err := ensureOwnedInfos(sellerID, body.ContactInfoID, body.AddressInfoID); err != nil {
			return err
		}

		if body.Currency == "" {
			body.Currency = "₺"
		}

		d := models.Demand{
			RecipientUserID: body.RecipientUserID,
			DelivererUserID: sellerID,
			ProductID:       body.ProductID,
			Demanded:        body.Demanded,
			Price:           &body.Price,
			Currency:        body.Currency,
			ContactInfoID:   body.ContactInfoID,
			AddressInfoID:   body.AddressInfoID,
			State:           models.StateApproved,
			Date:            body.Date,
		}

		if err := database.DB.Create(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep oluşturulamadı")
		}

		res, err := buildResponses([]models.Demand{d})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep okunamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"state": true, "model": res[0]})
	}
}

// GET /Demand/GetByUser?userId= alıcı geçmişi; teklif bekleyenler üstte.
func GetByUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserIDParam(c)
		if err != nil {
			return err
		}

		ds, err := ForBuyer(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler listelenemedi")
		}

		ds = Filter(ds, CriteriaFromQuery(c), time.Now())
		SortForBuyer(ds)

		return c.JSON(fiber.Map{"state": true, "model": ds})
	}
}

// GET /Demand/GetForSeller?userId= satıcı görünümü; bekleyen işler üstte.
func GetForSellerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserIDParam(c)
		if err != nil {
			return err
		}

		ds, err := ForSeller(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler listelenemedi")
		}

		ds = Filter(ds, CriteriaFromQuery(c), time.Now())
		SortForSeller(ds)

		return c.JSON(fiber.Map{"state": true, "model": ds})
	}
}

// GET /Demand/GetAll: tüm talepler, tarihe göre azalan.
func GetAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ds, err := All()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler listelenemedi")
		}
		return c.JSON(fiber.Map{"state": true, "model": ds})
	}
}

// POST /Demand/Approve: alıcı teklifi onaylar.
func ApproveHandler() fiber.Handler {
	return transitionHandler(ActionApprove)
}

// POST /Demand/Cancel: alıcı teklifi reddeder. Onay sonrası iptal yoktur.
func CancelHandler() fiber.Handler {
	return transitionHandler(ActionCancel)
}

// transitionHandler alıcı aksiyonlarının ortak gövdesi: sahiplik + yasallık
// denetimi, durum güncellemesi, audit kaydı.
func transitionHandler(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DemandIDRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		tokenUserID, err := auth.UserIDFromCtx(c)
		if err != nil {
			return err
		}
		role, err := auth.RoleFromCtx(c)
		if err != nil {
			return err
		}

		var d models.Demand
		if err := database.DB.First(&d, body.DemandID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
		}
		if d.RecipientUserID != tokenUserID {
			return fiber.NewError(fiber.StatusForbidden, "Bu talep size ait değil")
		}

		from := d.State
		if err := Perform(&d, role, action); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"state":   false,
				"message": err.Error(),
			})
		}

		if err := database.DB.Save(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep güncellenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:    tokenUserID,
			UserName:  auth.UserNameFromCtx(c),
			DemandID:  d.ID,
			Action:    string(action),
			FromState: from,
			ToState:   d.State,
		})

		return c.JSON(fiber.Map{"state": true, "model": fiber.Map{"demandId": d.ID, "state": d.State}})
	}
}

// PUT /Demand/UpdateBySeller: satıcının tüm aksiyonları tek uçtan gelir:
// istemci hedef durumu gönderir, aksiyon buradan çözülür. Teklifte fiyat ve
// teslim miktarı zorunludur; yasallığı çözücü belirler.
func UpdateBySellerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateBySellerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		tokenUserID, err := auth.UserIDFromCtx(c)
		if err != nil {
			return err
		}
		role, err := auth.RoleFromCtx(c)
		if err != nil {
			return err
		}

		action, ok := ActionForTarget(body.State)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hedef durum")
		}

		var d models.Demand
		if err := database.DB.First(&d, body.DemandID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
		}
		if d.DelivererUserID != tokenUserID {
			return fiber.NewError(fiber.StatusForbidden, "Bu talep size ait değil")
		}

		from := d.State

		if action == ActionOffer {
			if body.Price == nil || body.Delivered == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Teklif için fiyat ve teslim miktarı zorunlu")
			}
			if err := Offer(&d, role, *body.Price, *body.Delivered); err != nil {
				if errors.Is(err, ErrNotAllowed) {
					return c.Status(fiber.StatusConflict).JSON(fiber.Map{"state": false, "message": err.Error()})
				}
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		} else {
			if err := Perform(&d, role, action); err != nil {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"state": false, "message": err.Error()})
			}
		}

		if err := database.DB.Save(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep güncellenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:    tokenUserID,
			UserName:  auth.UserNameFromCtx(c),
			DemandID:  d.ID,
			Action:    string(action),
			FromState: from,
			ToState:   d.State,
		})

		res, err := buildResponses([]models.Demand{d})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep okunamadı")
		}
		return c.JSON(fiber.Map{"state": true, "model": res[0]})
	}
}

func ensureProduct(productID uint) error {
	var p models.Product
	if err := database.DB.First(&p, productID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Ürün bulunamadı")
	}
	return nil
}

// ensureOwnedInfos iletişim ve adres kayıtlarının ilgili kullanıcıya ait
// olduğunu doğrular; başka kullanıcının kaydına referans verilemez.
func ensureOwnedInfos(userID, contactInfoID, addressInfoID uint) error {
	var ci models.ContactInfo
	if err := database.DB.Where("id = ? AND user_id = ?", contactInfoID, userID).First(&ci).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "İletişim bilgisi bulunamadı")
	}
	var ai models.AddressInfo
	if err := database.DB.Where("id = ? AND user_id = ?", addressInfoID, userID).First(&ai).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Adres bilgisi bulunamadı")
	}
	return nil
}
