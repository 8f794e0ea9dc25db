package demand

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tevo-service/internal/auth"
	"tevo-service/internal/config"
	"tevo-service/internal/database"
	"tevo-service/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const dbTestSecret = "integration-secret-integration-secret!!"

// openTestDB TEST_DATABASE_DSN tanımlıysa test veritabanına bağlanır, değilse
// testi atlar. Kayıtlar benzersiz adlarla açılır; tablolar temizlenmez.
func openTestDB(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN tanımlı değil, veritabanı testleri atlandı")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("test veritabanına bağlanılamadı: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ContactInfo{},
		&models.AddressInfo{},
		&models.Client{},
		&models.Product{},
		&models.Demand{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migration hatası: %v", err)
	}
	database.DB = db
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func newTestUser(t *testing.T, role models.UserRole) models.User {
	t.Helper()

	u := models.User{
		UserName:     uniqueName("kullanici"),
		PasswordHash: "hash",
		Role:         role,
		ContactInfos: []models.ContactInfo{{Type: "phone", Value: "05550001122"}},
		AddressInfos: []models.AddressInfo{{Value: "Merkez Mah. No:3"}},
	}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("kullanıcı oluşturulamadı: %v", err)
	}
	return u
}

func newTestProduct(t *testing.T) models.Product {
	t.Helper()

	p := models.Product{Name: uniqueName("Süt"), Unit: "lt"}
	if err := database.DB.Create(&p).Error; err != nil {
		t.Fatalf("ürün oluşturulamadı: %v", err)
	}
	return p
}

func demandTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	mw := auth.JWTMiddleware(cfg)

	app.Post("/Demand/Create", mw, auth.RequireRole(models.RoleAdmin, models.RoleBuyer), CreateHandler())
	app.Post("/Demand/Approve", mw, auth.RequireRole(models.RoleAdmin, models.RoleBuyer), ApproveHandler())
	app.Post("/Demand/Cancel", mw, auth.RequireRole(models.RoleAdmin, models.RoleBuyer), CancelHandler())
	app.Put("/Demand/UpdateBySeller", mw, auth.RequireRole(models.RoleAdmin, models.RoleSeller), UpdateBySellerHandler())
	return app
}

func bearer(t *testing.T, u models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(dbTestSecret, &u)
	if err != nil {
		t.Fatalf("token üretilemedi: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			t.Fatalf("gövde kodlanamadı: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestDemandLifecycleOverHTTP(t *testing.T) {
	openTestDB(t)

	cfg := &config.Config{JWTSecret: dbTestSecret}
	app := demandTestApp(cfg)

	seller := newTestUser(t, models.RoleSeller)
	otherSeller := newTestUser(t, models.RoleSeller)
	buyer := newTestUser(t, models.RoleBuyer)
	otherBuyer := newTestUser(t, models.RoleBuyer)
	product := newTestProduct(t)

	// Alıcı talep açar
	resp, body := doJSON(t, app, http.MethodPost, "/Demand/Create", bearer(t, buyer), map[string]any{
		"demanded":        100,
		"delivererUserId": seller.ID,
		"recipientUserId": buyer.ID,
		"productId":       product.ID,
		"contactInfoId":   buyer.ContactInfos[0].ID,
		"addressInfoId":   buyer.AddressInfos[0].ID,
		"date":            time.Now().UTC().Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Create durum kodu %d, beklenen 201", resp.StatusCode)
	}
	model, ok := body["model"].(map[string]any)
	if !ok {
		t.Fatalf("model çözümlenemedi: %v", body)
	}
	if model["state"] != string(models.StateCreated) {
		t.Fatalf("ilk durum %v, beklenen %q", model["state"], models.StateCreated)
	}
	demandID := uint(model["demandId"].(float64))

	// Sahibi olmayan satıcı teklif veremez
	resp, _ = doJSON(t, app, http.MethodPut, "/Demand/UpdateBySeller", bearer(t, otherSeller), map[string]any{
		"demandId": demandID, "price": 120, "delivered": 50, "state": string(models.StateOffered),
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("yabancı satıcı için durum kodu %d, beklenen 403", resp.StatusCode)
	}

	// Sahibi teklif verir
	resp, _ = doJSON(t, app, http.MethodPut, "/Demand/UpdateBySeller", bearer(t, seller), map[string]any{
		"demandId": demandID, "price": 120, "delivered": 50, "state": string(models.StateOffered),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("teklif için durum kodu %d, beklenen 200", resp.StatusCode)
	}

	var d models.Demand
	if err := database.DB.First(&d, demandID).Error; err != nil {
		t.Fatalf("talep okunamadı: %v", err)
	}
	if d.State != models.StateOffered || d.Price == nil || *d.Price != 120 || d.Delivered == nil || *d.Delivered != 50 {
		t.Fatalf("teklif sonrası beklenmeyen talep: %+v", d)
	}

	// Başka alıcı onaylayamaz
	resp, _ = doJSON(t, app, http.MethodPost, "/Demand/Approve", bearer(t, otherBuyer), map[string]any{"demandId": demandID})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("yabancı alıcı için durum kodu %d, beklenen 403", resp.StatusCode)
	}

	// Sahibi onaylar
	resp, _ = doJSON(t, app, http.MethodPost, "/Demand/Approve", bearer(t, buyer), map[string]any{"demandId": demandID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("onay için durum kodu %d, beklenen 200", resp.StatusCode)
	}

	// Onay sonrası iptal reddedilir, durum değişmez
	resp, body = doJSON(t, app, http.MethodPost, "/Demand/Cancel", bearer(t, buyer), map[string]any{"demandId": demandID})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("onay sonrası iptal için durum kodu %d, beklenen 409", resp.StatusCode)
	}
	if state, _ := body["state"].(bool); state {
		t.Fatal("reddedilen iptalde state false olmalı")
	}
	if err := database.DB.First(&d, demandID).Error; err != nil || d.State != models.StateApproved {
		t.Fatalf("reddedilen iptal durumu değiştirmemeli: %q", d.State)
	}

	// Teslim ve tamamlama satıcıdan gelir
	for _, target := range []models.DemandState{models.StateDelivered, models.StateCompleted} {
		resp, _ = doJSON(t, app, http.MethodPut, "/Demand/UpdateBySeller", bearer(t, seller), map[string]any{
			"demandId": demandID, "state": string(target),
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%q hedefi için durum kodu %d, beklenen 200", target, resp.StatusCode)
		}
	}
	if err := database.DB.First(&d, demandID).Error; err != nil || d.State != models.StateCompleted {
		t.Fatalf("son durum %q, beklenen %q", d.State, models.StateCompleted)
	}

	// Her başarılı geçiş denetim kaydı bırakır; reddedilen iptal bırakmaz
	var logs int64
	if err := database.DB.Model(&models.AuditLog{}).Where("demand_id = ?", demandID).Count(&logs).Error; err != nil {
		t.Fatalf("denetim kayıtları okunamadı: %v", err)
	}
	if logs != 4 {
		t.Errorf("denetim kaydı sayısı %d, beklenen 4", logs)
	}
}

func TestDemandCreateOwnership(t *testing.T) {
	openTestDB(t)

	cfg := &config.Config{JWTSecret: dbTestSecret}
	app := demandTestApp(cfg)

	seller := newTestUser(t, models.RoleSeller)
	buyer := newTestUser(t, models.RoleBuyer)
	otherBuyer := newTestUser(t, models.RoleBuyer)
	product := newTestProduct(t)

	base := map[string]any{
		"demanded":        50,
		"delivererUserId": seller.ID,
		"productId":       product.ID,
		"date":            time.Now().UTC().Format(time.RFC3339),
	}

	// Alıcı başka bir alıcı adına talep açamaz
	payload := map[string]any{}
	for k, v := range base {
		payload[k] = v
	}
	payload["recipientUserId"] = otherBuyer.ID
	payload["contactInfoId"] = otherBuyer.ContactInfos[0].ID
	payload["addressInfoId"] = otherBuyer.AddressInfos[0].ID

	resp, _ := doJSON(t, app, http.MethodPost, "/Demand/Create", bearer(t, buyer), payload)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("başkası adına talep için durum kodu %d, beklenen 403", resp.StatusCode)
	}

	// Başka kullanıcının iletişim/adres kaydına referans verilemez
	payload = map[string]any{}
	for k, v := range base {
		payload[k] = v
	}
	payload["recipientUserId"] = buyer.ID
	payload["contactInfoId"] = otherBuyer.ContactInfos[0].ID
	payload["addressInfoId"] = buyer.AddressInfos[0].ID

	resp, _ = doJSON(t, app, http.MethodPost, "/Demand/Create", bearer(t, buyer), payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("yabancı iletişim kaydı için durum kodu %d, beklenen 400", resp.StatusCode)
	}
}
