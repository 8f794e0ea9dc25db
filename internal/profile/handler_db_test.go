package profile

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

func newTestUser(t *testing.T) models.User {
	t.Helper()

	u := models.User{
		UserName:     fmt.Sprintf("kullanici-%d", time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         models.RoleBuyer,
		ContactInfos: []models.ContactInfo{
			{Type: "phone", Value: "05550001122"},
			{Type: "email", Value: "eski@ornek.com"},
		},
		AddressInfos: []models.AddressInfo{
			{Type: "home", Value: "Merkez Mah. No:3"},
			{Type: "work", Value: "Depo Sok. No:7"},
		},
	}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("kullanıcı oluşturulamadı: %v", err)
	}
	return u
}

func profileTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	mw := auth.JWTMiddleware(cfg)

	app.Get("/Profile/GetProfile", mw, GetProfileHandler())
	app.Put("/Profile/UpdateProfile", mw, UpdateProfileHandler())
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

func TestUpdateProfileUpsert(t *testing.T) {
	openTestDB(t)

	cfg := &config.Config{JWTSecret: dbTestSecret}
	app := profileTestApp(cfg)

	u := newTestUser(t)
	keptContact := u.ContactInfos[0]
	droppedContact := u.ContactInfos[1]
	keptAddress := u.AddressInfos[0]
	droppedAddress := u.AddressInfos[1]

	resp, body := doJSON(t, app, http.MethodPut, "/Profile/UpdateProfile", bearer(t, u), map[string]any{
		"userId":   u.ID,
		"userName": u.UserName,
		"contactInfoList": []map[string]any{
			{"contactInfoId": keptContact.ID, "type": "phone", "value": "05551112233"},
			{"type": "email", "value": "yeni@ornek.com"},
		},
		"addressInfoList": []map[string]any{
			// Koordinat varken açıklama boşaltılabilir
			{"addressInfoId": keptAddress.ID, "type": "home", "value": "", "latitude": "40.98", "longitude": "29.02"},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("durum kodu %d, beklenen 200", resp.StatusCode)
	}
	if state, _ := body["state"].(bool); !state {
		t.Fatalf("güncelleme başarısız: %v", body)
	}

	var contacts []models.ContactInfo
	if err := database.DB.Where("user_id = ?", u.ID).Order("id").Find(&contacts).Error; err != nil {
		t.Fatalf("iletişim kayıtları okunamadı: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("iletişim kaydı sayısı %d, beklenen 2", len(contacts))
	}
	if contacts[0].ID != keptContact.ID || contacts[0].Value != "05551112233" {
		t.Errorf("id'li kayıt yerinde güncellenmeli, gelen: %+v", contacts[0])
	}
	if err := database.DB.First(&models.ContactInfo{}, droppedContact.ID).Error; err == nil {
		t.Error("gövdede olmayan iletişim kaydı silinmeli")
	}

	var addresses []models.AddressInfo
	if err := database.DB.Where("user_id = ?", u.ID).Find(&addresses).Error; err != nil {
		t.Fatalf("adres kayıtları okunamadı: %v", err)
	}
	if len(addresses) != 1 {
		t.Fatalf("adres kaydı sayısı %d, beklenen 1", len(addresses))
	}
	if addresses[0].ID != keptAddress.ID || addresses[0].Value != "" || addresses[0].Latitude != "40.98" {
		t.Errorf("adres yerinde güncellenmeli, gelen: %+v", addresses[0])
	}
	if err := database.DB.First(&models.AddressInfo{}, droppedAddress.ID).Error; err == nil {
		t.Error("gövdede olmayan adres kaydı silinmeli")
	}
}

func TestUpdateProfileRejectsBrokenCoordinates(t *testing.T) {
	openTestDB(t)

	cfg := &config.Config{JWTSecret: dbTestSecret}
	app := profileTestApp(cfg)

	u := newTestUser(t)
	before := len(u.AddressInfos)

	resp, _ := doJSON(t, app, http.MethodPut, "/Profile/UpdateProfile", bearer(t, u), map[string]any{
		"userId":   u.ID,
		"userName": u.UserName,
		"contactInfoList": []map[string]any{
			{"contactInfoId": u.ContactInfos[0].ID, "type": "phone", "value": "05550001122"},
		},
		"addressInfoList": []map[string]any{
			{"value": "Yeni Mah.", "latitude": "40.98"},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("tek koordinat için durum kodu %d, beklenen 400", resp.StatusCode)
	}

	var count int64
	if err := database.DB.Model(&models.AddressInfo{}).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
		t.Fatalf("adres kayıtları okunamadı: %v", err)
	}
	if count != int64(before) {
		t.Errorf("reddedilen güncelleme adresleri değiştirmemeli: %d != %d", count, before)
	}
}

func TestProfileOwnership(t *testing.T) {
	openTestDB(t)

	cfg := &config.Config{JWTSecret: dbTestSecret}
	app := profileTestApp(cfg)

	owner := newTestUser(t)
	intruder := newTestUser(t)

	resp, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/Profile/GetProfile?userId=%d", owner.ID), bearer(t, intruder), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("yabancı profil okuma için durum kodu %d, beklenen 403", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPut, "/Profile/UpdateProfile", bearer(t, intruder), map[string]any{
		"userId":   owner.ID,
		"userName": owner.UserName,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("yabancı profil yazma için durum kodu %d, beklenen 403", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/Profile/GetProfile?userId=%d", owner.ID), bearer(t, owner), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kendi profili için durum kodu %d, beklenen 200", resp.StatusCode)
	}
	model, _ := body["model"].(map[string]any)
	if model == nil || model["userName"] != owner.UserName {
		t.Errorf("beklenmeyen profil gövdesi: %v", body)
	}
}
