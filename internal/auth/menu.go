package auth

import "tevo-service/internal/models"

// MenuItem istemci menüsündeki bir girişi tanımlar; Roles o ekranı görebilecek
// rollerdir. Rota koruması sunucu tarafında da aynı listeyle uygulanır.
type MenuItem struct {
	Title string            `json:"title"`
	Route string            `json:"route"`
	Roles []models.UserRole `json:"roles"`
}

var menuItems = []MenuItem{
	{Title: "Müşteriler", Route: "/musteri", Roles: []models.UserRole{models.RoleAdmin, models.RoleSeller}},
	{Title: "Talep Oluştur", Route: "/talepOlustur", Roles: []models.UserRole{models.RoleAdmin, models.RoleBuyer}},
	{Title: "Taleplerim", Route: "/talepGecmisi", Roles: []models.UserRole{models.RoleAdmin, models.RoleBuyer}},
	{Title: "Talep Karşıla", Route: "/talepKarsila", Roles: []models.UserRole{models.RoleAdmin, models.RoleSeller}},
	{Title: "Tüm Talepler", Route: "/tumTalepler", Roles: []models.UserRole{models.RoleAdmin, models.RoleSeller}},
	{Title: "Grafikler", Route: "/graph", Roles: []models.UserRole{models.RoleAdmin, models.RoleSeller}},
	{Title: "Profil", Route: "/profile", Roles: []models.UserRole{models.RoleAdmin, models.RoleSeller, models.RoleBuyer}},
	{Title: "Yasakla", Route: "/yasak", Roles: []models.UserRole{models.RoleAdmin, models.RoleSeller}},
}

// MenuForRole rolün görebileceği menü girişlerini döner.
func MenuForRole(role models.UserRole) []MenuItem {
	res := make([]MenuItem, 0, len(menuItems))
	for _, item := range menuItems {
		for _, r := range item.Roles {
			if r == role {
				res = append(res, item)
				break
			}
		}
	}
	return res
}
