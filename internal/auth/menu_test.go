package auth

import (
	"testing"

	"tevo-service/internal/models"
)

func routesOf(items []MenuItem) map[string]bool {
	res := make(map[string]bool, len(items))
	for _, item := range items {
		res[item.Route] = true
	}
	return res
}

func TestMenuForRole(t *testing.T) {
	cases := []struct {
		role    models.UserRole
		include []string
		exclude []string
	}{
		{models.RoleAdmin, []string{"/musteri", "/talepOlustur", "/talepGecmisi", "/talepKarsila", "/tumTalepler", "/graph", "/profile", "/yasak"}, nil},
		{models.RoleSeller, []string{"/musteri", "/talepKarsila", "/tumTalepler", "/graph", "/profile", "/yasak"}, []string{"/talepOlustur", "/talepGecmisi"}},
		{models.RoleBuyer, []string{"/talepOlustur", "/talepGecmisi", "/profile"}, []string{"/musteri", "/talepKarsila", "/tumTalepler", "/graph", "/yasak"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			routes := routesOf(MenuForRole(tc.role))
			for _, r := range tc.include {
				if !routes[r] {
					t.Errorf("%q rolü %q ekranını görmeli", tc.role, r)
				}
			}
			for _, r := range tc.exclude {
				if routes[r] {
					t.Errorf("%q rolü %q ekranını görmemeli", tc.role, r)
				}
			}
		})
	}
}

func TestMenuForUnknownRoleEmpty(t *testing.T) {
	if got := MenuForRole(models.UserRole("Misafir")); len(got) != 0 {
		t.Errorf("bilinmeyen rol için boş menü bekleniyordu, gelen: %v", got)
	}
}
