package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct istek gövdesini doğrular. Doğrulama geçmezse kullanıcıya gösterilecek
// mesajla birlikte false döner; hatalı istek hiçbir zaman veritabanına inmez.
func Struct(s any) (string, bool) {
	err := validate.Struct(s)
	if err == nil {
		return "", true
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Geçersiz istek gövdesi", false
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "Eksik veya geçersiz alanlar: " + strings.Join(fields, ", "), false
}
