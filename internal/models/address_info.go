package models

// AddressInfo bir kullanıcının kayıtlı adresi. Latitude/Longitude string olarak
// saklanır (ondalık derece); ikisi ya birlikte dolu ya birlikte boş olmalıdır.
// Koordinat haritadan seçildiyse Value (açıklama) boş bırakılabilir.
type AddressInfo struct {
	ID        uint   `gorm:"primaryKey" json:"addressInfoId"`
	UserID    uint   `gorm:"index;not null" json:"-"`
	Type      string `gorm:"size:50" json:"type"` // Ev, İş, Ahır vs.
	Value     string `gorm:"size:255" json:"value"`
	Latitude  string `gorm:"size:32" json:"latitude"`
	Longitude string `gorm:"size:32" json:"longitude"`
}

// HasCoordinates her iki koordinatın da dolu olup olmadığını söyler.
func (a AddressInfo) HasCoordinates() bool {
	return a.Latitude != "" && a.Longitude != ""
}
