package demand

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"tevo-service/internal/models"
)

// Response taleplerin istemciye dönen hali: kullanıcı adları ve iletişim/adres
// kopyaları gömülüdür. Filtreleme ve sıralama bu tip üzerinde çalışır.
type Response struct {
	DemandID          uint                `json:"demandId"`
	RecipientUserID   uint                `json:"recipientUserId"`
	RecipientUserName string              `json:"recipientUserName"`
	DelivererUserID   uint                `json:"delivererUserId"`
	DelivererUserName string              `json:"delivererUserName"`
	ProductID         uint                `json:"productId"`
	Demanded          float64             `json:"demanded"`
	Delivered         *float64            `json:"delivered"`
	Price             *float64            `json:"price"`
	Currency          string              `json:"currency"`
	State             models.DemandState  `json:"state"`
	Date              time.Time           `json:"date"`
	ContactInfoID     uint                `json:"contactInfoId"`
	AddressInfoID     uint                `json:"addressInfoId"`
	ContactInfo       *models.ContactInfo `json:"contactInfoModel"`
	AddressInfo       *models.AddressInfo `json:"addressInfoModel"`
	SellerContactInfo *models.ContactInfo `json:"sellerContactInfoModel"`
}

// Tarih filtresi seçenekleri (DemandAll ekranındaki adlarla).
const (
	PeriodToday     = "Bugün"
	PeriodThisWeek  = "Bu Hafta"
	PeriodThisMonth = "Bu Ay"
	PeriodThisYear  = "Bu Yıl"
	PeriodLastWeek  = "1 Hafta İçinde" // son 7 gün
	PeriodLastMonth = "1 Ay İçinde"    // son 30 gün
)

var literalYear = regexp.MustCompile(`^\d{4}$`)

// Criteria talep listesi filtresi. Boş alan "hepsiyle eşleş" demektir.
// CustomDate ile DateFilter birbirini dışlar; CustomDate doluysa takvim günü
// eşitliği uygulanır ve DateFilter yok sayılır.
type Criteria struct {
	State            models.DemandState
	CounterpartyName string
	ProductID        uint
	DateFilter       string
	CustomDate       time.Time
}

// Filter kriterlere uyan talepleri döner. Kriterler bağımsızdır: hangi sırayla
// uygulanırsa uygulansın sonuç kümesi aynıdır.
func Filter(all []Response, cr Criteria, now time.Time) []Response {
	start, end, hasRange := dateRange(cr.DateFilter, now)

	res := make([]Response, 0, len(all))
	for _, d := range all {
		if cr.State != "" && d.State != cr.State {
			continue
		}
		if cr.CounterpartyName != "" && d.RecipientUserName != cr.CounterpartyName && d.DelivererUserName != cr.CounterpartyName {
			continue
		}
		if cr.ProductID != 0 && d.ProductID != cr.ProductID {
			continue
		}
		if !cr.CustomDate.IsZero() {
			if !sameDay(d.Date, cr.CustomDate) {
				continue
			}
		} else if hasRange {
			if d.Date.Before(start) || d.Date.After(end) {
				continue
			}
		}
		res = append(res, d)
	}
	return res
}

// dateRange adlandırılmış dönemi [start, end] kapalı aralığına çevirir.
// Bilinmeyen ad (veya "Tüm Tarihler") aralıksız döner.
func dateRange(name string, now time.Time) (start, end time.Time, ok bool) {
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	endOfDay := midnight.Add(24*time.Hour - time.Nanosecond)

	switch name {
	case PeriodToday:
		return midnight, endOfDay, true
	case PeriodThisWeek:
		// Pazartesi-Pazar
		day := int(now.Weekday())
		if day == 0 {
			day = 7
		}
		monday := midnight.AddDate(0, 0, -(day - 1))
		return monday, monday.AddDate(0, 0, 7).Add(-time.Nanosecond), true
	case PeriodThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return first, endOfDay, true
	case PeriodThisYear:
		first := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return first, endOfDay, true
	case PeriodLastWeek:
		return midnight.AddDate(0, 0, -6), endOfDay, true
	case PeriodLastMonth:
		return midnight.AddDate(0, 0, -29), endOfDay, true
	}

	if literalYear.MatchString(name) {
		year, _ := strconv.Atoi(name)
		start = time.Date(year, 1, 1, 0, 0, 0, 0, loc)
		end = time.Date(year+1, 1, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
		return start, end, true
	}

	return time.Time{}, time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Satıcı "talep karşıla" görünümünde bekleyen işler öne gelir: önce talep
// oluşturulmuşlar, sonra onaylılar, sonra teslim edilmişler, en sonda teklif
// verilmişler. Listede olmayan durumlar en sona düşer.
var sellerPriority = map[models.DemandState]int{
	models.StateCreated:   1,
	models.StateApproved:  2,
	models.StateDelivered: 3,
	models.StateOffered:   4,
}

// SortForSeller satıcı görünümü sıralaması: terminal talepler (Tamamlandı,
// İptal Edildi) her zaman sona, kendi aralarında tarihe göre azalan; terminal
// olmayanlar öncelik sırasına göre. Kararlıdır, yerinde sıralar.
func SortForSeller(ds []Response) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		aDone, bDone := a.State.IsTerminal(), b.State.IsTerminal()

		if aDone && bDone {
			return a.Date.After(b.Date)
		}
		if aDone != bDone {
			return !aDone
		}

		return priorityOf(a.State) < priorityOf(b.State)
	})
}

func priorityOf(s models.DemandState) int {
	if p, ok := sellerPriority[s]; ok {
		return p
	}
	return 99
}

// SortForBuyer alıcı geçmişi sıralaması: onay bekleyen teklifler en üstte,
// kalanlar tarihe göre azalan. Kararlıdır, yerinde sıralar.
func SortForBuyer(ds []Response) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		aOffered := a.State == models.StateOffered
		bOffered := b.State == models.StateOffered
		if aOffered != bOffered {
			return aOffered
		}
		return a.Date.After(b.Date)
	})
}

// Totals filtrelenmiş küme üzerindeki özet; her filtre değişiminde yeniden
// hesaplanır.
type Totals struct {
	Count     int     `json:"total"`
	Demanded  float64 `json:"demanded"`
	Delivered float64 `json:"delivered"`
	Amount    float64 `json:"amount"`
}

func Sum(ds []Response) Totals {
	t := Totals{Count: len(ds)}
	for _, d := range ds {
		t.Demanded += d.Demanded
		if d.Delivered != nil {
			t.Delivered += *d.Delivered
		}
		if d.Price != nil {
			t.Amount += *d.Price
		}
	}
	return t
}
