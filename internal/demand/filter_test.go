package demand

import (
	"testing"
	"time"

	"tevo-service/internal/models"
)

func fp(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

// Sabit "şimdi": Çarşamba, 15 Temmuz 2026.
var testNow = time.Date(2026, time.July, 15, 10, 0, 0, 0, time.Local)

func sampleDemands() []Response {
	return []Response{
		{DemandID: 1, RecipientUserName: "Ayşe", ProductID: 1, Demanded: 100, Delivered: fp(100), Price: fp(500), State: models.StateCompleted, Date: day(2026, time.July, 15)},
		{DemandID: 2, RecipientUserName: "Ayşe", ProductID: 2, Demanded: 40, Delivered: fp(40), Price: fp(200), State: models.StateCompleted, Date: day(2026, time.July, 1)},
		{DemandID: 3, RecipientUserName: "Mehmet", ProductID: 1, Demanded: 60, State: models.StateCreated, Date: day(2026, time.July, 14)},
		{DemandID: 4, RecipientUserName: "Ayşe", ProductID: 1, Demanded: 30, Delivered: fp(25), Price: fp(150), State: models.StateOffered, Date: day(2026, time.June, 20)},
		{DemandID: 5, RecipientUserName: "Mehmet", ProductID: 2, Demanded: 80, Delivered: fp(80), Price: fp(400), State: models.StateCancelled, Date: day(2025, time.December, 30)},
	}
}

func ids(ds []Response) []uint {
	res := make([]uint, len(ds))
	for i, d := range ds {
		res[i] = d.DemandID
	}
	return res
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByState(t *testing.T) {
	got := Filter(sampleDemands(), Criteria{State: models.StateCompleted}, testNow)
	if !equalIDs(ids(got), []uint{1, 2}) {
		t.Errorf("beklenmeyen küme: %v", ids(got))
	}
}

func TestFilterByCounterpartyAndState(t *testing.T) {
	got := Filter(sampleDemands(), Criteria{State: models.StateCompleted, CounterpartyName: "Ayşe"}, testNow)
	if len(got) != 2 {
		t.Fatalf("2 kayıt bekleniyordu, gelen: %d", len(got))
	}

	totals := Sum(got)
	if totals.Count != 2 || totals.Demanded != 140 || totals.Delivered != 140 || totals.Amount != 700 {
		t.Errorf("beklenmeyen toplamlar: %+v", totals)
	}
}

func TestFilterOrderIndependence(t *testing.T) {
	// Kriterler bağımsızdır; iki kademede süzmek tek seferde süzmekle aynı
	// kümeyi vermelidir.
	all := sampleDemands()
	once := Filter(all, Criteria{State: models.StateCompleted, ProductID: 1}, testNow)
	twice := Filter(Filter(all, Criteria{ProductID: 1}, testNow), Criteria{State: models.StateCompleted}, testNow)

	if !equalIDs(ids(once), ids(twice)) {
		t.Errorf("tek kademe %v, iki kademe %v", ids(once), ids(twice))
	}
}

func TestFilterCustomDateOverridesPeriod(t *testing.T) {
	cr := Criteria{DateFilter: PeriodThisYear, CustomDate: day(2026, time.July, 14)}
	got := Filter(sampleDemands(), cr, testNow)
	if !equalIDs(ids(got), []uint{3}) {
		t.Errorf("takvim günü eşitliği bekleniyordu, gelen: %v", ids(got))
	}
}

func TestFilterNamedPeriods(t *testing.T) {
	cases := []struct {
		name   string
		filter string
		want   []uint
	}{
		{"bugün", PeriodToday, []uint{1}},
		{"bu hafta pazartesiden başlar", PeriodThisWeek, []uint{1, 3}},
		{"bu ay", PeriodThisMonth, []uint{1, 2, 3}},
		{"bu yıl", PeriodThisYear, []uint{1, 2, 3, 4}},
		{"son 7 gün", PeriodLastWeek, []uint{1, 3}},
		{"son 30 gün", PeriodLastMonth, []uint{1, 2, 3, 4}},
		{"yıl sabiti", "2025", []uint{5}},
		{"bilinmeyen ad hepsini geçirir", "Tüm Tarihler", []uint{1, 2, 3, 4, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(sampleDemands(), Criteria{DateFilter: tc.filter}, testNow)
			if !equalIDs(ids(got), tc.want) {
				t.Errorf("beklenen %v, gelen %v", tc.want, ids(got))
			}
		})
	}
}

func TestSortForSeller(t *testing.T) {
	ds := sampleDemands()
	SortForSeller(ds)

	// Önce bekleyen işler öncelik sırasıyla (oluşturuldu, onaylı, teslim,
	// teklif), terminal kayıtlar en sonda tarihe göre azalan.
	want := []uint{3, 4, 1, 2, 5}
	if !equalIDs(ids(ds), want) {
		t.Errorf("beklenen %v, gelen %v", want, ids(ds))
	}
}

func TestSortForSellerStable(t *testing.T) {
	ds := []Response{
		{DemandID: 10, State: models.StateCreated, Date: day(2026, time.July, 1)},
		{DemandID: 11, State: models.StateCreated, Date: day(2026, time.July, 2)},
		{DemandID: 12, State: models.StateCreated, Date: day(2026, time.July, 3)},
	}
	SortForSeller(ds)
	if !equalIDs(ids(ds), []uint{10, 11, 12}) {
		t.Errorf("aynı öncelikte giriş sırası korunmalı, gelen: %v", ids(ds))
	}
}

func TestSortForBuyer(t *testing.T) {
	ds := sampleDemands()
	SortForBuyer(ds)

	// Teklif bekleyen en üstte, kalanlar tarihe göre azalan.
	want := []uint{4, 1, 3, 2, 5}
	if !equalIDs(ids(ds), want) {
		t.Errorf("beklenen %v, gelen %v", want, ids(ds))
	}
}

func TestSumEmpty(t *testing.T) {
	totals := Sum(nil)
	if totals.Count != 0 || totals.Demanded != 0 || totals.Delivered != 0 || totals.Amount != 0 {
		t.Errorf("boş küme için sıfır toplam bekleniyordu: %+v", totals)
	}
}

func TestSumSkipsNilFields(t *testing.T) {
	ds := []Response{
		{Demanded: 100},
		{Demanded: 50, Delivered: fp(40), Price: fp(300)},
	}
	totals := Sum(ds)
	if totals.Count != 2 || totals.Demanded != 150 || totals.Delivered != 40 || totals.Amount != 300 {
		t.Errorf("beklenmeyen toplamlar: %+v", totals)
	}
}
