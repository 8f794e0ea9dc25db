package stats

import (
	"sort"

	"tevo-service/internal/demand"
	"tevo-service/internal/models"
)

type BuyerStat struct {
	UserID    uint    `json:"userId"`
	UserName  string  `json:"userName"`
	Demanded  float64 `json:"demanded"`
	Delivered float64 `json:"delivered"`
	Amount    float64 `json:"amount"`
}

type ProductStat struct {
	ProductID uint    `json:"productId"`
	Demanded  float64 `json:"demanded"`
	Delivered float64 `json:"delivered"`
}

type Overview struct {
	Year             int                        `json:"year"`
	MonthlyDelivered [12]float64                `json:"monthlyDelivered"`
	Buyers           []BuyerStat                `json:"buyers"`
	Products         []ProductStat              `json:"products"`
	StateCounts      map[models.DemandState]int `json:"stateCounts"`
	Totals           demand.Totals              `json:"totals"`
}

// Build satıcının talepleri üzerinden grafik ekranının verisini üretir.
// Aylık seri yalnızca verilen yılın teslimlerini sayar; kalan kırılımlar tüm
// kümeyi kapsar.
func Build(ds []demand.Response, year int) Overview {
	ov := Overview{
		Year:        year,
		StateCounts: make(map[models.DemandState]int),
		Totals:      demand.Sum(ds),
	}

	buyers := make(map[uint]*BuyerStat)
	products := make(map[uint]*ProductStat)

	for _, d := range ds {
		ov.StateCounts[d.State]++

		if d.Delivered != nil && d.Date.Year() == year {
			ov.MonthlyDelivered[int(d.Date.Month())-1] += *d.Delivered
		}

		b, ok := buyers[d.RecipientUserID]
		if !ok {
			b = &BuyerStat{UserID: d.RecipientUserID, UserName: d.RecipientUserName}
			buyers[d.RecipientUserID] = b
		}
		b.Demanded += d.Demanded
		if d.Delivered != nil {
			b.Delivered += *d.Delivered
		}
		if d.Price != nil {
			b.Amount += *d.Price
		}

		p, ok := products[d.ProductID]
		if !ok {
			p = &ProductStat{ProductID: d.ProductID}
			products[d.ProductID] = p
		}
		p.Demanded += d.Demanded
		if d.Delivered != nil {
			p.Delivered += *d.Delivered
		}
	}

	ov.Buyers = make([]BuyerStat, 0, len(buyers))
	for _, b := range buyers {
		ov.Buyers = append(ov.Buyers, *b)
	}
	sort.Slice(ov.Buyers, func(i, j int) bool {
		if ov.Buyers[i].Delivered != ov.Buyers[j].Delivered {
			return ov.Buyers[i].Delivered > ov.Buyers[j].Delivered
		}
		return ov.Buyers[i].UserName < ov.Buyers[j].UserName
	})

	ov.Products = make([]ProductStat, 0, len(products))
	for _, p := range products {
		ov.Products = append(ov.Products, *p)
	}
	sort.Slice(ov.Products, func(i, j int) bool {
		if ov.Products[i].Delivered != ov.Products[j].Delivered {
			return ov.Products[i].Delivered > ov.Products[j].Delivered
		}
		return ov.Products[i].ProductID < ov.Products[j].ProductID
	})

	return ov
}
