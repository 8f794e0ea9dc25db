package demand

import (
	"tevo-service/internal/database"
	"tevo-service/internal/models"
)

// ForSeller satıcının karşılayacağı talepleri istemci görünümüne çevirir.
func ForSeller(sellerID uint) ([]Response, error) {
	var ds []models.Demand
	if err := database.DB.Where("deliverer_user_id = ?", sellerID).Order("date DESC").Find(&ds).Error; err != nil {
		return nil, err
	}
	return buildResponses(ds)
}

// ForBuyer alıcının açtığı talepleri istemci görünümüne çevirir.
func ForBuyer(buyerID uint) ([]Response, error) {
	var ds []models.Demand
	if err := database.DB.Where("recipient_user_id = ?", buyerID).Order("date DESC").Find(&ds).Error; err != nil {
		return nil, err
	}
	return buildResponses(ds)
}

// All tüm talepleri döner (admin/satıcı genel görünümü).
func All() ([]Response, error) {
	var ds []models.Demand
	if err := database.DB.Order("date DESC").Find(&ds).Error; err != nil {
		return nil, err
	}
	return buildResponses(ds)
}

// buildResponses kullanıcı adlarını ve iletişim/adres kopyalarını tek seferde
// toplayıp yanıtlara gömer.
func buildResponses(ds []models.Demand) ([]Response, error) {
	if len(ds) == 0 {
		return []Response{}, nil
	}

	userIDSet := map[uint]struct{}{}
	contactIDSet := map[uint]struct{}{}
	addressIDSet := map[uint]struct{}{}
	for _, d := range ds {
		userIDSet[d.RecipientUserID] = struct{}{}
		userIDSet[d.DelivererUserID] = struct{}{}
		if d.ContactInfoID != 0 {
			contactIDSet[d.ContactInfoID] = struct{}{}
		}
		if d.AddressInfoID != 0 {
			addressIDSet[d.AddressInfoID] = struct{}{}
		}
	}

	userIDs := keys(userIDSet)
	var users []models.User
	if err := database.DB.Preload("ContactInfos").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	userByID := make(map[uint]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	contactByID := map[uint]models.ContactInfo{}
	if len(contactIDSet) > 0 {
		var contacts []models.ContactInfo
		if err := database.DB.Where("id IN ?", keys(contactIDSet)).Find(&contacts).Error; err != nil {
			return nil, err
		}
		for _, ci := range contacts {
			contactByID[ci.ID] = ci
		}
	}

	addressByID := map[uint]models.AddressInfo{}
	if len(addressIDSet) > 0 {
		var addresses []models.AddressInfo
		if err := database.DB.Where("id IN ?", keys(addressIDSet)).Find(&addresses).Error; err != nil {
			return nil, err
		}
		for _, ai := range addresses {
			addressByID[ai.ID] = ai
		}
	}

	res := make([]Response, 0, len(ds))
	for _, d := range ds {
		r := Response{
			DemandID:        d.ID,
			RecipientUserID: d.RecipientUserID,
			DelivererUserID: d.DelivererUserID,
			ProductID:       d.ProductID,
			Demanded:        d.Demanded,
			Delivered:       d.Delivered,
			Price:           d.Price,
			Currency:        d.Currency,
			State:           d.State,
			Date:            d.Date,
			ContactInfoID:   d.ContactInfoID,
			AddressInfoID:   d.AddressInfoID,
		}

		if u, ok := userByID[d.RecipientUserID]; ok {
			r.RecipientUserName = u.UserName
		}
		if u, ok := userByID[d.DelivererUserID]; ok {
			r.DelivererUserName = u.UserName
			if len(u.ContactInfos) > 0 {
				ci := u.ContactInfos[0]
				r.SellerContactInfo = &ci
			}
		}
		if ci, ok := contactByID[d.ContactInfoID]; ok {
			ci := ci
			r.ContactInfo = &ci
		}
		if ai, ok := addressByID[d.AddressInfoID]; ok {
			ai := ai
			r.AddressInfo = &ai
		}

		res = append(res, r)
	}
	return res, nil
}

func keys(set map[uint]struct{}) []uint {
	ids := make([]uint, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
