package demand

import (
	"errors"
	"fmt"

	"tevo-service/internal/models"
)

// Action bir talep üzerinde yapılabilecek işlem.
type Action string

const (
	ActionOffer    Action = "offer"    // teklif ver -> Teklif Verildi
	ActionApprove  Action = "approve"  // alıcı onayı -> Alıcı Onayladı
	ActionDeliver  Action = "deliver"  // teslim et -> Teslim Edildi
	ActionComplete Action = "complete" // tamamla -> Tamamlandı
	ActionCancel   Action = "cancel"   // iptal -> İptal Edildi
)

// ErrNotAllowed aksiyonun (durum, rol) ikilisi için yasal olmadığını belirtir.
var ErrNotAllowed = errors.New("bu işlem bu durumda yapılamaz")

// targets aksiyonun ilerlettiği durum. İptal dışında her aksiyonun tek bir
// kaynağı ve tek bir hedefi vardır; geriye geçiş yoktur.
var targets = map[Action]models.DemandState{
	ActionOffer:    models.StateOffered,
	ActionApprove:  models.StateApproved,
	ActionDeliver:  models.StateDelivered,
	ActionComplete: models.StateCompleted,
	ActionCancel:   models.StateCancelled,
}

// legal hangi durumda hangi rolün hangi aksiyonları görebileceği.
// Tabloda olmayan her (durum, rol) ikilisi boş küme demektir; Admin dahil.
var legal = map[models.DemandState]map[models.UserRole][]Action{
	models.StateCreated:   {models.RoleSeller: {ActionOffer, ActionCancel}},
	models.StateOffered:   {models.RoleBuyer: {ActionApprove, ActionCancel}},
	models.StateApproved:  {models.RoleSeller: {ActionDeliver}},
	models.StateDelivered: {models.RoleSeller: {ActionComplete}},
}

// LegalActions verilen durumda verilen rolün yapabileceği aksiyon kümesini
// döner. Terminal durumlar ve eşleşmeyen roller için boş küme döner.
func LegalActions(state models.DemandState, role models.UserRole) []Action {
	byRole, ok := legal[state]
	if !ok {
		return nil
	}
	actions, ok := byRole[role]
	if !ok {
		return nil
	}
	res := make([]Action, len(actions))
	copy(res, actions)
	return res
}

func CanPerform(state models.DemandState, role models.UserRole, a Action) bool {
	for _, la := range LegalActions(state, role) {
		if la == a {
			return true
		}
	}
	return false
}

// Target aksiyonun hedef durumu. Bilinmeyen aksiyon için boş döner.
func (a Action) Target() models.DemandState {
	return targets[a]
}

// ActionForTarget hedef duruma karşılık gelen aksiyonu çözer. UpdateBySeller
// istemciden hedef durum alır; geçerli bir hedef değilse false döner.
func ActionForTarget(target models.DemandState) (Action, bool) {
	for a, t := range targets {
		if t == target {
			return a, true
		}
	}
	return "", false
}

// Perform aksiyonu yasallık denetiminden geçirip talebi ilerletir. Yasal
// değilse talep değişmeden ErrNotAllowed döner.
func Perform(d *models.Demand, role models.UserRole, a Action) error {
	if !CanPerform(d.State, role, a) {
		return fmt.Errorf("%w: %q durumundaki talep için %s rolü %s aksiyonunu kullanamaz", ErrNotAllowed, d.State, role, a)
	}
	d.State = a.Target()
	return nil
}

// Offer satıcının teklifini doğrulayıp uygular: fiyat sıfırdan büyük, teslim
// miktarı negatif olmayan olmalı. Doğrulama hatası talepte değişiklik yapmaz.
func Offer(d *models.Demand, role models.UserRole, price, delivered float64) error {
	if price <= 0 {
		return errors.New("Fiyat 0'dan büyük olmalı")
	}
	if delivered < 0 {
		return errors.New("Teslim miktarı negatif olamaz")
	}
	if err := Perform(d, role, ActionOffer); err != nil {
		return err
	}
	d.Price = &price
	d.Delivered = &delivered
	return nil
}
