package models

import (
	"slices"
	"time"
)

type InstallmentStatus string

const (
	InstallmentOpen   InstallmentStatus = "OPEN"
	InstallmentClosed InstallmentStatus = "CLOSED"
)

type InstallmentPayment struct {
	ID     string    `bson:"id" json:"id"`
	Amount float64   `bson:"amount" json:"amount"`
	Date   time.Time `bson:"date" json:"date"`
}

// Installment tracks a buyer paying off an item over time. Status is derived:
// CLOSED iff Advance plus the sum of Payments covers TotalPayment.
type Installment struct {
	ID                 string               `bson:"_id" json:"id"`
	BuyerName          string               `bson:"buyer_name" json:"buyer_name"`
	BuyerPhone         string               `bson:"buyer_phone,omitempty" json:"buyer_phone,omitempty"`
	BuyerNationalID    string               `bson:"buyer_national_id,omitempty" json:"buyer_national_id,omitempty"`
	ItemDescription    string               `bson:"item_description" json:"item_description"`
	Advance            float64              `bson:"advance" json:"advance"`
	TotalPayment       float64              `bson:"total_payment" json:"total_payment"`
	MonthlyInstallment float64              `bson:"monthly_installment" json:"monthly_installment"`
	Payments           []InstallmentPayment `bson:"payments" json:"payments"`
	Status             InstallmentStatus    `bson:"status" json:"status"`
	CreatedAt          time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time            `bson:"updated_at" json:"updated_at"`
}

// PaidTotal is the advance plus every recorded installment payment.
func (i *Installment) PaidTotal() float64 {
	total := i.Advance
	for _, p := range i.Payments {
		total += p.Amount
	}
	return total
}

func (i *Installment) Clone() *Installment {
	cp := *i
	cp.Payments = slices.Clone(i.Payments)
	return &cp
}
