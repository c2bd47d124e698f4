package models

import (
	"slices"
	"time"
)

type CommitteeType string

const (
	CommitteeMonthly CommitteeType = "monthly"
	CommitteeWeekly  CommitteeType = "weekly"
	CommitteeDaily   CommitteeType = "daily"
)

type PayoutMethod string

const (
	PayoutManual  PayoutMethod = "manual"
	PayoutRandom  PayoutMethod = "random"
	PayoutBidding PayoutMethod = "bidding"
)

type PaymentStatus string

const (
	PaymentCleared PaymentStatus = "CLEARED"
	PaymentPending PaymentStatus = "PENDING"
)

// CommitteePayment is one entry in a committee's append-only payment log.
// Multiple partial payments per member per period are allowed and summed.
type CommitteePayment struct {
	ID          string        `bson:"id" json:"id"`
	MemberID    string        `bson:"member_id" json:"member_id"`
	PeriodIndex int           `bson:"period_index" json:"period_index"`
	Amount      float64       `bson:"amount" json:"amount"`
	Date        time.Time     `bson:"date" json:"date"`
	Status      PaymentStatus `bson:"status" json:"status"`
}

// PayoutTurn assigns one period slot to one member share. PayoutDate is set
// only while PaidOut is true; an unpaid turn never carries a date.
type PayoutTurn struct {
	MemberID   string     `bson:"member_id" json:"member_id"`
	TurnIndex  int        `bson:"turn_index" json:"turn_index"`
	PaidOut    bool       `bson:"paid_out" json:"paid_out"`
	PayoutDate *time.Time `bson:"payout_date,omitempty" json:"payout_date,omitempty"`
}

// Committee is a rotating-savings group. MemberIDs may contain duplicates,
// one entry per share held, and len(PayoutTurns) == len(MemberIDs) always.
type Committee struct {
	ID              string             `bson:"_id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Type            CommitteeType      `bson:"type" json:"type"`
	StartDate       time.Time          `bson:"start_date" json:"start_date"`
	Duration        int                `bson:"duration" json:"duration"`
	AmountPerMember float64            `bson:"amount_per_member" json:"amount_per_member"`
	PayoutMethod    PayoutMethod       `bson:"payout_method" json:"payout_method"`
	MemberIDs       []string           `bson:"member_ids" json:"member_ids"`
	Payments        []CommitteePayment `bson:"payments" json:"payments"`
	PayoutTurns     []PayoutTurn       `bson:"payout_turns" json:"payout_turns"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy so cached state never shares slices with callers.
func (c *Committee) Clone() *Committee {
	cp := *c
	cp.MemberIDs = slices.Clone(c.MemberIDs)
	cp.Payments = slices.Clone(c.Payments)
	cp.PayoutTurns = make([]PayoutTurn, len(c.PayoutTurns))
	for i, t := range c.PayoutTurns {
		cp.PayoutTurns[i] = t
		if t.PayoutDate != nil {
			d := *t.PayoutDate
			cp.PayoutTurns[i].PayoutDate = &d
		}
	}
	return &cp
}
