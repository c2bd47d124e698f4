// Package services implements the committee financial engine: payout-turn
// assignment, the committee and installment ledgers, notification derivation
// and the session auto-lock timer. Controllers stay thin; all mutation rules
// live here.
package services

import (
	"math/rand"

	"github.com/faisal/committee-tracker-go/models"
)

// ComputeTurns assigns one payout turn per member share. Manual and bidding
// methods keep the input order (bidding reassignment happens through later
// turn updates); random draws a single Fisher-Yates permutation which is
// fixed for the life of the membership. All returned turns are unpaid with
// no payout date.
func ComputeTurns(memberIDs []string, method models.PayoutMethod) []models.PayoutTurn {
	order := make([]string, len(memberIDs))
	copy(order, memberIDs)

	if method == models.PayoutRandom {
		rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	turns := make([]models.PayoutTurn, len(order))
	for i, id := range order {
		turns[i] = models.PayoutTurn{
			MemberID:  id,
			TurnIndex: i,
		}
	}
	return turns
}
