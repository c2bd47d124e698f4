package services

import (
	"slices"
	"testing"

	"github.com/faisal/committee-tracker-go/models"
)

func TestComputeTurns_ManualKeepsInputOrder(t *testing.T) {
	ids := []string{"m1", "m2", "m3", "m2"} // m2 holds two shares
	turns := ComputeTurns(ids, models.PayoutManual)

	if len(turns) != len(ids) {
		t.Fatalf("expected %d turns, got %d", len(ids), len(turns))
	}
	for i, turn := range turns {
		if turn.MemberID != ids[i] {
			t.Errorf("turn %d: expected member %s, got %s", i, ids[i], turn.MemberID)
		}
		if turn.TurnIndex != i {
			t.Errorf("turn %d: expected index %d, got %d", i, i, turn.TurnIndex)
		}
		if turn.PaidOut {
			t.Errorf("turn %d: new turn must not be paid out", i)
		}
		if turn.PayoutDate != nil {
			t.Errorf("turn %d: new turn must not carry a payout date", i)
		}
	}
}

func TestComputeTurns_BiddingFallsBackToInputOrder(t *testing.T) {
	ids := []string{"a", "b", "c"}
	turns := ComputeTurns(ids, models.PayoutBidding)
	for i, turn := range turns {
		if turn.MemberID != ids[i] {
			t.Fatalf("bidding turn %d: expected %s, got %s", i, ids[i], turn.MemberID)
		}
	}
}

func TestComputeTurns_RandomIsPermutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	turns := ComputeTurns(ids, models.PayoutRandom)
	if len(turns) != len(ids) {
		t.Fatalf("expected %d turns, got %d", len(ids), len(turns))
	}

	got := make([]string, len(turns))
	for i, turn := range turns {
		got[i] = turn.MemberID
		if turn.TurnIndex != i {
			t.Errorf("turn %d has index %d", i, turn.TurnIndex)
		}
	}

	wantSorted := slices.Clone(ids)
	gotSorted := slices.Clone(got)
	slices.Sort(wantSorted)
	slices.Sort(gotSorted)
	if !slices.Equal(wantSorted, gotSorted) {
		t.Errorf("random turns are not a permutation of the input: %v", got)
	}
}

func TestComputeTurns_RandomShufflesOverTrials(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	shuffled := false
	for trial := 0; trial < 50; trial++ {
		turns := ComputeTurns(ids, models.PayoutRandom)
		for i, turn := range turns {
			if turn.MemberID != ids[i] {
				shuffled = true
				break
			}
		}
		if shuffled {
			break
		}
	}
	// P(identity permutation 50 times in a row) is vanishingly small for 8 ids.
	if !shuffled {
		t.Error("random method never deviated from input order over 50 trials")
	}
}

func TestComputeTurns_DoesNotMutateInput(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	want := slices.Clone(ids)
	for trial := 0; trial < 10; trial++ {
		ComputeTurns(ids, models.PayoutRandom)
	}
	if !slices.Equal(ids, want) {
		t.Errorf("input slice was mutated: %v", ids)
	}
}
