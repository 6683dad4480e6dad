package api

import (
	"testing"

	"cosmossdk.io/math"
)

func position(owner, ratio string) *PositionInfo {
	return &PositionInfo{Owner: owner, CollateralRatio: ratio}
}

// TestRiskWatchOrdering tests that positions come back riskiest first
func TestRiskWatchOrdering(t *testing.T) {
	w := NewRiskWatch()
	w.Reload([]*PositionInfo{
		position("alice", "2.5"),
		position("bob", "1.1"),
		position("carol", "1.8"),
	})

	if w.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", w.Len())
	}

	riskiest := w.Riskiest(2)
	if len(riskiest) != 2 {
		t.Fatalf("expected 2 results, got %d", len(riskiest))
	}
	if riskiest[0].Owner != "bob" || riskiest[1].Owner != "carol" {
		t.Errorf("expected bob then carol, got %s then %s", riskiest[0].Owner, riskiest[1].Owner)
	}
}

// TestRiskWatchUpdate tests repositioning and removal
func TestRiskWatchUpdate(t *testing.T) {
	w := NewRiskWatch()
	w.Update(position("alice", "2.0"))
	w.Update(position("bob", "3.0"))

	// Alice's ratio worsens; she must move to the front without duplicating
	w.Update(position("alice", "1.2"))
	if w.Len() != 2 {
		t.Fatalf("expected 2 entries after update, got %d", w.Len())
	}
	if got := w.Riskiest(1); len(got) != 1 || got[0].Owner != "alice" {
		t.Error("expected alice at the front after her ratio dropped")
	}

	w.Remove("alice")
	if w.Len() != 1 {
		t.Errorf("expected 1 entry after removal, got %d", w.Len())
	}
	w.Remove("nobody")
	if w.Len() != 1 {
		t.Errorf("removing an unknown owner must be a no-op")
	}
}

// TestRiskWatchBelow tests the threshold query
func TestRiskWatchBelow(t *testing.T) {
	w := NewRiskWatch()
	w.Reload([]*PositionInfo{
		position("alice", "1.1"),
		position("bob", "1.5"),
		position("carol", "2.0"),
	})

	under := w.Below(math.LegacyMustNewDecFromStr("1.5"), 10)
	if len(under) != 1 || under[0].Owner != "alice" {
		t.Errorf("expected only alice under 1.5, got %d results", len(under))
	}

	// Malformed ratios are skipped on reload
	w.Reload([]*PositionInfo{
		position("alice", "1.1"),
		position("broken", "not-a-ratio"),
	})
	if w.Len() != 1 {
		t.Errorf("expected malformed entry skipped, got %d entries", w.Len())
	}
}

func auctionAt(id uint64, end int64) *AuctionStatus {
	return &AuctionStatus{ID: id, EndTime: end}
}

// TestAuctionIndexOrdering tests end-block ordering with open-ended auctions
// sorting last.
func TestAuctionIndexOrdering(t *testing.T) {
	idx := NewAuctionIndex()
	idx.Reload([]*AuctionStatus{
		auctionAt(1, 300),
		auctionAt(2, 100),
		auctionAt(3, 0), // no deadline scheduled yet
		auctionAt(4, 200),
	})

	if idx.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", idx.Len())
	}

	soonest := idx.ClosingSoonest(10)
	want := []uint64{2, 4, 1, 3}
	if len(soonest) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(soonest))
	}
	for i, id := range want {
		if soonest[i].ID != id {
			t.Errorf("position %d: expected auction %d, got %d", i, id, soonest[i].ID)
		}
	}

	before := idx.EndingBefore(200, 10)
	if len(before) != 1 || before[0].ID != 2 {
		t.Errorf("expected only auction 2 ending before block 200, got %d results", len(before))
	}
}

// TestAuctionIndexGet tests point lookups
func TestAuctionIndexGet(t *testing.T) {
	idx := NewAuctionIndex()
	idx.Reload([]*AuctionStatus{auctionAt(7, 50)})

	if got := idx.Get(7); got == nil || got.EndTime != 50 {
		t.Error("expected auction 7 present")
	}
	if idx.Get(8) != nil {
		t.Error("expected nil for unknown auction")
	}

	// A reload drops auctions that settled
	idx.Reload(nil)
	if idx.Get(7) != nil {
		t.Error("expected auction 7 gone after reload")
	}
}
