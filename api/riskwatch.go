package api

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/huandu/skiplist"
)

// riskKey orders positions by collateral ratio ascending, so the positions
// closest to liquidation sit at the front. Owner breaks ties.
type riskKey struct {
	ratio math.LegacyDec
	owner string
}

type riskKeyAsc struct{}

func (riskKeyAsc) Compare(lhs, rhs interface{}) int {
	l := lhs.(riskKey)
	r := rhs.(riskKey)
	if l.ratio.LT(r.ratio) {
		return -1
	}
	if l.ratio.GT(r.ratio) {
		return 1
	}
	if l.owner < r.owner {
		return -1
	}
	if l.owner > r.owner {
		return 1
	}
	return 0
}

func (riskKeyAsc) CalcScore(key interface{}) float64 {
	f, _ := key.(riskKey).ratio.Float64()
	return f
}

// RiskWatch is an in-memory index of open positions ordered by collateral
// ratio. Liquidation bots poll it to find the positions nearest the
// liquidation threshold without scanning the whole book.
type RiskWatch struct {
	mu   sync.RWMutex
	list *skiplist.SkipList
	keys map[string]riskKey
}

// NewRiskWatch creates an empty risk index
func NewRiskWatch() *RiskWatch {
	return &RiskWatch{
		list: skiplist.New(riskKeyAsc{}),
		keys: make(map[string]riskKey),
	}
}

// Update inserts or repositions one owner's entry - O(log n)
func (w *RiskWatch) Update(info *PositionInfo) {
	ratio, err := math.LegacyNewDecFromStr(info.CollateralRatio)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if old, ok := w.keys[info.Owner]; ok {
		w.list.Remove(old)
	}
	key := riskKey{ratio: ratio, owner: info.Owner}
	w.keys[info.Owner] = key
	w.list.Set(key, info)
}

// Remove drops one owner's entry
func (w *RiskWatch) Remove(owner string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if key, ok := w.keys[owner]; ok {
		w.list.Remove(key)
		delete(w.keys, owner)
	}
}

// Reload replaces the whole index with a fresh snapshot
func (w *RiskWatch) Reload(positions []*PositionInfo) {
	list := skiplist.New(riskKeyAsc{})
	keys := make(map[string]riskKey, len(positions))
	for _, info := range positions {
		ratio, err := math.LegacyNewDecFromStr(info.CollateralRatio)
		if err != nil {
			continue
		}
		key := riskKey{ratio: ratio, owner: info.Owner}
		keys[info.Owner] = key
		list.Set(key, info)
	}

	w.mu.Lock()
	w.list = list
	w.keys = keys
	w.mu.Unlock()
}

// Riskiest returns up to limit positions with the lowest collateral ratios
func (w *RiskWatch) Riskiest(limit int) []*PositionInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*PositionInfo, 0, limit)
	for elem := w.list.Front(); elem != nil && len(out) < limit; elem = elem.Next() {
		out = append(out, elem.Value.(*PositionInfo))
	}
	return out
}

// Below returns up to limit positions whose collateral ratio is strictly
// under the given threshold, riskiest first.
func (w *RiskWatch) Below(maxRatio math.LegacyDec, limit int) []*PositionInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*PositionInfo, 0, limit)
	for elem := w.list.Front(); elem != nil && len(out) < limit; elem = elem.Next() {
		if !elem.Key().(riskKey).ratio.LT(maxRatio) {
			break
		}
		out = append(out, elem.Value.(*PositionInfo))
	}
	return out
}

// Len returns the number of indexed positions
func (w *RiskWatch) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.list.Len()
}
