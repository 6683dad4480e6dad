package api

import (
	"sync"

	"github.com/google/btree"
)

const auctionIndexDegree = 8

// auctionItem wraps an auction for use in btree, ordered by end block so the
// auctions closing soonest come first. ID breaks ties; EndTime == 0 (no bid
// yet, no deadline scheduled) sorts after everything with a deadline.
type auctionItem struct {
	endTime int64
	id      uint64
	status  *AuctionStatus
}

// Less implements btree.Item interface
func (a *auctionItem) Less(b btree.Item) bool {
	other := b.(*auctionItem)
	ae, be := a.endTime, other.endTime
	if ae == 0 {
		ae = int64(^uint64(0) >> 1)
	}
	if be == 0 {
		be = int64(^uint64(0) >> 1)
	}
	if ae != be {
		return ae < be
	}
	return a.id < other.id
}

// AuctionIndex is an in-memory view of running auctions ordered by closing
// block, so bidders can watch the ones about to settle.
type AuctionIndex struct {
	mu   sync.RWMutex
	tree *btree.BTree
	byID map[uint64]*auctionItem
}

// NewAuctionIndex creates an empty auction index
func NewAuctionIndex() *AuctionIndex {
	return &AuctionIndex{
		tree: btree.New(auctionIndexDegree),
		byID: make(map[uint64]*auctionItem),
	}
}

// Reload replaces the whole index with a fresh snapshot
func (idx *AuctionIndex) Reload(auctions []*AuctionStatus) {
	tree := btree.New(auctionIndexDegree)
	byID := make(map[uint64]*auctionItem, len(auctions))
	for _, status := range auctions {
		item := &auctionItem{endTime: status.EndTime, id: status.ID, status: status}
		byID[status.ID] = item
		tree.ReplaceOrInsert(item)
	}

	idx.mu.Lock()
	idx.tree = tree
	idx.byID = byID
	idx.mu.Unlock()
}

// Get returns one auction by ID, or nil if it is not running
func (idx *AuctionIndex) Get(id uint64) *AuctionStatus {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	item, ok := idx.byID[id]
	if !ok {
		return nil
	}
	return item.status
}

// ClosingSoonest returns up to limit auctions ordered by end block ascending
func (idx *AuctionIndex) ClosingSoonest(limit int) []*AuctionStatus {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*AuctionStatus, 0, limit)
	idx.tree.Ascend(func(item btree.Item) bool {
		out = append(out, item.(*auctionItem).status)
		return len(out) < limit
	})
	return out
}

// EndingBefore returns auctions whose deadline falls before the given block
func (idx *AuctionIndex) EndingBefore(block int64, limit int) []*AuctionStatus {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*AuctionStatus, 0, limit)
	idx.tree.AscendLessThan(&auctionItem{endTime: block}, func(item btree.Item) bool {
		out = append(out, item.(*auctionItem).status)
		return len(out) < limit
	})
	return out
}

// Len returns the number of indexed auctions
func (idx *AuctionIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Len()
}
