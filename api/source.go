package api

import (
	"fmt"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	assetskeeper "github.com/openalpha/honzon/x/assets/keeper"
	assetstypes "github.com/openalpha/honzon/x/assets/types"
	auctionkeeper "github.com/openalpha/honzon/x/auction/keeper"
	auctionmanagerkeeper "github.com/openalpha/honzon/x/auctionmanager/keeper"
	cdpenginekeeper "github.com/openalpha/honzon/x/cdpengine/keeper"
	cdpenginetypes "github.com/openalpha/honzon/x/cdpengine/types"
	cdptreasurykeeper "github.com/openalpha/honzon/x/cdptreasury/keeper"
	loanskeeper "github.com/openalpha/honzon/x/loans/keeper"
)

// sourceAuthority is the privileged caller for the standalone keeper graph
const sourceAuthority = "api-operator"

// adjustableOracle is a price feed the operator can move at runtime
type adjustableOracle struct {
	mu    sync.RWMutex
	price math.LegacyDec
}

func (o *adjustableOracle) GetRelativePrice(ctx sdk.Context) (math.LegacyDec, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.price, true
}

// KeeperSource backs the API with an in-process keeper graph over an
// in-memory multistore. It serves standalone deployments and local
// development where no node is attached.
type KeeperSource struct {
	mu  sync.Mutex
	ctx sdk.Context

	assets   *assetskeeper.Keeper
	auction  *auctionkeeper.Keeper
	manager  *auctionmanagerkeeper.Keeper
	treasury *cdptreasurykeeper.Keeper
	loans    *loanskeeper.Keeper
	engine   *cdpenginekeeper.Keeper

	oracle *adjustableOracle
}

// NewKeeperSource builds the full collateral subsystem over a fresh
// in-memory store, wired the same way the app wires it.
func NewKeeperSource() (*KeeperSource, error) {
	assetsKey := storetypes.NewKVStoreKey("assets")
	auctionKey := storetypes.NewKVStoreKey("auction")
	auctionManagerKey := storetypes.NewKVStoreKey("auctionmanager")
	treasuryKey := storetypes.NewKVStoreKey("cdptreasury")
	loansKey := storetypes.NewKVStoreKey("loans")
	engineKey := storetypes.NewKVStoreKey("cdpengine")

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range []*storetypes.KVStoreKey{
		assetsKey, auctionKey, auctionManagerKey, treasuryKey, loansKey, engineKey,
	} {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	if err := stateStore.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())

	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	logger := log.NewNopLogger()

	assets := assetskeeper.NewKeeper(cdc, assetsKey, logger)
	treasury := cdptreasurykeeper.NewKeeper(
		cdc, treasuryKey, logger, assets,
		sourceAuthority,
		assetstypes.DefaultStableDenom,
		assetstypes.DefaultCollateralDenom,
	)
	auction := auctionkeeper.NewKeeper(cdc, auctionKey, logger)
	manager := auctionmanagerkeeper.NewKeeper(
		cdc, auctionManagerKey, logger, assets, treasury, auction,
		assetstypes.DefaultStableDenom,
		assetstypes.DefaultCollateralDenom,
	)
	loans := loanskeeper.NewKeeper(
		cdc, loansKey, logger, assets, treasury,
		assetstypes.DefaultCollateralDenom,
	)
	engine := cdpenginekeeper.NewKeeper(
		cdc, engineKey, logger, loans, treasury,
		sourceAuthority,
	)

	treasury.SetAuctionManagerKeeper(manager)
	treasury.SetShutdownKeeper(engine)
	manager.SetShutdownKeeper(engine)
	loans.SetRiskManager(engine)
	auction.SetHandler(manager)

	oracle := &adjustableOracle{price: math.LegacyOneDec()}
	engine.SetPriceOracle(oracle)

	return &KeeperSource{
		ctx:      ctx,
		assets:   assets,
		auction:  auction,
		manager:  manager,
		treasury: treasury,
		loans:    loans,
		engine:   engine,
		oracle:   oracle,
	}, nil
}

// SetPrice moves the collateral price feed
func (s *KeeperSource) SetPrice(price math.LegacyDec) {
	s.oracle.mu.Lock()
	s.oracle.price = price
	s.oracle.mu.Unlock()
}

// AdvanceBlock moves to the next block height and runs the end-of-block
// sweeps, settling due auctions and offsetting debit against surplus.
func (s *KeeperSource) AdvanceBlock() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	height := s.ctx.BlockHeight() + 1
	s.ctx = s.ctx.WithBlockHeight(height)
	s.engine.BeginBlocker(s.ctx)
	s.auction.EndBlocker(s.ctx)
	s.treasury.EndBlocker(s.ctx)
	return height
}

// SeedDemo populates the graph with a couple of positions and a running
// collateral auction so a standalone server has state to serve.
func (s *KeeperSource) SeedDemo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	liquidation := math.LegacyMustNewDecFromStr("1.5")
	s.engine.SetCollateralParams(s.ctx, &cdpenginetypes.CollateralParams{
		MaximumTotalDebitValue: math.NewInt(1_000_000),
		LiquidationRatio:       &liquidation,
	})

	for who, amounts := range map[string][2]int64{
		"demo-alice": {500, 200},
		"demo-bob":   {900, 300},
	} {
		if err := s.assets.Mint(s.ctx, who, assetstypes.DefaultCollateralDenom, math.NewInt(amounts[0])); err != nil {
			return err
		}
		if err := s.loans.AdjustPosition(s.ctx, who, math.NewInt(amounts[0]), math.NewInt(amounts[1])); err != nil {
			return err
		}
	}

	if err := s.assets.Mint(s.ctx, s.treasury.GetTreasuryAccount(), assetstypes.DefaultCollateralDenom, math.NewInt(100)); err != nil {
		return err
	}
	_, err := s.treasury.CreateCollateralAuctions(s.ctx, math.NewInt(100), math.NewInt(150), "demo-alice", false)
	return err
}

// ============ StateSource ============

// TreasuryStatus returns a snapshot of the treasury pools
func (s *KeeperSource) TreasuryStatus() *TreasuryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &TreasuryStatus{
		SurplusPool:         s.treasury.GetSurplusPool(s.ctx).String(),
		DebitPool:           s.treasury.GetDebitPool(s.ctx).String(),
		TotalCollaterals:    s.treasury.GetTotalCollaterals(s.ctx).String(),
		CollateralInAuction: s.manager.GetTotalCollateralInAuction(s.ctx).String(),
		TargetInAuction:     s.manager.GetTotalTargetInAuction(s.ctx).String(),
		Shutdown:            s.engine.IsShutdown(s.ctx),
		UpdatedAt:           NowMillis(),
	}
}

// Positions returns every open position with its current risk figures
func (s *KeeperSource) Positions() []*PositionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.loans.GetAllPositions(s.ctx)
	out := make([]*PositionInfo, 0, len(positions))
	for owner, position := range positions {
		out = append(out, s.positionInfo(owner, position.Collateral, position.Debit))
	}
	return out
}

// Position returns one owner's position, or nil if none is open
func (s *KeeperSource) Position(owner string) *PositionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loans.HasPosition(s.ctx, owner) {
		return nil
	}
	position := s.loans.GetPosition(s.ctx, owner)
	return s.positionInfo(owner, position.Collateral, position.Debit)
}

func (s *KeeperSource) positionInfo(owner string, collateral, debit math.Int) *PositionInfo {
	return &PositionInfo{
		Owner:           owner,
		Collateral:      collateral.String(),
		Debit:           debit.String(),
		DebitValue:      s.engine.GetDebitValue(s.ctx, debit).String(),
		CollateralRatio: s.engine.CalcCollateralRatio(s.ctx, collateral, debit).String(),
		Status:          s.engine.GetCDPStatus(s.ctx, owner).String(),
		UpdatedAt:       NowMillis(),
	}
}

// Auctions returns every running collateral auction joined with its generic
// auction record.
func (s *KeeperSource) Auctions() []*AuctionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.manager.GetAllCollateralAuctions(s.ctx)
	out := make([]*AuctionStatus, 0, len(items))
	for id, item := range items {
		status := &AuctionStatus{
			ID:              id,
			RefundRecipient: item.RefundRecipient,
			InitialAmount:   item.InitialAmount.String(),
			Amount:          item.Amount.String(),
			Target:          item.Target.String(),
			StartTime:       item.StartTime,
			AlwaysForward:   item.AlwaysForward(),
		}
		if info := s.auction.GetAuction(s.ctx, id); info != nil {
			if info.End != nil {
				status.EndTime = *info.End
			}
			if info.Bid != nil {
				status.BidPrice = info.Bid.Amount.String()
				status.Bidder = info.Bid.Bidder
				status.InReverseStage = item.InReverseStage(info.Bid.Amount)
			}
		}
		out = append(out, status)
	}
	return out
}
