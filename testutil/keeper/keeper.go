// Package keeper provides in-memory keeper fixtures for tests.
package keeper

import (
	"testing"

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
	cdptreasurykeeper "github.com/openalpha/honzon/x/cdptreasury/keeper"
	loanskeeper "github.com/openalpha/honzon/x/loans/keeper"
)

// TestAuthority is the privileged caller used in keeper fixtures.
const TestAuthority = "authority"

// Keepers bundles the full collateral subsystem wired the same way the app
// wires it, backed by an in-memory store.
type Keepers struct {
	Assets         *assetskeeper.Keeper
	Auction        *auctionkeeper.Keeper
	AuctionManager *auctionmanagerkeeper.Keeper
	CDPTreasury    *cdptreasurykeeper.Keeper
	Loans          *loanskeeper.Keeper
	CDPEngine      *cdpenginekeeper.Keeper
}

// staticOracle is a fixed price feed for tests.
type staticOracle struct {
	price math.LegacyDec
	ok    bool
}

func (o *staticOracle) GetRelativePrice(ctx sdk.Context) (math.LegacyDec, bool) {
	return o.price, o.ok
}

// SetupKeepers builds the full keeper graph over a fresh in-memory multistore.
// The returned oracle setter lets tests move the collateral price.
func SetupKeepers(tb testing.TB) (*Keepers, sdk.Context, func(price math.LegacyDec)) {
	tb.Helper()

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
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)
	logger := log.NewNopLogger()

	assets := assetskeeper.NewKeeper(cdc, assetsKey, logger)

	treasury := cdptreasurykeeper.NewKeeper(
		cdc, treasuryKey, logger, assets,
		TestAuthority,
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
		TestAuthority,
	)

	treasury.SetAuctionManagerKeeper(manager)
	treasury.SetShutdownKeeper(engine)
	manager.SetShutdownKeeper(engine)
	loans.SetRiskManager(engine)
	auction.SetHandler(manager)

	oracle := &staticOracle{price: math.LegacyOneDec(), ok: true}
	engine.SetPriceOracle(oracle)
	setPrice := func(price math.LegacyDec) { oracle.price = price }

	return &Keepers{
		Assets:         assets,
		Auction:        auction,
		AuctionManager: manager,
		CDPTreasury:    treasury,
		Loans:          loans,
		CDPEngine:      engine,
	}, ctx, setPrice
}
