package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	cdpenginekeeper "github.com/openalpha/honzon/x/cdpengine/keeper"
)

// staticPriceOracle is the default collateral price feed: a fixed relative
// price of one, matching the unitless collateral ratio used until a real
// oracle module is wired.
type staticPriceOracle struct {
	price math.LegacyDec
}

func newStaticPriceOracle() cdpenginekeeper.PriceOracle {
	return staticPriceOracle{price: math.LegacyOneDec()}
}

func (o staticPriceOracle) GetRelativePrice(ctx sdk.Context) (math.LegacyDec, bool) {
	return o.price, true
}
