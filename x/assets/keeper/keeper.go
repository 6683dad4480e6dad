package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/honzon/x/assets/types"
)

// Store key prefixes
var (
	AccountKeyPrefix = []byte{0x01}
)

// Keeper manages the assets module state. It is the fungible assets provider
// the collateral subsystem runs on: free balances, earmarked holds, mint and
// burn, all keyed by bech32 address and denom.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger
}

// NewKeeper creates a new assets keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:      cdc,
		storeKey: storeKey,
		logger:   logger.With("module", "x/assets"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// SetAccount saves an account to the store, removing empty rows
func (k *Keeper) SetAccount(ctx sdk.Context, account *types.Account) {
	store := k.GetStore(ctx)
	key := append(AccountKeyPrefix, []byte(account.Address)...)
	if account.IsEmpty() {
		store.Delete(key)
		return
	}
	bz, _ := json.Marshal(account)
	store.Set(key, bz)
}

// GetAccount retrieves an account from the store
func (k *Keeper) GetAccount(ctx sdk.Context, address string) *types.Account {
	store := k.GetStore(ctx)
	key := append(AccountKeyPrefix, []byte(address)...)
	bz := store.Get(key)
	if bz == nil {
		return nil
	}
	var account types.Account
	if err := json.Unmarshal(bz, &account); err != nil {
		return nil
	}
	return &account
}

// GetOrCreateAccount gets an existing account or creates a new one
func (k *Keeper) GetOrCreateAccount(ctx sdk.Context, address string) *types.Account {
	account := k.GetAccount(ctx, address)
	if account == nil {
		account = types.NewAccount(address)
	}
	return account
}

// GetAllAccounts returns all accounts
func (k *Keeper) GetAllAccounts(ctx sdk.Context) []*types.Account {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, AccountKeyPrefix)
	defer iterator.Close()

	var accounts []*types.Account
	for ; iterator.Valid(); iterator.Next() {
		var account types.Account
		if err := json.Unmarshal(iterator.Value(), &account); err != nil {
			continue
		}
		accounts = append(accounts, &account)
	}
	return accounts
}
