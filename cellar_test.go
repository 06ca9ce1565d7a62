package cellar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cellar"
	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/collections"
	"github.com/arloliu/cellar/hasher"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

func TestRootKey(t *testing.T) {
	require := require.New(t)

	k1 := cellar.RootKey("erc20.balances")
	require.Equal(k1, cellar.RootKey("erc20.balances"), "must be deterministic")
	require.NotEqual(k1, cellar.RootKey("erc20.allowances"))

	require.NotEqual(
		cellar.RootKeyWith(hasher.Blake2b256{}, "x"),
		cellar.RootKeyWith(hasher.Sha256{}, "x"),
	)
}

// TestTokenContractScenario drives the stack end to end the way a token
// contract would: balances in a hash map, a transfer queue in a vector,
// all state pushed once per call.
func TestTokenContractScenario(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()
	balancesRoot := cellar.RootKey("token.balances")
	queueRoot := cellar.RootKey("token.queue")
	supplyRoot := cellar.RootKey("token.total_supply")

	// First call: initialize state.
	{
		balances := collections.NewHashMap[string, uint64](codec.String{}, codec.Uint64{})
		balances.Insert("alice", 1000)
		balances.Insert("bob", 0)

		queue := collections.NewVec[uint64](codec.Uint64{})

		storage.PushSpreadRoot(balances, balancesRoot, st)
		storage.PushSpreadRoot(queue, queueRoot, st)
		storage.PushPackedAt[uint64](codec.Uint64{}, 1000, supplyRoot, st)
	}

	// Second call: transfer and record the amount.
	{
		balances := collections.NewHashMap[string, uint64](codec.String{}, codec.Uint64{})
		storage.PullSpreadRoot(balances, balancesRoot, st)
		queue := collections.NewVec[uint64](codec.Uint64{})
		storage.PullSpreadRoot(queue, queueRoot, st)

		from := balances.GetMut("alice")
		to := balances.GetMut("bob")
		require.NotNil(from)
		require.NotNil(to)
		*from -= 250
		*to += 250
		queue.Push(250)

		storage.PushSpreadRoot(balances, balancesRoot, st)
		storage.PushSpreadRoot(queue, queueRoot, st)
	}

	// Third call: verify.
	{
		balances := collections.NewHashMap[string, uint64](codec.String{}, codec.Uint64{})
		storage.PullSpreadRoot(balances, balancesRoot, st)

		alice, _ := balances.Get("alice")
		bob, _ := balances.Get("bob")
		require.Equal(uint64(750), alice)
		require.Equal(uint64(250), bob)

		queue := collections.NewVec[uint64](codec.Uint64{})
		storage.PullSpreadRoot(queue, queueRoot, st)
		amount, ok := queue.Get(0)
		require.True(ok)
		require.Equal(uint64(250), amount)

		supply := storage.PullPackedAt[uint64](codec.Uint64{}, supplyRoot, st)
		require.Equal(uint64(1000), supply)
	}
}
