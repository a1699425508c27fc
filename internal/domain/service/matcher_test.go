package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dappscope/internal/domain/entity"
)

var (
	wallet    = entity.Address("0x" + strings.Repeat("1", 40))
	contractA = entity.Address("0x" + strings.Repeat("a", 40))
	contractB = entity.Address("0x" + strings.Repeat("b", 40))
	contractC = entity.Address("0x" + strings.Repeat("c", 40))
	stranger  = entity.Address("0x" + strings.Repeat("9", 40))
)

func TestMatchDirectCall(t *testing.T) {
	dapps := []entity.Dapp{{Name: "Foo", Contracts: entity.NewAddressSet(contractA)}}
	txs := []entity.Transaction{{From: "0x" + strings.Repeat("1", 40), To: "0x" + strings.Repeat("A", 40)}}

	res := Match(wallet, dapps, txs)

	assert.Equal(t, []string{"Foo"}, res.ExploredDapps)
	assert.Equal(t, 1, res.ExploredCount())
	assert.Equal(t, 1, res.TotalDapps)
	assert.Equal(t, []entity.Address{contractA}, res.MatchedAddresses.Values())
	require.Len(t, res.PerDapp, 1)
	assert.True(t, res.PerDapp[0].Explored)
	assert.Equal(t, []entity.Address{contractA}, res.PerDapp[0].MatchedContracts)
}

func TestMatchIgnoresReversedDirection(t *testing.T) {
	dapps := []entity.Dapp{{Name: "Foo", Contracts: entity.NewAddressSet(contractA)}}
	txs := []entity.Transaction{{From: string(contractA), To: string(wallet)}}

	res := Match(wallet, dapps, txs)

	assert.Empty(t, res.ExploredDapps)
	assert.Equal(t, 0, res.ExploredCount())
	assert.Equal(t, 0, res.MatchedAddresses.Len())
	require.Len(t, res.PerDapp, 1)
	assert.False(t, res.PerDapp[0].Explored)
	assert.Empty(t, res.PerDapp[0].MatchedContracts)
}

func TestMatchIgnoresOtherSenders(t *testing.T) {
	dapps := []entity.Dapp{{Name: "Foo", Contracts: entity.NewAddressSet(contractA)}}
	txs := []entity.Transaction{{From: string(stranger), To: string(contractA)}}

	res := Match(wallet, dapps, txs)
	assert.Empty(t, res.ExploredDapps)
}

func TestMatchSkipsMalformedRecipients(t *testing.T) {
	dapps := []entity.Dapp{{Name: "Foo", Contracts: entity.NewAddressSet(contractA)}}
	txs := []entity.Transaction{
		{From: string(wallet), To: ""},
		{From: string(wallet), To: "0xnothex"},
		{From: string(wallet), To: string(stranger)},
	}

	res := Match(wallet, dapps, txs)
	assert.Empty(t, res.ExploredDapps)
	assert.Equal(t, 0, res.MatchedAddresses.Len())
}

func TestMatchKeepsRegistryOrderAndSharedContracts(t *testing.T) {
	dapps := []entity.Dapp{
		{Name: "Zeta", Contracts: entity.NewAddressSet(contractC)},
		{Name: "Alpha", Contracts: entity.NewAddressSet(contractA, contractB)},
		{Name: "Router", Contracts: entity.NewAddressSet(contractA)},
		{Name: "Idle", Contracts: entity.NewAddressSet()},
	}
	txs := []entity.Transaction{
		{From: string(wallet), To: string(contractA)},
		{From: string(wallet), To: string(contractC)},
		{From: string(wallet), To: string(contractA)},
	}

	res := Match(wallet, dapps, txs)

	assert.Equal(t, []string{"Zeta", "Alpha", "Router"}, res.ExploredDapps)
	assert.Equal(t, []entity.Address{contractA, contractC}, res.MatchedAddresses.Values())
	assert.Equal(t, []entity.Address{contractA}, res.PerDapp[1].MatchedContracts)
	assert.False(t, res.PerDapp[3].Explored)
}

func TestMatchIsOrderIndependent(t *testing.T) {
	dapps := []entity.Dapp{
		{Name: "Alpha", Contracts: entity.NewAddressSet(contractA)},
		{Name: "Beta", Contracts: entity.NewAddressSet(contractB)},
	}
	txs := []entity.Transaction{
		{From: string(wallet), To: string(contractB)},
		{From: string(stranger), To: string(contractA)},
		{From: string(wallet), To: string(contractA)},
	}
	reversed := []entity.Transaction{txs[2], txs[1], txs[0]}

	assert.Equal(t, Match(wallet, dapps, txs), Match(wallet, dapps, reversed))
}

func TestMatchWithInvalidWalletMatchesNothing(t *testing.T) {
	dapps := []entity.Dapp{{Name: "Foo", Contracts: entity.NewAddressSet(contractA)}}
	txs := []entity.Transaction{{From: "", To: string(contractA)}}

	res := Match("", dapps, txs)
	assert.Empty(t, res.ExploredDapps)
	assert.Equal(t, 1, res.TotalDapps)
}
