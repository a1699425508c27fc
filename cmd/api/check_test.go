package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dappscope/internal/domain/entity"
)

func TestWriteCheckOutput(t *testing.T) {
	contract := entity.Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	result := entity.MatchResult{
		Wallet:        entity.Address("0x" + strings.Repeat("1", 40)),
		TotalDapps:    2,
		ExploredDapps: []string{"Foo"},
		PerDapp: []entity.DappStatus{
			{Name: "Foo", Explored: true, MatchedContracts: []entity.Address{contract}},
			{Name: "Bar"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCheckOutput(&buf, result))

	var out checkOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 1, out.ExploredCount)
	assert.Equal(t, 2, out.TotalDapps)
	assert.Equal(t, map[string][]string{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed": {"Foo"}}, out.Matched)
}

func TestWriteCheckOutputSharedContract(t *testing.T) {
	shared := entity.Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	own := entity.Address("0x" + strings.Repeat("2", 40))
	result := entity.MatchResult{
		Wallet:        entity.Address("0x" + strings.Repeat("1", 40)),
		TotalDapps:    3,
		ExploredDapps: []string{"Foo", "Bar"},
		PerDapp: []entity.DappStatus{
			{Name: "Foo", Explored: true, MatchedContracts: []entity.Address{shared}},
			{Name: "Bar", Explored: true, MatchedContracts: []entity.Address{shared, own}},
			{Name: "Baz"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCheckOutput(&buf, result))

	var out checkOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.ExploredCount)
	assert.Equal(t, map[string][]string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed": {"Foo", "Bar"},
		own.Checksum(): {"Bar"},
	}, out.Matched)
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "check")

	root.SetArgs([]string{"check"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
