package registry

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dappscope/internal/domain/entity"
)

var (
	addrA = "0x" + strings.Repeat("a", 40)
	addrB = "0x" + strings.Repeat("b", 40)
	addrC = "0x" + strings.Repeat("c", 40)
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestFlattenContracts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []entity.Address
	}{
		{name: "flat list", raw: `["` + addrA + `", "` + addrB + `"]`, want: []entity.Address{entity.Address(addrA), entity.Address(addrB)}},
		{name: "single string", raw: `"  0x` + strings.ToUpper(addrA[2:]) + ` "`, want: []entity.Address{entity.Address(addrA)}},
		{name: "missing prefix", raw: `"` + addrA[2:] + `"`, want: []entity.Address{}},
		{name: "uppercase with padding", raw: `[" 0x` + strings.ToUpper(addrA[2:]) + ` "]`, want: []entity.Address{entity.Address(addrA)}},
		{name: "nested mapping", raw: `{"monad":{"routers":["` + addrB + `"]}}`, want: []entity.Address{entity.Address(addrB)}},
		{name: "mixed shapes", raw: `{"main":"` + addrA + `","extra":[{"x":"` + addrC + `"},42,null,true,"junk"],"0x` + strings.Repeat("d", 40) + `":"nope"}`, want: []entity.Address{entity.Address(addrA), entity.Address(addrC)}},
		{name: "duplicates collapse", raw: `["` + addrA + `", {"again":"` + strings.ToUpper(addrA) + `"}]`, want: []entity.Address{entity.Address(addrA)}},
		{name: "null", raw: `null`, want: []entity.Address{}},
		{name: "number", raw: `12`, want: []entity.Address{}},
		{name: "malformed addresses", raw: `["0x1234", "0x` + strings.Repeat("z", 40) + `", ""]`, want: []entity.Address{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlattenContracts(decode(t, tt.raw)).Values()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenContractsNestedMatchesFlat(t *testing.T) {
	nested := FlattenContracts(decode(t, `{"monad":{"routers":["`+addrB+`"]}}`))
	flat := FlattenContracts(decode(t, `["`+addrB+`"]`))
	assert.Equal(t, flat, nested)
}

func TestFlattenContractsOrderIndependent(t *testing.T) {
	first := FlattenContracts(decode(t, `{"a":["`+addrA+`","`+addrB+`"],"b":"`+addrC+`"}`))
	second := FlattenContracts(decode(t, `["`+addrC+`",{"z":["`+addrB+`"]},"`+addrA+`"]`))
	assert.Equal(t, first.Values(), second.Values())
}

func TestFlattenContractsYAMLMapping(t *testing.T) {
	node := map[any]any{
		"routers": []any{addrA},
		1:         map[string]any{"pool": addrB},
	}
	got := FlattenContracts(node).Values()
	assert.Equal(t, []entity.Address{entity.Address(addrA), entity.Address(addrB)}, got)
}
