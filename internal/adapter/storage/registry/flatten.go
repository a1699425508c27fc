package registry

import "dappscope/internal/domain/entity"

// FlattenContracts collects every valid address found anywhere inside node.
//
// Strings are normalized and kept when canonical. Lists and mappings are walked
// recursively, mapping keys are ignored. Every other value contributes nothing.
func FlattenContracts(node any) entity.AddressSet {
	out := make(entity.AddressSet)
	walkContracts(node, out)
	return out
}

func walkContracts(node any, out entity.AddressSet) {
	switch v := node.(type) {
	case string:
		if addr, ok := entity.CanonicalAddress(v); ok {
			out.Add(addr)
		}
	case []any:
		for _, item := range v {
			walkContracts(item, out)
		}
	case []string:
		for _, item := range v {
			walkContracts(item, out)
		}
	case map[string]any:
		for _, item := range v {
			walkContracts(item, out)
		}
	case map[any]any:
		for _, item := range v {
			walkContracts(item, out)
		}
	}
}
