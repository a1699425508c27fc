package registry_dto

import "strconv"

// DappRaw is one registry entry as found in the source document.
// Contracts is left undecoded; it may be a string, a list or an arbitrarily nested mapping.
type DappRaw struct {
	Name      string
	Title     string
	Logo      string
	Website   string
	Contracts any
}

// DocumentRaw is the registry document after generic JSON or YAML decoding.
type DocumentRaw struct {
	Entries []map[string]any
}

// NewDocumentRaw extracts entries from a decoded document. A top-level list or an
// object with a "dapps" list are accepted; any other shape yields no entries.
// Non-mapping list elements are dropped.
func NewDocumentRaw(doc any) DocumentRaw {
	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["dapps"].([]any)
	case map[any]any:
		items, _ = v["dapps"].([]any)
	}

	entries := make([]map[string]any, 0, len(items))
	for _, item := range items {
		switch m := item.(type) {
		case map[string]any:
			entries = append(entries, m)
		case map[any]any:
			entries = append(entries, stringKeys(m))
		}
	}
	return DocumentRaw{Entries: entries}
}

// NewDappRaw picks the known fields out of one entry. Name and title accept any
// non-zero scalar and keep its text form; logo and website must be strings.
func NewDappRaw(entry map[string]any) DappRaw {
	return DappRaw{
		Name:      scalarField(entry, "name"),
		Title:     scalarField(entry, "title"),
		Logo:      stringField(entry, "logo"),
		Website:   stringField(entry, "website"),
		Contracts: entry["contracts"],
	}
}

func stringField(entry map[string]any, key string) string {
	s, _ := entry[key].(string)
	return s
}

func scalarField(entry map[string]any, key string) string {
	switch v := entry[key].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	case int64:
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	case uint64:
		if v == 0 {
			return ""
		}
		return strconv.FormatUint(v, 10)
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if ks, ok := k.(string); ok {
			out[ks] = v
		}
	}
	return out
}
