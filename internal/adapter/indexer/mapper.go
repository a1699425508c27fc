package indexer

import (
	"encoding/json"
	"math"
	"strconv"

	dto "dappscope/internal/adapter/indexer/dto"
	"dappscope/internal/domain/entity"
)

// pageItems returns the raw records of a page. A missing or non-list data field is an empty page.
func pageItems(result *dto.TransactionsResultRaw) []json.RawMessage {
	if result == nil || len(result.Data) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(result.Data, &items); err != nil {
		return nil
	}
	return items
}

// nextCursor returns the continuation cursor, or "" when there is none.
func nextCursor(result *dto.TransactionsResultRaw) string {
	if result == nil {
		return ""
	}
	cursor, _ := result.NextPageCursor.(string)
	return cursor
}

// toDomainTransactions converts raw page records. Non-object records are skipped,
// non-string fields become empty strings.
func toDomainTransactions(items []json.RawMessage) []entity.Transaction {
	txs := make([]entity.Transaction, 0, len(items))
	for _, item := range items {
		var raw dto.TransactionRaw
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}
		txs = append(txs, entity.Transaction{
			Hash: asString(raw.Hash),
			From: asString(raw.From),
			To:   asString(raw.To),
		})
	}
	return txs
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// codeValue reads a numeric status code. Integral floats such as 0.0 count;
// strings, booleans and fractional numbers do not.
func codeValue(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// textOf renders a loosely typed envelope field for error messages.
// Empty and zero values yield "".
func textOf(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return ""
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}
