package indexer_dto

import "encoding/json"

// TransactionsResponseRaw is the envelope returned by the account transactions endpoint.
// Code, Reason and Message are decoded loosely; only a numeric zero code means success.
type TransactionsResponseRaw struct {
	Code    any                    `json:"code"`
	Reason  any                    `json:"reason,omitempty"`
	Message any                    `json:"message,omitempty"`
	Result  *TransactionsResultRaw `json:"result,omitempty"`
}

// TransactionsResultRaw holds one page of transactions and the cursor for the next one.
// Both fields are left loosely typed so unexpected shapes degrade to an empty page.
type TransactionsResultRaw struct {
	Data           json.RawMessage `json:"data"`
	NextPageCursor any             `json:"nextPageCursor"`
}

// TransactionRaw is a single transaction record.
type TransactionRaw struct {
	Hash any `json:"hash"`
	From any `json:"from"`
	To   any `json:"to"`
}
