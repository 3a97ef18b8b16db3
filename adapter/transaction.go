package adapter

import "encoding/json"

// TransactionKind tags the payload shape inside TransactionData.
type TransactionKind string

// TransactionKindMoveCall is the legacy Move-call payload shape.
const TransactionKindMoveCall TransactionKind = "moveCall"

// TransactionData is the kind-tagged payload handed to an adapter.
type TransactionData struct {
	Kind TransactionKind `json:"kind"`
	Data any             `json:"data"`
}

// TransactionInput wraps a transaction submitted for signing and execution.
type TransactionInput struct {
	Transaction TransactionData `json:"transaction"`
}

// MoveCallData describes a Move call in the legacy shape.
type MoveCallData struct {
	PackageObjectID string   `json:"packageObjectId"`
	Module          string   `json:"module"`
	Function        string   `json:"function"`
	TypeArguments   []string `json:"typeArguments,omitempty"`
	Arguments       []any    `json:"arguments,omitempty"`
	GasBudget       uint64   `json:"gasBudget,omitempty"`
}

// TransactionResult is the adapter's response to an executed transaction.
type TransactionResult struct {
	Digest string          `json:"digest"`
	Raw    json.RawMessage `json:"raw,omitempty"`
}

// NewMoveCallInput wraps Move-call data in the transaction-input shape under
// the moveCall kind.
func NewMoveCallInput(data *MoveCallData) *TransactionInput {
	return &TransactionInput{
		Transaction: TransactionData{
			Kind: TransactionKindMoveCall,
			Data: data,
		},
	}
}
