package domain

// InvalidTransferError indicates a transfer rejected before any state change,
// e.g. when the source equals the destination.
type InvalidTransferError struct {
	Reason string
}

func (e InvalidTransferError) Error() string {
	return "invalid transfer: " + e.Reason
}

// CreateTransferParams is the input data for the transfer operation.
type CreateTransferParams struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// TransferResult is the outcome of a committed transfer: both updated accounts
// and the pair of transactions it produced.
type TransferResult struct {
	FromAccount     Account     `json:"from_account"`
	ToAccount       Account     `json:"to_account"`
	FromTransaction Transaction `json:"from_transaction"`
	ToTransaction   Transaction `json:"to_transaction"`
}
