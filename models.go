package main

// AccountRequest is the body of account create and update requests
type AccountRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CategoryRequest is the body of category create and update requests
type CategoryRequest struct {
	Name string `json:"name"`
}

// TransactionRequest is the body of transaction create and update requests.
// Amount is in milliunits.
type TransactionRequest struct {
	Amount     *int64  `json:"amount"`
	Payee      string  `json:"payee"`
	Notes      *string `json:"notes"`
	Date       string  `json:"date"`
	AccountID  string  `json:"accountId"`
	CategoryID *string `json:"categoryId"`
}

// BulkDeleteRequest lists the ids to delete
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}
