package dto

type JournalRequest struct {
	ConnectionID    int64   `json:"connection_id" validate:"required"`
	UploadID        string  `json:"upload_id" validate:"omitempty,uuid4"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Currency        string  `json:"currency"`
	Reference       string  `json:"reference"`
	Notes           string  `json:"notes"`
	DebitAccountID  string  `json:"debit_account_id" validate:"required"`
	CreditAccountID string  `json:"credit_account_id" validate:"required"`
	BankName        string  `json:"bank_name"`
	AccountLast4    string  `json:"account_last4" validate:"omitempty,len=4,numeric"`
}

type JournalResponse struct {
	TransactionID  string  `json:"transaction_id"`
	Status         string  `json:"status"`
	IdempotencyKey string  `json:"idempotency_key"`
	BooksJournalID *string `json:"books_journal_id"`
	Duplicate      bool    `json:"duplicate"`
}
