package dto

type BankRuleRequest struct {
	BankName        string  `json:"bank_name" validate:"required"`
	AccountLast4    string  `json:"account_last4" validate:"required,len=4,numeric"`
	ConnectionID    int64   `json:"connection_id" validate:"required"`
	AltFingerprint  string  `json:"alt_fingerprint"`
	ConfidenceFloor float64 `json:"confidence_floor" validate:"omitempty,gte=0,lte=1"`
}

type MappingRuleRequest struct {
	Pattern         string  `json:"pattern" validate:"required"`
	DebitAccountID  string  `json:"debit_account_id" validate:"required"`
	CreditAccountID string  `json:"credit_account_id" validate:"required"`
	TaxCode         string  `json:"tax_code"`
	ConnectionID    int64   `json:"connection_id" validate:"required"`
	ConfidenceFloor float64 `json:"confidence_floor" validate:"omitempty,gte=0,lte=1"`
}

type RuleCreatedResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}
