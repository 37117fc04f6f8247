package dto

// ExtractionResponse returns the OCR text and the best-guess structured
// fields for one uploaded screenshot. Guess fields are null when the
// heuristics found nothing.
type ExtractionResponse struct {
	UploadID       string   `json:"upload_id"`
	Text           string   `json:"text"`
	Confidence     float64  `json:"confidence"`
	BankName       *string  `json:"bank_name"`
	AccountLast4   *string  `json:"account_last4"`
	AmountGuess    *float64 `json:"amount_guess"`
	ReferenceGuess *string  `json:"reference_guess"`
	DateGuess      *string  `json:"date_guess"`
	Filename       string   `json:"filename"`
	Bytes          int      `json:"bytes"`
}

type RouteRequest struct {
	BankName     string `json:"bank_name"`
	AccountLast4 string `json:"account_last4"`
}

type RouteResponse struct {
	ConnectionID *int64  `json:"connection_id"`
	Confidence   float64 `json:"confidence"`
	NeedsChoice  bool    `json:"needs_choice"`
}

type OCRDiagResponse struct {
	UseGCVision     bool   `json:"use_gcvision"`
	CredentialsPath string `json:"credentials_path"`
	CredentialsSet  bool   `json:"credentials_set"`
}
