package dto

type CompanyResponse struct {
	ID      int64   `json:"id"`
	OrgID   string  `json:"org_id"`
	OrgName *string `json:"org_name"`
}

type PickOrgRequest struct {
	ConnectionID int64  `json:"connection_id" validate:"required"`
	OrgID        string `json:"org_id" validate:"required"`
	OrgName      string `json:"org_name"`
}

type AccountResponse struct {
	AccountID string  `json:"account_id"`
	Name      string  `json:"name"`
	Code      *string `json:"code"`
	Type      *string `json:"type"`
}
