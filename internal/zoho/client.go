// Package zoho is the outbound client for Zoho OAuth and the Books v3
// API: token exchange/refresh, chart-of-accounts fetch and journal post.
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"ocr-journal-backend/internal/errs"
	"ocr-journal-backend/pkg/config"
)

const requestTimeout = 30 * time.Second

type Client struct {
	cfg        config.ZohoConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.ZohoConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// oauthDomain is the accounts host for the configured data center.
func (c *Client) oauthDomain() string {
	return fmt.Sprintf("https://accounts.zoho.%s", c.cfg.DC)
}

// apiBase is the Books v3 base on the recommended zohoapis host.
func (c *Client) apiBase() string {
	return fmt.Sprintf("https://www.zohoapis.%s/books/v3", c.cfg.DC)
}

// AuthURL builds the user consent URL for the OAuth flow.
func (c *Client) AuthURL(state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("scope", c.cfg.Scopes)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("access_type", "offline")
	q.Set("state", state)
	q.Set("prompt", "consent")
	return c.oauthDomain() + "/oauth/v2/auth?" + q.Encode()
}

// TokenResponse is the token grant payload Zoho returns for both the code
// exchange and the refresh grant.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	APIDomain    string `json:"api_domain"`
	Error        string `json:"error"`
}

// ExchangeCode trades an authorization code for access and refresh tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("code", code)

	return c.tokenRequest(ctx, form)
}

// RefreshToken trades a refresh token for a fresh access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)

	return c.tokenRequest(ctx, form)
}

func (c *Client) tokenRequest(ctx context.Context, form url.Values) (*TokenResponse, error) {
	endpoint := c.oauthDomain() + "/oauth/v2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "zoho oauth", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "zoho oauth", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "zoho oauth", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.ExternalServiceError{
			Service: "zoho oauth",
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var tok TokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, &errs.ExternalServiceError{Service: "zoho oauth", Err: err}
	}
	if tok.Error != "" {
		return nil, &errs.ExternalServiceError{Service: "zoho oauth", Err: fmt.Errorf("%s", tok.Error)}
	}

	return &tok, nil
}

// Account is one chart-of-accounts entry as Books returns it.
type Account struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	AccountCode string `json:"account_code"`
	AccountType string `json:"account_type"`
}

// GetAccounts fetches the chart of accounts for an organization.
func (c *Client) GetAccounts(ctx context.Context, orgID, accessToken string) ([]Account, error) {
	endpoint := fmt.Sprintf("%s/chartofaccounts?organization_id=%s", c.apiBase(), url.QueryEscape(orgID))

	var payload struct {
		Code            int       `json:"code"`
		Message         string    `json:"message"`
		ChartOfAccounts []Account `json:"chartofaccounts"`
	}
	if err := c.apiGet(ctx, endpoint, accessToken, &payload); err != nil {
		return nil, err
	}
	if payload.Code != 0 {
		return nil, &errs.ExternalServiceError{
			Service: "zoho books",
			Err:     fmt.Errorf("code %d: %s", payload.Code, payload.Message),
		}
	}

	return payload.ChartOfAccounts, nil
}

// JournalLine is one leg of a journal entry.
type JournalLine struct {
	AccountID     string  `json:"account_id"`
	DebitOrCredit string  `json:"debit_or_credit"`
	Amount        float64 `json:"amount"`
}

// Journal is the two-line balanced journal payload posted to Books.
type Journal struct {
	Date            string        `json:"journal_date"`
	ReferenceNumber string        `json:"reference_number"`
	Notes           string        `json:"notes"`
	LineItems       []JournalLine `json:"line_items"`
}

// PostJournal creates a journal entry and returns its Books journal id.
func (c *Client) PostJournal(ctx context.Context, orgID, accessToken string, journal Journal) (string, error) {
	endpoint := fmt.Sprintf("%s/journals?organization_id=%s", c.apiBase(), url.QueryEscape(orgID))

	body, err := json.Marshal(journal)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &errs.ExternalServiceError{Service: "zoho books", Err: err}
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &errs.ExternalServiceError{Service: "zoho books", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errs.ExternalServiceError{Service: "zoho books", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &errs.ExternalServiceError{
			Service: "zoho books",
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var payload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Journal struct {
			JournalID string `json:"journal_id"`
		} `json:"journal"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", &errs.ExternalServiceError{Service: "zoho books", Err: err}
	}
	if payload.Code != 0 {
		return "", &errs.ExternalServiceError{
			Service: "zoho books",
			Err:     fmt.Errorf("code %d: %s", payload.Code, payload.Message),
		}
	}

	c.logger.Info("journal posted",
		zap.String("org_id", orgID),
		zap.String("journal_id", payload.Journal.JournalID),
	)
	return payload.Journal.JournalID, nil
}

func (c *Client) apiGet(ctx context.Context, endpoint, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &errs.ExternalServiceError{Service: "zoho books", Err: err}
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errs.ExternalServiceError{Service: "zoho books", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.ExternalServiceError{Service: "zoho books", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errs.ExternalServiceError{
			Service: "zoho books",
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	return json.Unmarshal(body, out)
}
