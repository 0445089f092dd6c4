// Package client talks to the remote ledger's REST APIs.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// ErrAccountNotFound is returned when the ledger has no entry for an
// address. For this system that is a valid state (an account that has never
// received funds), not an exception path.
var ErrAccountNotFound = errors.New("account not found on ledger")

// HorizonClient is a client for a horizon ledger API instance.
type HorizonClient struct {
	baseURL string
	client  *http.Client
}

// NewHorizonClient creates a client for the given horizon base URL. A nil
// httpClient gets a default with a bounded timeout; tests inject their own
// to record or fake transport behavior.
func NewHorizonClient(baseURL string, httpClient *http.Client) *HorizonClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &HorizonClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// Account is the subset of the horizon account resource this wallet reads.
type Account struct {
	AccountID     string    `json:"account_id"`
	Sequence      string    `json:"sequence"`
	SubentryCount int32     `json:"subentry_count"`
	Balances      []Balance `json:"balances"`
}

// Balance is one entry of an account's balance list. AssetCode and
// AssetIssuer are empty for the native asset (asset_type "native").
type Balance struct {
	Balance     string `json:"balance"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

// AccountDetail fetches the account resource for accountID. A 404 maps to
// ErrAccountNotFound.
func (c *HorizonClient) AccountDetail(ctx context.Context, accountID string) (*Account, error) {
	var account Account
	err := c.get(ctx, "/accounts/"+accountID, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// TransactionRecord is the subset of the horizon transaction resource this
// wallet reads. FeeCharged is a json.Number because horizon versions have
// served it both as a string and as a number.
type TransactionRecord struct {
	Hash           string      `json:"hash"`
	Ledger         int32       `json:"ledger"`
	CreatedAt      time.Time   `json:"created_at"`
	SourceAccount  string      `json:"source_account"`
	FeeCharged     json.Number `json:"fee_charged"`
	OperationCount int32       `json:"operation_count"`
	Successful     bool        `json:"successful"`
	Memo           string      `json:"memo,omitempty"`
}

type transactionsPage struct {
	Embedded struct {
		Records []TransactionRecord `json:"records"`
	} `json:"_embedded"`
}

// Transactions fetches up to limit transactions for accountID, most recent
// first. Failed transactions are included.
func (c *HorizonClient) Transactions(ctx context.Context, accountID string, limit int) ([]TransactionRecord, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("order", "desc")
	query.Set("include_failed", "true")

	var page transactionsPage
	err := c.get(ctx, "/accounts/"+accountID+"/transactions?"+query.Encode(), &page)
	if err != nil {
		return nil, err
	}
	return page.Embedded.Records, nil
}

// OperationRecord is the subset of the horizon operation resource this
// wallet reads. The payment fields are empty for non-payment operations.
type OperationRecord struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	AssetType   string    `json:"asset_type,omitempty"`
	AssetCode   string    `json:"asset_code,omitempty"`
	AssetIssuer string    `json:"asset_issuer,omitempty"`
}

type operationsPage struct {
	Embedded struct {
		Records []OperationRecord `json:"records"`
	} `json:"_embedded"`
}

// TransactionOperations fetches the operations of one transaction by hash.
func (c *HorizonClient) TransactionOperations(ctx context.Context, hash string) ([]OperationRecord, error) {
	var page operationsPage
	err := c.get(ctx, "/transactions/"+hash+"/operations", &page)
	if err != nil {
		return nil, err
	}
	return page.Embedded.Records, nil
}

// SubmitResult is the ledger's receipt for a submitted transaction.
type SubmitResult struct {
	Hash       string `json:"hash"`
	Ledger     int32  `json:"ledger"`
	Successful bool   `json:"successful"`
}

// SubmitTransaction posts a signed base64 transaction envelope and returns
// the ledger's receipt.
func (c *HorizonClient) SubmitTransaction(ctx context.Context, envelopeXDR string) (*SubmitResult, error) {
	form := url.Values{}
	form.Set("tx", envelopeXDR)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeProblem(resp)
	}

	var result SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}
	return &result, nil
}

// get performs a GET against path and decodes the 200 body into out.
func (c *HorizonClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrAccountNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return decodeProblem(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// problem is horizon's RFC 7807 error body. The result codes extra carries
// the reason a submitted transaction was rejected.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Extras struct {
		ResultCodes struct {
			Transaction string   `json:"transaction"`
			Operations  []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
}

func decodeProblem(resp *http.Response) error {
	var p problem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil || p.Title == "" {
		return fmt.Errorf("ledger returned status %d", resp.StatusCode)
	}
	if p.Extras.ResultCodes.Transaction != "" {
		return fmt.Errorf("ledger rejected request: %s (tx: %s, ops: %s)",
			p.Title, p.Extras.ResultCodes.Transaction, strings.Join(p.Extras.ResultCodes.Operations, ","))
	}
	return fmt.Errorf("ledger rejected request: %s (status %d)", p.Title, p.Status)
}
