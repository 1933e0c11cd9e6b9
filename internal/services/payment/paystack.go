package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PaystackClient talks to the Paystack REST API. The secret key comes from
// PAYSTACK_SECRET_KEY; base URL is overridable for tests.
type PaystackClient struct {
	SecretKey string
	BaseURL   string
	HTTP      *http.Client
}

func NewPaystackClient(secretKey, baseURL string) *PaystackClient {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackClient{
		SecretKey: secretKey,
		BaseURL:   baseURL,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackTxnData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	PaidAt    string `json:"paid_at"`
}

func (c *PaystackClient) Initialize(ctx context.Context, req InitRequest) (InitResponse, error) {
	body := map[string]any{
		"reference": req.Reference,
		"email":     req.Email,
		"amount":    req.Amount,
		"currency":  "NGN",
	}
	if len(req.Metadata) > 0 {
		body["metadata"] = req.Metadata
	}

	var data paystackInitData
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return InitResponse{}, err
	}
	return InitResponse{
		Reference:        data.Reference,
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
	}, nil
}

func (c *PaystackClient) Verify(ctx context.Context, reference string) (Charge, error) {
	var data paystackTxnData
	if err := c.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &data); err != nil {
		return Charge{}, err
	}
	charge := Charge{
		Reference: data.Reference,
		Status:    data.Status,
		Amount:    data.Amount,
	}
	if t, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
		charge.PaidAt = t
	}
	return charge, nil
}

func (c *PaystackClient) Refund(ctx context.Context, reference string, amount int64) error {
	body := map[string]any{
		"transaction": reference,
		"amount":      amount,
	}
	return c.call(ctx, http.MethodPost, "/refund", body, &struct{}{})
}

func (c *PaystackClient) call(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env paystackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("paystack: decoding %s: %w", path, err)
	}
	if resp.StatusCode >= 400 || !env.Status {
		return fmt.Errorf("paystack: %s returned %d: %s", path, resp.StatusCode, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("paystack: decoding %s data: %w", path, err)
		}
	}
	return nil
}
