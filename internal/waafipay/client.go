package waafipay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultURL is the production gateway endpoint.
const DefaultURL = "https://api.waafipay.net/asm"

// successCode is the only response code that means the payment went through.
// Everything else, including a missing code, is a failure.
const successCode = "2001"

type Config struct {
	URL         string
	MerchantUID string
	APIUserID   string
	APIKey      string
}

// Client talks to the WaafiPay gateway. The call is unauthenticated at the
// transport level; the merchant credentials ride in the request body.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

type purchaseEnvelope struct {
	SchemaVersion string        `json:"schemaVersion"`
	RequestID     string        `json:"requestId"`
	Timestamp     string        `json:"timestamp"`
	ChannelName   string        `json:"channelName"`
	ServiceName   string        `json:"serviceName"`
	ServiceParams serviceParams `json:"serviceParams"`
}

type serviceParams struct {
	MerchantUID     string          `json:"merchantUid"`
	APIUserID       string          `json:"apiUserId"`
	APIKey          string          `json:"apiKey"`
	PaymentMethod   string          `json:"paymentMethod"`
	PayerInfo       payerInfo       `json:"payerInfo"`
	TransactionInfo transactionInfo `json:"transactionInfo"`
}

type payerInfo struct {
	AccountNo string `json:"accountNo"`
}

type transactionInfo struct {
	ReferenceID string  `json:"referenceId"`
	InvoiceID   string  `json:"invoiceId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

type purchaseResponse struct {
	ResponseCode string `json:"responseCode"`
	ResponseMsg  string `json:"responseMsg"`
	Params       struct {
		TransactionID string `json:"transactionId"`
		Description   string `json:"description"`
	} `json:"params"`
}

// GatewayError is a business rejection from the gateway (transport worked,
// payment did not).
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

type PurchaseInput struct {
	RequestID   string
	PayerPhone  string
	ReferenceID string
	InvoiceID   string
	Amount      float64
	Description string
}

type PurchaseResult struct {
	TransactionID string
	RequestID     string
}

// Purchase charges the payer's mobile wallet. Success is signalled solely by
// response code "2001"; gateway rejections come back as *GatewayError with
// the gateway's own message.
func (c *Client) Purchase(ctx context.Context, in PurchaseInput) (PurchaseResult, error) {
	requestID := in.RequestID
	if requestID == "" {
		requestID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	envelope := purchaseEnvelope{
		SchemaVersion: "1.0",
		RequestID:     requestID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ChannelName:   "WEB",
		ServiceName:   "API_PURCHASE",
		ServiceParams: serviceParams{
			MerchantUID:   c.cfg.MerchantUID,
			APIUserID:     c.cfg.APIUserID,
			APIKey:        c.cfg.APIKey,
			PaymentMethod: "mwallet_account",
			PayerInfo:     payerInfo{AccountNo: in.PayerPhone},
			TransactionInfo: transactionInfo{
				ReferenceID: in.ReferenceID,
				InvoiceID:   in.InvoiceID,
				Amount:      in.Amount,
				Currency:    "USD",
				Description: in.Description,
			},
		},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return PurchaseResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return PurchaseResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out purchaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return PurchaseResult{}, fmt.Errorf("decode gateway response: %w", err)
	}

	if out.ResponseCode != successCode {
		msg := out.ResponseMsg
		if out.Params.Description != "" {
			msg += fmt.Sprintf(" (%s)", out.Params.Description)
		}
		if msg == "" {
			msg = "payment rejected by gateway"
		}
		return PurchaseResult{}, &GatewayError{Code: out.ResponseCode, Message: msg}
	}

	return PurchaseResult{TransactionID: out.Params.TransactionID, RequestID: requestID}, nil
}
