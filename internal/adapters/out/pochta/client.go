// Package pochta implements the tariff provider port over the Russian Post
// APIs: the public tariff calculator for retail quotes and the otpravka API
// for contract quotes and the account balance.
package pochta

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/core/ports"
)

const (
	defaultPublicBaseURL   = "https://tariff.pochta.ru/v2"
	defaultOtpravkaBaseURL = "https://otpravka-api.pochta.ru"

	// tariff object code for an ordinary online parcel
	publicObjectCode = 23030
)

// ErrNoContract is returned by GetBalance for accounts without a sending
// contract. The otpravka API reports these with a 500 "No endpoint" body.
var ErrNoContract = errors.New("account has no sending contract")

// Client calls the Russian Post tariff and otpravka APIs. Contract
// endpoints authenticate with the application token plus the user's basic
// credentials; the public calculator is unauthenticated.
type Client struct {
	publicBaseURL   string
	otpravkaBaseURL string
	apiToken        string
	login           string
	password        string
	httpc           *http.Client
}

var _ ports.TariffProvider = (*Client)(nil)

// NewClient creates a Russian Post API client. Empty base URLs fall back to
// the production endpoints.
func NewClient(publicBaseURL, otpravkaBaseURL, apiToken, login, password string) *Client {
	if publicBaseURL == "" {
		publicBaseURL = defaultPublicBaseURL
	}
	if otpravkaBaseURL == "" {
		otpravkaBaseURL = defaultOtpravkaBaseURL
	}

	return &Client{
		publicBaseURL:   publicBaseURL,
		otpravkaBaseURL: otpravkaBaseURL,
		apiToken:        apiToken,
		login:           login,
		password:        password,
		httpc: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type publicTariffResponse struct {
	Pay      int64 `json:"pay"`
	PayNds   int64 `json:"paynds"`
	Delivery struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"delivery"`
}

type contractTariffRequest struct {
	IndexFrom     string `json:"index-from"`
	IndexTo       string `json:"index-to"`
	MailCategory  string `json:"mail-category"`
	MailType      string `json:"mail-type"`
	Mass          int    `json:"mass"`
	PaymentMethod string `json:"payment-method"`
}

type contractTariffResponse struct {
	TotalRate    int64 `json:"total-rate"`
	TotalVat     int64 `json:"total-vat"`
	DeliveryTime struct {
		MinDays int `json:"min-days"`
		MaxDays int `json:"max-days"`
	} `json:"delivery-time"`
}

type balanceResponse struct {
	Balance int64  `json:"balance"`
	SubCode string `json:"sub-code"`
	Desc    string `json:"desc"`
}

// GetPublicQuote returns the retail tariff for one parcel. Amounts come
// back in kopecks; paynds is the VAT-inclusive total.
func (c *Client) GetPublicQuote(ctx context.Context, from, to kernel.PostalCode, weightGrams int) (ports.TariffQuote, error) {
	u, err := url.Parse(c.publicBaseURL + "/calculate/tariff/delivery")
	if err != nil {
		return ports.TariffQuote{}, fmt.Errorf("parse public tariff url: %w", err)
	}

	q := u.Query()
	q.Set("json", "")
	q.Set("object", strconv.Itoa(publicObjectCode))
	q.Set("from", from.String())
	q.Set("to", to.String())
	q.Set("weight", strconv.Itoa(weightGrams))
	q.Set("pack", "10")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return ports.TariffQuote{}, fmt.Errorf("new public tariff request: %w", err)
	}

	var body publicTariffResponse
	if err := c.do(req, &body); err != nil {
		return ports.TariffQuote{}, err
	}

	return ports.TariffQuote{
		CostKopecks:  body.Pay,
		VatKopecks:   body.PayNds - body.Pay,
		TotalKopecks: body.PayNds,
		MinDays:      body.Delivery.Min,
		MaxDays:      body.Delivery.Max,
	}, nil
}

// GetContractQuote returns the negotiated tariff for a shipment of the
// given total weight.
func (c *Client) GetContractQuote(ctx context.Context, from, to kernel.PostalCode, weightGrams int) (ports.TariffQuote, error) {
	payload, err := json.Marshal(contractTariffRequest{
		IndexFrom:     from.String(),
		IndexTo:       to.String(),
		MailCategory:  "ORDINARY",
		MailType:      "ONLINE_PARCEL",
		Mass:          weightGrams,
		PaymentMethod: "CASHLESS",
	})
	if err != nil {
		return ports.TariffQuote{}, fmt.Errorf("marshal contract tariff request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.otpravkaBaseURL+"/1.0/tariff", bytes.NewReader(payload))
	if err != nil {
		return ports.TariffQuote{}, fmt.Errorf("new contract tariff request: %w", err)
	}
	c.authorize(req)

	var body contractTariffResponse
	if err := c.do(req, &body); err != nil {
		return ports.TariffQuote{}, err
	}

	return ports.TariffQuote{
		CostKopecks:  body.TotalRate,
		VatKopecks:   body.TotalVat,
		TotalKopecks: body.TotalRate + body.TotalVat,
		MinDays:      body.DeliveryTime.MinDays,
		MaxDays:      body.DeliveryTime.MaxDays,
	}, nil
}

// GetBalance returns the contract account balance in kopecks. Accounts
// without a sending contract get ErrNoContract.
func (c *Client) GetBalance(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.otpravkaBaseURL+"/1.0/counterpart/balance", nil)
	if err != nil {
		return 0, fmt.Errorf("new balance request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do balance request: %w", err)
	}
	defer resp.Body.Close()

	var body balanceResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return 0, fmt.Errorf("decode balance response: %w", decodeErr)
	}

	// the otpravka API answers 500 "No endpoint" for accounts without a
	// sending contract
	if resp.StatusCode == http.StatusInternalServerError &&
		body.SubCode == "INTERNAL_ERROR" {
		return 0, ErrNoContract
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("balance request: http %d", resp.StatusCode)
	}

	return body.Balance, nil
}

func (c *Client) authorize(req *http.Request) {
	userAuth := base64.StdEncoding.EncodeToString([]byte(c.login + ":" + c.password))
	req.Header.Set("Authorization", "AccessToken "+c.apiToken)
	req.Header.Set("X-User-Authorization", "Basic "+userAuth)
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Accept", "application/json;charset=UTF-8")
}

// do executes a quote request and decodes the response. A 4xx status means
// the provider rejected the route; everything else non-2xx is a transient
// provider failure.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return fmt.Errorf("%w: http %d", services.ErrInvalidRoute, resp.StatusCode)
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("tariff request: http %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
