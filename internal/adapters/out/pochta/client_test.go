package pochta_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ostrov/internal/adapters/out/pochta"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPostalCode(t *testing.T, value string) kernel.PostalCode {
	t.Helper()
	code, err := kernel.NewPostalCode(value)
	require.NoError(t, err)
	return code
}

func TestGetPublicQuote_ParsesCalculatorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calculate/tariff/delivery", r.URL.Path)
		assert.Equal(t, "23030", r.URL.Query().Get("object"))
		assert.Equal(t, "101000", r.URL.Query().Get("from"))
		assert.Equal(t, "190000", r.URL.Query().Get("to"))
		assert.Equal(t, "800", r.URL.Query().Get("weight"))
		assert.Equal(t, "10", r.URL.Query().Get("pack"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pay":45000,"paynds":54000,"delivery":{"min":2,"max":5}}`))
	}))
	defer server.Close()

	client := pochta.NewClient(server.URL, "", "token", "login", "password")

	quote, err := client.GetPublicQuote(t.Context(),
		mustPostalCode(t, "101000"), mustPostalCode(t, "190000"), 800)

	require.NoError(t, err)
	assert.Equal(t, int64(45000), quote.CostKopecks)
	assert.Equal(t, int64(9000), quote.VatKopecks)
	assert.Equal(t, int64(54000), quote.TotalKopecks)
	assert.Equal(t, 2, quote.MinDays)
	assert.Equal(t, 5, quote.MaxDays)
}

func TestGetContractQuote_SendsAuthAndPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/1.0/tariff", r.URL.Path)
		assert.Equal(t, "AccessToken token", r.Header.Get("Authorization"))
		// base64("login:password")
		assert.Equal(t, "Basic bG9naW46cGFzc3dvcmQ=", r.Header.Get("X-User-Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "101000", payload["index-from"])
		assert.Equal(t, "190000", payload["index-to"])
		assert.Equal(t, "ORDINARY", payload["mail-category"])
		assert.Equal(t, "ONLINE_PARCEL", payload["mail-type"])
		assert.Equal(t, float64(2400), payload["mass"])
		assert.Equal(t, "CASHLESS", payload["payment-method"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total-rate":30000,"total-vat":6000,"delivery-time":{"min-days":3,"max-days":6}}`))
	}))
	defer server.Close()

	client := pochta.NewClient("", server.URL, "token", "login", "password")

	quote, err := client.GetContractQuote(t.Context(),
		mustPostalCode(t, "101000"), mustPostalCode(t, "190000"), 2400)

	require.NoError(t, err)
	assert.Equal(t, int64(30000), quote.CostKopecks)
	assert.Equal(t, int64(6000), quote.VatKopecks)
	assert.Equal(t, int64(36000), quote.TotalKopecks)
	assert.Equal(t, 3, quote.MinDays)
	assert.Equal(t, 6, quote.MaxDays)
}

func TestGetPublicQuote_BadRequest_IsInvalidRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown index"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := pochta.NewClient(server.URL, "", "token", "login", "password")

	_, err := client.GetPublicQuote(t.Context(),
		mustPostalCode(t, "101000"), mustPostalCode(t, "000001"), 800)

	require.ErrorIs(t, err, services.ErrInvalidRoute)
}

func TestGetContractQuote_ServerError_IsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := pochta.NewClient("", server.URL, "token", "login", "password")

	_, err := client.GetContractQuote(t.Context(),
		mustPostalCode(t, "101000"), mustPostalCode(t, "190000"), 2400)

	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidRoute)
}

func TestGetBalance_ReturnsKopecks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.0/counterpart/balance", r.URL.Path)
		assert.Equal(t, "AccessToken token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"balance":1234500}`))
	}))
	defer server.Close()

	client := pochta.NewClient("", server.URL, "token", "login", "password")

	balance, err := client.GetBalance(t.Context())

	require.NoError(t, err)
	assert.Equal(t, int64(1234500), balance)
}

func TestGetBalance_NoSendingContract_ReturnsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"sub-code":"INTERNAL_ERROR","desc":"No endpoint"}`))
	}))
	defer server.Close()

	client := pochta.NewClient("", server.URL, "token", "login", "password")

	_, err := client.GetBalance(t.Context())

	require.ErrorIs(t, err, pochta.ErrNoContract)
}
