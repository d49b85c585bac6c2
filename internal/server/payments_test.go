package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const seededPaymentID = "pay_1Nz3Q82eZvKYlo2C9EbE7PKr"

func TestCreatePaymentReturnsPending(t *testing.T) {
	srv := newTestServer(t)

	body := `{"amount":2500,"currency":"USD","orderId":"order_456789","paymentMethod":{"type":"card","cardId":"card_visa_jenny"}}`
	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, testToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	payment := decodeBody(t, resp)
	require.Equal(t, "pending", payment["status"])
	require.Equal(t, float64(2500), payment["amount"])
	require.Equal(t, "usd", payment["currency"])
	require.Equal(t, "order_456789", payment["orderId"])

	customer := payment["customer"].(map[string]any)
	require.Equal(t, "jenny.rosen@example.com", customer["email"])
	require.Equal(t, "Jenny Rosen", customer["name"])

	method := payment["paymentMethod"].(map[string]any)
	require.Equal(t, "card", method["type"])
	card := method["card"].(map[string]any)
	require.Equal(t, "4242", card["last4"])
	require.Equal(t, "visa", card["brand"])

	refunds := payment["refunds"].(map[string]any)
	require.Equal(t, float64(0), refunds["total"])
	require.Empty(t, refunds["data"])

	timestamps := payment["timestamps"].(map[string]any)
	require.NotEmpty(t, timestamps["createdAt"])
	require.NotContains(t, timestamps, "succeededAt")

	billing := payment["billing"].(map[string]any)
	address := billing["address"].(map[string]any)
	require.Equal(t, "San Francisco", address["city"])
}

func TestCreatePaymentRequiresBearer(t *testing.T) {
	srv := newTestServer(t)

	body := `{"amount":2500,"currency":"usd","orderId":"order_456789","paymentMethod":{"type":"card","cardId":"card_x"}}`

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "unauthenticated", errorType(t, resp))
}

func TestGetPaymentRejectsMalformedAuthHeader(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+seededPaymentID, nil)
	req.Header.Set("Authorization", "Token "+testToken)
	resp := httptest.NewRecorder()
	srv.Engine().ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "unauthenticated", errorType(t, resp))
}

func TestCreatePaymentInvalidAmount(t *testing.T) {
	srv := newTestServer(t)

	body := `{"amount":0,"currency":"usd","orderId":"order_456789","paymentMethod":{"type":"card","cardId":"card_x"}}`
	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_amount", errorType(t, resp))
}

func TestCreatePaymentInvalidCurrency(t *testing.T) {
	srv := newTestServer(t)

	body := `{"amount":100,"currency":"zzz","orderId":"order_456789","paymentMethod":{"type":"card","cardId":"card_x"}}`
	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_currency", errorType(t, resp))
}

func TestCreatePaymentUnknownOrder(t *testing.T) {
	srv := newTestServer(t)

	body := `{"amount":100,"currency":"usd","orderId":"order_nope","paymentMethod":{"type":"card","cardId":"card_x"}}`
	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_order", errorType(t, resp))
}

func TestCreatePaymentMissingCardID(t *testing.T) {
	srv := newTestServer(t)

	body := `{"amount":100,"currency":"usd","orderId":"order_456789","paymentMethod":{"type":"card","cardId":""}}`
	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_request", errorType(t, resp))
}

func TestCreatePaymentMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", `{"amount":`, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_request", errorType(t, resp))
}

func TestConcurrentPaymentCreation(t *testing.T) {
	srv := newTestServer(t)

	const workers = 16
	body := `{"amount":1200,"currency":"usd","orderId":"order_456789","paymentMethod":{"type":"card","cardId":"card_visa_jenny"}}`

	type outcome struct {
		createCode int
		paymentID  string
		listCode   int
		listTotal  float64
	}
	outcomes := make(chan outcome, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			var out outcome
			resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, testToken)
			out.createCode = resp.Code
			var payment map[string]any
			if json.Unmarshal(resp.Body.Bytes(), &payment) == nil {
				out.paymentID, _ = payment["id"].(string)
			}

			list := doRequest(t, srv, http.MethodGet, "/api/v1/orders", "", testToken)
			out.listCode = list.Code
			var page map[string]any
			if json.Unmarshal(list.Body.Bytes(), &page) == nil {
				if meta, ok := page["pagination"].(map[string]any); ok {
					out.listTotal, _ = meta["total"].(float64)
				}
			}
			outcomes <- out
		}()
	}
	close(start)
	wg.Wait()
	close(outcomes)

	ids := make(map[string]struct{}, workers)
	for out := range outcomes {
		require.Equal(t, http.StatusCreated, out.createCode)
		require.NotEmpty(t, out.paymentID)
		ids[out.paymentID] = struct{}{}
		require.Equal(t, http.StatusOK, out.listCode)
		require.Equal(t, float64(2), out.listTotal)
	}
	// No two creates may share an id, no matter how they interleave.
	require.Len(t, ids, workers)
}

func TestGetPaymentSeededSucceeded(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/payments/"+seededPaymentID, "", testToken)
	require.Equal(t, http.StatusOK, resp.Code)

	payment := decodeBody(t, resp)
	require.Equal(t, seededPaymentID, payment["id"])
	require.Equal(t, "succeeded", payment["status"])

	timestamps := payment["timestamps"].(map[string]any)
	require.NotEmpty(t, timestamps["succeededAt"])
}

func TestGetPaymentUnknown(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/payments/pay_nope", "", testToken)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "not_found", errorType(t, resp))
}

func TestRefundLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments/"+seededPaymentID+"/refunds", `{"amount":1000}`, testToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	payment := decodeBody(t, resp)
	require.Equal(t, "succeeded", payment["status"])
	refunds := payment["refunds"].(map[string]any)
	require.Equal(t, float64(1), refunds["total"])
	data := refunds["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	require.Equal(t, float64(1000), first["amount"])
	require.Equal(t, "succeeded", first["status"])

	// Refunding the remainder flips the payment to refunded.
	resp = doRequest(t, srv, http.MethodPost, "/api/v1/payments/"+seededPaymentID+"/refunds", `{"amount":1500}`, testToken)
	require.Equal(t, http.StatusCreated, resp.Code)
	payment = decodeBody(t, resp)
	require.Equal(t, "refunded", payment["status"])
	refunds = payment["refunds"].(map[string]any)
	require.Equal(t, float64(2), refunds["total"])

	// Nothing left to refund.
	resp = doRequest(t, srv, http.MethodPost, "/api/v1/payments/"+seededPaymentID+"/refunds", `{"amount":1}`, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_amount", errorType(t, resp))
}

func TestRefundExceedingRemainder(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments/"+seededPaymentID+"/refunds", `{"amount":2501}`, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_amount", errorType(t, resp))
}

func TestRefundPendingPaymentRejected(t *testing.T) {
	srv := newTestServer(t)

	body := `{"amount":2500,"currency":"usd","orderId":"order_456789","paymentMethod":{"type":"card","cardId":"card_visa_jenny"}}`
	resp := doRequest(t, srv, http.MethodPost, "/api/v1/payments", body, testToken)
	require.Equal(t, http.StatusCreated, resp.Code)
	created := decodeBody(t, resp)
	id := created["id"].(string)

	resp = doRequest(t, srv, http.MethodPost, "/api/v1/payments/"+id+"/refunds", `{"amount":100}`, testToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "invalid_state", errorType(t, resp))
}
