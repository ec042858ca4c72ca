package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_PlaceOrder(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful order",
			requestBody: models.OrderRequest{
				Username: "alice",
				Items:    []models.CartLine{{ItemID: 1, Quantity: 2}},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "multiple items order",
			requestBody: models.OrderRequest{
				Username: "alice",
				Items:    []models.CartLine{{ItemID: 1, Quantity: 1}, {ItemID: 3, Quantity: 2}},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty order",
			requestBody:    models.OrderRequest{Username: "alice", Items: []models.CartLine{}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Bad request",
		},
		{
			name:           "missing username",
			requestBody:    models.OrderRequest{Items: []models.CartLine{{ItemID: 1, Quantity: 1}}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid quantity",
			requestBody: models.OrderRequest{
				Username: "alice",
				Items:    []models.CartLine{{ItemID: 1, Quantity: 0}},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown item",
			requestBody: models.OrderRequest{
				Username: "alice",
				Items:    []models.CartLine{{ItemID: 99, Quantity: 1}},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Item with ID 99 not found in menu",
		},
		{
			name: "unknown user",
			requestBody: models.OrderRequest{
				Username: "mallory",
				Items:    []models.CartLine{{ItemID: 1, Quantity: 1}},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Unauthorized",
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.register(t, "alice")

			w := api.do(t, http.MethodPost, "/api/order", tt.requestBody)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus != http.StatusCreated {
				msg := decodeError(t, w)
				if tt.expectedError != "" {
					assert.Equal(t, tt.expectedError, msg)
				}
				return
			}

			var receipt models.OrderReceipt
			require.NoError(t, json.NewDecoder(w.Body).Decode(&receipt))
			assert.NotEmpty(t, receipt.ID)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), receipt.ETA, 5*time.Second)
		})
	}
}

func TestOrderHandler_OfferScenario(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "alice")

	w := api.do(t, http.MethodPost, "/api/offers", map[string]interface{}{"products": []int64{1, 2}, "price": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/order", models.OrderRequest{
		Username: "alice",
		Items:    []models.CartLine{{ItemID: 1, Quantity: 1}, {ItemID: 2, Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/order/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Total.Equal(decimal.RequireFromString("10")), "total %s", orders[0].Total)
	for _, line := range orders[0].Items {
		assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("5")))
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "alice")

	w := api.do(t, http.MethodGet, "/api/order/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/order", models.OrderRequest{
		Username: "alice",
		Items:    []models.CartLine{{ItemID: 1, Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/api/order/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, 6.0, raw[0]["total"], "decimals are JSON numbers")
	assert.Contains(t, raw[0], "_metadata")
	assert.Contains(t, raw[0], "eta")

	w = api.do(t, http.MethodGet, "/api/order/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decodeError(t, w))
}
