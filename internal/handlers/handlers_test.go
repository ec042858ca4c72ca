package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/brewline/coffee-api/internal/pricing"
	"github.com/brewline/coffee-api/internal/repository"
	"github.com/brewline/coffee-api/internal/service"
	"github.com/brewline/coffee-api/internal/validation"
	"github.com/brewline/coffee-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Title: "Bryggkaffe", Description: "Bryggd på månadens bönor.", Price: decimal.RequireFromString("3.00")},
		{ID: 2, Title: "Caffè Doppio", Description: "Bryggd på månadens bönor.", Price: decimal.RequireFromString("4.50")},
		{ID: 3, Title: "Cappuccino", Description: "Bryggd på månadens bönor.", Price: decimal.RequireFromString("4.90")},
	}
}

type testAPI struct {
	router http.Handler
	store  *repository.Store
}

// newTestAPI wires every handler over an in-memory store, without the admin gate
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logger.New("error")
	store := repository.NewInMemoryStore(testMenu()...)
	validate := validation.New()

	accounts := service.NewAccountService(store.Accounts, log)
	engine := pricing.NewEngine(store.Menu, store.Offers, 4)
	orders := service.NewOrderService(accounts, engine, store.Orders, 0, log)

	menuHandler := NewMenuHandler(service.NewMenuService(store.Menu, log), validate, log)
	offerHandler := NewOfferHandler(service.NewOfferService(store.Offers, store.Menu, log), validate, log)
	accountHandler := NewAccountHandler(accounts, validate, log)
	orderHandler := NewOrderHandler(orders, log)

	r := chi.NewRouter()
	r.Get("/health", NewHealthHandler(log, "memory", nil).ServeHTTP)
	r.Route("/api", func(r chi.Router) {
		r.Get("/coffee", menuHandler.ListMenu)
		r.Get("/coffee/{id}", menuHandler.GetItem)
		r.Post("/menu", menuHandler.CreateItem)
		r.Put("/menu/{id}", menuHandler.UpdateItem)
		r.Delete("/menu/{id}", menuHandler.DeleteItem)
		r.Post("/offers", offerHandler.CreateOffer)
		r.Get("/offers", offerHandler.ListOffers)
		r.Post("/account", accountHandler.Register)
		r.Post("/order", orderHandler.PlaceOrder)
		r.Get("/order/{username}", orderHandler.ListOrders)
	})

	return &testAPI{router: r, store: store}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) register(t *testing.T, username string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/account", map[string]string{
		"username": username,
		"password": "pw",
		"email":    username + "@example.com",
		"role":     "user",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["error"]
}
