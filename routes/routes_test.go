package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freshfruit/storefront/controllers"
	"github.com/freshfruit/storefront/database"
	"github.com/freshfruit/storefront/models"
	"github.com/freshfruit/storefront/repository"
	"github.com/freshfruit/storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the full stack over an in-memory store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewMemoryStore()
	tokenService := services.NewTokenService("test-secret", 0)
	authService := services.NewAuthService(repository.NewUserRepository(store), tokenService, nil)
	orderService := services.NewOrderService(repository.NewOrderRepository(store))
	productService := services.NewProductService(repository.NewProductRepository(store), nil)

	r := gin.New()
	Register(r, Controllers{
		Auth:    controllers.NewAuthController(authService),
		Order:   controllers.NewOrderController(orderService),
		Product: controllers.NewProductController(productService),
	}, tokenService)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func registerAndLogin(t *testing.T, r *gin.Engine, name, email, password string) (string, models.PublicUser) {
	t.Helper()

	rec := doJSON(r, http.MethodPost, "/api/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodPost, "/api/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token, out.User
}

func TestCheckoutEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	// register -> login
	token, user := registerAndLogin(t, r, "Ana", "ana@x.com", "pw")
	assert.Equal(t, "Ana", user.Name)

	// place one order
	rec := doJSON(r, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"customer": map[string]string{"name": "Ana", "email": "ana@x.com", "address": "Jl. A"},
		"items":    []map[string]interface{}{{"id": 1, "name": "Apel", "price": 25000}},
		"total":    25000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		OK    bool         `json:"ok"`
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.OK)
	assert.Equal(t, user.ID, created.Order.UserID)

	// list orders
	rec = doJSON(r, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, int64(25000), orders[0].Total)
	assert.Len(t, orders[0].Items, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/api/register", "", map[string]string{
		"name": "Ana", "email": "ana@x.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(r, http.MethodPost, "/api/register", "", map[string]string{
		"name": "Other", "email": "ana@x.com", "password": "other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "Ana", "ana@x.com", "pw")

	rec := doJSON(r, http.MethodPost, "/api/login", "", map[string]string{
		"email": "ana@x.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardedEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token, user := registerAndLogin(t, r, "Ana", "ana@x.com", "pw")

	t.Run("No Token", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/api/orders", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unauthorized")
	})

	t.Run("Tampered Token", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/api/orders", token+"x", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token invalid")
	})

	t.Run("Me", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/api/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			User models.PublicUser `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, user, out.User)
	})
}

func TestOrderIsolationBetweenUsers(t *testing.T) {
	r := newTestRouter(t)
	tokenA, userA := registerAndLogin(t, r, "Ana", "ana@x.com", "pw")
	tokenB, _ := registerAndLogin(t, r, "Budi", "budi@x.com", "pw")

	for i := 1; i <= 2; i++ {
		rec := doJSON(r, http.MethodPost, "/api/orders", tokenA, map[string]interface{}{
			"customer": map[string]string{"name": "Ana", "email": "ana@x.com"},
			"items":    []map[string]interface{}{{"id": i, "name": fmt.Sprintf("item-%d", i), "price": 1000}},
			"total":    1000,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := doJSON(r, http.MethodPost, "/api/orders", tokenB, map[string]interface{}{
		"customer": map[string]string{"name": "Budi", "email": "budi@x.com"},
		"items":    []map[string]interface{}{{"id": 9, "name": "other", "price": 500}},
		"total":    500,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var ordersA []models.Order
	rec = doJSON(r, http.MethodGet, "/api/orders", tokenA, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ordersA))
	require.Len(t, ordersA, 2)
	for _, o := range ordersA {
		assert.Equal(t, userA.ID, o.UserID)
	}
	assert.Less(t, ordersA[0].ID, ordersA[1].ID, "creation order, oldest first")

	// Repeated listing returns the same set absent new writes.
	var again []models.Order
	rec = doJSON(r, http.MethodGet, "/api/orders", tokenA, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, ordersA, again)
}

func TestProductEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 3, "default catalog is seeded on first read")

	rec = doJSON(r, http.MethodGet, "/api/products/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Apel Fuji")

	rec = doJSON(r, http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogoutIsStatelessAck(t *testing.T) {
	r := newTestRouter(t)
	token, _ := registerAndLogin(t, r, "Ana", "ana@x.com", "pw")

	rec := doJSON(r, http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)

	// Tokens are stateless: the old token still works after logout.
	rec = doJSON(r, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
