package product

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMux() http.Handler {
	h := NewHandler(newTestService(), zap.NewNop().Sugar())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", h.List)
	mux.HandleFunc("POST /products", h.Create)
	mux.HandleFunc("PUT /products/{id}", h.Update)
	mux.HandleFunc("DELETE /products/{id}", h.Delete)
	return mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

const phoneJSON = `{"name":"Phone X","description":"A good phone","image":"https://e.com/x.webp","price":"19.99"}`

type createResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Product struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Price json.RawMessage `json:"price"`
	} `json:"product"`
}

func TestHandler_CreateListUpdateDelete(t *testing.T) {
	mux := newTestMux()

	rec := do(mux, http.MethodPost, "/products", phoneJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Product created successfully", created.Message)
	assert.Equal(t, "Phone X", created.Product.Name)

	rec = do(mux, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Success  bool `json:"success"`
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Products, 1)
	assert.Equal(t, created.Product.ID, list.Products[0].ID)

	rec = do(mux, http.MethodPut, "/products/"+created.Product.ID,
		`{"name":"Phone Y","description":"A better phone","image":"https://e.com/y.png","price":25}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Product updated successfully"`)
	assert.Contains(t, rec.Body.String(), `"name":"Phone Y"`)

	rec = do(mux, http.MethodDelete, "/products/"+created.Product.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Product deleted successfully"}`, rec.Body.String())

	rec = do(mux, http.MethodDelete, "/products/"+created.Product.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Product not found"}`, rec.Body.String())
}

func TestHandler_UpdateMalformedID(t *testing.T) {
	rec := do(newTestMux(), http.MethodPut, "/products/123", phoneJSON)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CreateValidation(t *testing.T) {
	rec := do(newTestMux(), http.MethodPost, "/products", `{"name":"X","price":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Equal(t, "Product name must be at least 2 characters", resp.Errors["name"])
	assert.Equal(t, "Price must be greater than 0", resp.Errors["price"])
	assert.Equal(t, "Description is required", resp.Errors["description"])
	assert.Equal(t, "Product image URL is required", resp.Errors["image"])
}

func TestHandler_CreateMalformedJSON(t *testing.T) {
	rec := do(newTestMux(), http.MethodPost, "/products", `nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid request body"}`, rec.Body.String())
}
