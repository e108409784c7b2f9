package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/VijayBuddhi/phase-zero-project/internal/domain"
	"github.com/VijayBuddhi/phase-zero-project/internal/repository"
	"github.com/VijayBuddhi/phase-zero-project/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	catalogService := service.NewCatalogService(repository.NewMemoryProductRepository())
	handler := NewProductHandler(catalogService, zap.NewNop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func postProduct(t *testing.T, router chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, router chi.Router, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestInsertThenList(t *testing.T) {
	router := newTestRouter(t)

	w := postProduct(t, router, `{"partNumber":"A1","partName":"Bolt","category":"Hardware","price":1.5,"stock":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "bolt", created.PartName)
	assert.Equal(t, "A1", created.PartNumber)
	assert.Equal(t, "Hardware", created.Category)

	var products []domain.Product
	w = getJSON(t, router, "/products", &products)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "bolt", products[0].PartName)
}

func TestDuplicateRejection(t *testing.T) {
	router := newTestRouter(t)

	w := postProduct(t, router, `{"partNumber":"A1","partName":"Bolt","category":"Hardware","price":1.5,"stock":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postProduct(t, router, `{"partNumber":"A1","partName":"Other Bolt","category":"Hardware","price":2.0,"stock":5}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, strings.ToLower(w.Body.String()), "duplicate")

	var products []domain.Product
	getJSON(t, router, "/products", &products)
	assert.Len(t, products, 1)
}

func TestValidationRejection(t *testing.T) {
	router := newTestRouter(t)

	w := postProduct(t, router, `{"partNumber":"A1","partName":"Bolt","category":"Hardware","price":-1,"stock":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postProduct(t, router, `{"partNumber":"A2","partName":"Nut","category":"Hardware","price":1,"stock":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Neither request may be persisted
	var products []domain.Product
	getJSON(t, router, "/products", &products)
	assert.Empty(t, products)
}

func TestMalformedRequests(t *testing.T) {
	router := newTestRouter(t)

	w := postProduct(t, router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postProduct(t, router, `{"partName":"Bolt","category":"Hardware","price":1,"stock":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var products []domain.Product
	getJSON(t, router, "/products", &products)
	assert.Empty(t, products)
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	router := newTestRouter(t)

	postProduct(t, router, `{"partNumber":"A1","partName":"Bolt","category":"Hardware","price":1.5,"stock":10}`)
	postProduct(t, router, `{"partNumber":"A2","partName":"Nut","category":"Hardware","price":0.5,"stock":100}`)

	var matches []domain.Product
	w := getJSON(t, router, "/products/search?name=BO", &matches)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, matches, 1)
	assert.Equal(t, "bolt", matches[0].PartName)

	// Present-but-empty name matches everything
	matches = nil
	getJSON(t, router, "/products/search?name=", &matches)
	assert.Len(t, matches, 2)

	// Absent name parameter is a client error
	w = getJSON(t, router, "/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterCaseInsensitiveExact(t *testing.T) {
	router := newTestRouter(t)

	postProduct(t, router, `{"partNumber":"A1","partName":"Bolt","category":"Hardware","price":1.5,"stock":10}`)
	postProduct(t, router, `{"partNumber":"A2","partName":"Hammer","category":"Tools","price":12.0,"stock":3}`)

	var matches []domain.Product
	w := getJSON(t, router, "/products/filter?category=hardware", &matches)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, matches, 1)
	assert.Equal(t, "A1", matches[0].PartNumber)

	matches = nil
	getJSON(t, router, "/products/filter?category=hard", &matches)
	assert.Empty(t, matches)

	w = getJSON(t, router, "/products/filter", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSortAndInventoryValue(t *testing.T) {
	router := newTestRouter(t)

	postProduct(t, router, `{"partNumber":"A1","partName":"Hammer","category":"Tools","price":3.0,"stock":2}`)
	postProduct(t, router, `{"partNumber":"A2","partName":"Bolt","category":"Hardware","price":1.0,"stock":10}`)
	postProduct(t, router, `{"partNumber":"A3","partName":"Nut","category":"Hardware","price":2.0,"stock":5}`)

	var sorted []domain.Product
	w := getJSON(t, router, "/products/sort", &sorted)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sorted, 3)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, []float64{sorted[0].Price, sorted[1].Price, sorted[2].Price})

	var value float64
	w = getJSON(t, router, "/products/inventory/value", &value)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 26.0, value, 1e-9)
}

func TestInventoryValueEmptyCatalog(t *testing.T) {
	router := newTestRouter(t)

	var value float64
	w := getJSON(t, router, "/products/inventory/value", &value)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, value)
}

func TestConcurrentCreatesSamePartNumber(t *testing.T) {
	router := newTestRouter(t)

	const workers = 20
	body := `{"partNumber":"RACE-1","partName":"Widget","category":"Hardware","price":1.0,"stock":1}`

	var wg sync.WaitGroup
	codes := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte(body)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	successes := 0
	conflicts := 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			successes++
		case http.StatusConflict:
			conflicts++
		default:
			t.Errorf("Unexpected status code %d", code)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	var products []domain.Product
	getJSON(t, router, "/products", &products)
	assert.Len(t, products, 1)
}
