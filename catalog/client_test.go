package catalog_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/catalog/catalogtest"
	"github.com/rpupo63/catalog-admin/errs"
	"github.com/rpupo63/catalog-admin/models"
)

func strPtr(s string) *string { return &s }

func newCatalog(t *testing.T, opts ...catalog.ClientOption) (*catalogtest.Server, catalog.Catalog) {
	t.Helper()
	srv := catalogtest.NewServer()
	t.Cleanup(srv.Close)
	return srv, catalog.New(catalog.NewClient(srv.URL+"/", opts...))
}

func TestListSendsAcceptHeaderWithoutCredentials(t *testing.T) {
	srv, cat := newCatalog(t)
	srv.Seed("/brands", models.Brand{ID: 4, Brand: "acme", DisplayName: "Acme", Priority: 2})

	brands, err := cat.Brands().List(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, int64(4), brands[0].ID)
	assert.Equal(t, "Acme", brands[0].DisplayName)

	req, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/brands", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Content-Type"))
}

func TestCreateOmitsIDAndSetsContentType(t *testing.T) {
	srv, cat := newCatalog(t)

	result, err := cat.Clients().Create(context.Background(), map[string]any{"name": "Globex", "priority": 1, "link": ""})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "Record created", result.Summary())

	req, _ := srv.Last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/clients", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	body := req.JSON()
	assert.NotContains(t, body, "id")
	assert.Equal(t, "Globex", body["name"])
}

func TestUpdateAndDeleteTargetRecordPath(t *testing.T) {
	srv, cat := newCatalog(t)
	srv.Seed("/projects", models.Project{ID: 9, MainTitle: "Old"})
	ctx := context.Background()

	result, err := cat.Projects().Update(ctx, 9, map[string]any{"id": 9, "main_title": "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), result.ID)
	req, _ := srv.Last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/projects/9", req.Path)

	result, err = cat.Projects().Delete(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), result.ID)
	assert.Equal(t, "Record deleted", result.Summary())
	assert.Empty(t, srv.IDs("/projects"))
}

func TestProductQueries(t *testing.T) {
	srv, cat := newCatalog(t)
	for i := 0; i < 20; i++ {
		mainCat := "Sensors"
		if i%2 == 1 {
			mainCat = "Valves"
		}
		srv.Seed("/products", models.Product{Code: strPtr("P"), MainCat: strPtr(mainCat), Brand: strPtr("acme"), Model: strPtr("m-" + string(rune('a'+i)))})
	}
	ctx := context.Background()

	t.Run("page", func(t *testing.T) {
		products, err := cat.Products().Page(ctx, 15, 15)
		require.NoError(t, err)
		assert.Len(t, products, 5)
		req, _ := srv.Last()
		assert.Equal(t, "/products", req.Path)
		assert.Equal(t, "15", req.Query.Get("limit"))
		assert.Equal(t, "15", req.Query.Get("offset"))
	})

	t.Run("search sends only non-empty filters", func(t *testing.T) {
		products, err := cat.Products().Search(ctx, catalog.ProductFilter{MainCat: "Sensors"}, 15, 0)
		require.NoError(t, err)
		assert.Len(t, products, 10)
		req, _ := srv.Last()
		assert.Equal(t, "/search-products", req.Path)
		assert.Equal(t, "Sensors", req.Query.Get("main_cat"))
		assert.False(t, req.Query.Has("sub_cat"))
		assert.False(t, req.Query.Has("brand"))
		assert.Equal(t, "0", req.Query.Get("offset"))
	})

	t.Run("search by model", func(t *testing.T) {
		products, err := cat.Products().SearchByModel(ctx, "m-c")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "m-c", *products[0].Model)
		req, _ := srv.Last()
		assert.Equal(t, "/search-by-model", req.Path)
		assert.Equal(t, "m-c", req.Query.Get("model"))
	})

	t.Run("distinct", func(t *testing.T) {
		values, err := cat.Products().Distinct(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Sensors", "Valves"}, values.MainCategories)
		assert.Equal(t, []string{"acme"}, values.Brands)
		assert.Empty(t, values.SubCategories)
	})
}

func TestNullableProductFieldsDecodeAsNil(t *testing.T) {
	srv, cat := newCatalog(t)
	srv.Seed("/products", models.Product{ID: 3, Code: strPtr("C-3"), Range: nil})

	products, err := cat.Products().Page(context.Background(), 15, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].Range)
	require.NotNil(t, products[0].Code)
	assert.Equal(t, "C-3", *products[0].Code)
}

func TestUploadProductImage(t *testing.T) {
	srv, cat := newCatalog(t)

	result, err := cat.Client().UploadProductImage(context.Background(), "/tmp/photos/valve.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/valve.png", result.URL)
	assert.Equal(t, []string{"valve.png"}, srv.Uploads())

	req, _ := srv.Last()
	assert.Equal(t, "/upload-product-image", req.Path)
	assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data; boundary="))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestStatusFailureIsRequestError(t *testing.T) {
	srv, cat := newCatalog(t)
	srv.Fail(http.MethodDelete, "/brands/2", http.StatusInternalServerError)

	_, err := cat.Brands().Delete(context.Background(), 2)
	require.Error(t, err)

	var reqErr *errs.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "/brands/2", reqErr.Path)
	assert.Contains(t, reqErr.Body, "injected failure")
	assert.ErrorIs(t, err, errs.ErrUnexpectedStatus)
	assert.Equal(t, 1, srv.Count(http.MethodDelete, "/brands/2"), "no retry")
}

func TestTransportFailureIsRequestError(t *testing.T) {
	srv := catalogtest.NewServer()
	url := srv.URL
	srv.Close()

	cat := catalog.New(catalog.NewClient(url, catalog.WithTimeout(time.Second)))
	_, err := cat.Categories().List(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsTransportError(err))
	assert.Equal(t, 0, errs.StatusCode(err))
}

func TestMalformedResponse(t *testing.T) {
	fake := catalogtest.NewServer()
	t.Cleanup(fake.Close)
	fake.Seed("/categories", models.Category{ID: 1, MainCategory: "x"})

	// A list endpoint decoded into the wrong shape surfaces as malformed.
	client := catalog.NewClient(fake.URL)
	_, err := catalog.NewResource[map[string]string](client, "/categories").List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedResponse)
}

func TestMetricsCountRequestsByResource(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := catalog.NewMetrics(reg)
	srv, cat := newCatalog(t, catalog.WithMetrics(metrics))
	srv.Fail(http.MethodPut, "/brands/5", http.StatusBadGateway)
	ctx := context.Background()

	_, err := cat.Brands().List(ctx)
	require.NoError(t, err)
	_, err = cat.Brands().Update(ctx, 5, map[string]any{"brand": "x"})
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, metrics.RequestsTotal.WithLabelValues("brands", http.MethodGet, "200")))
	assert.Equal(t, 1.0, counterValue(t, metrics.RequestsTotal.WithLabelValues("brands", http.MethodPut, "502")))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
