package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("handler-secret")

type testServer struct {
	router   *gin.Engine
	orders   *mocks.OrderStore
	uploader *mocks.MockUploader
	events   *services.Dispatcher
	customer string
	admin    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	n := new(mocks.MockNotifier)
	n.On("Notify", mock.Anything, mock.Anything).Return(nil)
	n.On("GenerateInvoice", mock.Anything, mock.Anything).Return(nil)
	d := services.NewDispatcher(n, log)

	orders := mocks.NewOrderStore()
	mrp := int64(125)
	cat := mocks.NewCatalog(
		domain.Product{ID: 1, Name: "Tote", Category: "bags", Price: 100, MRP: &mrp, CostPrice: 40, Stock: 10, Status: domain.ProductPublished},
		domain.Product{ID: 2, Name: "Pouch", Category: "bags", Price: 50, CostPrice: 20, Stock: 10, Status: domain.ProductPublished},
		domain.Product{ID: 3, Name: "Scarf", Category: "apparel", Price: 80, CostPrice: 30, Stock: 0, Status: domain.ProductPublished},
		domain.Product{ID: 4, Name: "Sample", Category: "bags", Price: 10, Status: domain.ProductDraft},
	)
	up := new(mocks.MockUploader)

	w := catalog.NewWatcher(cat, time.Minute, nil, log)
	_, err := w.Poll(context.Background())
	require.NoError(t, err)

	h := NewHandler(Services{
		Checkout:  services.NewCheckoutService(orders, cat, up, d, log),
		Orders:    services.NewOrderService(orders, d, log),
		Payments:  services.NewPaymentService(orders, d, log),
		Analytics: services.NewAnalyticsService(orders, mocks.NewExpenseStore(), cat, time.UTC),
		Expenses:  services.NewExpenseService(mocks.NewExpenseStore(), log),
		Reviews:   services.NewReviewService(mocks.NewReviewStore(), cat, log),
		Products:  w,
	}, testSecret, log)

	r := gin.New()
	h.RegisterRoutes(r)

	customer, err := auth.GenerateToken(testSecret, domain.Principal{ID: "cust-1", DisplayName: "Ravi", Role: domain.RoleCustomer}, time.Hour)
	require.NoError(t, err)
	admin, err := auth.GenerateToken(testSecret, domain.Principal{ID: "admin-1", DisplayName: "Meera", Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	t.Cleanup(d.Wait)
	return &testServer{router: r, orders: orders, uploader: up, events: d, customer: customer, admin: admin}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func checkoutBody(total int64) CheckoutRequest {
	return CheckoutRequest{
		Items: []services.LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
		Shipping: services.ShippingDetails{
			Name: "Ravi", Phone: "9876543210", Address: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001",
		},
		PaymentMethod: domain.PaymentUPI,
		TotalPrice:    total,
	}
}

func TestHandler_CheckoutAndReconcile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/checkout", s.customer, checkoutBody(250))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(250), created.TotalPrice)
	assert.Equal(t, domain.StatusPending, created.Status)

	w = s.do(t, http.MethodPost, "/admin/orders/"+created.ID+"/verify", s.customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/admin/orders/"+created.ID+"/verify", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var verified domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	assert.Equal(t, domain.StatusConfirmed, verified.Status)

	w = s.do(t, http.MethodPost, "/admin/orders/"+created.ID+"/verify", s.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/admin/analytics?days=3", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, int64(250), report.TotalRevenue)
	assert.Equal(t, int64(100), report.ProductCosts)
	assert.Len(t, report.DailyRevenue, 3)

	w = s.do(t, http.MethodPost, "/orders/"+created.ID+"/cancel", s.customer, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_CheckoutErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/checkout", "", checkoutBody(250))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/checkout", "garbage", checkoutBody(250))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/checkout", s.customer, checkoutBody(300))
	assert.Equal(t, http.StatusConflict, w.Code)

	bad := checkoutBody(250)
	bad.Shipping.Phone = "12"
	w = s.do(t, http.MethodPost, "/checkout", s.customer, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "must be 10 digits", body.Fields["phone"])

	assert.Zero(t, s.orders.Len())
}

func TestHandler_MultipartCheckoutUploadFailure(t *testing.T) {
	s := newTestServer(t)
	s.uploader.On("Upload", mock.Anything, "proof.png", mock.Anything, mock.Anything).Return("", assert.AnError)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	payload, _ := json.Marshal(checkoutBody(250))
	require.NoError(t, mw.WriteField("order", string(payload)))
	fw, err := mw.CreateFormFile("receipt", "proof.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/checkout", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.customer)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Zero(t, s.orders.Len())
	s.uploader.AssertExpectations(t)
}

func TestHandler_StatusAndExpenses(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/checkout", s.customer, checkoutBody(250))
	require.Equal(t, http.StatusCreated, w.Code)
	var created CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.do(t, http.MethodPatch, "/admin/orders/"+created.ID+"/status", s.admin, UpdateStatusRequest{Status: domain.StatusConfirmed})
	assert.Equal(t, http.StatusConflict, w.Code)

	tracking := "AWB1"
	w = s.do(t, http.MethodPatch, "/admin/orders/"+created.ID+"/status", s.admin, UpdateStatusRequest{Status: domain.StatusShipped, TrackingNumber: &tracking})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/orders/missing", s.customer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/admin/expenses", s.admin, ExpenseRequest{Category: "cash sale", Amount: -200})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var e domain.Expense
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.True(t, e.IsIncome())

	w = s.do(t, http.MethodGet, "/admin/expenses", s.customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, "/admin/expenses/"+e.ID, s.admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/orders/"+created.ID, s.customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusShipped, got.Status)
	require.NotNil(t, got.TrackingNumber)
	assert.Equal(t, "AWB1", *got.TrackingNumber)
}

func TestHandler_Reviews(t *testing.T) {
	s := newTestServer(t)

	for _, r := range []int{4, 5, 3, 5} {
		w := s.do(t, http.MethodPost, "/products/1/reviews", s.customer, ReviewRequest{Rating: r})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodPost, "/products/1/reviews", s.customer, ReviewRequest{Rating: 5})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Product.Rating)
	assert.Equal(t, 4.4, *resp.Product.Rating)
	assert.Equal(t, 5, resp.Product.ReviewCount)

	w = s.do(t, http.MethodPost, "/products/42/reviews", s.customer, ReviewRequest{Rating: 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/products/1/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 5)

}

func TestHandler_ProductListing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []ProductView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, uint64(1), all[0].ID)
	assert.Equal(t, 20, all[0].DiscountPercent)
	assert.Equal(t, int64(25), all[0].Savings)
	assert.Zero(t, all[1].DiscountPercent)
	assert.False(t, all[2].InStock)
	assert.NotContains(t, w.Body.String(), "costPrice")

	w = s.do(t, http.MethodGet, "/products?category=apparel", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var apparel []ProductView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apparel))
	require.Len(t, apparel, 1)
	assert.Equal(t, "Scarf", apparel[0].Name)
}

func TestHandler_OtherCustomersOrdersLookMissing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/checkout", s.customer, checkoutBody(250))
	require.Equal(t, http.StatusCreated, w.Code)
	var created CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	other, err := auth.GenerateToken(testSecret, domain.Principal{ID: "cust-2", Role: domain.RoleCustomer}, time.Hour)
	require.NoError(t, err)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/orders/" + created.ID},
		{http.MethodPost, "/orders/" + created.ID + "/cancel"},
	} {
		w = s.do(t, req.method, req.path, other, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, req.path)
	}

	w = s.do(t, http.MethodGet, "/orders/"+created.ID, s.customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusPending, got.Status)
}
