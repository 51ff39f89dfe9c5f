package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxReceiptBytes = 5 << 20

// ProductSnapshot serves the last polled catalog.
type ProductSnapshot interface {
	Snapshot() []domain.Product
}

type Handler struct {
	checkout  *services.CheckoutService
	orders    *services.OrderService
	payments  *services.PaymentService
	analytics *services.AnalyticsService
	expenses  *services.ExpenseService
	reviews   *services.ReviewService
	products  ProductSnapshot
	secret    []byte
	log       *zap.Logger
}

type Services struct {
	Checkout  *services.CheckoutService
	Orders    *services.OrderService
	Payments  *services.PaymentService
	Analytics *services.AnalyticsService
	Expenses  *services.ExpenseService
	Reviews   *services.ReviewService
	Products  ProductSnapshot
}

func NewHandler(s Services, jwtSecret []byte, log *zap.Logger) *Handler {
	return &Handler{
		checkout:  s.Checkout,
		orders:    s.Orders,
		payments:  s.Payments,
		analytics: s.Analytics,
		expenses:  s.Expenses,
		reviews:   s.Reviews,
		products:  s.Products,
		secret:    jwtSecret,
		log:       log,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id/reviews", h.ListReviews)

	authed := r.Group("/", Authenticate(h.secret))
	authed.POST("/checkout", h.Checkout)
	authed.GET("/orders", h.ListMyOrders)
	authed.GET("/orders/:id", h.GetOrder)
	authed.POST("/orders/:id/cancel", h.CancelOrder)
	authed.POST("/orders/:id/receipt", h.AttachReceipt)
	authed.POST("/products/:id/reviews", h.AddReview)

	admin := r.Group("/admin", Authenticate(h.secret))
	admin.GET("/orders", h.ListOrders)
	admin.POST("/orders/:id/verify", h.VerifyPayment)
	admin.POST("/orders/:id/reject", h.RejectPayment)
	admin.PATCH("/orders/:id/status", h.UpdateStatus)
	admin.GET("/analytics", h.Analytics)
	admin.GET("/expenses", h.ListExpenses)
	admin.POST("/expenses", h.RecordExpense)
	admin.DELETE("/expenses/:id", h.DeleteExpense)
}

// Checkout accepts a JSON body, or multipart with the JSON in the "order"
// field and the payment proof in "receipt".
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	var receipt *services.Receipt

	if c.ContentType() == "multipart/form-data" {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxReceiptBytes+1<<20)
		if err := json.Unmarshal([]byte(c.PostForm("order")), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order: " + err.Error()})
			return
		}
		file, hdr, err := c.Request.FormFile("receipt")
		if err == nil {
			defer file.Close()
			if hdr.Size > maxReceiptBytes {
				c.JSON(http.StatusBadRequest, gin.H{"error": "receipt too large"})
				return
			}
			receipt = &services.Receipt{
				Filename:    hdr.Filename,
				ContentType: hdr.Header.Get("Content-Type"),
				Body:        file,
			}
		} else if err != http.ErrMissingFile {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt: " + err.Error()})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := req.toService()
	in.Receipt = receipt
	order, err := h.checkout.Checkout(c.Request.Context(), principal(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CheckoutResponse{
		ID:            order.ID,
		TotalPrice:    order.TotalPrice,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	})
}

func (h *Handler) AttachReceipt(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxReceiptBytes+1<<20)
	file, hdr, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt: " + err.Error()})
		return
	}
	defer file.Close()

	order, err := h.checkout.AttachReceipt(c.Request.Context(), principal(c), c.Param("id"), &services.Receipt{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	orders, err := h.orders.ListMyOrders(c.Request.Context(), principal(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrderById(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	order, err := h.orders.CancelOrder(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	f := domain.OrderFilter{
		Status:        domain.OrderStatus(c.Query("status")),
		PaymentStatus: domain.PaymentStatus(c.Query("paymentStatus")),
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		f.Limit = n
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), principal(c), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	order, err := h.payments.VerifyPayment(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) RejectPayment(c *gin.Context) {
	order, err := h.payments.RejectPayment(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), principal(c), c.Param("id"), req.Status, req.TrackingNumber)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) Analytics(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 366 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 366"})
			return
		}
		days = n
	}
	report, err := h.analytics.Summary(c.Request.Context(), principal(c), days)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) ListExpenses(c *gin.Context) {
	out, err := h.expenses.ListExpenses(c.Request.Context(), principal(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) RecordExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := services.ExpenseInput{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.PaymentDate != nil {
		in.PaymentDate = *req.PaymentDate
	}
	e, err := h.expenses.RecordExpense(c.Request.Context(), principal(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	if err := h.expenses.DeleteExpense(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddReview(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rv, summary, err := h.reviews.AddReview(c.Request.Context(), principal(c), services.ReviewInput{
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ReviewResponse{Review: rv, Product: summary})
}

func (h *Handler) ListReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	out, err := h.reviews.ListReviews(c.Request.Context(), productID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListProducts lists published products from the polled catalog, optionally
// narrowed by ?category=.
func (h *Handler) ListProducts(c *gin.Context) {
	category := c.Query("category")
	out := make([]ProductView, 0)
	for _, p := range h.products.Snapshot() {
		if !p.Published() {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, newProductView(p))
	}
	c.JSON(http.StatusOK, out)
}
