package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

type ShippingDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type LineRequest struct {
	ProductID uint64 `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Receipt struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CheckoutRequest is either a buy-now selection (ProductID, Quantity) or a
// cart (Items). Items wins when both are set.
type CheckoutRequest struct {
	ProductID     uint64
	Quantity      int
	Items         []LineRequest
	Shipping      ShippingDetails
	PaymentMethod domain.PaymentMethod
	DeclaredTotal int64
	Receipt       *Receipt
}

// CartLines converts a cart into checkout lines.
func CartLines(c *domain.Cart) []LineRequest {
	out := make([]LineRequest, 0, c.Len())
	for _, it := range c.Items() {
		out = append(out, LineRequest{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	return out
}

// checkoutLine is a merged line; at is the request index it was first seen
// at, used to key validation errors.
type checkoutLine struct {
	LineRequest
	at int
}

func (r CheckoutRequest) lines() []LineRequest {
	if len(r.Items) > 0 {
		return r.Items
	}
	if r.ProductID == 0 {
		return nil
	}
	return []LineRequest{{ProductID: r.ProductID, Quantity: r.Quantity}}
}

type CheckoutService struct {
	repo     repository.OrderRepository
	catalog  catalog.Reader
	uploader infra.UploaderInterface
	events   *Dispatcher
	log      *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(r repository.OrderRepository, c catalog.Reader, u infra.UploaderInterface, d *Dispatcher, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		repo:     r,
		catalog:  c,
		uploader: u,
		events:   d,
		log:      log,
		now:      time.Now,
	}
}

// Checkout turns a cart or a single selection into one pending order. Input
// is validated, priced and the receipt uploaded before anything is saved.
func (s *CheckoutService) Checkout(ctx context.Context, p domain.Principal, req CheckoutRequest) (*domain.Order, error) {
	if !p.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	lines, verr := validateCheckout(req)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	items, total, err := s.price(ctx, lines)
	if err != nil {
		return nil, err
	}
	if total != req.DeclaredTotal {
		return nil, fmt.Errorf("%w: declared %d, computed %d", domain.ErrAmountMismatch, req.DeclaredTotal, total)
	}

	var receiptRef *string
	if req.Receipt != nil {
		ref, err := s.uploadReceipt(ctx, req.Receipt)
		if err != nil {
			return nil, err
		}
		receiptRef = &ref
	}

	sh := req.Shipping
	order := &domain.Order{
		ID:                uuid.NewString(),
		CustomerID:        p.ID,
		Items:             items,
		CustomerName:      strings.TrimSpace(sh.Name),
		Phone:             strings.TrimSpace(sh.Phone),
		Email:             strings.TrimSpace(sh.Email),
		Address:           strings.TrimSpace(sh.Address),
		City:              strings.TrimSpace(sh.City),
		State:             strings.TrimSpace(sh.State),
		Pincode:           strings.TrimSpace(sh.Pincode),
		PaymentMethod:     req.PaymentMethod,
		TotalPrice:        total,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentPending,
		PaymentReceiptRef: receiptRef,
		CreatedAt:         s.now(),
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_id", p.ID),
		zap.Int64("total", order.TotalPrice),
		zap.Int("items", len(order.Items)))
	s.events.Notify(orderNotification(order, domain.NotifyOrderPlaced))

	return order, nil
}

// AttachReceipt records a payment proof for an order still awaiting
// verification.
func (s *CheckoutService) AttachReceipt(ctx context.Context, p domain.Principal, orderID string, receipt *Receipt) (*domain.Order, error) {
	if !p.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if receipt == nil || receipt.Body == nil {
		verr := &domain.ValidationError{}
		verr.Add("receipt", "required")
		return nil, verr
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !o.OwnedBy(p) && !p.IsAdmin() {
		return nil, domain.ErrOrderNotFound
	}
	if !domain.CanReconcile(o.PaymentStatus) {
		return nil, fmt.Errorf("%w: payment for order %s is %s", domain.ErrInvalidTransition, o.ID, o.PaymentStatus)
	}

	ref, err := s.uploadReceipt(ctx, receipt)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.SetReceiptIf(ctx, orderID, ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, explainRejected(ctx, s.repo, orderID)
	}
	o.PaymentReceiptRef = &ref
	return o, nil
}

func (s *CheckoutService) uploadReceipt(ctx context.Context, r *Receipt) (string, error) {
	ref, err := s.uploader.Upload(ctx, r.Filename, r.ContentType, r.Body)
	if err != nil {
		s.log.Warn("receipt upload failed", zap.String("filename", r.Filename), zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return ref, nil
}

// price snapshots live catalog data for each line.
func (s *CheckoutService) price(ctx context.Context, lines []checkoutLine) ([]domain.OrderItem, int64, error) {
	items := make([]domain.OrderItem, 0, len(lines))
	verr := &domain.ValidationError{}
	var total int64

	for _, l := range lines {
		prod, err := s.catalog.GetProduct(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, 0, fmt.Errorf("%w: %d", domain.ErrProductNotFound, l.ProductID)
			}
			return nil, 0, err
		}
		if !prod.Published() {
			return nil, 0, fmt.Errorf("%w: %d", domain.ErrProductNotFound, l.ProductID)
		}
		if prod.Stock < int64(l.Quantity) {
			verr.Add(fmt.Sprintf("items[%d].quantity", l.at), fmt.Sprintf("only %d in stock", prod.Stock))
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			Price:     prod.Price,
			Quantity:  l.Quantity,
		})
		total += domain.LineTotal(prod.Price, l.Quantity)
	}

	if err := verr.OrNil(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// validateCheckout checks the request shape and merges duplicate product
// lines, keeping first-seen order.
func validateCheckout(req CheckoutRequest) ([]checkoutLine, *domain.ValidationError) {
	verr := &domain.ValidationError{}
	sh := req.Shipping

	if strings.TrimSpace(sh.Name) == "" {
		verr.Add("name", "required")
	}
	phone := strings.TrimSpace(sh.Phone)
	if phone == "" {
		verr.Add("phone", "required")
	} else if !phonePattern.MatchString(phone) {
		verr.Add("phone", "must be 10 digits")
	}
	if email := strings.TrimSpace(sh.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			verr.Add("email", "invalid")
		}
	}
	for field, v := range map[string]string{"address": sh.Address, "city": sh.City, "state": sh.State} {
		if strings.TrimSpace(v) == "" {
			verr.Add(field, "required")
		}
	}
	pin := strings.TrimSpace(sh.Pincode)
	if pin == "" {
		verr.Add("pincode", "required")
	} else if !pincodePattern.MatchString(pin) {
		verr.Add("pincode", "must be 6 digits")
	}
	if !req.PaymentMethod.Valid() {
		verr.Add("paymentMethod", "must be upi or bank")
	}
	if req.DeclaredTotal < 0 {
		verr.Add("totalPrice", "must not be negative")
	}

	raw := req.lines()
	if len(raw) == 0 {
		verr.Add("items", "cart is empty")
		return nil, verr
	}

	merged := make([]checkoutLine, 0, len(raw))
	index := make(map[uint64]int, len(raw))
	for i, l := range raw {
		if l.ProductID == 0 {
			verr.Add(fmt.Sprintf("items[%d].productId", i), "required")
			continue
		}
		if l.Quantity < 1 {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
			continue
		}
		if j, ok := index[l.ProductID]; ok {
			merged[j].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, checkoutLine{LineRequest: l, at: i})
	}
	return merged, verr
}

// explainRejected reports why a conditional update matched no row.
func explainRejected(ctx context.Context, repo repository.OrderRepository, id string) error {
	o, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrOrderNotFound
	}
	return fmt.Errorf("%w: order %s is %s with payment %s", domain.ErrInvalidTransition, o.ID, o.Status, o.PaymentStatus)
}
