package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CheckoutState string

const (
	CheckoutEditing    CheckoutState = "editing"
	CheckoutValidating CheckoutState = "validating"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSuccess    CheckoutState = "success"
	CheckoutFailed     CheckoutState = "failed"
)

// フォームの項目名（JSONのキーと同じ）
const (
	FieldFullName      = "fullName"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldCity          = "city"
	FieldState         = "state"
	FieldPincode       = "pincode"
	FieldPaymentMethod = "paymentMethod"
)

const (
	msgCartEmpty     = "Your cart is empty!"
	msgOrderIssue    = "There was an issue placing your order. Please try again."
	msgOrderFallback = "Failed to place order. Please try again."
)

// チェックアウトフォーム
type CheckoutForm struct {
	model.CustomerInfo
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
}

// 項目名 -> エラーメッセージ
type FieldErrors map[string]string

// usecaseがValidatorに依存する約束
type CheckoutValidator interface {
	ValidateCheckout(form CheckoutForm) FieldErrors
}

// バックエンドの message を持つエラー
type backendMessager interface {
	BackendMessage() string
}

// 送料ルール（閾値を超えたら無料）
type ShippingPolicy struct {
	FreeThreshold decimal.Decimal
	FlatFee       decimal.Decimal
}

func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: decimal.NewFromInt(2000),
		FlatFee:       decimal.NewFromInt(100),
	}
}

func (p ShippingPolicy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}

type CheckoutSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// GET /checkout の返却
type CheckoutView struct {
	State   CheckoutState    `json:"state"`
	Form    CheckoutForm     `json:"form"`
	Errors  FieldErrors      `json:"errors"`
	Items   []model.CartLine `json:"items"`
	Summary CheckoutSummary  `json:"summary"`
}

// Submit の結果
type CheckoutResult struct {
	State    CheckoutState `json:"state"`
	Errors   FieldErrors   `json:"errors,omitempty"`
	OrderID  string        `json:"order_id,omitempty"`
	Message  string        `json:"message,omitempty"`
	Redirect string        `json:"redirect,omitempty"`
}

// CheckoutFlow はセッション1つ分のチェックアウト。
type CheckoutFlow struct {
	mu     sync.Mutex
	state  CheckoutState
	form   CheckoutForm
	errors FieldErrors

	cart      *CartStore
	toasts    *ToastQueue
	orders    repo.OrderGateway
	validator CheckoutValidator
	shipping  ShippingPolicy
	logger    *zap.Logger
}

// DI
func NewCheckoutFlow(
	cart *CartStore,
	toasts *ToastQueue,
	orders repo.OrderGateway,
	validator CheckoutValidator,
	shipping ShippingPolicy,
	logger *zap.Logger,
) *CheckoutFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutFlow{
		state:     CheckoutEditing,
		form:      newCheckoutForm(),
		errors:    FieldErrors{},
		cart:      cart,
		toasts:    toasts,
		orders:    orders,
		validator: validator,
		shipping:  shipping,
		logger:    logger,
	}
}

func newCheckoutForm() CheckoutForm {
	return CheckoutForm{PaymentMethod: model.PaymentMethodCOD}
}

// SetField は1項目を更新し、その項目のエラーを消す。
func (f *CheckoutFlow) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case FieldFullName:
		f.form.FullName = value
	case FieldEmail:
		f.form.Email = value
	case FieldPhone:
		f.form.Phone = value
	case FieldAddress:
		f.form.Address = value
	case FieldCity:
		f.form.City = value
	case FieldState:
		f.form.State = value
	case FieldPincode:
		f.form.Pincode = value
	case FieldPaymentMethod:
		m := model.PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
		if !m.IsValid() {
			return NewHTTPError(http.StatusBadRequest, "invalid payment method")
		}
		f.form.PaymentMethod = m
	default:
		return NewHTTPError(http.StatusBadRequest, "unknown field")
	}

	delete(f.errors, name)
	if f.state == CheckoutSuccess {
		f.state = CheckoutEditing
	}
	return nil
}

func (f *CheckoutFlow) Summary() CheckoutSummary {
	subtotal := f.cart.CartTotal()
	shipping := f.shipping.Shipping(subtotal)
	return CheckoutSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

func (f *CheckoutFlow) View() CheckoutView {
	f.mu.Lock()
	state := f.state
	form := f.form
	errs := copyFieldErrors(f.errors)
	f.mu.Unlock()

	return CheckoutView{
		State:   state,
		Form:    form,
		Errors:  errs,
		Items:   f.cart.Items(),
		Summary: f.Summary(),
	}
}

func (f *CheckoutFlow) State() CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit は検証してから注文を1回だけ送信する。
// 送信中の再送信は 409。
func (f *CheckoutFlow) Submit(ctx context.Context) (CheckoutResult, error) {
	f.mu.Lock()
	if f.state == CheckoutSubmitting {
		f.mu.Unlock()
		return CheckoutResult{}, NewHTTPError(http.StatusConflict, "order already submitting")
	}

	//入力検証（NGなら送信しない）
	f.state = CheckoutValidating
	errs := f.validator.ValidateCheckout(f.form)
	if len(errs) > 0 {
		f.errors = errs
		f.state = CheckoutEditing
		f.mu.Unlock()
		return CheckoutResult{State: CheckoutEditing, Errors: copyFieldErrors(errs)}, nil
	}
	f.errors = FieldErrors{}

	//空カートは送信しない
	lines := f.cart.Items()
	if len(lines) == 0 {
		f.state = CheckoutEditing
		f.mu.Unlock()
		f.toasts.AddToast(msgCartEmpty, model.ToastError)
		return CheckoutResult{State: CheckoutEditing, Message: msgCartEmpty, Redirect: "/"}, nil
	}

	order := f.buildOrder(lines)
	f.state = CheckoutSubmitting
	f.mu.Unlock()

	result, err := f.orders.SubmitOrder(ctx, order)

	if err != nil {
		msg := msgOrderFallback
		var bm backendMessager
		if errors.As(err, &bm) && bm.BackendMessage() != "" {
			msg = bm.BackendMessage()
		}
		f.logger.Warn("order submit failed", zap.Error(err))
		f.toasts.AddToast("Error: "+msg, model.ToastError)
		f.setState(CheckoutEditing)
		return CheckoutResult{State: CheckoutFailed, Message: msg}, nil
	}

	if !result.Success {
		f.toasts.AddToast(msgOrderIssue, model.ToastError)
		f.setState(CheckoutEditing)
		return CheckoutResult{State: CheckoutFailed, Message: msgOrderIssue}, nil
	}

	msg := fmt.Sprintf("Order placed successfully! Order ID: %s", result.OrderID)
	f.toasts.AddToast(msg, model.ToastSuccess)
	f.cart.ClearCart(ctx)
	f.cart.SetOpen(false)

	f.mu.Lock()
	f.state = CheckoutSuccess
	f.form = newCheckoutForm()
	f.mu.Unlock()

	return CheckoutResult{
		State:    CheckoutSuccess,
		OrderID:  result.OrderID,
		Message:  msg,
		Redirect: "/",
	}, nil
}

// 送信時点のカートから注文を作る
func (f *CheckoutFlow) buildOrder(lines []model.CartLine) model.Order {
	items := make([]model.OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		items = append(items, model.OrderItem{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
		subtotal = subtotal.Add(l.LineTotal())
	}
	shipping := f.shipping.Shipping(subtotal)

	return model.Order{
		CustomerInfo:  f.form.CustomerInfo,
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      shipping,
		TotalAmount:   subtotal.Add(shipping),
		PaymentMethod: f.form.PaymentMethod,
	}
}

func (f *CheckoutFlow) setState(s CheckoutState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func copyFieldErrors(in FieldErrors) FieldErrors {
	out := make(FieldErrors, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
