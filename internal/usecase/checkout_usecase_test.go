package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// バックエンドのエラー（message付き）
type backendErr struct{ msg string }

func (e *backendErr) Error() string          { return "backend: " + e.msg }
func (e *backendErr) BackendMessage() string { return e.msg }

type checkoutFixture struct {
	flow   *usecase.CheckoutFlow
	cart   *usecase.CartStore
	toasts *usecase.ToastQueue
	orders *OrderGatewayMock
}

func newCheckout(t *testing.T) checkoutFixture {
	t.Helper()
	cart := newCart(newMapKV())
	toasts, _ := newToastQueue()
	orders := new(OrderGatewayMock)
	flow := usecase.NewCheckoutFlow(cart, toasts, orders, validator.NewCheckoutValidator(), usecase.DefaultShippingPolicy(), nil)
	return checkoutFixture{flow: flow, cart: cart, toasts: toasts, orders: orders}
}

func fillForm(t *testing.T, f *usecase.CheckoutFlow) {
	t.Helper()
	fields := map[string]string{
		usecase.FieldFullName: "Asha Verma",
		usecase.FieldEmail:    "asha@example.com",
		usecase.FieldPhone:    "9876543210",
		usecase.FieldAddress:  "12 Mall Road",
		usecase.FieldCity:     "Shimla",
		usecase.FieldState:    "Himachal Pradesh",
		usecase.FieldPincode:  "171001",
	}
	for k, v := range fields {
		require.NoError(t, f.SetField(k, v))
	}
}

func lastToast(t *testing.T, q *usecase.ToastQueue) model.Toast {
	t.Helper()
	ts := q.Toasts()
	require.NotEmpty(t, ts)
	return ts[len(ts)-1]
}

func TestCheckout_ValidationBlocksSubmit(t *testing.T) {
	fx := newCheckout(t)
	fx.cart.AddToCart(context.Background(), product("1", 2499))
	require.NoError(t, fx.flow.SetField(usecase.FieldPhone, "12345"))

	res, err := fx.flow.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, usecase.CheckoutEditing, res.State)
	assert.Equal(t, "Phone number must be 10 digits", res.Errors[usecase.FieldPhone])
	assert.Equal(t, "Full name is required", res.Errors[usecase.FieldFullName])
	fx.orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)

	// 入力するとその項目のエラーは消える
	require.NoError(t, fx.flow.SetField(usecase.FieldPhone, "9876543210"))
	view := fx.flow.View()
	assert.NotContains(t, view.Errors, usecase.FieldPhone)
	assert.Contains(t, view.Errors, usecase.FieldFullName)
}

func TestCheckout_EmptyCartNoNetworkCall(t *testing.T) {
	fx := newCheckout(t)
	fillForm(t, fx.flow)

	res, err := fx.flow.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/", res.Redirect)
	assert.Equal(t, usecase.CheckoutEditing, fx.flow.State())
	toast := lastToast(t, fx.toasts)
	assert.Equal(t, "Your cart is empty!", toast.Message)
	assert.Equal(t, model.ToastError, toast.Kind)
	fx.orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	fx := newCheckout(t)
	fx.cart.AddToCart(ctx, product("1", 2499))
	fx.cart.AddToCart(ctx, product("1", 2499))
	fx.cart.AddToCart(ctx, product("4", 699))
	fx.cart.SetOpen(true)
	fillForm(t, fx.flow)
	require.NoError(t, fx.flow.SetField(usecase.FieldPaymentMethod, "online"))

	var sent model.Order
	fx.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(model.Order) }).
		Return(model.OrderResult{Success: true, OrderID: "ORDER123"}, nil).Once()

	res, err := fx.flow.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, usecase.CheckoutSuccess, res.State)
	assert.Equal(t, "ORDER123", res.OrderID)
	assert.Equal(t, "/", res.Redirect)

	// 注文の中身
	require.Len(t, sent.Items, 2)
	assert.True(t, decimal.NewFromInt(5697).Equal(sent.Subtotal))
	assert.True(t, decimal.Zero.Equal(sent.Shipping))
	assert.True(t, decimal.NewFromInt(5697).Equal(sent.TotalAmount))
	assert.Equal(t, model.PaymentMethodOnline, sent.PaymentMethod)
	assert.Equal(t, "Shimla", sent.CustomerInfo.City)

	// カートは空、パネルは閉じる
	assert.Empty(t, fx.cart.Items())
	assert.False(t, fx.cart.IsOpen())
	toast := lastToast(t, fx.toasts)
	assert.Equal(t, "Order placed successfully! Order ID: ORDER123", toast.Message)
	assert.Equal(t, model.ToastSuccess, toast.Kind)
	fx.orders.AssertExpectations(t)
}

func TestCheckout_BackendRejects(t *testing.T) {
	ctx := context.Background()
	fx := newCheckout(t)
	fx.cart.AddToCart(ctx, product("2", 899))
	fillForm(t, fx.flow)

	fx.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(model.OrderResult{Success: false}, nil).Once()

	res, err := fx.flow.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, usecase.CheckoutFailed, res.State)
	assert.Equal(t, usecase.CheckoutEditing, fx.flow.State())
	assert.Len(t, fx.cart.Items(), 1)
	assert.Equal(t, "There was an issue placing your order. Please try again.", lastToast(t, fx.toasts).Message)
}

func TestCheckout_BackendErrorKeepsForm(t *testing.T) {
	ctx := context.Background()
	fx := newCheckout(t)
	fx.cart.AddToCart(ctx, product("2", 899))
	fillForm(t, fx.flow)

	fx.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(model.OrderResult{}, &backendErr{msg: "Out of stock"}).Once()

	res, err := fx.flow.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, usecase.CheckoutFailed, res.State)
	assert.Equal(t, "Error: Out of stock", lastToast(t, fx.toasts).Message)

	view := fx.flow.View()
	assert.Equal(t, usecase.CheckoutEditing, view.State)
	assert.Equal(t, "Asha Verma", view.Form.FullName)
	assert.Len(t, view.Items, 1)
	fx.orders.AssertNumberOfCalls(t, "SubmitOrder", 1)
}

func TestCheckout_NetworkErrorFallbackMessage(t *testing.T) {
	ctx := context.Background()
	fx := newCheckout(t)
	fx.cart.AddToCart(ctx, product("2", 899))
	fillForm(t, fx.flow)

	fx.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(model.OrderResult{}, errors.New("dial tcp: refused")).Once()

	_, err := fx.flow.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Error: Failed to place order. Please try again.", lastToast(t, fx.toasts).Message)
}

func TestCheckout_ConcurrentSubmitRejected(t *testing.T) {
	ctx := context.Background()
	fx := newCheckout(t)
	fx.cart.AddToCart(ctx, product("2", 899))
	fillForm(t, fx.flow)

	entered := make(chan struct{})
	release := make(chan struct{})
	fx.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(model.OrderResult{Success: true, OrderID: "A1"}, nil).Once()

	done := make(chan usecase.CheckoutResult)
	go func() {
		res, _ := fx.flow.Submit(ctx)
		done <- res
	}()

	<-entered
	assert.Equal(t, usecase.CheckoutSubmitting, fx.flow.State())
	_, err := fx.flow.Submit(ctx)
	assertHTTPError(t, err, http.StatusConflict, "")

	close(release)
	res := <-done
	assert.Equal(t, usecase.CheckoutSuccess, res.State)
	fx.orders.AssertNumberOfCalls(t, "SubmitOrder", 1)
}

func TestCheckout_Summary(t *testing.T) {
	ctx := context.Background()
	fx := newCheckout(t)

	fx.cart.AddToCart(ctx, product("2", 899))
	s := fx.flow.Summary()
	assert.True(t, decimal.NewFromInt(100).Equal(s.Shipping))
	assert.True(t, decimal.NewFromInt(999).Equal(s.Total))

	// 2000ちょうどはまだ送料あり
	fx.cart.UpdateQuantity(ctx, "2", 0)
	fx.cart.AddToCart(ctx, product("x", 2000))
	assert.True(t, decimal.NewFromInt(100).Equal(fx.flow.Summary().Shipping))

	fx.cart.AddToCart(ctx, product("y", 1))
	assert.True(t, decimal.Zero.Equal(fx.flow.Summary().Shipping))
}

func TestCheckout_SetFieldErrors(t *testing.T) {
	fx := newCheckout(t)

	assertHTTPError(t, fx.flow.SetField("nickname", "x"), http.StatusBadRequest, "unknown field")
	assertHTTPError(t, fx.flow.SetField(usecase.FieldPaymentMethod, "cash"), http.StatusBadRequest, "invalid payment method")
	assert.Equal(t, model.PaymentMethodCOD, fx.flow.View().Form.PaymentMethod)
}
