package tests

import (
	"context"
	"errors"
	"testing"

	"bitebook/order-svc/internal/domain"
	"bitebook/order-svc/internal/mocks"
	"bitebook/order-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderDeps struct {
	repo      *mocks.OrderRepository
	wallet    *mocks.WalletLedger
	notifier  *mocks.Notifier
	publisher *mocks.EventPublisher
	qr        *mocks.QRGenerator
	svc       *service.OrderService
}

func newOrderDeps(t *testing.T) *orderDeps {
	d := &orderDeps{
		repo:      mocks.NewOrderRepository(t),
		wallet:    mocks.NewWalletLedger(t),
		notifier:  mocks.NewNotifier(t),
		publisher: mocks.NewEventPublisher(t),
		qr:        &mocks.QRGenerator{},
	}
	d.svc = service.NewOrderService(d.repo, d.wallet, d.notifier, d.publisher, d.qr, zap.NewNop())
	return d
}

// runTasksInline makes the notifier execute tasks on the calling goroutine.
func (d *orderDeps) runTasksInline() {
	d.notifier.On("Enqueue", mock.AnythingOfType("service.Task")).Run(func(args mock.Arguments) {
		task := args.Get(0).(service.Task)
		_ = task.Run(context.Background())
	}).Return(true)
}

func twoLineCart() *domain.Cart {
	cart := domain.NewCart("u1")
	cart.AddItem(ref(1, "120", 7))
	cart.AddItem(ref(1, "120", 7))
	cart.AddItem(ref(2, "60.50", 7))
	return cart
}

func submitRequest(orderType domain.OrderType, method domain.PaymentMethod) service.SubmitRequest {
	req := service.SubmitRequest{
		UserID:        "u1",
		Cart:          twoLineCart(),
		OrderType:     orderType,
		Customer:      domain.Customer{Name: "Asha", Phone: "9876543210", Email: "asha@example.com"},
		PaymentMethod: method,
		DeliveryFee:   decimal.NewFromInt(40),
	}
	if orderType == domain.OrderTypeDelivery {
		req.Address = &domain.Address{Text: "12 MG Road, Bengaluru"}
	}
	return req
}

func TestOrderService_SubmitWalletDelivery(t *testing.T) {
	d := newOrderDeps(t)
	total := decimal.RequireFromString("340.50")

	d.wallet.On("Debit", mock.Anything, "u1", mock.MatchedBy(total.Equal)).Return(nil).Once()
	d.repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	d.runTasksInline()
	d.publisher.On("PublishNotification", mock.Anything, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Type == domain.NotificationSMS && e.To == "9876543210"
	})).Return(nil).Once()
	d.publisher.On("PublishNotification", mock.Anything, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Type == domain.NotificationEmail && e.To == "asha@example.com" && e.Subject != ""
	})).Return(nil).Once()

	order, err := d.svc.Submit(context.Background(), submitRequest(domain.OrderTypeDelivery, domain.PaymentWallet))

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.True(t, decimal.RequireFromString("300.50").Equal(order.Subtotal))
	assert.True(t, decimal.NewFromInt(40).Equal(order.DeliveryFee))
	assert.True(t, total.Equal(order.Total))
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	require.NotNil(t, order.Address)
	assert.Empty(t, order.QRCode)
}

func TestOrderService_SubmitInsufficientFunds(t *testing.T) {
	d := newOrderDeps(t)

	d.wallet.On("Debit", mock.Anything, "u1", mock.Anything).Return(domain.ErrInsufficientFunds).Once()

	order, err := d.svc.Submit(context.Background(), submitRequest(domain.OrderTypeDelivery, domain.PaymentWallet))

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	d.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	d.notifier.AssertNotCalled(t, "Enqueue", mock.Anything)
}

func TestOrderService_PersistenceFailureRefundsWallet(t *testing.T) {
	d := newOrderDeps(t)
	total := decimal.RequireFromString("340.50")
	dbErr := errors.New("connection reset")

	d.wallet.On("Debit", mock.Anything, "u1", mock.MatchedBy(total.Equal)).Return(nil).Once()
	d.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(dbErr).Once()
	d.wallet.On("Credit", mock.Anything, "u1", mock.MatchedBy(total.Equal)).Return(nil).Once()

	order, err := d.svc.Submit(context.Background(), submitRequest(domain.OrderTypeDelivery, domain.PaymentWallet))

	assert.Nil(t, order)
	assert.ErrorIs(t, err, dbErr)
	d.notifier.AssertNotCalled(t, "Enqueue", mock.Anything)
}

func TestOrderService_PersistenceFailureWithoutWalletSkipsRefund(t *testing.T) {
	d := newOrderDeps(t)

	d.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := d.svc.Submit(context.Background(), submitRequest(domain.OrderTypeDelivery, domain.PaymentUPI))

	assert.ErrorIs(t, err, assert.AnError)
	d.wallet.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_InitialStatusByPaymentMethod(t *testing.T) {
	tests := []struct {
		method domain.PaymentMethod
		want   domain.OrderStatus
	}{
		{method: domain.PaymentCashOnDelivery, want: domain.OrderStatusPending},
		{method: domain.PaymentCard, want: domain.OrderStatusConfirmed},
		{method: domain.PaymentNetBanking, want: domain.OrderStatusConfirmed},
		{method: domain.PaymentUPI, want: domain.OrderStatusConfirmed},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.method), func(t *testing.T) {
			d := newOrderDeps(t)
			d.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
			d.notifier.On("Enqueue", mock.Anything).Return(true)

			order, err := d.svc.Submit(context.Background(), submitRequest(domain.OrderTypeDelivery, testCase.method))

			require.NoError(t, err)
			assert.Equal(t, testCase.want, order.Status)
			d.wallet.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_PickupGetsQRCodeAndNoFee(t *testing.T) {
	d := newOrderDeps(t)
	png := []byte{0x89, 'P', 'N', 'G'}

	d.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
	d.qr.On("Generate", mock.AnythingOfType("string")).Return(png, nil).Once()
	d.repo.On("SaveQRCode", mock.Anything, mock.AnythingOfType("string"), png).Return(nil).Once()
	d.notifier.On("Enqueue", mock.Anything).Return(true)

	order, err := d.svc.Submit(context.Background(), submitRequest(domain.OrderTypePickup, domain.PaymentUPI))

	require.NoError(t, err)
	assert.True(t, order.DeliveryFee.IsZero())
	assert.True(t, order.Total.Equal(order.Subtotal))
	assert.Nil(t, order.Address)
	assert.Equal(t, "/api/orders/"+order.ID+"/qrcode", order.QRCode)
}

func TestOrderService_QRCodeFailureDoesNotFailOrder(t *testing.T) {
	d := newOrderDeps(t)

	d.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
	d.qr.On("Generate", mock.Anything).Return(nil, assert.AnError).Once()
	d.notifier.On("Enqueue", mock.Anything).Return(false)

	order, err := d.svc.Submit(context.Background(), submitRequest(domain.OrderTypePickup, domain.PaymentUPI))

	require.NoError(t, err)
	assert.Empty(t, order.QRCode)
}

func TestOrderService_SmsOnlyWithoutEmail(t *testing.T) {
	d := newOrderDeps(t)
	req := submitRequest(domain.OrderTypeDelivery, domain.PaymentUPI)
	req.Customer.Email = ""

	d.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
	d.notifier.On("Enqueue", mock.Anything).Return(true).Once()

	_, err := d.svc.Submit(context.Background(), req)

	require.NoError(t, err)
}

func TestOrderService_SubmitEmptyCart(t *testing.T) {
	d := newOrderDeps(t)
	req := submitRequest(domain.OrderTypeDelivery, domain.PaymentWallet)
	req.Cart = domain.NewCart("u1")

	_, err := d.svc.Submit(context.Background(), req)

	assert.Error(t, err)
}

func TestOrderService_GetQRCodeRegenerates(t *testing.T) {
	d := newOrderDeps(t)
	png := []byte("png")

	d.repo.On("GetQRCode", mock.Anything, "u1", "o1").Return([]byte(nil), nil).Once()
	d.qr.On("Generate", "o1").Return(png, nil).Once()
	d.repo.On("SaveQRCode", mock.Anything, "o1", png).Return(nil).Once()

	qr, err := d.svc.GetQRCode(context.Background(), "u1", "o1")

	require.NoError(t, err)
	assert.Equal(t, png, qr)
}

func TestOrderService_GetQRCodeNotFound(t *testing.T) {
	d := newOrderDeps(t)
	d.repo.On("GetQRCode", mock.Anything, "u1", "missing").Return(nil, domain.ErrNotFound).Once()

	_, err := d.svc.GetQRCode(context.Background(), "u1", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
