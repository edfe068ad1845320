package tests

import (
	"context"
	"testing"
	"time"

	"bitebook/order-svc/internal/domain"
	"bitebook/order-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMock(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mock
}

func TestPostgres_GetRestaurantNotFound(t *testing.T) {
	repo, mock := newSQLMock(t)

	mock.ExpectQuery("FROM restaurants").WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "description", "image_url", "created_at"}))

	_, err := repo.GetRestaurant(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListDishes(t *testing.T) {
	repo, mock := newSQLMock(t)
	now := time.Now()

	mock.ExpectQuery("FROM dishes").WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price", "image_url", "available", "created_at"}).
			AddRow(1, 3, "Idli", "Steamed", "45.00", "", true, now).
			AddRow(2, 3, "Vada", "", "30.50", "/img/vada.png", false, now))

	dishes, err := repo.ListDishes(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.True(t, decimal.RequireFromString("30.50").Equal(dishes[1].Price))
	assert.False(t, dishes[1].Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateOrderWritesItemsInTransaction(t *testing.T) {
	repo, mock := newSQLMock(t)
	order := &domain.Order{
		ID:            "6f1c2b8e-0000-4000-8000-000000000001",
		UserID:        "u1",
		RestaurantID:  7,
		Items:         []domain.OrderItem{{ItemID: 1, Name: "Idli", Quantity: 2, UnitPrice: decimal.NewFromInt(45)}, {ItemID: 2, Name: "Vada", Quantity: 1, UnitPrice: decimal.NewFromInt(30)}},
		OrderType:     domain.OrderTypePickup,
		Customer:      domain.Customer{Name: "Asha", Phone: "9876543210"},
		PaymentMethod: domain.PaymentUPI,
		Status:        domain.OrderStatusConfirmed,
		CreatedAt:     time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(order.ID, 1, "Idli", 2, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(order.ID, 2, "Vada", 1, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateOrderRollsBackOnItemFailure(t *testing.T) {
	repo, mock := newSQLMock(t)
	order := &domain.Order{
		ID:    "6f1c2b8e-0000-4000-8000-000000000002",
		Items: []domain.OrderItem{{ItemID: 1, Name: "Idli", Quantity: 1, UnitPrice: decimal.NewFromInt(45)}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), order)

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var orderRowColumns = []string{"id", "user_id", "restaurant_id", "restaurant_name", "order_type", "subtotal",
	"delivery_fee", "total", "customer", "payment_method", "address", "status", "created_at"}

func TestPostgres_GetOrder(t *testing.T) {
	repo, mock := newSQLMock(t)

	mock.ExpectQuery("FROM orders WHERE id").WithArgs("o1", "u1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).AddRow(
			"o1", "u1", 7, "Spice Route", "delivery", "90.00", "40.00", "130.00",
			[]byte(`{"name":"Asha","phone":"9876543210"}`), "wallet",
			[]byte(`{"text":"12 MG Road, Bengaluru"}`), "confirmed", time.Now()))
	mock.ExpectQuery("FROM order_items").WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "name", "quantity", "unit_price"}).
			AddRow(1, "Idli", 2, "45.00"))

	order, err := repo.GetOrder(context.Background(), "u1", "o1")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderTypeDelivery, order.OrderType)
	assert.Equal(t, "Asha", order.Customer.Name)
	require.NotNil(t, order.Address)
	assert.Equal(t, "12 MG Road, Bengaluru", order.Address.String())
	require.Len(t, order.Items, 1)
	assert.True(t, decimal.RequireFromString("130").Equal(order.Total))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetOrderOfAnotherUser(t *testing.T) {
	repo, mock := newSQLMock(t)

	mock.ExpectQuery("FROM orders WHERE id").WithArgs("o1", "intruder").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	_, err := repo.GetOrder(context.Background(), "intruder", "o1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_WalletBalanceWithoutRow(t *testing.T) {
	repo, mock := newSQLMock(t)

	mock.ExpectQuery("SELECT balance FROM wallets").WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))

	balance, err := repo.Balance(context.Background(), "u1")

	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestPostgres_Debit(t *testing.T) {
	tests := []struct {
		name    string
		balance []string
		wantErr error
	}{
		{name: "covers amount", balance: []string{"500.00"}},
		{name: "exact balance", balance: []string{"130.00"}},
		{name: "insufficient", balance: []string{"129.99"}, wantErr: domain.ErrInsufficientFunds},
		{name: "no wallet", balance: nil, wantErr: domain.ErrInsufficientFunds},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newSQLMock(t)

			rows := sqlmock.NewRows([]string{"balance"})
			for _, b := range testCase.balance {
				rows.AddRow(b)
			}
			mock.ExpectBegin()
			mock.ExpectQuery("SELECT balance FROM wallets").WithArgs("u1").WillReturnRows(rows)
			if testCase.wantErr == nil {
				mock.ExpectExec("UPDATE wallets SET balance").WithArgs(sqlmock.AnyArg(), "u1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO wallet_transactions").WithArgs("u1", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			err := repo.Debit(context.Background(), "u1", decimal.RequireFromString("130"))

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgres_CreditUpserts(t *testing.T) {
	repo, mock := newSQLMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wallets").WithArgs("u1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO wallet_transactions").WithArgs("u1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Credit(context.Background(), "u1", decimal.NewFromInt(130)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_EnsureSchema(t *testing.T) {
	repo, mock := newSQLMock(t)

	for _, table := range []string{"restaurants", "dishes", "orders", "orders_user_id_idx", "order_items", "wallets", "wallet_transactions"} {
		mock.ExpectExec("IF NOT EXISTS " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_EnsureSchemaError(t *testing.T) {
	repo, mock := newSQLMock(t)

	mock.ExpectExec("IF NOT EXISTS restaurants").WillReturnError(assert.AnError)

	err := repo.EnsureSchema(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}

func newRedisStore(t *testing.T) (*storage.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisStore(client, 2*time.Hour, 30*time.Minute), mr
}

func TestRedisStore_LoadMissingCartIsEmpty(t *testing.T) {
	store, _ := newRedisStore(t)

	cart, err := store.LoadCart(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.True(t, cart.IsEmpty())
}

func TestRedisStore_SaveCartWithTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	cart := domain.NewCart("u1")
	cart.AddItem(ref(1, "45.50", 7))
	cart.SetQuantity(1, 3)
	require.NoError(t, store.SaveCart(ctx, cart))

	assert.Equal(t, 2*time.Hour, mr.TTL("cart:u1"))

	loaded, err := store.LoadCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.QuantityOf(1))
	assert.True(t, decimal.RequireFromString("136.50").Equal(loaded.Total()))
}

func TestRedisStore_CorruptCart(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("cart:u1", "{not json"))

	_, err := store.LoadCart(context.Background(), "u1")

	assert.Error(t, err)
}

func TestRedisStore_Sessions(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := store.LoadSession(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	session := &domain.CheckoutSession{ID: "s1", UserID: "u1", State: domain.StatePayment, OrderType: domain.OrderTypePickup}
	require.NoError(t, store.SaveSession(ctx, session))
	assert.Equal(t, 30*time.Minute, mr.TTL("checkout:u1"))

	loaded, err := store.LoadSession(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatePayment, loaded.State)
	assert.Equal(t, domain.OrderTypePickup, loaded.OrderType)
}
