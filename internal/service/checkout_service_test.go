package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bakery-kart/internal/model"
	"bakery-kart/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	cartRepo    *MockCartRepository
	orderRepo   *MockOrderRepository
	profileRepo *MockProfileRepository
	svc         CheckoutService
}

func newCheckoutFixture(t *testing.T, now time.Time, cfg pricing.Config) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		cartRepo:    new(MockCartRepository),
		orderRepo:   new(MockOrderRepository),
		profileRepo: new(MockProfileRepository),
	}
	profiles := newTestProfileService(f.profileRepo, time.UTC, now)
	svc := NewCheckoutService(f.cartRepo, f.orderRepo, profiles, pricing.NewEngine(cfg), zerolog.Nop()).(*checkoutService)
	svc.now = func() time.Time { return now }
	f.svc = svc
	return f
}

func cakeCart() []model.CartItem {
	return []model.CartItem{
		{ProductID: "P002", ProductName: "Birthday Cake", Price: dec("300"), Quantity: 1},
		{ProductID: "P006", ProductName: "Cookie Box", Price: dec("100"), Quantity: 1},
	}
}

func validOrderRequest() *model.PlaceOrderRequest {
	return &model.PlaceOrderRequest{
		Name:       "Somchai",
		Phone:      "0812345678",
		Address:    "99 Sukhumvit Rd",
		SlipURL:    "https://slips.example.com/1.jpg",
		DistanceKm: dec("10"),
	}
}

func TestCheckoutService_Quote(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)

	t.Run("Birthday coupon in birthday month", func(t *testing.T) {
		f := newCheckoutFixture(t, now, pricing.DefaultConfig())
		f.cartRepo.On("List", ctx, "user-1").Return(cakeCart(), nil)
		f.profileRepo.On("Get", ctx, "user-1").Return(birthdayProfile("user-1", time.April), nil)

		resp, err := f.svc.Quote(ctx, "user-1", &model.QuoteRequest{CouponCode: "hbd10", DistanceKm: dec("2")})

		require.NoError(t, err)
		assert.Equal(t, pricing.CodeBirthday, resp.AppliedCode)
		assert.True(t, dec("400").Equal(resp.Subtotal))
		assert.True(t, dec("40").Equal(resp.Discount))
		assert.True(t, dec("40").Equal(resp.Shipping))
		assert.True(t, dec("400").Equal(resp.FinalPrice))
		assert.Empty(t, resp.Message)
		assert.Len(t, resp.Items, 2)
	})

	t.Run("Birthday coupon outside birthday month", func(t *testing.T) {
		f := newCheckoutFixture(t, now, pricing.DefaultConfig())
		f.cartRepo.On("List", ctx, "user-1").Return(cakeCart(), nil)
		f.profileRepo.On("Get", ctx, "user-1").Return(birthdayProfile("user-1", time.May), nil)

		resp, err := f.svc.Quote(ctx, "user-1", &model.QuoteRequest{CouponCode: "HBD10"})

		require.NoError(t, err)
		assert.Empty(t, resp.AppliedCode)
		require.NotNil(t, resp.Rejection)
		assert.Equal(t, "not birthday month", resp.Message)
	})

	t.Run("Applied code revoked after cart shrinks", func(t *testing.T) {
		f := newCheckoutFixture(t, now, pricing.DefaultConfig())
		f.cartRepo.On("List", ctx, "user-1").Return(cakeCart(), nil)
		f.profileRepo.On("Get", ctx, "user-1").Return(nil, nil)

		resp, err := f.svc.Quote(ctx, "user-1", &model.QuoteRequest{AppliedCode: "FREEDEL", DistanceKm: dec("10")})

		require.NoError(t, err)
		require.NotNil(t, resp.Revocation)
		assert.Equal(t, pricing.CodeFreeDelivery, resp.AppliedCode)
		assert.True(t, dec("80").Equal(resp.Shipping))
		assert.True(t, dec("480").Equal(resp.FinalPrice))
		assert.Contains(t, resp.Message, "no longer applies")
		assert.Contains(t, resp.Message, "short by 100.00")
	})

	t.Run("Cart error", func(t *testing.T) {
		f := newCheckoutFixture(t, now, pricing.DefaultConfig())
		f.cartRepo.On("List", ctx, "user-1").Return(nil, errors.New("db down"))

		_, err := f.svc.Quote(ctx, "user-1", &model.QuoteRequest{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load cart")
	})
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)
	f := newCheckoutFixture(t, now, pricing.DefaultConfig())

	items := []model.CartItem{
		{ID: uuid.New(), ProductID: "P001", ProductName: "Vanilla Cupcake", Price: dec("40"), Quantity: 8},
		{ID: uuid.New(), ProductID: "P002", ProductName: "Chocolate Cake", Price: dec("250"), Quantity: 1},
	}
	mockTx := new(MockTx)
	f.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	f.cartRepo.On("ListTx", ctx, mockTx, "user-1").Return(items, nil)
	f.profileRepo.On("Get", ctx, "user-1").Return(nil, nil)
	f.orderRepo.On("CreateOrder", ctx, mockTx, mock.MatchedBy(func(o *model.Order) bool {
		// 8 cupcakes bundle to 6 paid: 240 + 250 = 490; shipping 30 + 5*10.
		return o.UserID == "user-1" &&
			o.Status == model.OrderStatusPending &&
			o.Subtotal.Equal(dec("490")) &&
			o.DiscountAmount.IsZero() &&
			o.ShippingCost.Equal(dec("80")) &&
			o.TotalPrice.Equal(dec("570")) &&
			o.PromotionCode != nil && *o.PromotionCode == pricing.CodeCupcakeBundle &&
			o.CreatedAt.Equal(now)
	})).Return(nil)
	f.orderRepo.On("CreateOrderItems", ctx, mockTx, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].ProductName == "Vanilla Cupcake" && items[0].Quantity == 8
	})).Return(nil)
	f.cartRepo.On("DeleteTx", ctx, mockTx, "user-1", []uuid.UUID{items[0].ID, items[1].ID}).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	req := validOrderRequest()
	req.CouponCode = "cupcake3get1"
	resp, err := f.svc.PlaceOrder(ctx, "user-1", req)

	require.NoError(t, err)
	assert.True(t, dec("570").Equal(resp.TotalPrice))
	assert.Len(t, resp.Items, 2)
	f.orderRepo.AssertExpectations(t)
	f.cartRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
	mockTx.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCheckoutService_PlaceOrder_Rejected(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mutate     func(req *model.PlaceOrderRequest)
		cart       []model.CartItem
		loadsCart  bool
		expectCode string
		contains   string
	}{
		{
			name:       "Missing name",
			mutate:     func(r *model.PlaceOrderRequest) { r.Name = " " },
			expectCode: model.ErrCodeMissingField,
			contains:   "name is required",
		},
		{
			name:       "Missing slip",
			mutate:     func(r *model.PlaceOrderRequest) { r.SlipURL = "" },
			expectCode: model.ErrCodeMissingField,
			contains:   "slipUrl is required",
		},
		{
			name:       "Zero distance",
			mutate:     func(r *model.PlaceOrderRequest) { r.DistanceKm = dec("0") },
			expectCode: model.ErrCodeInvalidDistance,
		},
		{
			name:       "Empty cart",
			mutate:     func(*model.PlaceOrderRequest) {},
			cart:       []model.CartItem{},
			loadsCart:  true,
			expectCode: model.ErrCodeCartEmpty,
		},
		{
			name:       "Coupon below minimum",
			mutate:     func(r *model.PlaceOrderRequest) { r.CouponCode = "FREEDEL" },
			cart:       cakeCart(),
			loadsCart:  true,
			expectCode: model.ErrCodeCouponRejected,
			contains:   "short by 100.00",
		},
		{
			name:       "Unknown coupon",
			mutate:     func(r *model.PlaceOrderRequest) { r.CouponCode = "FOO123" },
			cart:       cakeCart(),
			loadsCart:  true,
			expectCode: model.ErrCodeCouponRejected,
			contains:   "code not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t, now, pricing.DefaultConfig())
			mockTx := new(MockTx)
			if tt.loadsCart {
				f.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
				f.cartRepo.On("ListTx", ctx, mockTx, "user-1").Return(tt.cart, nil)
				f.profileRepo.On("Get", ctx, "user-1").Return(nil, nil)
				mockTx.On("Rollback", ctx).Return(nil)
			}

			req := validOrderRequest()
			tt.mutate(req)
			resp, err := f.svc.PlaceOrder(ctx, "user-1", req)

			assert.Nil(t, resp)
			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.expectCode, domainErr.Code)
			if tt.contains != "" {
				assert.Contains(t, domainErr.Message, tt.contains)
			}
			f.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
			f.cartRepo.AssertNotCalled(t, "DeleteTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockTx.AssertNotCalled(t, "Commit", mock.Anything)
			if tt.loadsCart {
				mockTx.AssertCalled(t, "Rollback", ctx)
			} else {
				f.orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
			}
		})
	}
}

func TestCheckoutService_PlaceOrder_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)
	f := newCheckoutFixture(t, now, pricing.DefaultConfig())

	mockTx := new(MockTx)
	f.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	f.cartRepo.On("ListTx", ctx, mockTx, "user-1").Return(cakeCart(), nil)
	f.profileRepo.On("Get", ctx, "user-1").Return(nil, nil)
	f.orderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Return(nil)
	f.orderRepo.On("CreateOrderItems", ctx, mockTx, mock.Anything).Return(nil)
	f.cartRepo.On("DeleteTx", ctx, mockTx, "user-1", mock.Anything).Return(errors.New("lock timeout"))
	mockTx.On("Rollback", ctx).Return(nil)

	resp, err := f.svc.PlaceOrder(ctx, "user-1", validOrderRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "lock timeout")
	mockTx.AssertCalled(t, "Rollback", ctx)
	mockTx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCheckoutService_PlaceOrder_UsesConfiguredFees(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)

	cfg := pricing.DefaultConfig()
	cfg.BaseShippingFee = dec("20")
	f := newCheckoutFixture(t, now, cfg)

	mockTx := new(MockTx)
	var stored *model.Order
	f.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	f.cartRepo.On("ListTx", ctx, mockTx, "user-1").Return(cakeCart(), nil)
	f.profileRepo.On("Get", ctx, "user-1").Return(nil, nil)
	f.orderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(2).(*model.Order)
	}).Return(nil)
	f.orderRepo.On("CreateOrderItems", ctx, mockTx, mock.Anything).Return(nil)
	f.cartRepo.On("DeleteTx", ctx, mockTx, "user-1", mock.Anything).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	req := validOrderRequest()
	req.CouponCode = "WELCOME50"
	_, err := f.svc.PlaceOrder(ctx, "user-1", req)

	require.NoError(t, err)
	require.NotNil(t, stored)
	// 400 - 50 + (20 + 5*10)
	assert.True(t, dec("420").Equal(stored.TotalPrice), stored.TotalPrice.String())
	assert.Equal(t, "WELCOME50", *stored.PromotionCode)
}

func TestCheckoutService_PlaceOrder_CartLoadFailsRollsBack(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)
	f := newCheckoutFixture(t, now, pricing.DefaultConfig())

	mockTx := new(MockTx)
	f.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	f.cartRepo.On("ListTx", ctx, mockTx, "user-1").Return(nil, errors.New("deadlock detected"))
	mockTx.On("Rollback", ctx).Return(nil)

	resp, err := f.svc.PlaceOrder(ctx, "user-1", validOrderRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to load cart")
	mockTx.AssertCalled(t, "Rollback", ctx)
	f.cartRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
