package svadmin

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kcstudio/storefront/common/entity"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/modules/mdadmin"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/domains/repo/rpadmin"
	"kcstudio/storefront/internal/app/domains/repo/rporder"
	"kcstudio/storefront/internal/app/domains/repo/rptx"
	"kcstudio/storefront/internal/app/infra/persistence/dbtest"
	"kcstudio/storefront/internal/app/pkg/authx"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/idgen"
	"kcstudio/storefront/internal/app/pkg/logger"
)

func newService(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	log := logger.NewNop()
	orderRepo := rporder.NewOrderRepository(db)
	svc := NewAdminService(
		mdadmin.NewAdminModule(rpadmin.NewAdminRepository(db), authx.NewTokenIssuer("test-secret", time.Hour)),
		mdorder.NewOrderModule(rptx.NewGormTransactor(db), orderRepo, idgen.NewOrderNumberGenerator()),
		mdnotify.NewNotifyModule(mdnotify.NewMemoryBus(), nil, "", log),
		log,
	)
	return svc, db
}

func seedOrder(t *testing.T, db *gorm.DB, number string, status etorder.OrderStatus) int64 {
	t.Helper()
	repo := rporder.NewOrderRepository(db)
	ctx := context.Background()
	customer := &etorder.Customer{Whatsapp: "503" + number, Name: "Ana"}
	_, err := repo.UpsertCustomer(ctx, customer)
	require.NoError(t, err)
	order := &etorder.Order{
		OrderNumber:   number,
		Customer:      customer,
		TotalAmount:   5,
		PaymentStatus: etorder.PaymentStatusPending,
		OrderStatus:   status,
	}
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, repo.CreateItem(ctx, order.ID, &etorder.Item{Shape: "round", Quantity: 2, UnitPrice: 2.5, Subtotal: 5}))
	return order.ID
}

func lastLogin(t *testing.T, db *gorm.DB, username string) *time.Time {
	t.Helper()
	var a entity.Admin
	require.NoError(t, db.Where("username = ?", username).First(&a).Error)
	return a.LastLogin
}

func TestLoginWrongPasswordLeavesLastLogin(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, "admin", "s3cret", "admin@example.com", "Admin")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "admin", "wrong")
	require.ErrorIs(t, err, errorx.ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, errorx.StatusCode(err))
	assert.Nil(t, lastLogin(t, db, "admin"))

	_, err = svc.Login(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, errorx.ErrInvalidCredentials)
}

func TestLoginIssuesToken(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, "admin", "s3cret", "admin@example.com", "Admin")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotNil(t, lastLogin(t, db, "admin"))

	claims, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, res.Admin.ID, claims.AdminID)

	_, err = svc.Authenticate("garbage")
	assert.Equal(t, http.StatusUnauthorized, errorx.StatusCode(err))
}

func TestLoginRequiresBothFields(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Login(context.Background(), "", "x")
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))
	_, err = svc.Login(context.Background(), "admin", "")
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))
}

func TestInactiveAdminCannotLogin(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	_, err := svc.CreateAdmin(ctx, "old", "s3cret", "", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&entity.Admin{}).Where("username = ?", "old").Update("is_active", false).Error)

	_, err = svc.Login(ctx, "old", "s3cret")
	assert.ErrorIs(t, err, errorx.ErrInvalidCredentials)
}

func TestListOrders(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	seedOrder(t, db, "ORD-1-A", etorder.OrderStatusPending)
	seedOrder(t, db, "ORD-2-B", etorder.OrderStatusDelivered)
	seedOrder(t, db, "ORD-3-C", etorder.OrderStatusPending)

	rows, page, err := svc.ListOrders(ctx, "all", 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)

	rows, page, err = svc.ListOrders(ctx, "pending", 1, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages())
	assert.Equal(t, int64(1), rows[0].ItemsCount)

	_, _, err = svc.ListOrders(ctx, "shipped", 1, 20)
	assert.ErrorIs(t, err, errorx.ErrInvalidStatus)

	exported, err := svc.ExportOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, exported, 3)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	id := seedOrder(t, db, "ORD-1-A", etorder.OrderStatusPending)

	notes := "listo para entregar"
	order, err := svc.UpdateOrderStatus(ctx, id, "ready", &notes)
	require.NoError(t, err)
	assert.Equal(t, etorder.OrderStatusReady, order.OrderStatus)
	assert.Equal(t, notes, order.Notes)

	// 不校验流转，可回到任意状态；notes 为空时清空
	order, err = svc.UpdateOrderStatus(ctx, id, "pending", nil)
	require.NoError(t, err)
	assert.Equal(t, etorder.OrderStatusPending, order.OrderStatus)
	assert.Empty(t, order.Notes)

	_, err = svc.UpdateOrderStatus(ctx, id, "shipped", nil)
	assert.ErrorIs(t, err, errorx.ErrInvalidStatus)

	_, err = svc.UpdateOrderStatus(ctx, 9999, "ready", nil)
	assert.ErrorIs(t, err, errorx.ErrOrderNotFound)
}

func TestMarkPaid(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	id := seedOrder(t, db, "ORD-1-A", etorder.OrderStatusPending)

	order, err := svc.MarkPaid(ctx, id, "pi_manual")
	require.NoError(t, err)
	assert.Equal(t, etorder.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "pi_manual", order.PaymentID)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, 5.0, stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.TodayOrders)

	_, err = svc.MarkPaid(ctx, 9999, "")
	assert.ErrorIs(t, err, errorx.ErrOrderNotFound)
}
