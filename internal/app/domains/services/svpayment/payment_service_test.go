package svpayment

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kcstudio/storefront/common/entity"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/entity/etpayment"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/domains/modules/mdpayment"
	"kcstudio/storefront/internal/app/domains/repo/rporder"
	"kcstudio/storefront/internal/app/domains/repo/rppayment"
	"kcstudio/storefront/internal/app/domains/repo/rptx"
	"kcstudio/storefront/internal/app/infra/persistence/dbtest"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/idgen"
	"kcstudio/storefront/internal/app/pkg/logger"
)

type fakeGateway struct {
	intents map[string]*etpayment.Intent
	events  map[string]*etpayment.Event
	created etpayment.IntentParams
	refund  etpayment.RefundParams
}

func (g *fakeGateway) CreateIntent(_ context.Context, p etpayment.IntentParams) (*etpayment.Intent, error) {
	g.created = p
	return &etpayment.Intent{ID: "pi_new", ClientSecret: "pi_new_secret", AmountCents: p.AmountCents, Currency: p.Currency}, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, id string) (*etpayment.Intent, error) {
	if pi, ok := g.intents[id]; ok {
		return pi, nil
	}
	return nil, errors.New("no such payment_intent")
}

func (g *fakeGateway) Refund(_ context.Context, p etpayment.RefundParams) (*etpayment.Refund, error) {
	g.refund = p
	return &etpayment.Refund{ID: "re_1", Status: "succeeded", AmountCents: p.AmountCents}, nil
}

func (g *fakeGateway) ParseWebhook(payload []byte, signature string) (*etpayment.Event, error) {
	if signature != "valid" {
		return nil, errors.New("signature mismatch")
	}
	ev, ok := g.events[string(payload)]
	if !ok {
		return nil, errors.New("unknown payload")
	}
	return ev, nil
}

func newService(t *testing.T, gw mdpayment.Gateway) (*PaymentService, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	log := logger.NewNop()
	svc := NewPaymentService(
		mdpayment.NewPaymentModule(gw, rppayment.NewPaymentEventRepository(db), "usd"),
		mdorder.NewOrderModule(rptx.NewGormTransactor(db), rporder.NewOrderRepository(db), idgen.NewOrderNumberGenerator()),
		mdnotify.NewNotifyModule(mdnotify.NewMemoryBus(), nil, "", log),
		log,
	)
	return svc, db
}

func seedOrder(t *testing.T, db *gorm.DB, paymentID string) int64 {
	t.Helper()
	repo := rporder.NewOrderRepository(db)
	ctx := context.Background()
	customer := &etorder.Customer{Whatsapp: "50312345678", Name: "Ana"}
	_, err := repo.UpsertCustomer(ctx, customer)
	require.NoError(t, err)
	order := &etorder.Order{
		OrderNumber:   "ORD-1-ABCDEFGHI",
		Customer:      customer,
		TotalAmount:   5,
		PaymentID:     paymentID,
		PaymentStatus: etorder.PaymentStatusPending,
		OrderStatus:   etorder.OrderStatusPending,
	}
	require.NoError(t, repo.Create(ctx, order))
	return order.ID
}

func loadOrder(t *testing.T, db *gorm.DB, id int64) entity.Order {
	t.Helper()
	var o entity.Order
	require.NoError(t, db.First(&o, id).Error)
	return o
}

func TestCreateIntent(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := newService(t, gw)

	_, err := svc.CreateIntent(context.Background(), 0.49, "1", "")
	assert.ErrorIs(t, err, errorx.ErrAmountTooSmall)
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))

	intent, err := svc.CreateIntent(context.Background(), 19.99, "42", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pi_new_secret", intent.ClientSecret)
	assert.Equal(t, int64(1999), gw.created.AmountCents)
	assert.Equal(t, "usd", gw.created.Currency)
	assert.Equal(t, "42", gw.created.OrderID)
}

func TestPaymentDisabled(t *testing.T) {
	svc, _ := newService(t, nil)
	_, err := svc.CreateIntent(context.Background(), 5, "1", "")
	assert.Equal(t, http.StatusServiceUnavailable, errorx.StatusCode(err))
}

func TestConfirmPayment(t *testing.T) {
	gw := &fakeGateway{intents: map[string]*etpayment.Intent{
		"pi_ok":   {ID: "pi_ok", Status: "succeeded"},
		"pi_wait": {ID: "pi_wait", Status: "requires_payment_method"},
	}}
	svc, db := newService(t, gw)
	id := seedOrder(t, db, "")

	_, err := svc.ConfirmPayment(context.Background(), "pi_wait", id)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))
	assert.Equal(t, "requires_payment_method", errorx.Wrap(err).Details[0].Info)
	assert.Equal(t, "pending", loadOrder(t, db, id).PaymentStatus)

	order, err := svc.ConfirmPayment(context.Background(), "pi_ok", id)
	require.NoError(t, err)
	assert.Equal(t, etorder.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, etorder.OrderStatusProcessing, order.OrderStatus)

	po := loadOrder(t, db, id)
	assert.Equal(t, "pi_ok", po.PaymentID)
	assert.Equal(t, "stripe", po.PaymentMethod)

	_, err = svc.ConfirmPayment(context.Background(), "pi_ok", 9999)
	assert.ErrorIs(t, err, errorx.ErrOrderNotFound)
}

func TestHandleWebhook(t *testing.T) {
	gw := &fakeGateway{events: map[string]*etpayment.Event{}}
	svc, db := newService(t, gw)
	id := seedOrder(t, db, "pi_hook")
	ctx := context.Background()

	gw.events["succeeded"] = &etpayment.Event{ID: "evt_1", Type: etpayment.EventIntentSucceeded, IntentID: "pi_hook"}
	gw.events["failed"] = &etpayment.Event{ID: "evt_2", Type: etpayment.EventIntentFailed, IntentID: "pi_hook"}
	gw.events["other"] = &etpayment.Event{ID: "evt_3", Type: "charge.refunded", IntentID: "pi_hook"}

	err := svc.HandleWebhook(ctx, []byte("succeeded"), "forged")
	assert.ErrorIs(t, err, errorx.ErrInvalidSignature)

	require.NoError(t, svc.HandleWebhook(ctx, []byte("succeeded"), "valid"))
	po := loadOrder(t, db, id)
	assert.Equal(t, "paid", po.PaymentStatus)
	assert.Equal(t, "processing", po.OrderStatus)

	require.NoError(t, svc.HandleWebhook(ctx, []byte("failed"), "valid"))
	assert.Equal(t, "failed", loadOrder(t, db, id).PaymentStatus)

	// 重复投递的事件不再处理
	require.NoError(t, svc.HandleWebhook(ctx, []byte("succeeded"), "valid"))
	assert.Equal(t, "failed", loadOrder(t, db, id).PaymentStatus)

	require.NoError(t, svc.HandleWebhook(ctx, []byte("other"), "valid"))

	var events int64
	require.NoError(t, db.Model(&entity.PaymentEvent{}).Count(&events).Error)
	assert.Equal(t, int64(3), events)
}

func TestWebhookPrefersMetadataOrderID(t *testing.T) {
	gw := &fakeGateway{events: map[string]*etpayment.Event{}}
	svc, db := newService(t, gw)
	id := seedOrder(t, db, "")

	gw.events["succeeded"] = &etpayment.Event{ID: "evt_1", Type: etpayment.EventIntentSucceeded, IntentID: "pi_meta", OrderID: "1"}
	require.Equal(t, int64(1), id)

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("succeeded"), "valid"))
	po := loadOrder(t, db, id)
	assert.Equal(t, "paid", po.PaymentStatus)
	assert.Equal(t, "pi_meta", po.PaymentID)
}

func TestRefund(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newService(t, gw)
	id := seedOrder(t, db, "pi_paid")

	half := 2.5
	refund, err := svc.Refund(context.Background(), "pi_paid", &half, "")
	require.NoError(t, err)
	assert.Equal(t, "re_1", refund.ID)
	assert.Equal(t, int64(250), gw.refund.AmountCents)
	assert.Equal(t, etpayment.DefaultRefundReason, gw.refund.Reason)
	assert.Equal(t, "refunded", loadOrder(t, db, id).PaymentStatus)

	_, err = svc.Refund(context.Background(), "pi_unknown", nil, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, "duplicate", gw.refund.Reason)
	assert.Zero(t, gw.refund.AmountCents)
}

func TestWebhookRedeliveryAfterFailedUpdate(t *testing.T) {
	gw := &fakeGateway{events: map[string]*etpayment.Event{}}
	svc, db := newService(t, gw)
	id := seedOrder(t, db, "pi_hook")
	ctx := context.Background()

	failNext := true
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_once", func(tx *gorm.DB) {
		if failNext {
			failNext = false
			_ = tx.AddError(errors.New("transient db error"))
		}
	}))

	gw.events["succeeded"] = &etpayment.Event{ID: "evt_1", Type: etpayment.EventIntentSucceeded, IntentID: "pi_hook"}

	err := svc.HandleWebhook(ctx, []byte("succeeded"), "valid")
	require.Error(t, err)
	assert.Equal(t, "pending", loadOrder(t, db, id).PaymentStatus)

	var events int64
	require.NoError(t, db.Model(&entity.PaymentEvent{}).Count(&events).Error)
	assert.Zero(t, events)

	// 网关重投同一事件
	require.NoError(t, svc.HandleWebhook(ctx, []byte("succeeded"), "valid"))
	po := loadOrder(t, db, id)
	assert.Equal(t, "paid", po.PaymentStatus)
	assert.Equal(t, "processing", po.OrderStatus)

	require.NoError(t, db.Model(&entity.PaymentEvent{}).Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestWebhookWithoutOrderIsRecorded(t *testing.T) {
	gw := &fakeGateway{events: map[string]*etpayment.Event{}}
	svc, db := newService(t, gw)

	gw.events["orphan"] = &etpayment.Event{ID: "evt_9", Type: etpayment.EventIntentSucceeded, IntentID: "pi_none"}
	require.NoError(t, svc.HandleWebhook(context.Background(), []byte("orphan"), "valid"))

	var events int64
	require.NoError(t, db.Model(&entity.PaymentEvent{}).Where("event_id = ?", "evt_9").Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestRefundRejectsSubCentAmount(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newService(t, gw)
	id := seedOrder(t, db, "pi_paid")

	tiny := 0.004
	_, err := svc.Refund(context.Background(), "pi_paid", &tiny, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))
	assert.Equal(t, "amount", errorx.Wrap(err).Details[0].Path)
	assert.Empty(t, gw.refund.PaymentIntentID)
	assert.Equal(t, "pending", loadOrder(t, db, id).PaymentStatus)

	cent := 0.01
	_, err = svc.Refund(context.Background(), "pi_paid", &cent, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gw.refund.AmountCents)
}

func TestSettleOrderVanishedAfterUpdate(t *testing.T) {
	gw := &fakeGateway{intents: map[string]*etpayment.Intent{
		"pi_ok": {ID: "pi_ok", Status: "succeeded"},
	}}
	svc, db := newService(t, gw)
	id := seedOrder(t, db, "")

	// 更新成功后的查询一律查不到，模拟订单被并发删除
	hidden := false
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:hide_after_update", func(*gorm.DB) {
		hidden = true
	}))
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:hide_orders", func(tx *gorm.DB) {
		if hidden {
			tx.Statement.AddClause(clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "1 = 0"}}})
		}
	}))

	_, err := svc.ConfirmPayment(context.Background(), "pi_ok", id)
	require.Error(t, err)
	assert.ErrorIs(t, err, errorx.ErrOrderNotFound)
	assert.NotContains(t, err.Error(), "%!w")
}
