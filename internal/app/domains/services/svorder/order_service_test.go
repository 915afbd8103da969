package svorder

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kcstudio/storefront/common/entity"
	"kcstudio/storefront/common/model"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/modules/mdimage"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/domains/repo/rporder"
	"kcstudio/storefront/internal/app/domains/repo/rptx"
	"kcstudio/storefront/internal/app/infra/imagehost"
	"kcstudio/storefront/internal/app/infra/persistence/dbtest"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/idgen"
	"kcstudio/storefront/internal/app/pkg/logger"
)

const baseURL = "http://localhost:5000"

var pngDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

type fakeHost struct {
	url string
	err error
}

func (h *fakeHost) Upload(context.Context, string) (string, error) { return h.url, h.err }

type brokenStore struct{}

func (brokenStore) Save(context.Context, []byte) (string, error) { return "", errors.New("read-only fs") }

type fakeQueue struct{ jobs []interface{} }

func (q *fakeQueue) Publish(_ context.Context, _ string, data interface{}) (string, error) {
	q.jobs = append(q.jobs, data)
	return "job", nil
}

type fixture struct {
	db    *gorm.DB
	svc   *OrderService
	bus   *mdnotify.MemoryBus
	queue *fakeQueue
	repo  rporder.OrderRepository
}

func newFixture(t *testing.T, host mdimage.ImageHost, store mdimage.LocalStore) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	if store == nil {
		s, err := imagehost.NewLocalStore(t.TempDir())
		require.NoError(t, err)
		store = s
	}
	log := logger.NewNop()
	repo := rporder.NewOrderRepository(db)
	bus := mdnotify.NewMemoryBus()
	queue := &fakeQueue{}

	svc := NewOrderService(
		mdorder.NewOrderModule(rptx.NewGormTransactor(db), repo, idgen.NewOrderNumberGenerator()),
		mdimage.NewImageModule(host, store, baseURL, log),
		mdnotify.NewNotifyModule(bus, queue, "order_notify", log),
		log,
	)
	return &fixture{db: db, svc: svc, bus: bus, queue: queue, repo: repo}
}

func anaCustomer() *etorder.Customer {
	return &etorder.Customer{Whatsapp: "50312345678", Name: "Ana", Address: "X", City: "SS"}
}

func roundItem(image string) []*etorder.Item {
	return []*etorder.Item{{Shape: "round", UnitPrice: 2.5, BackgroundColor: "#FFB6C1", Quantity: 2, Subtotal: 5, ImageSource: image}}
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateOrderExamplePayload(t *testing.T) {
	f := newFixture(t, &fakeHost{url: "https://res.cloudinary.com/demo/keychain-orders/a.png"}, nil)

	order, err := f.svc.CreateOrder(context.Background(), anaCustomer(), roundItem(pngDataURL), 5, "pending")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{9}$`), order.OrderNumber)
	assert.NotZero(t, order.ID)

	got, err := f.svc.GetOrder(context.Background(), order.OrderNumber, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 5.0, got.Items[0].Subtotal)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "https://res.cloudinary.com/demo/keychain-orders/a.png", got.Items[0].ProductImage)
	assert.Equal(t, etorder.PaymentStatusPending, got.PaymentStatus)
	assert.Equal(t, etorder.OrderStatusPending, got.OrderStatus)
	assert.Equal(t, "Ana", got.Customer.Name)

	assert.Equal(t, int64(1), count(t, f.db, &entity.Product{}), "hosted image lands in gallery")
}

func TestCreateOrderIsAllOrNothing(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.NoError(t, f.db.Migrator().DropTable(&entity.OrderItem{}))

	_, err := f.svc.CreateOrder(context.Background(), anaCustomer(), roundItem("https://cdn.example.com/a.png"), 5, "pending")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, errorx.StatusCode(err))
	assert.Equal(t, "failed to create order", errorx.Wrap(err).Message)

	assert.Zero(t, count(t, f.db, &entity.Order{}))
	assert.Zero(t, count(t, f.db, &entity.Customer{}))
	assert.Zero(t, count(t, f.db, &entity.Product{}))
	assert.Empty(t, f.queue.jobs, "no notification for rolled back order")
}

func TestCreateOrderPersistsEveryItem(t *testing.T) {
	f := newFixture(t, nil, nil)
	items := append(roundItem("https://cdn.example.com/a.png"), roundItem("https://cdn.example.com/b.png")...)
	items = append(items, roundItem("https://cdn.example.com/a.png")...)

	order, err := f.svc.CreateOrder(context.Background(), anaCustomer(), items, 15, "pending")
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, f.db, &entity.Order{}))
	assert.Equal(t, int64(3), count(t, f.db, &entity.OrderItem{}))
	assert.Equal(t, int64(2), count(t, f.db, &entity.Product{}), "duplicate gallery images ignored")

	got, err := f.svc.GetOrder(context.Background(), order.OrderNumber, 0)
	require.NoError(t, err)
	assert.Len(t, got.Items, 3)
}

func TestCreateOrderUpsertsCustomer(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, anaCustomer(), roundItem("https://cdn.example.com/a.png"), 5, "pending")
	require.NoError(t, err)

	moved := anaCustomer()
	moved.Address = "Y"
	moved.City = "Santa Ana"
	moved.Email = "ana@example.com"
	_, err = f.svc.CreateOrder(ctx, moved, roundItem("https://cdn.example.com/b.png"), 5, "pending")
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, f.db, &entity.Customer{}))
	assert.Equal(t, int64(2), count(t, f.db, &entity.Order{}))

	var c entity.Customer
	require.NoError(t, f.db.First(&c).Error)
	assert.Equal(t, "Y", c.Address)
	assert.Equal(t, "Santa Ana", c.City)
	assert.Equal(t, "ana@example.com", c.Email)
}

func TestCreateOrderFallsBackToLocalImage(t *testing.T) {
	f := newFixture(t, &fakeHost{err: errors.New("cloudinary 503")}, nil)

	order, err := f.svc.CreateOrder(context.Background(), anaCustomer(), roundItem(pngDataURL), 5, "pending")
	require.NoError(t, err)

	got, err := f.svc.GetOrder(context.Background(), order.OrderNumber, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, strings.HasPrefix(got.Items[0].ProductImage, baseURL+"/uploads/"), got.Items[0].ProductImage)
	assert.Zero(t, count(t, f.db, &entity.Product{}), "local fallback images stay out of the gallery")
}

func TestCreateOrderEmptyImageWhenFallbackFails(t *testing.T) {
	f := newFixture(t, &fakeHost{err: errors.New("cloudinary 503")}, brokenStore{})

	order, err := f.svc.CreateOrder(context.Background(), anaCustomer(), roundItem(pngDataURL), 5, "pending")
	require.NoError(t, err)

	got, err := f.svc.GetOrder(context.Background(), order.OrderNumber, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Empty(t, got.Items[0].ProductImage)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, anaCustomer(), roundItem("ftp://nope/a.png"), 5, "pending")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))
	assert.Equal(t, "items[0].image", errorx.Wrap(err).Details[0].Path)

	_, err = f.svc.CreateOrder(ctx, anaCustomer(), nil, 5, "pending")
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))

	_, err = f.svc.CreateOrder(ctx, &etorder.Customer{Name: "Ana"}, roundItem("https://a/b.png"), 5, "pending")
	assert.Equal(t, http.StatusBadRequest, errorx.StatusCode(err))

	assert.Zero(t, count(t, f.db, &entity.Order{}))
}

func TestOrderNumbersAreDistinct(t *testing.T) {
	f := newFixture(t, nil, nil)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		order, err := f.svc.CreateOrder(context.Background(), anaCustomer(), roundItem("https://cdn.example.com/a.png"), 5, "pending")
		require.NoError(t, err)
		assert.False(t, seen[order.OrderNumber])
		seen[order.OrderNumber] = true
	}
}

func TestGetOrderUnknownIsNotFound(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.svc.GetOrder(context.Background(), "ORD-0-NOPE", 0)
	assert.ErrorIs(t, err, errorx.ErrOrderNotFound)
	assert.Equal(t, http.StatusNotFound, errorx.StatusCode(err))
}

func TestCreateOrderNotifiesAfterCommit(t *testing.T) {
	f := newFixture(t, nil, nil)
	sub, err := f.bus.Subscribe(context.Background(), model.ChannelOrderEvents)
	require.NoError(t, err)
	defer sub.Close()

	order, err := f.svc.CreateOrder(context.Background(), anaCustomer(), roundItem("https://cdn.example.com/a.png"), 5, "pending")
	require.NoError(t, err)

	select {
	case msg := <-sub.Messages():
		assert.Contains(t, msg, order.OrderNumber)
		assert.Contains(t, msg, model.OrderEventCreated)
	case <-time.After(time.Second):
		t.Fatal("no order event published")
	}

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0].(model.OrderNotifyJob)
	assert.Equal(t, order.OrderNumber, job.OrderNumber)
	assert.Equal(t, "50312345678", job.Whatsapp)
}

func TestGetOrderWaitsForPayment(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, anaCustomer(), roundItem("https://cdn.example.com/a.png"), 5, "pending")
	require.NoError(t, err)

	notify := mdnotify.NewNotifyModule(f.bus, nil, "", logger.NewNop())
	go func() {
		time.Sleep(100 * time.Millisecond)
		_, _ = f.repo.UpdatePayment(ctx, order.ID, etorder.PaymentChange{PaymentStatus: etorder.PaymentStatusPaid})
		order.PaymentStatus = etorder.PaymentStatusPaid
		_ = notify.PublishOrderEvent(ctx, model.OrderEventPaymentChange, order)
	}()

	start := time.Now()
	got, err := f.svc.GetOrder(ctx, order.OrderNumber, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, etorder.PaymentStatusPaid, got.PaymentStatus)
	assert.Less(t, time.Since(start), 4*time.Second)

	// 已支付订单不再等待
	start = time.Now()
	_, err = f.svc.GetOrder(ctx, order.OrderNumber, 5*time.Second)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
