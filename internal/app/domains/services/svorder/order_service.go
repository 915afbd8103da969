package svorder

import (
	"context"
	"fmt"
	"time"

	"kcstudio/storefront/common/model"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/entity/etproduct"
	"kcstudio/storefront/internal/app/domains/modules/mdimage"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/domains/repo/rptx"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/logger"
)

// MaxWait Smart Wait 最长等待时间
const MaxWait = 30 * time.Second

// OrderService 订单服务，负责订单业务编排
type OrderService struct {
	orderModule  *mdorder.OrderModule
	imageModule  *mdimage.ImageModule
	notifyModule *mdnotify.NotifyModule
	logger       logger.Logger
}

// NewOrderService 创建订单服务实例
func NewOrderService(
	orderModule *mdorder.OrderModule,
	imageModule *mdimage.ImageModule,
	notifyModule *mdnotify.NotifyModule,
	log logger.Logger,
) *OrderService {
	return &OrderService{
		orderModule:  orderModule,
		imageModule:  imageModule,
		notifyModule: notifyModule,
		logger:       log,
	}
}

// CreateOrder 创建订单（完整业务流程）
// 1. 校验客户、明细、图片格式
// 2. 单事务内：客户 upsert、分配订单号、写订单、逐项落地图片并写明细、图库写入（保存点内，失败忽略）
// 3. 提交后广播事件并投递通知任务，失败只记日志
func (s *OrderService) CreateOrder(ctx context.Context, customer *etorder.Customer, items []*etorder.Item, totalAmount float64, paymentMethod string) (*etorder.Order, error) {
	order, err := etorder.NewOrder(customer, items, totalAmount, paymentMethod)
	if err != nil {
		return nil, errorx.BadRequest(err.Error())
	}
	for i, item := range order.Items {
		if err := mdimage.Validate(item.ImageSource); err != nil {
			return nil, errorx.BadRequest("invalid image", errorx.ErrorDetail{
				Path: fmt.Sprintf("items[%d].image", i),
				Info: err.Error(),
			})
		}
	}

	order.OrderNumber = s.orderModule.NextOrderNumber()
	ctx = logger.WithOrderNumber(ctx, order.OrderNumber)

	err = s.orderModule.InTx(ctx, func(ctx context.Context, repos rptx.Repos) error {
		if _, err := repos.Orders.UpsertCustomer(ctx, order.Customer); err != nil {
			return err
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("insert order failed: %w", err)
		}

		for _, item := range order.Items {
			resolved, err := s.imageModule.Resolve(ctx, item.ImageSource)
			if err != nil {
				return fmt.Errorf("resolve image failed: %w", err)
			}
			item.ProductImage = resolved.URL

			if err := repos.Orders.CreateItem(ctx, order.ID, item); err != nil {
				return fmt.Errorf("insert order item failed: %w", err)
			}

			if resolved.Remote {
				s.addToGallery(ctx, repos, item)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "create order failed, transaction rolled back", "error", err)
		return nil, errorx.Internal("failed to create order", err)
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"items", len(order.Items),
		"total_amount", order.TotalAmount,
	)

	if err := s.notifyModule.PublishOrderEvent(ctx, model.OrderEventCreated, order); err != nil {
		s.logger.WarnContext(ctx, "publish order created event failed", "error", err)
	}
	if err := s.notifyModule.EnqueueOrderCreated(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "enqueue order notify job failed", "error", err)
	}

	return order, nil
}

// addToGallery 图库写入失败不影响下单
func (s *OrderService) addToGallery(ctx context.Context, repos rptx.Repos, item *etorder.Item) {
	err := repos.Products.InsertIgnore(ctx, &etproduct.Product{
		ImageURL:  item.ProductImage,
		Shape:     item.Shape,
		BasePrice: item.UnitPrice,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "add image to gallery failed", "image", item.ProductImage, "error", err)
	}
}

// GetOrder 查询订单，wait>0 且支付未完成时等待支付事件（Smart Wait）
func (s *OrderService) GetOrder(ctx context.Context, orderNumber string, wait time.Duration) (*etorder.Order, error) {
	order, err := s.load(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if wait <= 0 || order.IsPaymentSettled() || !s.notifyModule.BusEnabled() {
		return order, nil
	}
	if wait > MaxWait {
		wait = MaxWait
	}

	ctx = logger.WithOrderNumber(ctx, orderNumber)
	err = s.notifyModule.WaitPaymentChange(ctx, orderNumber, wait, func(ctx context.Context) (bool, error) {
		latest, err := s.load(ctx, orderNumber)
		if err != nil {
			return false, err
		}
		order = latest
		return latest.IsPaymentSettled(), nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "wait for payment change failed", "error", err)
		return order, nil
	}

	if latest, err := s.load(ctx, orderNumber); err == nil {
		order = latest
	}
	return order, nil
}

func (s *OrderService) load(ctx context.Context, orderNumber string) (*etorder.Order, error) {
	order, err := s.orderModule.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}
	if order == nil {
		return nil, errorx.ErrOrderNotFound
	}
	return order, nil
}

