package rporder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kcstudio/storefront/common/entity"
	"kcstudio/storefront/internal/app/domains/entity/etorder"

	"gorm.io/gorm"
)

// OrderRepositoryImpl 订单仓储实现（MySQL）
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例，db 可以是事务句柄
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// UpsertCustomer 按 whatsapp 查找或更新客户
func (r *OrderRepositoryImpl) UpsertCustomer(ctx context.Context, customer *etorder.Customer) (int64, error) {
	var po entity.Customer
	err := r.db.WithContext(ctx).Where("whatsapp = ?", customer.Whatsapp).First(&po).Error
	switch {
	case err == nil:
		err = r.db.WithContext(ctx).
			Model(&entity.Customer{}).
			Where("id = ?", po.ID).
			Updates(map[string]interface{}{
				"name":        customer.Name,
				"email":       customer.Email,
				"address":     customer.Address,
				"city":        customer.City,
				"postal_code": customer.PostalCode,
				"updated_at":  time.Now(),
			}).Error
		if err != nil {
			return 0, fmt.Errorf("update customer failed: %w", err)
		}
		customer.ID = po.ID
		return po.ID, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		po = entity.Customer{
			Name:       customer.Name,
			Email:      customer.Email,
			Whatsapp:   customer.Whatsapp,
			Address:    customer.Address,
			City:       customer.City,
			PostalCode: customer.PostalCode,
		}
		if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
			return 0, fmt.Errorf("insert customer failed: %w", err)
		}
		customer.ID = po.ID
		return po.ID, nil

	default:
		return 0, fmt.Errorf("find customer failed: %w", err)
	}
}

// Create 写入订单行
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *etorder.Order) error {
	po := r.toGormModel(order)
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return err
	}
	order.ID = po.ID
	return nil
}

// CreateItem 写入订单明细
func (r *OrderRepositoryImpl) CreateItem(ctx context.Context, orderID int64, item *etorder.Item) error {
	po := &entity.OrderItem{
		OrderID:         orderID,
		ProductImage:    item.ProductImage,
		Shape:           item.Shape,
		BackgroundColor: item.BackgroundColor,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		Subtotal:        item.Subtotal,
	}
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return err
	}
	item.ID = po.ID
	return nil
}

// GetByNumber 按订单号查询，联表客户并加载明细
func (r *OrderRepositoryImpl) GetByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error) {
	order, err := r.first(ctx, "order_number = ?", orderNumber)
	if err != nil || order == nil {
		return nil, err
	}

	var customer entity.Customer
	err = r.db.WithContext(ctx).Where("id = ?", order.Customer.ID).First(&customer).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		order.Customer = toCustomerDomain(&customer)
	}

	var items []entity.OrderItem
	if err := r.db.WithContext(ctx).Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	order.Items = make([]*etorder.Item, 0, len(items))
	for i := range items {
		order.Items = append(order.Items, toItemDomain(&items[i]))
	}

	return order, nil
}

// GetByID 按ID查询订单
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID int64) (*etorder.Order, error) {
	return r.first(ctx, "id = ?", orderID)
}

// GetByPaymentID 按支付ID查询订单
func (r *OrderRepositoryImpl) GetByPaymentID(ctx context.Context, paymentID string) (*etorder.Order, error) {
	if paymentID == "" {
		return nil, nil
	}
	return r.first(ctx, "payment_id = ?", paymentID)
}

func (r *OrderRepositoryImpl) first(ctx context.Context, query string, args ...interface{}) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).Where(query, args...).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomainModel(&po), nil
}

// summaryRow 列表查询扫描目标
type summaryRow struct {
	ID            int64
	OrderNumber   string
	TotalAmount   float64
	PaymentStatus string
	OrderStatus   string
	CreatedAt     time.Time
	CustomerName  string
	Whatsapp      string
	Address       string
	City          string
	ItemsCount    int64
}

// List 分页查询订单列表，附带明细条数
func (r *OrderRepositoryImpl) List(ctx context.Context, filter etorder.ListFilter) ([]*etorder.Summary, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Table("orders AS o").
			Joins("JOIN customers AS c ON c.id = o.customer_id")
		if filter.Status != "" {
			q = q.Where("o.order_status = ?", string(filter.Status))
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base().
		Select(`o.id, o.order_number, o.total_amount, o.payment_status, o.order_status, o.created_at,
			c.name AS customer_name, c.whatsapp, c.address, c.city,
			(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS items_count`).
		Order("o.created_at DESC").
		Order("o.id DESC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}

	var rows []summaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	list := make([]*etorder.Summary, 0, len(rows))
	for _, row := range rows {
		list = append(list, &etorder.Summary{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			TotalAmount:   row.TotalAmount,
			PaymentStatus: etorder.PaymentStatus(row.PaymentStatus),
			OrderStatus:   etorder.OrderStatus(row.OrderStatus),
			CreatedAt:     row.CreatedAt,
			CustomerName:  row.CustomerName,
			Whatsapp:      row.Whatsapp,
			Address:       row.Address,
			City:          row.City,
			ItemsCount:    row.ItemsCount,
		})
	}

	return list, total, nil
}

// UpdateStatus 更新订单状态，备注为 nil 时置空
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, change etorder.StatusChange) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ?", change.OrderID).
		Updates(map[string]interface{}{
			"order_status": string(change.Status),
			"notes":        change.Notes,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdatePayment 更新支付状态，空字段保持不变
func (r *OrderRepositoryImpl) UpdatePayment(ctx context.Context, orderID int64, change etorder.PaymentChange) (bool, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if change.PaymentStatus != "" {
		updates["payment_status"] = string(change.PaymentStatus)
	}
	if change.PaymentID != "" {
		updates["payment_id"] = change.PaymentID
	}
	if change.PaymentMethod != "" {
		updates["payment_method"] = change.PaymentMethod
	}
	if change.OrderStatus != "" {
		updates["order_status"] = string(change.OrderStatus)
	}

	res := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ?", orderID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Stats 后台统计，逐项查询以兼容 MySQL 和 SQLite
func (r *OrderRepositoryImpl) Stats(ctx context.Context) (*etorder.Stats, error) {
	db := r.db.WithContext(ctx)
	stats := &etorder.Stats{}

	counts := []struct {
		dst   *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&stats.TotalOrders, &entity.Order{}, "", nil},
		{&stats.TotalCustomers, &entity.Customer{}, "", nil},
		{&stats.TotalProducts, &entity.Product{}, "is_active = ?", []interface{}{true}},
		{&stats.PendingOrders, &entity.Order{}, "order_status = ?", []interface{}{entity.OrderStatusPending}},
		{&stats.ProcessingOrders, &entity.Order{}, "order_status = ?", []interface{}{entity.OrderStatusProcessing}},
		{&stats.DeliveredOrders, &entity.Order{}, "order_status = ?", []interface{}{entity.OrderStatusDelivered}},
		{&stats.TodayOrders, &entity.Order{}, "created_at >= ?", []interface{}{startOfDay(time.Now())}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, c.args...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("count failed: %w", err)
		}
	}

	err := db.Model(&entity.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_status = ?", entity.PaymentStatusPaid).
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("sum revenue failed: %w", err)
	}

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// toGormModel 领域对象转换为 GORM 模型
func (r *OrderRepositoryImpl) toGormModel(order *etorder.Order) *entity.Order {
	po := &entity.Order{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		PaymentID:     order.PaymentID,
		PaymentStatus: string(order.PaymentStatus),
		OrderStatus:   string(order.OrderStatus),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if order.Customer != nil {
		po.CustomerID = order.Customer.ID
	}
	if order.Notes != "" {
		notes := order.Notes
		po.Notes = &notes
	}
	return po
}

// toDomainModel GORM 模型转换为领域对象
func (r *OrderRepositoryImpl) toDomainModel(po *entity.Order) *etorder.Order {
	order := &etorder.Order{
		ID:            po.ID,
		OrderNumber:   po.OrderNumber,
		Customer:      &etorder.Customer{ID: po.CustomerID},
		TotalAmount:   po.TotalAmount,
		PaymentMethod: po.PaymentMethod,
		PaymentID:     po.PaymentID,
		PaymentStatus: etorder.PaymentStatus(po.PaymentStatus),
		OrderStatus:   etorder.OrderStatus(po.OrderStatus),
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
	if po.Notes != nil {
		order.Notes = *po.Notes
	}
	return order
}

func toCustomerDomain(po *entity.Customer) *etorder.Customer {
	return &etorder.Customer{
		ID:         po.ID,
		Whatsapp:   po.Whatsapp,
		Name:       po.Name,
		Email:      po.Email,
		Address:    po.Address,
		City:       po.City,
		PostalCode: po.PostalCode,
	}
}

func toItemDomain(po *entity.OrderItem) *etorder.Item {
	return &etorder.Item{
		ID:              po.ID,
		Shape:           po.Shape,
		UnitPrice:       po.UnitPrice,
		BackgroundColor: po.BackgroundColor,
		Quantity:        po.Quantity,
		Subtotal:        po.Subtotal,
		ProductImage:    po.ProductImage,
	}
}
