package svadmin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kcstudio/storefront/common/model"
	"kcstudio/storefront/internal/app/domains/entity/etadmin"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/entity/etprimitive"
	"kcstudio/storefront/internal/app/domains/modules/mdadmin"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/pkg/authx"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/logger"
)

// LoginResult 登录结果
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *etadmin.Admin
}

// AdminService 后台服务：登录鉴权、统计、订单管理
type AdminService struct {
	adminModule  *mdadmin.AdminModule
	orderModule  *mdorder.OrderModule
	notifyModule *mdnotify.NotifyModule
	logger       logger.Logger
	now          func() time.Time
}

// NewAdminService 创建后台服务实例
func NewAdminService(
	adminModule *mdadmin.AdminModule,
	orderModule *mdorder.OrderModule,
	notifyModule *mdnotify.NotifyModule,
	log logger.Logger,
) *AdminService {
	return &AdminService{
		adminModule:  adminModule,
		orderModule:  orderModule,
		notifyModule: notifyModule,
		logger:       log,
		now:          time.Now,
	}
}

// Login 校验账号密码并签发令牌
// 账号不存在、已禁用、密码错误统一返回 ErrInvalidCredentials，且不更新 last_login
func (s *AdminService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errorx.BadRequest("username and password are required")
	}

	admin, err := s.adminModule.FindActive(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find admin failed: %w", err)
	}
	if admin == nil {
		s.logger.WarnContext(ctx, "admin login rejected", "username", username, "reason", "unknown or inactive")
		return nil, errorx.ErrInvalidCredentials
	}
	if !admin.CheckPassword(password) {
		s.logger.WarnContext(ctx, "admin login rejected", "username", username, "reason", "bad password")
		return nil, errorx.ErrInvalidCredentials
	}

	token, expiresAt, err := s.adminModule.IssueToken(admin)
	if err != nil {
		return nil, fmt.Errorf("issue token failed: %w", err)
	}

	now := s.now()
	if err := s.adminModule.TouchLastLogin(ctx, admin.ID, now); err != nil {
		return nil, fmt.Errorf("update last login failed: %w", err)
	}
	admin.LastLogin = &now

	s.logger.InfoContext(ctx, "admin logged in", "admin_id", admin.ID, "username", admin.Username)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Authenticate 校验 Bearer 令牌
func (s *AdminService) Authenticate(token string) (*authx.Claims, error) {
	if token == "" {
		return nil, errorx.ErrUnauthorized
	}
	claims, err := s.adminModule.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrUnauthorized, err)
	}
	return claims, nil
}

// Stats 仪表盘统计
func (s *AdminService) Stats(ctx context.Context) (*etorder.Stats, error) {
	stats, err := s.orderModule.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats failed: %w", err)
	}
	return stats, nil
}

// ListOrders 分页订单列表，status 为空或 all 表示全部
func (s *AdminService) ListOrders(ctx context.Context, status string, page, limit int) ([]*etorder.Summary, etprimitive.Pagination, error) {
	pagination := etprimitive.NewPagination(page, limit)

	filter, err := statusFilter(status)
	if err != nil {
		return nil, pagination, err
	}
	filter.Offset = pagination.Offset()
	filter.Limit = pagination.Limit

	rows, total, err := s.orderModule.ListOrders(ctx, filter)
	if err != nil {
		return nil, pagination, fmt.Errorf("list orders failed: %w", err)
	}
	pagination.Total = total
	return rows, pagination, nil
}

// ExportOrders 导出用的全量订单列表（不分页）
func (s *AdminService) ExportOrders(ctx context.Context, status string) ([]*etorder.Summary, error) {
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	rows, _, err := s.orderModule.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export orders failed: %w", err)
	}
	return rows, nil
}

// UpdateOrderStatus 覆盖订单状态和备注，不校验状态流转
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID int64, status string, notes *string) (*etorder.Order, error) {
	next := etorder.OrderStatus(status)
	if !next.IsValid() {
		return nil, errorx.ErrInvalidStatus
	}

	found, err := s.orderModule.UpdateStatus(ctx, etorder.StatusChange{
		OrderID: orderID,
		Status:  next,
		Notes:   notes,
	})
	if err != nil {
		return nil, fmt.Errorf("update order status failed: %w", err)
	}
	if !found {
		return nil, errorx.ErrOrderNotFound
	}

	order, err := s.reload(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(logger.WithOrderNumber(ctx, order.OrderNumber), "order status updated",
		"order_id", orderID,
		"status", status,
	)
	s.publish(ctx, model.OrderEventStatusChanged, order)
	return order, nil
}

// MarkPaid 手工标记已支付
func (s *AdminService) MarkPaid(ctx context.Context, orderID int64, paymentID string) (*etorder.Order, error) {
	found, err := s.orderModule.UpdatePayment(ctx, orderID, etorder.PaymentChange{
		PaymentStatus: etorder.PaymentStatusPaid,
		PaymentID:     paymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("mark order paid failed: %w", err)
	}
	if !found {
		return nil, errorx.ErrOrderNotFound
	}

	order, err := s.reload(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(logger.WithOrderNumber(ctx, order.OrderNumber), "order marked as paid", "order_id", orderID)
	s.publish(ctx, model.OrderEventPaymentChange, order)
	return order, nil
}

// SubscribeFeed 订阅实时订单事件
func (s *AdminService) SubscribeFeed(ctx context.Context) (mdnotify.Subscription, error) {
	return s.notifyModule.SubscribeOrderEvents(ctx)
}

// CreateAdmin 新建管理员（运维工具）
func (s *AdminService) CreateAdmin(ctx context.Context, username, password, email, fullName string) (*etadmin.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errorx.BadRequest("username is required")
	}
	hash, err := etadmin.HashPassword(password)
	if err != nil {
		return nil, errorx.BadRequest(err.Error())
	}

	admin := &etadmin.Admin{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FullName:     fullName,
		IsActive:     true,
	}
	if err := s.adminModule.CreateAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin failed: %w", err)
	}
	return admin, nil
}

// ListAdmins 全部管理员（运维工具）
func (s *AdminService) ListAdmins(ctx context.Context) ([]*etadmin.Admin, error) {
	admins, err := s.adminModule.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins failed: %w", err)
	}
	return admins, nil
}

func (s *AdminService) reload(ctx context.Context, orderID int64) (*etorder.Order, error) {
	order, err := s.orderModule.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order failed: %w", err)
	}
	if order == nil {
		return nil, errorx.ErrOrderNotFound
	}
	return order, nil
}

func (s *AdminService) publish(ctx context.Context, eventType string, order *etorder.Order) {
	if err := s.notifyModule.PublishOrderEvent(ctx, eventType, order); err != nil {
		s.logger.WarnContext(ctx, "publish order event failed", "type", eventType, "order_id", order.ID, "error", err)
	}
}

func statusFilter(status string) (etorder.ListFilter, error) {
	if status == "" || status == "all" {
		return etorder.ListFilter{}, nil
	}
	s := etorder.OrderStatus(status)
	if !s.IsValid() {
		return etorder.ListFilter{}, errorx.ErrInvalidStatus
	}
	return etorder.ListFilter{Status: s}, nil
}
