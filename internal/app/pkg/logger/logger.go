package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 日志接口，fields 为 key/value 交替出现的结构化字段
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})

	// Context 支持（用于链路追踪）
	InfoContext(ctx context.Context, msg string, fields ...interface{})
	ErrorContext(ctx context.Context, msg string, fields ...interface{})
	WarnContext(ctx context.Context, msg string, fields ...interface{})
	DebugContext(ctx context.Context, msg string, fields ...interface{})

	Sync() error
}

type ctxKey string

const (
	requestIDKey   ctxKey = "request_id"
	orderNumberKey ctxKey = "order_number"
)

// WithRequestID 将请求ID写入 Context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithOrderNumber 将订单号写入 Context
func WithOrderNumber(ctx context.Context, orderNumber string) context.Context {
	return context.WithValue(ctx, orderNumberKey, orderNumber)
}

// RequestIDFrom 读取 Context 中的请求ID
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ZapLogger Zap 日志实现
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger 创建 Zap 日志实例
func NewZapLogger(level string) (*ZapLogger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &ZapLogger{sugar: l.Sugar()}, nil
}

// NewNop 不输出任何内容，测试使用
func NewNop() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

// With 返回携带固定字段的子 Logger
func (l *ZapLogger) With(fields ...interface{}) *ZapLogger {
	return &ZapLogger{sugar: l.sugar.With(fields...)}
}

// extractFields 从 Context 提取日志字段
func extractFields(ctx context.Context, fields []interface{}) []interface{} {
	if ctx == nil {
		return fields
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		fields = append(fields, "request_id", id)
	}
	if no, ok := ctx.Value(orderNumberKey).(string); ok && no != "" {
		fields = append(fields, "order_number", no)
	}
	return fields
}

func (l *ZapLogger) Info(msg string, fields ...interface{})  { l.sugar.Infow(msg, fields...) }
func (l *ZapLogger) Error(msg string, fields ...interface{}) { l.sugar.Errorw(msg, fields...) }
func (l *ZapLogger) Warn(msg string, fields ...interface{})  { l.sugar.Warnw(msg, fields...) }
func (l *ZapLogger) Debug(msg string, fields ...interface{}) { l.sugar.Debugw(msg, fields...) }

func (l *ZapLogger) InfoContext(ctx context.Context, msg string, fields ...interface{}) {
	l.sugar.Infow(msg, extractFields(ctx, fields)...)
}

func (l *ZapLogger) ErrorContext(ctx context.Context, msg string, fields ...interface{}) {
	l.sugar.Errorw(msg, extractFields(ctx, fields)...)
}

func (l *ZapLogger) WarnContext(ctx context.Context, msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, extractFields(ctx, fields)...)
}

func (l *ZapLogger) DebugContext(ctx context.Context, msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, extractFields(ctx, fields)...)
}

// Sync 同步日志缓冲区
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
