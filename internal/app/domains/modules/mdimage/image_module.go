package mdimage

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/logger"
)

// ImageHost 远程图床
type ImageHost interface {
	Upload(ctx context.Context, dataURL string) (string, error)
}

// LocalStore 本地兜底存储，返回文件名
type LocalStore interface {
	Save(ctx context.Context, data []byte) (string, error)
}

// Resolved 图片落地结果
type Resolved struct {
	URL string
	// Remote 为 true 表示图片托管在外部地址，可进入图库
	Remote bool
}

// ImageModule 图片落地：远程 URL 原样保留，data URL 先传图床，失败再写本地
type ImageModule struct {
	host          ImageHost
	store         LocalStore
	publicBaseURL string
	logger        logger.Logger
}

// NewImageModule 创建图片模块，host 为 nil 表示未配置图床
func NewImageModule(host ImageHost, store LocalStore, publicBaseURL string, log logger.Logger) *ImageModule {
	return &ImageModule{
		host:          host,
		store:         store,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        log,
	}
}

// Validate 只接受 data:image/ 或 http(s) URL
func Validate(source string) error {
	switch {
	case strings.HasPrefix(source, "data:image/"):
		return nil
	case isHTTPURL(source):
		return nil
	default:
		return errorx.ErrInvalidImage
	}
}

// Resolve 将客户端图片转换为可长期访问的地址
// 本地兜底也失败时返回空 URL 而不是错误
func (m *ImageModule) Resolve(ctx context.Context, source string) (Resolved, error) {
	if err := Validate(source); err != nil {
		return Resolved{}, err
	}

	if isHTTPURL(source) {
		return Resolved{URL: source, Remote: !m.isOwnOrigin(source)}, nil
	}

	if m.host != nil {
		secureURL, err := m.host.Upload(ctx, source)
		if err == nil {
			return Resolved{URL: secureURL, Remote: !m.isOwnOrigin(secureURL)}, nil
		}
		m.logger.WarnContext(ctx, "image host upload failed, falling back to local storage", "error", err)
	}

	localURL, err := m.saveLocal(ctx, source)
	if err != nil {
		m.logger.ErrorContext(ctx, "local image fallback failed", "error", err)
		return Resolved{}, nil
	}
	return Resolved{URL: localURL}, nil
}

func (m *ImageModule) saveLocal(ctx context.Context, dataURL string) (string, error) {
	if m.store == nil {
		return "", fmt.Errorf("local store not configured")
	}
	data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	filename, err := m.store.Save(ctx, data)
	if err != nil {
		return "", err
	}
	return m.publicBaseURL + "/uploads/" + filename, nil
}

// isOwnOrigin 本服务 /uploads 下的地址不算外部图片
func (m *ImageModule) isOwnOrigin(raw string) bool {
	if m.publicBaseURL == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	base, err := url.Parse(m.publicBaseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}

func isHTTPURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

// decodeDataURL 解析 data:image/<type>;base64,<payload>
func decodeDataURL(dataURL string) ([]byte, error) {
	comma := strings.IndexByte(dataURL, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data url")
	}
	header, payload := dataURL[:comma], dataURL[comma+1:]
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("data url is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// 部分客户端省略填充
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("decode base64 failed: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return data, nil
}
