package imagehost

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// 上传时由图床缩放到 500x500 以内
const fitTransformation = "c_fit,h_500,w_500"

// CloudinaryHost Cloudinary 图床
type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryHost 创建图床客户端
func NewCloudinaryHost(cloudName, apiKey, apiSecret, folder string) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary failed: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{cld: cld, folder: folder}, nil
}

// Upload 上传 data URL，返回 https 地址
func (h *CloudinaryHost) Upload(ctx context.Context, dataURL string) (string, error) {
	resp, err := h.cld.Upload.Upload(ctx, dataURL, uploader.UploadParams{
		Folder:         h.folder,
		Transformation: fitTransformation,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned empty url")
	}
	return resp.SecureURL, nil
}
