package imagehost

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// 本地兜底的最大边长，与图床的 c_fit,w_500,h_500 一致
const fitSize = 500

// 超过该尺寸不解码，原样写入
const maxDecodeSide = 8000

// LocalStore 本地磁盘图片存储，文件通过 /uploads 静态路由对外提供
type LocalStore struct {
	dir string
}

// NewLocalStore 创建本地存储，目录不存在时创建
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir 存储目录
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save 写入图片，可解码的 png/jpeg/gif 缩放到 500x500 以内，其余原样写入；返回文件名
func (s *LocalStore) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	mt := mimetype.Detect(data)
	ext := mt.Extension()
	if ext == "" {
		ext = ".bin"
	}

	out := data
	if fitted, fittedExt, err := fit(data, mt); err == nil {
		out, ext = fitted, fittedExt
	}

	filename := uuid.New().String() + strings.ToLower(ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), out, 0o644); err != nil {
		return "", fmt.Errorf("write image failed: %w", err)
	}
	return filename, nil
}

// fit 解码并缩放，gif 只取首帧并转为 png
func fit(data []byte, mt *mimetype.MIME) ([]byte, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if cfg.Width > maxDecodeSide || cfg.Height > maxDecodeSide {
		return nil, "", fmt.Errorf("image too large to fit: %dx%d", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	fitted := resize.Thumbnail(fitSize, fitSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch {
	case mt.Is("image/jpeg"):
		err = jpeg.Encode(&buf, fitted, &jpeg.Options{Quality: 90})
		return buf.Bytes(), ".jpg", err
	default:
		err = png.Encode(&buf, fitted)
		return buf.Bytes(), ".png", err
	}
}
