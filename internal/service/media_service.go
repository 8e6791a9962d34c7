package service

import (
	appminio "Atmosphere/internal/pkg/minio"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type MediaService interface {
	// UploadImage 上传图片并返回对象名和公开访问地址
	UploadImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (objectName, url string, err error)
}

type MediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &MediaServiceImpl{}
}

func (s *MediaServiceImpl) UploadImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedImageExt[ext] {
		return "", "", ErrParamInvalid
	}

	objectName := fmt.Sprintf("images/%s/%s%s",
		time.Now().Format("200601"), uuid.NewString(), ext)

	_, err := appminio.Client.PutObject(ctx, appminio.MainBucket, objectName, reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", err
	}
	return objectName, appminio.GetPublicURL(objectName), nil
}
