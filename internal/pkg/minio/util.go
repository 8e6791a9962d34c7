package minio

import (
	"Atmosphere/internal/api/config"
	"fmt"
)

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.UsePublicLink {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.ExternalEndpoint, MainBucket, objectName)
}
