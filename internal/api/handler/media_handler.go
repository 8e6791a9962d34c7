package handler

import (
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 8 << 20

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadImage 图片上传，返回对象名与访问地址
func (h *MediaHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if fileHeader.Size > maxImageSize {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	objectName, url, err := h.mediaService.UploadImage(c.Request.Context(),
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, gin.H{"objectName": objectName, "url": url})
}
