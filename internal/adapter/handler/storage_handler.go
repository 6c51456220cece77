package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/errors"
	"github.com/meetwise/meetwise/internal/infrastructure/storage"
)

// StorageTest handles storage diagnostics endpoints
type StorageTest struct {
	minioClient *storage.MinIOClient
	logger      *zap.Logger
}

// NewStorageTest creates a new storage test handler
func NewStorageTest(minioClient *storage.MinIOClient, logger *zap.Logger) *StorageTest {
	return &StorageTest{minioClient: minioClient, logger: logger}
}

// TestUpload uploads a small text object to verify credentials and bucket access
// @Summary      Test storage upload
// @Tags         Storage Test
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /test/storage/upload [post]
func (h *StorageTest) TestUpload(c echo.Context) error {
	ctx := c.Request().Context()

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	content := fmt.Sprintf("connection test at %s\n", timestamp)
	objectName := fmt.Sprintf("test/connection-test-%s.txt", timestamp)

	reader := strings.NewReader(content)
	if err := h.minioClient.UploadFile(ctx, objectName, reader, int64(len(content)), "text/plain"); err != nil {
		h.logger.Error("failed to upload test file",
			zap.String("object_name", objectName),
			zap.Error(err))
		return HandleError(h.logger, c, errors.ErrStorageFailed("upload", err))
	}

	url, err := h.minioClient.GetFileURL(ctx, objectName, time.Hour)
	if err != nil {
		h.logger.Warn("uploaded but failed to presign",
			zap.String("object_name", objectName),
			zap.Error(err))
		url = ""
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"message":     "Upload successful",
		"object_name": objectName,
		"url":         url,
		"timestamp":   timestamp,
	})
}

// TestBucketInfo returns bucket connection info
// @Summary      Test storage bucket
// @Tags         Storage Test
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /test/storage/bucket [get]
func (h *StorageTest) TestBucketInfo(c echo.Context) error {
	info, err := h.minioClient.GetBucketInfo(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("bucket_info", err))
	}
	return HandleSuccess(h.logger, c, info)
}

// TestListFiles lists objects under an optional prefix
// @Summary      Test storage listing
// @Tags         Storage Test
// @Produce      json
// @Param        prefix  query  string  false  "Object prefix"
// @Success      200  {object}  map[string]interface{}
// @Router       /test/storage/files [get]
func (h *StorageTest) TestListFiles(c echo.Context) error {
	prefix := c.QueryParam("prefix")

	files, err := h.minioClient.ListFiles(c.Request().Context(), prefix)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"prefix": prefix,
		"count":  len(files),
		"files":  files,
	})
}

// TestDownloadURL presigns a download URL for an object
// @Summary      Test storage presign
// @Tags         Storage Test
// @Produce      json
// @Param        object  query  string  true  "Object key"
// @Success      200  {object}  map[string]interface{}
// @Router       /test/storage/url [get]
func (h *StorageTest) TestDownloadURL(c echo.Context) error {
	object := c.QueryParam("object")
	if object == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("object is required"))
	}

	url, err := h.minioClient.GetFileURL(c.Request().Context(), object, time.Hour)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"object": object,
		"url":    url,
	})
}
