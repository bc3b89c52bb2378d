package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/tunel-admin/internal/api/dto"
	"github.com/cuongbtq/tunel-admin/internal/api/storage"
	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/cuongbtq/tunel-admin/internal/upload"
	"github.com/gin-gonic/gin"
)

const (
	imageField  = "image"
	imagesField = "images"

	// multipartOverhead is the slack above the file limit allowed for
	// boundaries and part headers
	multipartOverhead int64 = 1 << 20
)

// ContentHandler handles homepage content and image uploads
type ContentHandler struct {
	base
	content  *storage.ContentStore
	uploader *upload.Uploader
}

func NewContentHandler(deps *Dependencies) *ContentHandler {
	return &ContentHandler{
		base:     newBase(deps, resourceNames{singular: "Content", kind: "content"}),
		content:  deps.Content,
		uploader: deps.Uploader,
	}
}

// GetHomepage handles GET /api/content/homepage
func (h *ContentHandler) GetHomepage(c *gin.Context) {
	content, updatedAt := h.content.Homepage()
	c.JSON(http.StatusOK, dto.HomepageResponse{
		Success:     true,
		Content:     content,
		LastUpdated: updatedAt,
	})
}

// UpdateHomepage handles PUT /api/content/homepage. Only the sections
// present in the body are replaced.
func (h *ContentHandler) UpdateHomepage(c *gin.Context) {
	var req dto.UpdateHomepageRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Content) == 0 {
		Abort(c, http.StatusBadRequest, "Content is required", "")
		return
	}

	content, ignored := h.content.MergeHomepage(req.Content)
	_, updatedAt := h.content.Homepage()

	h.logger.Info("Homepage content updated",
		slog.Int("sections", len(req.Content)-len(ignored)),
		slog.Any("ignored", ignored),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionHomepageUpdated, "homepage")

	c.JSON(http.StatusOK, dto.HomepageResponse{
		Success:     true,
		Content:     content,
		LastUpdated: updatedAt,
		Message:     "Homepage content updated successfully",
		Ignored:     ignored,
	})
}

// UploadImage handles POST /api/content/upload with a single "image" part
func (h *ContentHandler) UploadImage(c *gin.Context) {
	h.limitBody(c, 1)

	fh, err := c.FormFile(imageField)
	if err != nil {
		if isTooLarge(err) {
			h.respondError(c, upload.ErrTooLarge, "Failed to upload image")
			return
		}
		Abort(c, http.StatusBadRequest, "No file uploaded", "")
		return
	}

	img, err := h.uploader.Save(c.Request.Context(), imageField, fh)
	if err != nil {
		h.respondError(c, err, "Failed to upload image")
		return
	}

	h.logger.Info("Image uploaded",
		slog.String("filename", img.Filename),
		slog.Int64("size", img.Size),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionImageUploaded, img.Filename, "original_name", img.OriginalName)

	c.JSON(http.StatusOK, dto.ImageResponse{
		Success: true,
		Image:   img,
		Message: "Image uploaded successfully",
	})
}

// UploadImages handles POST /api/content/upload/multiple with up to
// upload.MaxFiles "images" parts. Nothing is stored unless every file passes.
func (h *ContentHandler) UploadImages(c *gin.Context) {
	h.limitBody(c, upload.MaxFiles)

	form, err := c.MultipartForm()
	if err != nil {
		if isTooLarge(err) {
			h.respondError(c, upload.ErrTooLarge, "Failed to upload images")
			return
		}
		Abort(c, http.StatusBadRequest, "No files uploaded", "")
		return
	}

	files := form.File[imagesField]
	if len(files) == 0 {
		Abort(c, http.StatusBadRequest, "No files uploaded", "")
		return
	}

	images, err := h.uploader.SaveAll(c.Request.Context(), imagesField, files)
	if err != nil {
		h.respondError(c, err, "Failed to upload images")
		return
	}

	h.logger.Info("Images uploaded",
		slog.Int("count", len(images)),
		slog.String("admin_email", adminEmail(c)),
	)
	for _, img := range images {
		h.recordEntity(c, audit.ActionImageUploaded, img.Filename, "original_name", img.OriginalName)
	}

	c.JSON(http.StatusOK, dto.ImagesResponse{
		Success: true,
		Images:  images,
		Message: fmt.Sprintf("%d images uploaded successfully", len(images)),
	})
}

// ListImages handles GET /api/content/images
func (h *ContentHandler) ListImages(c *gin.Context) {
	images, err := h.uploader.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch images")
		return
	}
	c.JSON(http.StatusOK, dto.ImageListResponse{
		Success: true,
		Images:  images,
		Total:   len(images),
	})
}

// DeleteImage handles DELETE /api/content/images/:filename
func (h *ContentHandler) DeleteImage(c *gin.Context) {
	filename := c.Param("filename")
	if err := h.uploader.Delete(c.Request.Context(), filename); err != nil {
		h.respondError(c, err, "Failed to delete image")
		return
	}

	h.logger.Info("Image deleted",
		slog.String("filename", filename),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionImageDeleted, filename)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image deleted successfully",
	})
}

// limitBody caps the request body at files uploads of the maximum size
func (h *ContentHandler) limitBody(c *gin.Context, files int) {
	limit := int64(files)*h.uploader.MaxSize() + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
