package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"github.com/shashiranjanraj/crafthaven/pkg/storage"
)

// maxUploadBytes caps a single product image at 5 MB.
const maxUploadBytes = 5 << 20

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadController stores product images and returns their public URLs.
type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Image accepts a multipart upload under the "image" field and writes it
// to the configured storage disk.
// POST /api/seller/uploads
func (uc *UploadController) Image(c *ctx.Context) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxUploadBytes)

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "The image field is required.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		c.Error(http.StatusBadRequest, "The image must be a jpg, png, webp or gif file.")
		return
	}

	path := fmt.Sprintf("products/%d/%d%s", c.UserID(), time.Now().UnixMilli(), ext)
	if err := storage.PutStream(path, file); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ctx.M{"url": storage.URL(path)})
}
