package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/application"
	"github.com/oksasatya/gadget-store-api/pkg/response"
)

// multipart overhead allowed on top of the image cap
const formOverheadBytes = 1 << 20

type CatalogHandler struct {
	Svc            *application.CatalogService
	Logger         *logrus.Logger
	UploadMaxBytes int64
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger, uploadMaxBytes int64) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger, UploadMaxBytes: uploadMaxBytes}
}

// productForm is accepted as multipart form data (with an optional image
// file part) or as JSON when the image is an external URL.
type productForm struct {
	Name          string `form:"name" json:"name" binding:"max=200"`
	Category      string `form:"category" json:"category" binding:"max=100"`
	Price         string `form:"price" json:"-"`
	PriceJSON     any    `form:"-" json:"price"`
	Desc          string `form:"desc" json:"desc"`
	Specs         string `form:"specs" json:"specs"`
	Image         string `form:"image" json:"image" binding:"omitempty,url"`
	ExistingImage string `form:"existingImage" json:"existingImage"`
}

func (f productForm) price() (float64, error) {
	raw := strings.TrimSpace(f.Price)
	switch v := f.PriceJSON.(type) {
	case float64:
		return v, nil
	case string:
		raw = strings.TrimSpace(v)
	}
	if raw == "" {
		return 0, application.NewValidationError("Price is required.")
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, application.NewValidationError("Price must be a number.")
	}
	return p, nil
}

func (f productForm) input() (application.ProductInput, error) {
	price, err := f.price()
	if err != nil {
		return application.ProductInput{}, err
	}
	return application.ProductInput{
		Name:     f.Name,
		Category: f.Category,
		Price:    price,
		Desc:     f.Desc,
		Specs:    f.Specs,
		Image:    f.Image,
	}, nil
}

// bindProduct decodes the form and opens the uploaded image, if any. The
// returned closer must be called once the upload has been consumed.
func (h *CatalogHandler) bindProduct(c *gin.Context) (productForm, *application.ImageUpload, func(), error) {
	noop := func() {}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.UploadMaxBytes+formOverheadBytes)

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		return form, nil, noop, err
	}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return form, nil, noop, nil
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil, noop, nil
	}
	if err != nil {
		return form, nil, noop, err
	}
	if fh.Size > h.UploadMaxBytes {
		return form, nil, noop, errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return form, nil, noop, err
	}
	upload := &application.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}
	return form, upload, func() { _ = f.Close() }, nil
}

// List GET /api/apps
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "products", gin.H{"count": len(items)})
}

// Search GET /api/apps/search?q=&size=
func (h *CatalogHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	items, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "search results", gin.H{"count": len(items)})
}

// Create POST /api/apps
func (h *CatalogHandler) Create(c *gin.Context) {
	form, upload, done, err := h.bindProduct(c)
	defer done()
	if err != nil {
		h.writeFormError(c, err)
		return
	}
	in, err := form.input()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), in, upload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product created", nil)
}

// Update PUT /api/apps/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	form, upload, done, err := h.bindProduct(c)
	defer done()
	if err != nil {
		h.writeFormError(c, err)
		return
	}
	in, err := form.input()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, upload, form.ExistingImage)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

// Delete DELETE /api/apps/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "App deleted successfully"}, "App deleted successfully", nil)
}

var errFileTooLarge = errors.New("upload exceeds size limit")

func (h *CatalogHandler) writeFormError(c *gin.Context, err error) {
	if errors.Is(err, errFileTooLarge) {
		response.Error[any](c, http.StatusBadRequest, msgFileTooLarge, nil)
		return
	}
	writeBindError(c, "Image upload failed.", err)
}
