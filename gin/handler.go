package gin

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/forgeads/forgeads"
	"github.com/gin-gonic/gin"
)

// MaxUploadSize bounds uploaded documents.
const MaxUploadSize = 20 << 20

// Default page size of the products listing.
const defaultProductsLimit = 20

// Handler handles API requests.
type Handler struct {
	creatives forgeads.CreativeService
	products  forgeads.ProductService
}

// NewHandler creates a new Handler.
func NewHandler(creatives forgeads.CreativeService, products forgeads.ProductService) *Handler {
	return &Handler{creatives: creatives, products: products}
}

// AnalyzeProduct handles POST /api/analyze. The source is either a JSON
// body with url, or base64 data and mimeType, or a multipart form with a
// file field.
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	src, err := bindSource(c)
	if err != nil {
		Error(c, err)
		return
	}

	result, err := h.creatives.AnalyzeProduct(c.Request.Context(), src)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateCopy handles POST /api/copy.
func (h *Handler) GenerateCopy(c *gin.Context) {
	var req forgeads.CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, invalidBody())
		return
	}

	ad, err := h.creatives.GenerateCopy(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ad)
}

// GenerateImage handles POST /api/image.
func (h *Handler) GenerateImage(c *gin.Context) {
	var req forgeads.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, invalidBody())
		return
	}

	img, err := h.creatives.GenerateImage(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(c *gin.Context) {
	filter := forgeads.ProductFilter{Limit: defaultProductsLimit}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			Error(c, forgeads.Errorf(forgeads.EINVALID, "Parâmetro limit inválido."))
			return
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			Error(c, forgeads.Errorf(forgeads.EINVALID, "Parâmetro offset inválido."))
			return
		}
		filter.Offset = n
	}
	if v := c.Query("sourceUrl"); v != "" {
		filter.SourceURL = &v
	}

	products, err := h.products.FindProducts(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}
	if products == nil {
		products = []*forgeads.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct handles GET /api/products/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.products.FindProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindSource(c *gin.Context) (*forgeads.Source, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var src forgeads.Source
		if err := c.ShouldBindJSON(&src); err != nil {
			return nil, invalidBody()
		}
		return &src, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, forgeads.Errorf(forgeads.EINVALID, "Envie um arquivo no campo file.")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return &forgeads.Source{
		Data:      data,
		MIMEType:  mimeType,
		FileName:  fh.Filename,
		Objective: forgeads.Objective(c.PostForm("objective")),
	}, nil
}

func invalidBody() error {
	return forgeads.Errorf(forgeads.EINVALID, "Corpo da requisição inválido.")
}

// Error writes err as a JSON error response with the status for its
// code. The body carries the user message and the code.
func Error(c *gin.Context, err error) {
	code := forgeads.ErrorCode(err)
	_ = c.Error(err)
	c.JSON(Status(code), gin.H{
		"error": forgeads.UserMessage(err),
		"code":  code,
	})
}

// Status returns the HTTP status for an error code.
func Status(code string) int {
	switch code {
	case forgeads.EINVALID:
		return http.StatusBadRequest
	case forgeads.EINSUFFICIENT, forgeads.EUNANALYZABLE:
		return http.StatusUnprocessableEntity
	case forgeads.EUNREACHABLE, forgeads.EUPSTREAM:
		return http.StatusBadGateway
	case forgeads.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
