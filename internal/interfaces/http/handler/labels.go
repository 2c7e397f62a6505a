package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	labelsapp "github.com/vendora/backend/internal/application/labels"
	"github.com/vendora/backend/internal/domain/labels"
	"github.com/vendora/backend/internal/interfaces/http/dto"
)

// SheetGenerator is the application service surface the handler needs.
type SheetGenerator interface {
	Generate(ctx context.Context, req labelsapp.GenerateRequest) *labelsapp.GenerateResult
	Layout() labels.SheetLayout
}

// LabelHandler handles barcode label API endpoints
type LabelHandler struct {
	service SheetGenerator
	// vendorPrefix is the deployment-level fallback applied when a request
	// carries no prefix of its own.
	vendorPrefix string
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(service SheetGenerator, vendorPrefix string) *LabelHandler {
	return &LabelHandler{service: service, vendorPrefix: vendorPrefix}
}

// RegisterRoutes registers the label endpoints on the API group
func (h *LabelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/labels")
	group.POST("/sheets", h.GenerateSheets)
	group.GET("/layout", h.GetLayout)
}

// =============================================================================
// Request/Response Types
// =============================================================================

// ProductRequest is the read-only product snapshot consumed from the
// catalog module
type ProductRequest struct {
	ID              string          `json:"id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name            string          `json:"name" binding:"required" example:"Wireless Bluetooth Headphones"`
	Price           decimal.Decimal `json:"price" example:"299.99"`
	DiscountPrice   decimal.Decimal `json:"discount_price" example:"249.99"`
	VendorShortCode string          `json:"vendor_short_code" example:"VD01"`
}

// SheetItemRequest pairs a product with a print quantity
type SheetItemRequest struct {
	Product  ProductRequest `json:"product" binding:"required"`
	Quantity int            `json:"quantity" binding:"min=0" example:"10"`
}

// GenerateSheetsRequest represents a request to generate label sheets
type GenerateSheetsRequest struct {
	Items           []SheetItemRequest `json:"items" binding:"required,dive"`
	VendorPrefix    string             `json:"vendor_prefix" example:"VD01"`
	ShowVendor      *bool              `json:"show_vendor"`
	ShowPrice       *bool              `json:"show_price"`
	ShowProductInfo *bool              `json:"show_product_info"`
}

// =============================================================================
// Handlers
// =============================================================================

// GenerateSheets generates a print-ready PDF of barcode label sheets.
// The PDF streams back as the response body; generation metadata travels
// in headers so the document itself stays untouched.
func (h *LabelHandler) GenerateSheets(c *gin.Context) {
	var req GenerateSheetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "Invalid request body", bindingErrors(err)...))
		return
	}

	result := h.service.Generate(c.Request.Context(), h.toGenerateRequest(req))
	if !result.Success {
		status := http.StatusUnprocessableEntity
		code := dto.ErrCodeValidation
		if result.TotalUnits > 0 {
			// Pre-flight passed; the document backend failed.
			status = http.StatusBadGateway
			code = dto.ErrCodeGeneration
		}
		c.JSON(status, dto.NewErrorResponse(code, "Label generation failed", result.Errors...))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Request-ID", result.RequestID)
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
	c.Header("X-Total-Units", strconv.Itoa(result.TotalUnits))
	if len(result.Warnings) > 0 {
		c.Header("X-Generation-Warnings", strings.Join(result.Warnings, "; "))
	}
	c.Data(http.StatusOK, "application/pdf", result.Document)
}

// GetLayout returns the active sheet geometry so the admin UI can preview
// label positions against the physical stock.
func (h *LabelHandler) GetLayout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(h.service.Layout()))
}

// =============================================================================
// Helper Functions
// =============================================================================

func (h *LabelHandler) toGenerateRequest(req GenerateSheetsRequest) labelsapp.GenerateRequest {
	items := make([]labelsapp.RequestItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = labelsapp.RequestItem{
			Product: labels.ProductSnapshot{
				ID:              item.Product.ID,
				Name:            item.Product.Name,
				Price:           item.Product.Price,
				DiscountPrice:   item.Product.DiscountPrice,
				VendorShortCode: item.Product.VendorShortCode,
			},
			Quantity: item.Quantity,
		}
	}

	vendorPrefix := req.VendorPrefix
	if vendorPrefix == "" {
		vendorPrefix = h.vendorPrefix
	}

	return labelsapp.GenerateRequest{
		Items:           items,
		VendorPrefix:    vendorPrefix,
		ShowVendor:      boolOr(req.ShowVendor, true),
		ShowPrice:       boolOr(req.ShowPrice, true),
		ShowProductInfo: boolOr(req.ShowProductInfo, true),
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// bindingErrors flattens validator errors into human-readable reasons.
func bindingErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	details := make([]string, len(verrs))
	for i, fe := range verrs {
		details[i] = fmt.Sprintf("field %s failed on the %q rule", fe.Field(), fe.Tag())
	}
	return details
}
