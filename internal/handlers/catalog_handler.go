package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"gorm.io/gorm"
)

// CatalogHandler serves the read side of the catalog: products with their
// items, the lookup vocabularies and the relation graph.
type CatalogHandler struct {
	repo repository.CatalogRepository
}

func NewCatalogHandler(repo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// HealthCheck returns service health
// GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-service",
	})
}

// GetProduct returns a product with items, translations and attributes
// GET /api/v1/catalog/products/:code
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	code := c.Param("code")

	product, err := h.repo.GetProductByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "PRODUCT_NOT_FOUND",
					Message: "No product with code " + code,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DB_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// GetRelated returns the outgoing relation edges of a product or item
// GET /api/v1/catalog/related/:type/:code
func (h *CatalogHandler) GetRelated(c *gin.Context) {
	entityType := models.EntityType(strings.ToLower(c.Param("type")))
	if entityType != models.EntityTypeProduct && entityType != models.EntityTypeProductItem {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ENTITY_TYPE",
				Message: "type must be product or product_item",
			},
		})
		return
	}

	edges, err := h.repo.ListRelatedEdgesFrom(entityType, c.Param("code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DB_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: edges})
}

// GetCategories lists the category vocabulary
// GET /api/v1/catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DB_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: categories})
}

// GetTags lists the tag vocabulary
// GET /api/v1/catalog/tags
func (h *CatalogHandler) GetTags(c *gin.Context) {
	tags, err := h.repo.ListTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DB_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: tags})
}
