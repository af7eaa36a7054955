package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/freshfruit/storefront/apperrors"
	"github.com/freshfruit/storefront/models"

	"github.com/gin-gonic/gin"
)

type IProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

type ProductController struct {
	productService IProductService
}

func NewProductController(productService IProductService) *ProductController {
	return &ProductController{productService: productService}
}

// GetProducts returns the full catalog
func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.productService.List(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID returns one product
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	product, err := pc.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
