package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"creditbook-backend/config"
	"creditbook-backend/models"
	"creditbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Description string  `json:"description"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

// CreateProduct creates a new catalog product
func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slug := utils.Slugify(input.Name)

	// Product names are unique
	var existing models.Product
	if err := config.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Product with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	product := models.Product{
		Name:        input.Name,
		Slug:        slug,
		Price:       input.Price,
		Description: input.Description,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts retrieves products page by page
func GetProducts(c *gin.Context) {
	page, limit := paginationParams(c, 30)

	var products []models.Product
	if err := config.DB.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	var total int64
	config.DB.Model(&models.Product{}).Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"data":  products,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetProductsBasic retrieves all products as id/name/price rows for pickers
func GetProductsBasic(c *gin.Context) {
	var products []struct {
		ID    uuid.UUID `json:"id"`
		Name  string    `json:"name"`
		Price float64   `json:"price"`
	}
	if err := config.DB.Model(&models.Product{}).
		Select("id", "name", "price").
		Scan(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// GetProduct retrieves a specific product by ID
func GetProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates an existing product. A price change moves the
// previous price into OldPrice; historical purchase line items keep their
// snapshotted purchase-time prices regardless.
func UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != product.Name {
		slug := utils.Slugify(*input.Name)

		var existing models.Product
		if err := config.DB.Where("slug = ? AND id <> ?", slug, product.ID).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Another product with this name already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}

		product.Name = *input.Name
		product.Slug = slug
	}

	if input.Price != nil && *input.Price != product.Price {
		previous := product.Price
		product.OldPrice = &previous
		product.Price = *input.Price
	}

	if input.Description != nil {
		product.Description = *input.Description
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

const maxPageSize = 100

// paginationParams reads page/limit query params with sane defaults and an
// upper bound on the page size
func paginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
