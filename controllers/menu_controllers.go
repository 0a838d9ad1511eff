package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenu -> full catalog, both languages, nested categories and diets
func (mc *MenuController) GetMenu(c *gin.Context) {
	var products []models.Product
	if err := mc.DB.Preload("Categories").Preload("Diets").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductsLocalized -> GET /menu/products/:lang, one language only
func (mc *MenuController) GetProductsLocalized(c *gin.Context) {
	lang := c.Param("lang")
	if lang != "fi" {
		lang = "en"
	}

	var products []models.Product
	if err := mc.DB.Preload("Categories").Preload("Diets").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	localized := make([]models.LocalizedProduct, 0, len(products))
	for _, p := range products {
		localized = append(localized, p.Localized(lang))
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", localized)
}

func (mc *MenuController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := mc.DB.Preload("Categories").Preload("Diets").First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// parseIDList reads repeated or comma-separated form values into ids.
func parseIDList(values []string) ([]uint, error) {
	var ids []uint
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid id %q", part)
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}

// Client-caused association failures; anything else out of a catalog
// write transaction is a store error.
var (
	errUnknownCategory = errors.New("unknown category id")
	errUnknownDiet     = errors.New("unknown diet id")
)

func (mc *MenuController) loadCategories(tx *gorm.DB, ids []uint) ([]models.Category, error) {
	var cats []models.Category
	if len(ids) == 0 {
		return cats, nil
	}
	if err := tx.Find(&cats, ids).Error; err != nil {
		return nil, err
	}
	if len(cats) != len(ids) {
		return nil, errUnknownCategory
	}
	return cats, nil
}

func (mc *MenuController) loadDiets(tx *gorm.DB, ids []uint) ([]models.Diet, error) {
	var diets []models.Diet
	if len(ids) == 0 {
		return diets, nil
	}
	if err := tx.Find(&diets, ids).Error; err != nil {
		return nil, err
	}
	if len(diets) != len(ids) {
		return nil, errUnknownDiet
	}
	return diets, nil
}

// CreateProduct -> POST /menu (admin, multipart). The product row and its
// category/diet links land in one transaction.
func (mc *MenuController) CreateProduct(c *gin.Context) {
	var req struct {
		NameFi string  `form:"name_fi" binding:"required"`
		NameEn string  `form:"name_en" binding:"required"`
		DescFi string  `form:"desc_fi"`
		DescEn string  `form:"desc_en"`
		Price  float64 `form:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	categoryIDs, err := parseIDList(c.PostFormArray("categories"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dietIDs, err := parseIDList(c.PostFormArray("diets"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		NameFi:   req.NameFi,
		NameEn:   req.NameEn,
		DescFi:   req.DescFi,
		DescEn:   req.DescEn,
		Price:    req.Price,
		Filename: c.GetString("filename"),
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		cats, err := mc.loadCategories(tx, categoryIDs)
		if err != nil {
			return err
		}
		diets, err := mc.loadDiets(tx, dietIDs)
		if err != nil {
			return err
		}
		product.Categories = cats
		product.Diets = diets
		return tx.Create(&product).Error
	})
	if err != nil {
		if errors.Is(err, errUnknownCategory) || errors.Is(err, errUnknownDiet) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Product created: %s (id=%d)", product.NameEn, product.ID)
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct -> PUT /menu/:id (admin). Fields not sent keep their old
// values; the association sets are replaced wholesale inside the same
// transaction as the row update, so a partial link swap is never visible.
func (mc *MenuController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := mc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	setIf := func(key string, dst *string) {
		if v, ok := c.GetPostForm(key); ok {
			*dst = v
		}
	}
	setIf("name_fi", &product.NameFi)
	setIf("name_en", &product.NameEn)
	setIf("desc_fi", &product.DescFi)
	setIf("desc_en", &product.DescEn)

	if priceStr, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
			return
		}
		product.Price = price
	}
	if filename := c.GetString("filename"); filename != "" {
		product.Filename = filename
	}

	_, replaceCategories := c.GetPostFormArray("categories")
	_, replaceDiets := c.GetPostFormArray("diets")

	categoryIDs, err := parseIDList(c.PostFormArray("categories"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dietIDs, err := parseIDList(c.PostFormArray("diets"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		if replaceCategories {
			cats, err := mc.loadCategories(tx, categoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Categories").Replace(cats); err != nil {
				return err
			}
		}
		if replaceDiets {
			diets, err := mc.loadDiets(tx, dietIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Diets").Replace(diets); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errUnknownCategory) || errors.Is(err, errUnknownDiet) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Re-read with associations for the response.
	if err := mc.DB.Preload("Categories").Preload("Diets").First(&product, product.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct -> DELETE /menu/:id (admin)
func (mc *MenuController) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := mc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Diets").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
