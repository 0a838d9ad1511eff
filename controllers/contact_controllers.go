package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

type ContactController struct {
	DB *gorm.DB
}

func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{DB: db}
}

func (cc *ContactController) CreateContact(c *gin.Context) {
	var req struct {
		UserID      *uint  `json:"user_id"`
		Email       string `json:"email" binding:"required,email"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	msg := models.ContactMessage{
		UserID:      req.UserID,
		Email:       req.Email,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := cc.DB.Create(&msg).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Message sent", gin.H{"contact_id": msg.ID})
}

func (cc *ContactController) GetContacts(c *gin.Context) {
	var messages []models.ContactMessage
	if err := cc.DB.Find(&messages).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of contact messages", messages)
}

func (cc *ContactController) DeleteContact(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid contact id"))
		return
	}

	result := cc.DB.Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("contact message not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Message deleted successfully", gin.H{"contact_id": id})
}
