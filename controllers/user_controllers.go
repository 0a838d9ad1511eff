package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/middlewares"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register -> self-service registration, always role "user". Accepts a
// multipart form so an avatar can ride along; the FileUpload middleware
// leaves its stored name in the context.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		FirstName string `form:"first_name"`
		LastName  string `form:"last_name"`
		Username  string `form:"username" binding:"required"`
		Email     string `form:"email" binding:"required,email"`
		Password  string `form:"password" binding:"required,min=8"`
		Address   string `form:"address"`
		Phone     string `form:"phone"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		Address:   req.Address,
		Phone:     req.Phone,
		Role:      models.RoleUser,
		Filename:  c.GetString("filename"),
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("username or email already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Username)

	utils.RespondJSON(c, http.StatusCreated, "User created successfully", gin.H{
		"user_id": user.ID,
	})
}

// GetAllUsers -> admin only (enforced in the router)
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

func (uc *UserController) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User detail", user)
}

// UpdateUser -> owner or admin; only present form fields are touched.
// Role changes are restricted to admins.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	setIf := func(key string, dst *string) {
		if v, ok := c.GetPostForm(key); ok {
			*dst = v
		}
	}
	setIf("first_name", &user.FirstName)
	setIf("last_name", &user.LastName)
	setIf("username", &user.Username)
	setIf("email", &user.Email)
	setIf("address", &user.Address)
	setIf("phone", &user.Phone)

	if password, ok := c.GetPostForm("password"); ok && password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		user.Password = string(hashed)
	}

	if roleStr, ok := c.GetPostForm("role"); ok {
		if middlewares.ContextRole(c) != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("only admins may change roles"))
			return
		}
		role := models.Role(roleStr)
		if !role.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role"))
			return
		}
		user.Role = role
	}

	if filename := c.GetString("filename"); filename != "" {
		user.Filename = filename
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("username or email already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	result := uc.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted successfully", gin.H{"user_id": id})
}
