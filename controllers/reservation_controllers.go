package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/middlewares"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := rc.DB.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// freeTables returns tables big enough for the party that have no
// reservation on the given date, smallest first.
func (rc *ReservationController) freeTables(date string, peopleCount int) ([]models.DiningTable, error) {
	var tables []models.DiningTable
	err := rc.DB.
		Where("table_size >= ?", peopleCount).
		Where("id NOT IN (?)", rc.DB.Model(&models.Reservation{}).
			Select("table_id").
			Where("reservation_date = ?", date)).
		Order("table_size ASC").
		Find(&tables).Error
	return tables, err
}

// CreateReservation -> POST /reservations/reserve.
//
// The availability check and the insert cannot be made atomic by a read
// alone, so the unique (table_id, reservation_date) index is the final
// arbiter: each candidate table is tried in its own transaction and a
// duplicate-key loss moves on to the next one. When every candidate is
// taken the endpoint answers 200 with available=false and creates
// nothing.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Date        string `json:"date" binding:"required"`
		Time        string `json:"time" binding:"required"`
		PeopleCount int    `json:"people_count" binding:"required,gt=0"`
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Phone       string `json:"phone" binding:"required"`
		Comments    string `json:"comments"`
		UserID      *uint  `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}

	candidates, err := rc.freeTables(req.Date, req.PeopleCount)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, table := range candidates {
		reservation := models.Reservation{
			UserID:          req.UserID,
			TableID:         table.ID,
			ReservationDate: req.Date,
			ReservationTime: req.Time,
			PeopleCount:     req.PeopleCount,
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
			Comments:        req.Comments,
		}

		err := rc.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&reservation).Error
		})
		if err == nil {
			utils.InfoLogger.Printf("Reservation %d created: table %d on %s", reservation.ID, table.ID, req.Date)
			utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", gin.H{
				"reservation_id": reservation.ID,
			})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race for this table; try the next candidate.
			continue
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "No available tables for the selected date and people count", gin.H{
		"available": false,
	})
}

// GetReservationsByUserID -> GET /reservations/:id
func (rc *ReservationController) GetReservationsByUserID(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Where("user_id = ?", userID).Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations for user", reservations)
}

// DeleteReservation -> DELETE /reservations/:reservationId, owner or admin
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservationId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	if middlewares.ContextRole(c) != models.RoleAdmin {
		callerID := middlewares.ContextUserID(c)
		if reservation.UserID == nil || *reservation.UserID != callerID {
			utils.RespondError(c, http.StatusForbidden, errors.New("you are not authorized to delete this reservation"))
			return
		}
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", gin.H{"reservation_id": id})
}
