package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JarkkoKarki/Web-Project-Backend/services"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

type RouteController struct {
	Transit *services.TransitService
}

func NewRouteController(transit *services.TransitService) *RouteController {
	return &RouteController{Transit: transit}
}

func coordinateParams(c *gin.Context) (olat, olng, lat, lng string, err error) {
	olat = c.Param("olat")
	olng = c.Param("olng")
	lat = c.Param("lat")
	lng = c.Param("lng")
	for _, v := range []string{olat, olng, lat, lng} {
		if _, parseErr := strconv.ParseFloat(v, 64); parseErr != nil {
			return "", "", "", "", errors.New("all coordinates (olat, olng, lat, lng) must be decimal numbers")
		}
	}
	return olat, olng, lat, lng, nil
}

// GetRoute -> GET /route/:olat/:olng/:lat/:lng
func (rc *RouteController) GetRoute(c *gin.Context) {
	olat, olng, lat, lng, err := coordinateParams(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	data, err := rc.Transit.PlanRoute(olat, olng, lat, lng)
	if err != nil {
		utils.ErrorLogger.Printf("Route lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to fetch route data"))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// GetRouteLegs -> GET /route/legs/:olat/:olng/:lat/:lng
func (rc *RouteController) GetRouteLegs(c *gin.Context) {
	olat, olng, lat, lng, err := coordinateParams(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	data, err := rc.Transit.PlanLegs(olat, olng, lat, lng)
	if err != nil {
		utils.ErrorLogger.Printf("Route legs lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to fetch legs data"))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
