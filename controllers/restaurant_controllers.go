package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
)

type RestaurantController struct {
	Auth *services.AuthService
}

func NewRestaurantController(auth *services.AuthService) *RestaurantController {
	return &RestaurantController{Auth: auth}
}

// GetRestaurants lists the restaurants offered on the sign-up form.
func (rc *RestaurantController) GetRestaurants(c *gin.Context) {
	options, err := rc.Auth.Restaurants(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.Errorf("Error listing restaurants: %v", err)
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", options)
}
