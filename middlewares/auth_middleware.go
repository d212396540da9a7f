package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
)

// ContextRestaurantKey holds the signed-in *models.Restaurant.
const ContextRestaurantKey = "restaurant"

type SessionReader interface {
	CurrentRestaurant() *models.Restaurant
}

// SessionRequired rejects requests while nobody is signed in on this
// terminal.
func SessionRequired(session SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant := session.CurrentRestaurant()
		if restaurant == nil {
			utils.RespondError(c, http.StatusUnauthorized, services.ErrNotSignedIn)
			c.Abort()
			return
		}

		c.Set(ContextRestaurantKey, restaurant)
		c.Next()
	}
}

func CurrentRestaurant(c *gin.Context) *models.Restaurant {
	v, ok := c.Get(ContextRestaurantKey)
	if !ok {
		return nil
	}
	r, _ := v.(*models.Restaurant)
	return r
}
