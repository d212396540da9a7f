package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/order-dashboard/utils"
)

// OrderActionLogger records the outcome of order mutations.
func OrderActionLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")
		utils.InfoLogger.Printf("Completing order %s", orderID)

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Order %s completed", orderID)
		} else {
			utils.ErrorLogger.Errorf("Failed to complete order %s (status %d)", orderID, c.Writer.Status())
		}
	}
}
