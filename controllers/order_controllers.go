package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
	"github.com/yeremiapane/order-dashboard/views"
)

type OrderController struct {
	Dashboard *services.Dashboard
	Now       func() time.Time
}

func NewOrderController(dashboard *services.Dashboard) *OrderController {
	return &OrderController{Dashboard: dashboard, Now: time.Now}
}

// GetOrders lists the current orders as cards. ?status= narrows the list
// without changing the dashboard filter.
func (oc *OrderController) GetOrders(c *gin.Context) {
	filter, err := models.ParseStatusFilter(c.Query("status"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	snap := oc.Dashboard.Snapshot()
	orders := services.FilterOrders(snap.Orders, filter)
	loc := oc.Dashboard.StatsCalculator().Location

	data := gin.H{
		"status": filter,
		"orders": views.OrderCards(orders, loc),
		"counts": snap.Stats.Counts,
	}
	if len(orders) == 0 {
		data["empty"] = views.EmptyStateMessage(filter)
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", data)
}

func (oc *OrderController) Refresh(c *gin.Context) {
	if err := oc.Dashboard.Refresh(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders refreshed", oc.view())
}

// CompleteOrder marks one order completed. The list is refreshed either
// way, so a failure still leaves the dashboard current.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	if err := oc.Dashboard.MarkCompleted(c.Request.Context(), orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order marked as completed", oc.view())
}

func (oc *OrderController) view() views.DashboardView {
	return views.Dashboard(oc.Dashboard.Snapshot(), oc.Dashboard.StatsCalculator().Location, oc.Now())
}
