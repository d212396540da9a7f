package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/order-dashboard/hub"
	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
	"github.com/yeremiapane/order-dashboard/views"
)

const EventDashboard = "dashboard"

type DashboardController struct {
	Dashboard *services.Dashboard
	Hub       *hub.Hub
	Now       func() time.Time

	upgrader websocket.Upgrader
}

// NewDashboardController accepts websocket connections from allowedOrigin
// and from the service's own host.
func NewDashboardController(dashboard *services.Dashboard, h *hub.Hub, allowedOrigin string) *DashboardController {
	return &DashboardController{
		Dashboard: dashboard,
		Hub:       h,
		Now:       time.Now,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origin == allowedOrigin {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

func (dc *DashboardController) view() views.DashboardView {
	return views.Dashboard(dc.Dashboard.Snapshot(), dc.Dashboard.StatsCalculator().Location, dc.Now())
}

func (dc *DashboardController) GetDashboard(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Dashboard", dc.view())
}

func (dc *DashboardController) SetFilter(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	filter, err := models.ParseStatusFilter(req.Status)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dc.Dashboard.SetFilter(filter)
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Showing %s orders", filter), dc.view())
}

// Stream upgrades to a websocket that receives the current view and then
// every change.
func (dc *DashboardController) Stream(c *gin.Context) {
	ws, err := dc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("Websocket upgrade failed: %v", err)
		return
	}

	dc.Hub.Serve(ws, c.ClientIP(), func() hub.Message {
		return hub.Message{Event: EventDashboard, Data: dc.view()}
	})
}
