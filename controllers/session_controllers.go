package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
	"github.com/yeremiapane/order-dashboard/views"
)

type SessionController struct {
	Dashboard *services.Dashboard
	Auth      *services.AuthService
	Now       func() time.Time
}

func NewSessionController(dashboard *services.Dashboard, auth *services.AuthService) *SessionController {
	return &SessionController{Dashboard: dashboard, Auth: auth, Now: time.Now}
}

// SignIn resolves the identity, starts polling for it and returns the first
// dashboard view.
func (sc *SessionController) SignIn(c *gin.Context) {
	var form services.SignInForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant, err := sc.Dashboard.SignIn(c.Request.Context(), form)
	if err != nil {
		utils.ErrorLogger.Errorf("Signin failed for %s: %v", form.Email, err)
		respondServiceError(c, err)
		return
	}

	snap := sc.Dashboard.Snapshot()
	utils.RespondJSON(c, http.StatusOK, "Signin successful", gin.H{
		"restaurant": restaurant,
		"dashboard":  views.Dashboard(snap, sc.Dashboard.StatsCalculator().Location, sc.Now()),
	})
}

// SignUp activates an account; the caller signs in separately.
func (sc *SessionController) SignUp(c *gin.Context) {
	var form services.SignUpForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := sc.Auth.SignUp(c.Request.Context(), form)
	if err != nil {
		utils.ErrorLogger.Errorf("Signup failed for %s: %v", form.Email, err)
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Account activated successfully! Please sign in.", result)
}

func (sc *SessionController) GetSession(c *gin.Context) {
	restaurant := sc.Dashboard.CurrentRestaurant()
	utils.RespondJSON(c, http.StatusOK, "Current session", gin.H{
		"signedIn":   restaurant != nil,
		"restaurant": restaurant,
		"authMode":   sc.Auth.Mode(),
	})
}

func (sc *SessionController) SignOut(c *gin.Context) {
	sc.Dashboard.SignOut()
	utils.RespondJSON(c, http.StatusOK, "Signed out", nil)
}
