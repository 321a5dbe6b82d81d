package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicepro-server/middleware"
)

func (a *App) apiUserDashboard(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	dash, err := a.dashboard.ForUser(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, dash)
}

func (a *App) apiHandymanDashboard(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	dash, err := a.dashboard.ForHandyman(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, dash)
}

func (a *App) apiAdminDashboard(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	stats, err := a.dashboard.ForAdmin(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats)
}

func (a *App) apiListUsers(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	users, err := a.auth.ListUsers(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, users)
}

func (a *App) apiDeleteUser(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.auth.DeleteUser(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "user deleted"})
}

func (a *App) apiApproveHandyman(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.auth.ApproveHandyman(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "handyman approved"})
}

func (a *App) apiListCommissions(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := a.commission.List(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	unpaidCommission, unpaidEarnings, err := a.commission.UnpaidTotals(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"commissions":       list,
		"unpaid_commission": unpaidCommission,
		"unpaid_earnings":   unpaidEarnings,
	})
}

func (a *App) apiMarkCommissionPaid(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.commission.MarkPaid(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "commission marked paid"})
}
