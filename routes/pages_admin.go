package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
	"servicepro-server/models"
	"servicepro-server/services"
)

func (a *App) pageAdminDashboard(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	stats, err := a.dashboard.ForAdmin(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/")
		return
	}
	a.render(c, "admin_dashboard.html", gin.H{
		"Title": "Admin overview",
		"Stats": stats,
	})
}

func (a *App) pageAdminUsers(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	users, err := a.auth.ListUsers(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	a.render(c, "admin_users.html", gin.H{
		"Title": "Users",
		"Users": users,
	})
}

func (a *App) pageAdminEditUserForm(c *gin.Context) {
	_, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid user"), "/admin/users")
		return
	}
	target, err := a.auth.GetUser(id)
	if err != nil {
		a.pageError(c, err, "/admin/users")
		return
	}
	a.render(c, "admin_user_edit.html", gin.H{
		"Title":  "Edit user",
		"Target": target,
	})
}

func (a *App) pageAdminEditUser(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid user"), "/admin/users")
		return
	}
	input := services.ProfileInput{
		Email:     c.PostForm("email"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Phone:     c.PostForm("phone"),
	}
	if _, err := a.auth.UpdateProfile(pageActor(user), id, input); err != nil {
		a.pageError(c, err, "/admin/users")
		return
	}
	a.addFlash(c, "success", "user updated")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (a *App) pageAdminDeleteUser(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid user"), "/admin/users")
		return
	}
	if err := a.auth.DeleteUser(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/users")
		return
	}
	a.addFlash(c, "success", "user deleted")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (a *App) pageAdminApproveHandyman(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid user"), "/admin/users")
		return
	}
	if err := a.auth.ApproveHandyman(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/users")
		return
	}
	a.addFlash(c, "success", "handyman approved")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (a *App) pageAdminBookings(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	actor := pageActor(user)
	bookings, err := a.bookings.ListAll(actor)
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	users, err := a.auth.ListUsers(actor)
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	var handymen []models.User
	for _, u := range users {
		if u.IsHandyman() && u.IsApproved {
			handymen = append(handymen, u)
		}
	}
	a.render(c, "admin_bookings.html", gin.H{
		"Title":    "Bookings",
		"Bookings": bookings,
		"Handymen": handymen,
	})
}

func (a *App) pageAdminApproveBooking(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid booking"), "/admin/bookings")
		return
	}
	if err := a.bookings.Approve(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/bookings")
		return
	}
	a.addFlash(c, "success", "booking approved")
	c.Redirect(http.StatusSeeOther, "/admin/bookings")
}

func (a *App) pageAdminDeclineBooking(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid booking"), "/admin/bookings")
		return
	}
	if err := a.bookings.Decline(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/bookings")
		return
	}
	a.addFlash(c, "success", "booking declined")
	c.Redirect(http.StatusSeeOther, "/admin/bookings")
}

func (a *App) pageAdminAssignHandyman(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid booking"), "/admin/bookings")
		return
	}
	handymanID, err := parseUint(c.PostForm("handyman_id"))
	if err != nil {
		a.pageError(c, apperr.Validation("pick a handyman"), "/admin/bookings")
		return
	}
	if err := a.bookings.AssignHandyman(pageActor(user), id, handymanID); err != nil {
		a.pageError(c, err, "/admin/bookings")
		return
	}
	a.addFlash(c, "success", "handyman assigned")
	c.Redirect(http.StatusSeeOther, "/admin/bookings")
}

func (a *App) pageAdminServices(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	actor := pageActor(user)
	list, err := a.catalog.ListServices(&actor, nil)
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	a.render(c, "admin_services.html", gin.H{
		"Title":    "All services",
		"Services": list,
	})
}

func (a *App) pageAdminServiceForm(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	groups, err := a.catalog.ListServiceGroups(false)
	if err != nil {
		a.pageError(c, err, "/admin/services")
		return
	}
	users, err := a.auth.ListUsers(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/admin/services")
		return
	}
	var handymen []models.User
	for _, u := range users {
		if u.IsHandyman() {
			handymen = append(handymen, u)
		}
	}
	a.render(c, "service_form.html", gin.H{
		"Title":    "Add service",
		"Groups":   groups,
		"Handymen": handymen,
		"Action":   "/admin/services/add",
	})
}

func (a *App) pageAdminAddService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	input := serviceInputFromForm(c)
	if id, err := parseUint(c.PostForm("handyman_id")); err == nil {
		input.HandymanID = id
	}
	if _, err := a.catalog.CreateService(pageActor(user), input); err != nil {
		a.pageError(c, err, "/admin/services/add")
		return
	}
	a.addFlash(c, "success", "service created")
	c.Redirect(http.StatusSeeOther, "/admin/services")
}

func (a *App) pageAdminEditServiceForm(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/admin/services")
		return
	}
	actor := pageActor(user)
	svc, err := a.catalog.GetService(&actor, id)
	if err != nil {
		a.pageError(c, err, "/admin/services")
		return
	}
	groups, err := a.catalog.ListServiceGroups(false)
	if err != nil {
		a.pageError(c, err, "/admin/services")
		return
	}
	a.render(c, "service_form.html", gin.H{
		"Title":   "Edit service",
		"Service": svc,
		"Groups":  groups,
		"Action":  "/admin/services/" + c.Param("id") + "/edit",
	})
}

func (a *App) pageAdminEditService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/admin/services")
		return
	}
	if _, err := a.catalog.UpdateService(pageActor(user), id, serviceInputFromForm(c)); err != nil {
		a.pageError(c, err, "/admin/services")
		return
	}
	a.addFlash(c, "success", "service updated")
	c.Redirect(http.StatusSeeOther, "/admin/services")
}

func (a *App) pageAdminDeleteService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/admin/services")
		return
	}
	if err := a.catalog.DeleteService(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/services")
		return
	}
	a.addFlash(c, "success", "service deleted")
	c.Redirect(http.StatusSeeOther, "/admin/services")
}

func (a *App) pageAdminGroups(c *gin.Context) {
	if _, ok := a.requirePageRole(c, models.RoleAdmin); !ok {
		return
	}
	groups, err := a.catalog.ListServiceGroups(false)
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	a.render(c, "admin_groups.html", gin.H{
		"Title":  "Service groups",
		"Groups": groups,
	})
}

func groupInputFromForm(c *gin.Context) services.ServiceGroupInput {
	return services.ServiceGroupInput{
		Name:        c.PostForm("name"),
		NameEt:      c.PostForm("name_et"),
		NameEn:      c.PostForm("name_en"),
		NameRu:      c.PostForm("name_ru"),
		Description: c.PostForm("description"),
	}
}

func (a *App) pageAdminAddGroup(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	if _, err := a.catalog.CreateServiceGroup(pageActor(user), groupInputFromForm(c)); err != nil {
		a.pageError(c, err, "/admin/service-groups")
		return
	}
	a.addFlash(c, "success", "service group created")
	c.Redirect(http.StatusSeeOther, "/admin/service-groups")
}

func (a *App) pageAdminEditGroup(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid group"), "/admin/service-groups")
		return
	}
	if _, err := a.catalog.UpdateServiceGroup(pageActor(user), id, groupInputFromForm(c)); err != nil {
		a.pageError(c, err, "/admin/service-groups")
		return
	}
	a.addFlash(c, "success", "service group updated")
	c.Redirect(http.StatusSeeOther, "/admin/service-groups")
}

func (a *App) pageAdminDeleteGroup(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid group"), "/admin/service-groups")
		return
	}
	if err := a.catalog.DeleteServiceGroup(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/service-groups")
		return
	}
	a.addFlash(c, "success", "service group deleted")
	c.Redirect(http.StatusSeeOther, "/admin/service-groups")
}

func (a *App) pageAdminPendingServices(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	list, err := a.catalog.PendingServices(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	a.render(c, "admin_pending_services.html", gin.H{
		"Title":    "Pending services",
		"Services": list,
	})
}

func (a *App) pageAdminApproveService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/admin/pending-services")
		return
	}
	if _, err := a.catalog.ApproveService(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/pending-services")
		return
	}
	a.addFlash(c, "success", "service approved")
	c.Redirect(http.StatusSeeOther, "/admin/pending-services")
}

func (a *App) pageAdminRejectService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/admin/pending-services")
		return
	}
	if _, err := a.catalog.RejectService(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/pending-services")
		return
	}
	a.addFlash(c, "success", "service rejected and removed")
	c.Redirect(http.StatusSeeOther, "/admin/pending-services")
}

func (a *App) pageAdminCommissions(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	actor := pageActor(user)
	list, err := a.commission.List(actor)
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	unpaidCommission, unpaidEarnings, err := a.commission.UnpaidTotals(actor)
	if err != nil {
		a.pageError(c, err, "/admin/dashboard")
		return
	}
	a.render(c, "admin_commissions.html", gin.H{
		"Title":            "Commissions",
		"Commissions":      list,
		"UnpaidCommission": unpaidCommission,
		"UnpaidEarnings":   unpaidEarnings,
	})
}

func (a *App) pageAdminMarkPaid(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid commission"), "/admin/commissions")
		return
	}
	if err := a.commission.MarkPaid(pageActor(user), id); err != nil {
		a.pageError(c, err, "/admin/commissions")
		return
	}
	a.addFlash(c, "success", "commission marked paid")
	c.Redirect(http.StatusSeeOther, "/admin/commissions")
}
