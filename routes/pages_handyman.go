package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
	"servicepro-server/models"
	"servicepro-server/services"
)

func pageActor(user *models.User) services.Actor {
	return services.Actor{ID: user.ID, Role: user.Role}
}

func (a *App) pageHandymanDashboard(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	dash, err := a.dashboard.ForHandyman(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/")
		return
	}
	a.render(c, "handyman_dashboard.html", gin.H{
		"Title":    "My jobs",
		"Bookings": dash.Bookings,
		"Services": dash.Services,
	})
}

func (a *App) pageHandymanServices(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	list, err := a.catalog.ListOwnServices(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/handyman/dashboard")
		return
	}
	a.render(c, "handyman_services.html", gin.H{
		"Title":    "My services",
		"Services": list,
	})
}

func (a *App) pageHandymanServiceForm(c *gin.Context) {
	if _, ok := a.requirePageRole(c, models.RoleHandyman); !ok {
		return
	}
	groups, err := a.catalog.ListServiceGroups(true)
	if err != nil {
		a.pageError(c, err, "/handyman/services")
		return
	}
	a.render(c, "service_form.html", gin.H{
		"Title":  "Add service",
		"Groups": groups,
		"Action": "/handyman/services/add",
	})
}

func serviceInputFromForm(c *gin.Context) services.ServiceInput {
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	duration, _ := strconv.Atoi(c.PostForm("duration_hours"))
	groupID, _ := parseUint(c.PostForm("service_group_id"))
	var images []string
	for _, raw := range strings.Split(c.PostForm("example_images"), "\n") {
		if url := strings.TrimSpace(raw); url != "" {
			images = append(images, url)
		}
	}
	return services.ServiceInput{
		Name:           c.PostForm("name"),
		Description:    c.PostForm("description"),
		Price:          price,
		DurationHours:  duration,
		Category:       c.PostForm("category"),
		ServiceGroupID: groupID,
		ExampleImages:  images,
	}
}

func (a *App) pageHandymanAddService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	if _, err := a.catalog.CreateService(pageActor(user), serviceInputFromForm(c)); err != nil {
		a.pageError(c, err, "/handyman/services/add")
		return
	}
	a.addFlash(c, "success", "service submitted for approval")
	c.Redirect(http.StatusSeeOther, "/handyman/services")
}

func (a *App) pageHandymanEditServiceForm(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/handyman/services")
		return
	}
	actor := pageActor(user)
	svc, err := a.catalog.GetService(&actor, id)
	if err != nil {
		a.pageError(c, err, "/handyman/services")
		return
	}
	groups, err := a.catalog.ListServiceGroups(true)
	if err != nil {
		a.pageError(c, err, "/handyman/services")
		return
	}
	a.render(c, "service_form.html", gin.H{
		"Title":   "Edit service",
		"Service": svc,
		"Groups":  groups,
		"Action":  "/handyman/services/" + c.Param("id") + "/edit",
	})
}

func (a *App) pageHandymanEditService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/handyman/services")
		return
	}
	if _, err := a.catalog.UpdateService(pageActor(user), id, serviceInputFromForm(c)); err != nil {
		a.pageError(c, err, "/handyman/services")
		return
	}
	a.addFlash(c, "success", "service updated")
	c.Redirect(http.StatusSeeOther, "/handyman/services")
}

func (a *App) pageHandymanDeleteService(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/handyman/services")
		return
	}
	if err := a.catalog.DeleteService(pageActor(user), id); err != nil {
		a.pageError(c, err, "/handyman/services")
		return
	}
	a.addFlash(c, "success", "service removed")
	c.Redirect(http.StatusSeeOther, "/handyman/services")
}

func (a *App) pageWorkHours(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	list, err := a.workHours.List(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/handyman/dashboard")
		return
	}
	a.render(c, "work_hours.html", gin.H{
		"Title": "Availability",
		"Hours": list,
	})
}

func (a *App) pageAddWorkHours(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	day, _ := strconv.Atoi(c.PostForm("day_of_week"))
	_, err := a.workHours.Add(pageActor(user), services.WorkHoursInput{
		DayOfWeek: day,
		StartTime: c.PostForm("start_time"),
		EndTime:   c.PostForm("end_time"),
	})
	if err != nil {
		a.pageError(c, err, "/handyman/work-hours")
		return
	}
	a.addFlash(c, "success", "availability added")
	c.Redirect(http.StatusSeeOther, "/handyman/work-hours")
}

func (a *App) pageDeleteWorkHours(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid entry"), "/handyman/work-hours")
		return
	}
	if err := a.workHours.Delete(pageActor(user), id); err != nil {
		a.pageError(c, err, "/handyman/work-hours")
		return
	}
	a.addFlash(c, "success", "availability removed")
	c.Redirect(http.StatusSeeOther, "/handyman/work-hours")
}

func (a *App) pageHandymanFeedback(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	summary, err := a.feedback.ListForHandyman(pageActor(user))
	if err != nil {
		a.pageError(c, err, "/handyman/dashboard")
		return
	}
	a.render(c, "handyman_feedback.html", gin.H{
		"Title":   "My reviews",
		"Summary": summary,
	})
}

func (a *App) pageBookingStatus(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleHandyman)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid booking"), "/handyman/dashboard")
		return
	}
	status := models.BookingStatus(c.PostForm("status"))
	if err := a.bookings.UpdateStatus(pageActor(user), id, status); err != nil {
		a.pageError(c, err, "/handyman/dashboard")
		return
	}
	a.addFlash(c, "success", "booking updated")
	c.Redirect(http.StatusSeeOther, "/handyman/dashboard")
}
