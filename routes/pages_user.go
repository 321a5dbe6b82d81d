package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
	"servicepro-server/models"
	"servicepro-server/services"
)

func (a *App) pageUserDashboard(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleCustomer)
	if !ok {
		return
	}
	dash, err := a.dashboard.ForUser(services.Actor{ID: user.ID, Role: user.Role})
	if err != nil {
		a.pageError(c, err, "/")
		return
	}
	a.render(c, "user_dashboard.html", gin.H{
		"Title":    "My bookings",
		"Bookings": dash.Bookings,
	})
}

func (a *App) pageUserServices(c *gin.Context) {
	if _, ok := a.requirePageRole(c, models.RoleCustomer); !ok {
		return
	}
	groups, err := a.catalog.ListServiceGroups(true)
	if err != nil {
		a.pageError(c, err, "/user/dashboard")
		return
	}
	list, err := a.catalog.ListServices(nil, nil)
	if err != nil {
		a.pageError(c, err, "/user/dashboard")
		return
	}
	a.render(c, "user_services.html", gin.H{
		"Title":    "Browse services",
		"Groups":   groups,
		"Services": list,
	})
}

func (a *App) pageUserServicesByGroup(c *gin.Context) {
	if _, ok := a.requirePageRole(c, models.RoleCustomer); !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid group"), "/user/services")
		return
	}
	group, err := a.catalog.GetServiceGroup(id)
	if err != nil {
		a.pageError(c, err, "/user/services")
		return
	}
	list, err := a.catalog.ListServices(nil, &id)
	if err != nil {
		a.pageError(c, err, "/user/services")
		return
	}
	a.render(c, "user_services.html", gin.H{
		"Title":    group.LocalizedName(a.locale(c)),
		"Group":    group,
		"Services": list,
	})
}

func (a *App) pageBookForm(c *gin.Context) {
	if _, ok := a.requirePageRole(c, models.RoleCustomer); !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/user/services")
		return
	}
	svc, err := a.catalog.GetService(nil, id)
	if err != nil {
		a.pageError(c, err, "/user/services")
		return
	}
	a.render(c, "book_service.html", gin.H{
		"Title":   "Book " + svc.Name,
		"Service": svc,
	})
}

func (a *App) pageBook(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleCustomer)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid service"), "/user/services")
		return
	}
	when, err := parseBookingDate(c.PostForm("booking_date"))
	if err != nil {
		a.pageError(c, apperr.Validation("enter a valid date and time"), "/user/book/"+c.Param("id"))
		return
	}
	_, err = a.bookings.Create(services.Actor{ID: user.ID, Role: user.Role}, services.CreateBookingInput{
		ServiceID:       id,
		BookingDate:     when,
		SpecialRequests: c.PostForm("special_requests"),
	})
	if err != nil {
		a.pageError(c, err, "/user/book/"+c.Param("id"))
		return
	}
	a.addFlash(c, "success", "booking placed, waiting for confirmation")
	c.Redirect(http.StatusSeeOther, "/user/dashboard")
}

func (a *App) pageFeedbackForm(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleCustomer)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid booking"), "/user/dashboard")
		return
	}
	booking, err := a.bookings.Get(services.Actor{ID: user.ID, Role: user.Role}, id)
	if err != nil {
		a.pageError(c, err, "/user/dashboard")
		return
	}
	a.render(c, "leave_feedback.html", gin.H{
		"Title":   "Leave feedback",
		"Booking": booking,
	})
}

func (a *App) pageFeedback(c *gin.Context) {
	user, ok := a.requirePageRole(c, models.RoleCustomer)
	if !ok {
		return
	}
	id, err := parseUint(c.Param("id"))
	if err != nil {
		a.pageError(c, apperr.Validation("invalid booking"), "/user/dashboard")
		return
	}
	rating, _ := strconv.Atoi(c.PostForm("rating"))
	_, err = a.feedback.Submit(services.Actor{ID: user.ID, Role: user.Role}, services.FeedbackInput{
		BookingID: id,
		Rating:    rating,
		Comment:   c.PostForm("comment"),
	})
	if err != nil {
		a.pageError(c, err, "/leave-feedback/"+c.Param("id"))
		return
	}
	a.addFlash(c, "success", "thank you for the feedback")
	c.Redirect(http.StatusSeeOther, "/user/dashboard")
}
