package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicepro-server/middleware"
	"servicepro-server/models"
	"servicepro-server/services"
)

func (a *App) registerPages(router *gin.Engine, authn *middleware.Authenticator) {
	pages := router.Group("/", authn.Optional())
	pages.Use(middleware.SecurityHeaders())
	{
		pages.GET("/", a.pageHome)
		pages.GET("/login", a.pageLoginForm)
		pages.POST("/login", a.pageLogin)
		pages.GET("/logout", a.pageLogout)
		pages.GET("/register", a.pageRegisterForm)
		pages.POST("/register", a.pageRegister)
		pages.GET("/password-reset-request", a.pageResetRequestForm)
		pages.POST("/password-reset-request", a.pageResetRequest)
		pages.GET("/password-reset/:token", a.pageResetForm)
		pages.POST("/password-reset/:token", a.pageReset)
		pages.GET("/lang/:locale", a.pageSetLocale)

		user := pages.Group("/user")
		{
			user.GET("/dashboard", a.pageUserDashboard)
			user.GET("/services", a.pageUserServices)
			user.GET("/services/group/:id", a.pageUserServicesByGroup)
			user.GET("/book/:id", a.pageBookForm)
			user.POST("/book/:id", a.pageBook)
		}
		pages.GET("/leave-feedback/:id", a.pageFeedbackForm)
		pages.POST("/leave-feedback/:id", a.pageFeedback)

		handyman := pages.Group("/handyman")
		{
			handyman.GET("/dashboard", a.pageHandymanDashboard)
			handyman.GET("/services", a.pageHandymanServices)
			handyman.GET("/services/add", a.pageHandymanServiceForm)
			handyman.POST("/services/add", a.pageHandymanAddService)
			handyman.GET("/services/:id/edit", a.pageHandymanEditServiceForm)
			handyman.POST("/services/:id/edit", a.pageHandymanEditService)
			handyman.POST("/services/:id/delete", a.pageHandymanDeleteService)
			handyman.GET("/work-hours", a.pageWorkHours)
			handyman.POST("/work-hours/add", a.pageAddWorkHours)
			handyman.POST("/work-hours/:id/delete", a.pageDeleteWorkHours)
			handyman.GET("/feedback", a.pageHandymanFeedback)
			handyman.POST("/bookings/:id/status", a.pageBookingStatus)
		}

		admin := pages.Group("/admin")
		{
			admin.GET("/dashboard", a.pageAdminDashboard)
			admin.GET("/users", a.pageAdminUsers)
			admin.GET("/users/:id/edit", a.pageAdminEditUserForm)
			admin.POST("/users/:id/edit", a.pageAdminEditUser)
			admin.POST("/users/:id/delete", a.pageAdminDeleteUser)
			admin.POST("/users/:id/approve", a.pageAdminApproveHandyman)
			admin.GET("/bookings", a.pageAdminBookings)
			admin.POST("/bookings/:id/approve", a.pageAdminApproveBooking)
			admin.POST("/bookings/:id/decline", a.pageAdminDeclineBooking)
			admin.POST("/bookings/:id/assign", a.pageAdminAssignHandyman)
			admin.GET("/services", a.pageAdminServices)
			admin.GET("/services/add", a.pageAdminServiceForm)
			admin.POST("/services/add", a.pageAdminAddService)
			admin.GET("/services/:id/edit", a.pageAdminEditServiceForm)
			admin.POST("/services/:id/edit", a.pageAdminEditService)
			admin.POST("/services/:id/delete", a.pageAdminDeleteService)
			admin.GET("/service-groups", a.pageAdminGroups)
			admin.POST("/service-groups/add", a.pageAdminAddGroup)
			admin.POST("/service-groups/:id/edit", a.pageAdminEditGroup)
			admin.POST("/service-groups/:id/delete", a.pageAdminDeleteGroup)
			admin.GET("/pending-services", a.pageAdminPendingServices)
			admin.POST("/pending-services/:id/approve", a.pageAdminApproveService)
			admin.POST("/pending-services/:id/reject", a.pageAdminRejectService)
			admin.GET("/commissions", a.pageAdminCommissions)
			admin.POST("/commissions/:id/mark-paid", a.pageAdminMarkPaid)
		}
	}
}

func (a *App) pageHome(c *gin.Context) {
	groups, err := a.catalog.ListServiceGroups(true)
	if err != nil {
		a.pageError(c, err, "/")
		return
	}
	list, err := a.catalog.ListServices(nil, nil)
	if err != nil {
		a.pageError(c, err, "/")
		return
	}
	a.render(c, "home.html", gin.H{
		"Title":    "Service PRO",
		"Groups":   groups,
		"Services": list,
	})
}

func (a *App) pageSetLocale(c *gin.Context) {
	locale := c.Param("locale")
	switch locale {
	case "et", "en", "ru":
	default:
		locale = "et"
	}
	session := a.session(c)
	session.Values[middleware.SessionLocaleKey] = locale
	_ = session.Save(c.Request, c.Writer)
	back := c.Request.Referer()
	if back == "" {
		back = "/"
	}
	c.Redirect(http.StatusSeeOther, back)
}

func (a *App) pageLoginForm(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, homeFor(user))
		return
	}
	a.render(c, "login.html", gin.H{"Title": "Sign in"})
}

func (a *App) pageLogin(c *gin.Context) {
	user, err := a.auth.Authenticate(c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		a.pageError(c, err, "/login")
		return
	}
	session := a.session(c)
	session.Values[middleware.SessionUserIDKey] = user.ID
	if err := session.Save(c.Request, c.Writer); err != nil {
		a.pageError(c, err, "/login")
		return
	}
	a.addFlash(c, "success", "welcome back, "+user.Username)
	c.Redirect(http.StatusSeeOther, homeFor(user))
}

func (a *App) pageLogout(c *gin.Context) {
	session := a.session(c)
	session.Options.MaxAge = -1
	_ = session.Save(c.Request, c.Writer)
	c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) pageRegisterForm(c *gin.Context) {
	a.render(c, "register.html", gin.H{"Title": "Register"})
}

func (a *App) pageRegister(c *gin.Context) {
	role := models.UserRole(c.PostForm("role"))
	if role == "" {
		role = models.RoleCustomer
	}
	user, err := a.auth.Register(services.RegisterInput{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Phone:     c.PostForm("phone"),
		Role:      role,
	})
	if err != nil {
		a.pageError(c, err, "/register")
		return
	}
	session := a.session(c)
	session.Values[middleware.SessionUserIDKey] = user.ID
	_ = session.Save(c.Request, c.Writer)
	a.addFlash(c, "success", "account created")
	c.Redirect(http.StatusSeeOther, homeFor(user))
}

func (a *App) pageResetRequestForm(c *gin.Context) {
	a.render(c, "password_reset_request.html", gin.H{"Title": "Reset password"})
}

func (a *App) pageResetRequest(c *gin.Context) {
	if err := a.auth.RequestPasswordReset(c.PostForm("email")); err != nil {
		a.pageError(c, err, "/password-reset-request")
		return
	}
	a.addFlash(c, "success", "if the address is registered, a reset link has been sent")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (a *App) pageResetForm(c *gin.Context) {
	a.render(c, "password_reset.html", gin.H{
		"Title": "Choose a new password",
		"Token": c.Param("token"),
	})
}

func (a *App) pageReset(c *gin.Context) {
	token := c.Param("token")
	if err := a.auth.ResetPassword(token, c.PostForm("password")); err != nil {
		a.pageError(c, err, "/password-reset/"+token)
		return
	}
	a.addFlash(c, "success", "password updated, sign in with the new one")
	c.Redirect(http.StatusSeeOther, "/login")
}
