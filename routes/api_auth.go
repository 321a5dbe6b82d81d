package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
	"servicepro-server/middleware"
	"servicepro-server/models"
	"servicepro-server/services"
	"servicepro-server/utils"
)

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (a *App) apiRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	role := models.UserRole(req.Role)
	if req.Role == "" {
		role = models.RoleCustomer
	}
	user, err := a.auth.Register(services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := utils.GenerateToken(a.cfg.JWT.Secret, a.cfg.JWT.ExpiryHours, user.ID, string(user.Role))
	if err != nil {
		respondError(c, apperr.Persistence(err))
		return
	}
	respond(c, http.StatusCreated, tokenResponse{Token: token, User: user})
}

func (a *App) apiLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	user, err := a.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := utils.GenerateToken(a.cfg.JWT.Secret, a.cfg.JWT.ExpiryHours, user.ID, string(user.Role))
	if err != nil {
		respondError(c, apperr.Persistence(err))
		return
	}
	respond(c, http.StatusOK, tokenResponse{Token: token, User: user})
}

// apiLogout clears any session cookie. Bearer tokens are stateless, so for
// token clients this is a no-op the client completes by dropping the token.
func (a *App) apiLogout(c *gin.Context) {
	session, _ := a.store.Get(c.Request, a.cfg.Session.Name)
	session.Options.MaxAge = -1
	_ = session.Save(c.Request, c.Writer)
	respond(c, http.StatusOK, gin.H{"message": "logged out"})
}

type passwordResetRequestBody struct {
	Email string `json:"email" binding:"required"`
}

func (a *App) apiPasswordResetRequest(c *gin.Context) {
	var req passwordResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := a.auth.RequestPasswordReset(req.Email); err != nil {
		respondError(c, err)
		return
	}
	// Identical reply whether or not the address exists.
	respond(c, http.StatusOK, gin.H{"message": "if the address is registered, a reset link has been sent"})
}

type passwordResetBody struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *App) apiPasswordReset(c *gin.Context) {
	var req passwordResetBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := a.auth.ResetPassword(req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "password updated"})
}

func (a *App) apiMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, apperr.AccessDenied())
		return
	}
	respond(c, http.StatusOK, user)
}

type profileRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (a *App) apiUpdateProfile(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, apperr.AccessDenied())
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	user, err := a.auth.UpdateProfile(actor, actor.ID, services.ProfileInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}
