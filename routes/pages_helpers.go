package routes

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"servicepro-server/apperr"
	"servicepro-server/middleware"
	"servicepro-server/models"
)

func init() {
	gob.Register(FlashMessage{})
}

// FlashMessage is a one-shot banner carried across a redirect.
type FlashMessage struct {
	Type    string
	Message string
}

func (a *App) session(c *gin.Context) *sessions.Session {
	session, _ := a.store.Get(c.Request, a.cfg.Session.Name)
	return session
}

func (a *App) addFlash(c *gin.Context, kind, message string) {
	session := a.session(c)
	session.AddFlash(FlashMessage{Type: kind, Message: message})
	if err := session.Save(c.Request, c.Writer); err != nil {
		a.logger.Error("session save failed", zap.Error(err))
	}
}

func (a *App) takeFlashes(c *gin.Context) []FlashMessage {
	session := a.session(c)
	var messages []FlashMessage
	for _, f := range session.Flashes() {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	_ = session.Save(c.Request, c.Writer)
	return messages
}

func (a *App) locale(c *gin.Context) string {
	session := a.session(c)
	if loc, ok := session.Values[middleware.SessionLocaleKey].(string); ok && loc != "" {
		return loc
	}
	return "et"
}

// render executes a template with the shared chrome data merged in.
func (a *App) render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = a.takeFlashes(c)
	data["Locale"] = a.locale(c)
	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	c.HTML(http.StatusOK, name, data)
}

// pageError flashes the problem and sends the visitor somewhere sensible.
func (a *App) pageError(c *gin.Context, err error, fallback string) {
	a.addFlash(c, "error", apperr.MessageOf(err))
	c.Redirect(http.StatusSeeOther, fallback)
}

// homeFor picks the landing page for a signed-in role.
func homeFor(user *models.User) string {
	switch {
	case user == nil:
		return "/"
	case user.IsAdmin():
		return "/admin/dashboard"
	case user.IsHandyman():
		return "/handyman/dashboard"
	default:
		return "/user/dashboard"
	}
}

// requirePageUser returns the session user or bounces to the login page.
func (a *App) requirePageUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		a.addFlash(c, "error", "please sign in first")
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return nil, false
	}
	return user, true
}

func (a *App) requirePageRole(c *gin.Context, role models.UserRole) (*models.User, bool) {
	user, ok := a.requirePageUser(c)
	if !ok {
		return nil, false
	}
	if user.Role != role {
		a.addFlash(c, "error", "access denied")
		c.Redirect(http.StatusSeeOther, homeFor(user))
		c.Abort()
		return nil, false
	}
	return user, true
}
