package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
	"servicepro-server/middleware"
	"servicepro-server/services"
)

type feedbackRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

func (a *App) apiSubmitFeedback(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	fb, err := a.feedback.Submit(actor, services.FeedbackInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, fb)
}

func (a *App) apiHandymanFeedback(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	summary, err := a.feedback.ListForHandyman(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, summary)
}

type workHoursRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (a *App) apiListWorkHours(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := a.workHours.List(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (a *App) apiAddWorkHours(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	var req workHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	wh, err := a.workHours.Add(actor, services.WorkHoursInput{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, wh)
}

func (a *App) apiDeleteWorkHours(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.workHours.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "work hours removed"})
}
