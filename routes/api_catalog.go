package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
	"servicepro-server/middleware"
	"servicepro-server/services"
)

func (a *App) apiListServiceGroups(c *gin.Context) {
	groups, err := a.catalog.ListServiceGroups(true)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, groups)
}

func (a *App) apiGetServiceGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	group, err := a.catalog.GetServiceGroup(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, group)
}

func (a *App) apiListServices(c *gin.Context) {
	var actor *services.Actor
	if act, ok := middleware.CurrentActor(c); ok {
		actor = &act
	}
	var groupID *uint
	if raw := c.Query("group_id"); raw != "" {
		id, err := parseUint(raw)
		if err != nil {
			respondError(c, apperr.Validation("invalid group_id"))
			return
		}
		groupID = &id
	}
	list, err := a.catalog.ListServices(actor, groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (a *App) apiGetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var actor *services.Actor
	if act, ok := middleware.CurrentActor(c); ok {
		actor = &act
	}
	svc, err := a.catalog.GetService(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, svc)
}

type serviceRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	DurationHours  int      `json:"duration_hours"`
	Category       string   `json:"category"`
	ServiceGroupID uint     `json:"service_group_id"`
	ExampleImages  []string `json:"example_images"`
	HandymanID     uint     `json:"handyman_id"`
}

func (r *serviceRequest) toInput() services.ServiceInput {
	return services.ServiceInput{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		DurationHours:  r.DurationHours,
		Category:       r.Category,
		ServiceGroupID: r.ServiceGroupID,
		ExampleImages:  r.ExampleImages,
		HandymanID:     r.HandymanID,
	}
}

func (a *App) apiListOwnServices(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := a.catalog.ListOwnServices(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (a *App) apiCreateService(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	svc, err := a.catalog.CreateService(actor, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, svc)
}

func (a *App) apiAdminCreateService(c *gin.Context) {
	a.apiCreateService(c)
}

func (a *App) apiUpdateService(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	svc, err := a.catalog.UpdateService(actor, id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, svc)
}

func (a *App) apiDeleteService(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.catalog.DeleteService(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "service deleted"})
}

func (a *App) apiPendingServices(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := a.catalog.PendingServices(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (a *App) apiApproveService(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, err := a.catalog.ApproveService(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, svc)
}

func (a *App) apiRejectService(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, err := a.catalog.RejectService(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "service rejected", "service": svc})
}

type serviceGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	NameEt      string `json:"name_et"`
	NameEn      string `json:"name_en"`
	NameRu      string `json:"name_ru"`
	Description string `json:"description"`
}

func (r *serviceGroupRequest) toInput() services.ServiceGroupInput {
	return services.ServiceGroupInput{
		Name:        r.Name,
		NameEt:      r.NameEt,
		NameEn:      r.NameEn,
		NameRu:      r.NameRu,
		Description: r.Description,
	}
}

func (a *App) apiCreateServiceGroup(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	var req serviceGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	group, err := a.catalog.CreateServiceGroup(actor, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, group)
}

func (a *App) apiUpdateServiceGroup(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req serviceGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	group, err := a.catalog.UpdateServiceGroup(actor, id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, group)
}

func (a *App) apiDeleteServiceGroup(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.catalog.DeleteServiceGroup(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "service group deleted"})
}
