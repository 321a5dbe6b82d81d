package services

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

// CatalogService manages service groups and services, including the admin
// approval gate that controls customer visibility.
type CatalogService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCatalogService(db *gorm.DB, logger *zap.Logger) *CatalogService {
	return &CatalogService{db: db, logger: logger}
}

// ListServiceGroups returns groups in insertion order.
func (s *CatalogService) ListServiceGroups(activeOnly bool) ([]models.ServiceGroup, error) {
	q := s.db.Order("id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var groups []models.ServiceGroup
	if err := q.Find(&groups).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return groups, nil
}

func (s *CatalogService) GetServiceGroup(id uint) (*models.ServiceGroup, error) {
	var group models.ServiceGroup
	if err := s.db.First(&group, id).Error; err != nil {
		return nil, wrapDBError(err, "service group")
	}
	return &group, nil
}

type ServiceGroupInput struct {
	Name        string
	NameEt      string
	NameEn      string
	NameRu      string
	Description string
}

func (in *ServiceGroupInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if len(in.Name) < 2 || len(in.Name) > 100 {
		return apperr.Validation("group name must be between 2 and 100 characters")
	}
	// Missing localized names fall back to the base name
	if in.NameEt == "" {
		in.NameEt = in.Name
	}
	if in.NameEn == "" {
		in.NameEn = in.Name
	}
	if in.NameRu == "" {
		in.NameRu = in.Name
	}
	return nil
}

// CreateServiceGroup adds a category. Admin only.
func (s *CatalogService) CreateServiceGroup(actor Actor, input ServiceGroupInput) (*models.ServiceGroup, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	group := models.ServiceGroup{
		Name:        input.Name,
		NameEt:      input.NameEt,
		NameEn:      input.NameEn,
		NameRu:      input.NameRu,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &group, nil
}

// UpdateServiceGroup edits a category. Admin only.
func (s *CatalogService) UpdateServiceGroup(actor Actor, id uint, input ServiceGroupInput) (*models.ServiceGroup, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	var group models.ServiceGroup
	if err := s.db.First(&group, id).Error; err != nil {
		return nil, wrapDBError(err, "service group")
	}
	group.Name = input.Name
	group.NameEt = input.NameEt
	group.NameEn = input.NameEn
	group.NameRu = input.NameRu
	group.Description = input.Description
	if err := s.db.Save(&group).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &group, nil
}

// DeleteServiceGroup removes a category. Admin only.
func (s *CatalogService) DeleteServiceGroup(actor Actor, id uint) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	var group models.ServiceGroup
	if err := s.db.First(&group, id).Error; err != nil {
		return wrapDBError(err, "service group")
	}
	if err := s.db.Delete(&group).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// visibleServices applies the single catalog visibility rule shared by both
// surfaces. A nil actor is an unauthenticated caller and sees the customer
// view: active and approved only. Handymen additionally see their own
// unapproved services; admins see everything.
func (s *CatalogService) visibleServices(actor *Actor) *gorm.DB {
	q := s.db.Model(&models.Service{})
	switch {
	case actor == nil, actor.Role == models.RoleCustomer:
		q = q.Where("is_active = ? AND is_approved = ?", true, true)
	case actor.Role == models.RoleHandyman:
		q = q.Where("(is_active = ? AND is_approved = ?) OR handyman_id = ?", true, true, actor.ID)
	case actor.Role == models.RoleAdmin:
		// no filter
	}
	return q
}

// ListServices returns the services visible to the actor, optionally
// restricted to one group.
func (s *CatalogService) ListServices(actor *Actor, groupID *uint) ([]models.Service, error) {
	q := s.visibleServices(actor)
	if groupID != nil {
		q = q.Where("service_group_id = ?", *groupID)
	}
	var services []models.Service
	if err := q.Preload("ServiceGroup").Preload("Handyman").
		Order("id").Find(&services).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return services, nil
}

// GetService fetches one service, subject to the same visibility rule as
// listing: an invisible service reads as not found.
func (s *CatalogService) GetService(actor *Actor, id uint) (*models.Service, error) {
	var service models.Service
	err := s.visibleServices(actor).Preload("ServiceGroup").Preload("Handyman").
		Where("services.id = ?", id).First(&service).Error
	if err != nil {
		return nil, wrapDBError(err, "service")
	}
	return &service, nil
}

// ListOwnServices lists a handyman's services, approved or not.
func (s *CatalogService) ListOwnServices(actor Actor) ([]models.Service, error) {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return nil, err
	}
	var services []models.Service
	if err := s.db.Where("handyman_id = ?", actor.ID).
		Preload("ServiceGroup").Order("id").Find(&services).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return services, nil
}

type ServiceInput struct {
	Name           string
	Description    string
	Price          float64
	DurationHours  int
	Category       string
	ServiceGroupID uint
	ExampleImages  []string
	// HandymanID is honored only for admin-created services; handymen always
	// create for themselves.
	HandymanID uint
}

func (in *ServiceInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperr.Validation("service name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperr.Validation("description is required")
	}
	if in.Price < 0 {
		return apperr.Validation("price must not be negative")
	}
	if in.DurationHours < 1 {
		return apperr.Validation("duration must be at least 1 hour")
	}
	if in.ServiceGroupID == 0 {
		return apperr.Validation("service group is required")
	}
	return nil
}

// CreateService adds a service. Handymen create unapproved services for
// themselves; admin-created services are implicitly trusted and start
// approved.
func (s *CatalogService) CreateService(actor Actor, input ServiceInput) (*models.Service, error) {
	if err := requireRole(actor, models.RoleHandyman, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	var group models.ServiceGroup
	if err := s.db.First(&group, input.ServiceGroupID).Error; err != nil {
		return nil, wrapDBError(err, "service group")
	}

	ownerID := actor.ID
	if actor.Role == models.RoleAdmin && input.HandymanID != 0 {
		ownerID = input.HandymanID
	}

	service := models.Service{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		DurationHours:  input.DurationHours,
		Category:       input.Category,
		ServiceGroupID: input.ServiceGroupID,
		HandymanID:     ownerID,
		IsActive:       true,
		IsApproved:     actor.Role == models.RoleAdmin,
	}
	service.SetImageURLs(input.ExampleImages)

	if err := s.db.Create(&service).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &service, nil
}

// UpdateService edits a service. Owner or admin.
func (s *CatalogService) UpdateService(actor Actor, id uint, input ServiceInput) (*models.Service, error) {
	var service models.Service
	if err := s.db.First(&service, id).Error; err != nil {
		return nil, wrapDBError(err, "service")
	}
	if err := requireOwnerOrAdmin(actor, service.HandymanID); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	service.Name = input.Name
	service.Description = input.Description
	service.Price = input.Price
	service.DurationHours = input.DurationHours
	service.Category = input.Category
	service.ServiceGroupID = input.ServiceGroupID
	service.SetImageURLs(input.ExampleImages)

	if err := s.db.Save(&service).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &service, nil
}

// DeleteService removes a service together with the bookings, commissions
// and feedback referencing it. Owner or admin.
func (s *CatalogService) DeleteService(actor Actor, id uint) error {
	var service models.Service
	if err := s.db.First(&service, id).Error; err != nil {
		return wrapDBError(err, "service")
	}
	if err := requireOwnerOrAdmin(actor, service.HandymanID); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bookingIDs []uint
		if err := tx.Model(&models.Booking{}).
			Where("service_id = ?", id).Pluck("id", &bookingIDs).Error; err != nil {
			return err
		}
		if len(bookingIDs) > 0 {
			if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&models.Commission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&models.Feedback{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", bookingIDs).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&service).Error
	})
	if err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// PendingServices lists unapproved services awaiting review. Admin only.
func (s *CatalogService) PendingServices(actor Actor) ([]models.Service, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	var services []models.Service
	if err := s.db.Where("is_approved = ?", false).
		Preload("ServiceGroup").Preload("Handyman").
		Order("id").Find(&services).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return services, nil
}

// ApproveService opens a service to customers. Admin only.
func (s *CatalogService) ApproveService(actor Actor, id uint) (*models.Service, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	var service models.Service
	if err := s.db.First(&service, id).Error; err != nil {
		return nil, wrapDBError(err, "service")
	}
	if err := s.db.Model(&service).Update("is_approved", true).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	service.IsApproved = true
	return &service, nil
}

// RejectService deletes a pending service outright. Rejection is a hard
// delete, not a state: it cannot be undone. Admin only.
func (s *CatalogService) RejectService(actor Actor, id uint) (*models.Service, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	var service models.Service
	if err := s.db.First(&service, id).Error; err != nil {
		return nil, wrapDBError(err, "service")
	}
	if err := s.db.Delete(&service).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	s.logger.Info("service rejected and deleted",
		zap.Uint("service_id", id), zap.Uint("admin_id", actor.ID))
	return &service, nil
}
