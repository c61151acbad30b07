package merchant

import (
	"context"
	"time"

	"merchant-registry/internal/model"
	"merchant-registry/pkg/cache"
	"merchant-registry/prometheus"
)

const citiesCacheKey = "cities"

const (
	defaultPage  = 1
	defaultLimit = 5
)

// Service implements the merchant business rules over a Store. Role-gated
// operations re-check the acting user's role against the database even when a
// route guard already ran.
type Service interface {
	GetCities(ctx context.Context) ([]string, error)
	List(ctx context.Context, query ListQuery) (*ListResult, error)
	Get(ctx context.Context, id uint) (*model.Merchant, error)
	Create(ctx context.Context, req CreateMerchantRequest, userID uint) (*model.Merchant, error)
	Update(ctx context.Context, id uint, req UpdateMerchantRequest, userID uint) (*model.Merchant, error)
	UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest, userID uint) (*model.Merchant, error)
	Remove(ctx context.Context, id uint, userID uint) error
	ExportTSV(ctx context.Context, userID uint) (string, error)
	ListEstablishments(ctx context.Context) ([]model.Establishment, error)
}

type service struct {
	store     Store
	cache     *cache.Cache
	citiesTTL time.Duration
}

// NewService creates the merchant service. citiesTTL bounds how long the
// cached municipality list may outlive the merchant rows it was derived from.
func NewService(store Store, c *cache.Cache, citiesTTL time.Duration) Service {
	return &service{
		store:     store,
		cache:     c,
		citiesTTL: citiesTTL,
	}
}

// GetCities returns the distinct municipalities among ACTIVE merchants,
// serving from the cache when a fresh entry exists.
func (s *service) GetCities(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.Get(citiesCacheKey); ok {
		if cities, ok := cached.([]string); ok {
			prometheus.CitiesCacheHitCounter.Inc()
			return cities, nil
		}
	}
	prometheus.CitiesCacheMissCounter.Inc()

	cities, err := s.store.DistinctActiveMunicipalities(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(citiesCacheKey, cities, s.citiesTTL)
	return cities, nil
}

// invalidateCities deletes the cached municipality list. Mutations delete
// rather than refresh; the next read recomputes from merchant rows.
func (s *service) invalidateCities() {
	s.cache.Delete(citiesCacheKey)
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	filter := Filter{
		Name:   query.Name,
		Status: model.Status(query.Status),
	}
	if query.RegistrationDate != "" {
		date, err := time.Parse("2006-01-02", query.RegistrationDate)
		if err != nil {
			return nil, err
		}
		filter.RegistrationDate = &date
	}

	merchants, total, err := s.store.ListMerchants(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListResult{
		Data: merchants,
		Meta: Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*model.Merchant, error) {
	merchant, err := s.store.GetMerchant(ctx, id)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}
	return merchant, nil
}

func (s *service) Create(ctx context.Context, req CreateMerchantRequest, userID uint) (*model.Merchant, error) {
	registrationDate, err := time.Parse("2006-01-02", req.RegistrationDate)
	if err != nil {
		return nil, err
	}

	merchant := model.Merchant{
		Name:             req.Name,
		Municipality:     req.Municipality,
		Phone:            req.Phone,
		Email:            req.Email,
		RegistrationDate: registrationDate,
		Status:           req.Status,
		RegisteredByID:   userID,
		UpdatedByID:      userID,
	}

	if err := s.store.CreateMerchant(ctx, &merchant); err != nil {
		return nil, err
	}

	// A companion establishment is created only when the caller supplied
	// both metrics, even when they are zero.
	if req.EmployeeCount != nil && req.Revenue != nil {
		establishment := model.Establishment{
			Name:           "Establishment " + merchant.Name,
			Revenue:        *req.Revenue,
			EmployeeCount:  *req.EmployeeCount,
			OwnerID:        merchant.ID,
			RegisteredByID: userID,
			UpdatedByID:    userID,
		}
		if err := s.store.CreateEstablishment(ctx, &establishment); err != nil {
			return nil, err
		}
	}

	s.invalidateCities()
	return s.Get(ctx, merchant.ID)
}

func (s *service) Update(ctx context.Context, id uint, req UpdateMerchantRequest, userID uint) (*model.Merchant, error) {
	merchant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_by_id": userID,
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Municipality != nil {
		updates["municipality"] = *req.Municipality
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := s.store.UpdateMerchant(ctx, id, updates); err != nil {
		return nil, err
	}

	employeeCount := 0
	if req.EmployeeCount != nil {
		employeeCount = *req.EmployeeCount
	}
	revenue := 0.0
	if req.Revenue != nil {
		revenue = *req.Revenue
	}

	if len(merchant.Establishments) == 0 {
		// A merchant without establishments gains one only when both new
		// metrics are positive.
		if employeeCount > 0 && revenue > 0 {
			establishment := model.Establishment{
				Name:           "Establishment " + merchant.Name,
				Revenue:        revenue,
				EmployeeCount:  employeeCount,
				OwnerID:        merchant.ID,
				RegisteredByID: userID,
				UpdatedByID:    userID,
			}
			if err := s.store.CreateEstablishment(ctx, &establishment); err != nil {
				return nil, err
			}
		}
	} else {
		// All existing establishments collapse to the same value pair.
		if err := s.store.UpdateEstablishmentsByOwner(ctx, id, employeeCount, revenue); err != nil {
			return nil, err
		}
	}

	s.invalidateCities()
	return s.Get(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest, userID uint) (*model.Merchant, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":        req.Status,
		"updated_by_id": userID,
	}
	if err := s.store.UpdateMerchant(ctx, id, updates); err != nil {
		return nil, err
	}

	s.invalidateCities()
	return s.Get(ctx, id)
}

func (s *service) Remove(ctx context.Context, id uint, userID uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.requireAdministrator(ctx, userID); err != nil {
		return err
	}

	if err := s.store.DeleteMerchantCascade(ctx, id); err != nil {
		return err
	}

	s.invalidateCities()
	return nil
}

func (s *service) ExportTSV(ctx context.Context, userID uint) (string, error) {
	if err := s.requireAdministrator(ctx, userID); err != nil {
		return "", err
	}

	merchants, err := s.store.ListMerchantsWithEstablishments(ctx)
	if err != nil {
		return "", err
	}

	return buildTSV(merchants), nil
}

func (s *service) ListEstablishments(ctx context.Context) ([]model.Establishment, error) {
	return s.store.ListEstablishments(ctx)
}

func (s *service) requireAdministrator(ctx context.Context, userID uint) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.Role != model.RoleAdministrator {
		return ErrNotAdministrator
	}
	return nil
}
