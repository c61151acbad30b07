package merchant

import (
	"context"
	"errors"
	"time"

	"merchant-registry/internal/model"

	"gorm.io/gorm"
)

// Filter is the conjunctive merchant filter built from the provided optional
// query fields. Zero-valued fields impose no constraint.
type Filter struct {
	Name             string
	RegistrationDate *time.Time
	Status           model.Status
}

// Store abstracts merchant persistence. Lookups return (nil, nil) when no row
// matches; the service layer decides which misses are errors.
type Store interface {
	ListMerchants(ctx context.Context, f Filter, offset, limit int) ([]model.Merchant, int64, error)
	GetMerchant(ctx context.Context, id uint) (*model.Merchant, error)
	CreateMerchant(ctx context.Context, m *model.Merchant) error
	UpdateMerchant(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteMerchantCascade(ctx context.Context, id uint) error
	DistinctActiveMunicipalities(ctx context.Context) ([]string, error)
	ListMerchantsWithEstablishments(ctx context.Context) ([]model.Merchant, error)

	CreateEstablishment(ctx context.Context, e *model.Establishment) error
	UpdateEstablishmentsByOwner(ctx context.Context, ownerID uint, employeeCount int, revenue float64) error
	ListEstablishments(ctx context.Context) ([]model.Establishment, error)

	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed merchant store
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// merchantFilter applies the conjunctive filter as a gorm scope so the data
// query and the count query always share the same predicate.
func merchantFilter(f Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Name != "" {
			db = db.Where("name ILIKE ?", "%"+f.Name+"%")
		}
		if f.RegistrationDate != nil {
			db = db.Where("registration_date = ?", f.RegistrationDate.Format("2006-01-02"))
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		return db
	}
}

func selectUserSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

func selectEstablishmentSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "owner_id", "name", "revenue", "employee_count")
}

func (s *gormStore) ListMerchants(ctx context.Context, f Filter, offset, limit int) ([]model.Merchant, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Merchant{}).Scopes(merchantFilter(f))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var merchants []model.Merchant
	err := q.Session(&gorm.Session{}).
		Preload("RegisteredBy", selectUserSummary).
		Preload("UpdatedBy", selectUserSummary).
		Preload("Establishments", selectEstablishmentSummary).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&merchants).Error
	if err != nil {
		return nil, 0, err
	}

	return merchants, total, nil
}

func (s *gormStore) GetMerchant(ctx context.Context, id uint) (*model.Merchant, error) {
	var merchant model.Merchant
	err := s.db.WithContext(ctx).
		Preload("RegisteredBy", selectUserSummary).
		Preload("UpdatedBy", selectUserSummary).
		Preload("Establishments", selectEstablishmentSummary).
		First(&merchant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &merchant, nil
}

func (s *gormStore) CreateMerchant(ctx context.Context, m *model.Merchant) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *gormStore) UpdateMerchant(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).
		Model(&model.Merchant{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteMerchantCascade removes the merchant's establishments and then the
// merchant inside one transaction, so a failure cannot leave a half-deleted
// state.
func (s *gormStore) DeleteMerchantCascade(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&model.Establishment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Merchant{}, id).Error
	})
}

func (s *gormStore) DistinctActiveMunicipalities(ctx context.Context) ([]string, error) {
	var cities []string
	err := s.db.WithContext(ctx).
		Model(&model.Merchant{}).
		Where("status = ?", model.StatusActive).
		Distinct().
		Pluck("municipality", &cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (s *gormStore) ListMerchantsWithEstablishments(ctx context.Context) ([]model.Merchant, error) {
	var merchants []model.Merchant
	err := s.db.WithContext(ctx).
		Preload("Establishments", selectEstablishmentSummary).
		Order("id").
		Find(&merchants).Error
	if err != nil {
		return nil, err
	}
	return merchants, nil
}

func (s *gormStore) CreateEstablishment(ctx context.Context, e *model.Establishment) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *gormStore) UpdateEstablishmentsByOwner(ctx context.Context, ownerID uint, employeeCount int, revenue float64) error {
	return s.db.WithContext(ctx).
		Model(&model.Establishment{}).
		Where("owner_id = ?", ownerID).
		Updates(map[string]interface{}{
			"employee_count": employeeCount,
			"revenue":        revenue,
		}).Error
}

func (s *gormStore) ListEstablishments(ctx context.Context) ([]model.Establishment, error) {
	var establishments []model.Establishment
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Order("id").
		Find(&establishments).Error
	if err != nil {
		return nil, err
	}
	return establishments, nil
}

func (s *gormStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
