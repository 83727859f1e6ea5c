package repository

import (
	"context"
	"strings"
	"time"

	"lrbook/internal/domain"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

type locationModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Name      string    `gorm:"column:name;not null;index:idx_locations_name"`
	Code      string    `gorm:"column:code;size:3;not null;uniqueIndex:idx_locations_code"`
	CityID    string    `gorm:"column:city_id;size:36;not null;index"`
	Status    string    `gorm:"column:status;size:16;not null"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (locationModel) TableName() string { return "locations" }

func toDomainLocation(m locationModel) *domain.Location {
	var address string
	if m.Address != nil {
		address = *m.Address
	}
	return &domain.Location{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		CityID:    m.CityID,
		Status:    domain.LocationStatus(m.Status),
		Address:   address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toLocationModel(l *domain.Location) locationModel {
	var address *string
	if a := strings.TrimSpace(l.Address); a != "" {
		address = &a
	}
	return locationModel{
		ID:        l.ID,
		Name:      strings.TrimSpace(l.Name),
		Code:      domain.NormalizeCode(l.Code),
		CityID:    l.CityID,
		Status:    string(l.Status),
		Address:   address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	m := toLocationModel(l)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*l = *toDomainLocation(m)
	return nil
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	m := toLocationModel(l)
	tx := r.db.WithContext(ctx).Model(&locationModel{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"name":       m.Name,
			"city_id":    m.CityID,
			"status":     m.Status,
			"address":    m.Address,
			"updated_at": m.UpdatedAt,
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&locationModel{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	var m locationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainLocation(m), nil
}

func (r *LocationRepository) GetByCode(ctx context.Context, code string) (*domain.Location, error) {
	var m locationModel
	if err := r.db.WithContext(ctx).First(&m, "code = ?", domain.NormalizeCode(code)).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainLocation(m), nil
}

// FindByName matches the whole name, ignoring case and surrounding spaces.
func (r *LocationRepository) FindByName(ctx context.Context, name string) (*domain.Location, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil, ErrNotFound
	}
	var m locationModel
	if err := r.db.WithContext(ctx).Where("LOWER(name) = ?", n).Order("created_at ASC").First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainLocation(m), nil
}

func (r *LocationRepository) List(ctx context.Context, f domain.LocationFilter) ([]domain.Location, error) {
	q := r.db.WithContext(ctx).Model(&locationModel{})
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", likePattern(s), likePattern(s))
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.CityID != "" {
		q = q.Where("city_id = ?", f.CityID)
	}

	var rows []locationModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Location, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainLocation(m))
	}
	return out, nil
}
