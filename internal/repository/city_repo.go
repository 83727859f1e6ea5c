package repository

import (
	"context"
	"strings"
	"time"

	"lrbook/internal/domain"

	"gorm.io/gorm"
)

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

type cityModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Name      string    `gorm:"column:name;not null"`
	Code      string    `gorm:"column:code;size:3;not null;uniqueIndex:idx_cities_code"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cityModel) TableName() string { return "cities" }

func toDomainCity(m cityModel) *domain.City {
	return &domain.City{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCityModel(c *domain.City) cityModel {
	return cityModel{
		ID:        c.ID,
		Name:      strings.TrimSpace(c.Name),
		Code:      domain.NormalizeCode(c.Code),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CityRepository) Create(ctx context.Context, c *domain.City) error {
	m := toCityModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*c = *toDomainCity(m)
	return nil
}

// Update changes the name only; the code is the city's identity.
func (r *CityRepository) Update(ctx context.Context, c *domain.City) error {
	tx := r.db.WithContext(ctx).Model(&cityModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{"name": strings.TrimSpace(c.Name), "updated_at": c.UpdatedAt})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CityRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&cityModel{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	var m cityModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainCity(m), nil
}

func (r *CityRepository) GetByCode(ctx context.Context, code string) (*domain.City, error) {
	var m cityModel
	if err := r.db.WithContext(ctx).First(&m, "code = ?", domain.NormalizeCode(code)).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainCity(m), nil
}

func (r *CityRepository) List(ctx context.Context, search string) ([]domain.City, error) {
	q := r.db.WithContext(ctx).Model(&cityModel{})
	if s := strings.ToLower(strings.TrimSpace(search)); s != "" {
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", likePattern(s), likePattern(s))
	}

	var rows []cityModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.City, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCity(m))
	}
	return out, nil
}
