package repository

import (
	"context"
	"strings"
	"time"

	"lrbook/internal/domain"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Name      string    `gorm:"column:name;not null"`
	Phone     string    `gorm:"column:phone;size:32;not null;uniqueIndex:idx_customers_phone"`
	Address   string    `gorm:"column:address"`
	GSTNumber *string   `gorm:"column:gst_number;size:32;uniqueIndex:idx_customers_gst"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerModel) TableName() string { return "customers" }

func toDomainCustomer(m customerModel) *domain.Customer {
	var gst string
	if m.GSTNumber != nil {
		gst = *m.GSTNumber
	}
	return &domain.Customer{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Address:   m.Address,
		GSTNumber: gst,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCustomerModel(c *domain.Customer) customerModel {
	// empty GST is stored as NULL so it never collides with the unique index
	var gst *string
	if g := strings.ToUpper(strings.TrimSpace(c.GSTNumber)); g != "" {
		gst = &g
	}
	return customerModel{
		ID:        c.ID,
		Name:      strings.TrimSpace(c.Name),
		Phone:     strings.TrimSpace(c.Phone),
		Address:   strings.TrimSpace(c.Address),
		GSTNumber: gst,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	tx := r.db.WithContext(ctx).Model(&customerModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       m.Name,
			"phone":      m.Phone,
			"address":    m.Address,
			"gst_number": m.GSTNumber,
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

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&customerModel{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var m customerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	p := strings.TrimSpace(phone)
	if p == "" {
		return nil, ErrNotFound
	}
	var m customerModel
	if err := r.db.WithContext(ctx).First(&m, "phone = ?", p).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) FindByGST(ctx context.Context, gst string) (*domain.Customer, error) {
	g := strings.ToUpper(strings.TrimSpace(gst))
	if g == "" {
		return nil, ErrNotFound
	}
	var m customerModel
	if err := r.db.WithContext(ctx).First(&m, "gst_number = ?", g).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) List(ctx context.Context, search string, limit int) ([]domain.Customer, error) {
	q := r.db.WithContext(ctx).Model(&customerModel{})
	if s := strings.ToLower(strings.TrimSpace(search)); s != "" {
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(gst_number) LIKE ?",
			likePattern(s), likePattern(s), likePattern(s))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []customerModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Customer, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCustomer(m))
	}
	return out, nil
}
