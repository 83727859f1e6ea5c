package repository

import (
	"context"
	"strings"
	"time"

	"lrbook/internal/domain"

	"gorm.io/gorm"
)

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

type agentModel struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;not null;uniqueIndex:idx_agents_email"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Location     string    `gorm:"column:location"`
	Role         string    `gorm:"column:role;size:16;not null"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (agentModel) TableName() string { return "agents" }

func toDomainAgent(m agentModel) *domain.Agent {
	return &domain.Agent{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Location:     m.Location,
		Role:         domain.AgentRole(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toAgentModel(a *domain.Agent) agentModel {
	return agentModel{
		ID:           a.ID,
		Name:         strings.TrimSpace(a.Name),
		Email:        strings.ToLower(strings.TrimSpace(a.Email)),
		PasswordHash: a.PasswordHash,
		Location:     strings.TrimSpace(a.Location),
		Role:         string(a.Role),
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (r *AgentRepository) Create(ctx context.Context, a *domain.Agent) error {
	m := toAgentModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*a = *toDomainAgent(m)
	return nil
}

func (r *AgentRepository) Update(ctx context.Context, a *domain.Agent) error {
	m := toAgentModel(a)
	tx := r.db.WithContext(ctx).Model(&agentModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"name":          m.Name,
			"password_hash": m.PasswordHash,
			"location":      m.Location,
			"role":          m.Role,
			"is_active":     m.IsActive,
			"updated_at":    m.UpdatedAt,
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	var m agentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainAgent(m), nil
}

func (r *AgentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	var m agentModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainAgent(m), nil
}

func (r *AgentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	var rows []agentModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Agent, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAgent(m))
	}
	return out, nil
}
