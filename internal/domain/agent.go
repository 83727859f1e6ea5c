package domain

import "time"

type AgentRole string

const (
	RoleAdmin AgentRole = "admin"
	RoleAgent AgentRole = "agent"
)

func (r AgentRole) Valid() bool {
	return r == RoleAdmin || r == RoleAgent
}

type Agent struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Location     string    `json:"location" bson:"location"`
	Role         AgentRole `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// AgentIdentity is the authenticated caller as carried by the session token.
type AgentIdentity struct {
	ID       string
	Name     string
	Location string
	Role     AgentRole
}

func (a AgentIdentity) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a *Agent) Identity() AgentIdentity {
	return AgentIdentity{ID: a.ID, Name: a.Name, Location: a.Location, Role: a.Role}
}
