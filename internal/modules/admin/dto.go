package admin

type CreateAgentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Location string `json:"location"`
	Role     string `json:"role"`
}

// UpdateAgentRequest uses pointers so absent fields stay untouched.
type UpdateAgentRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Location *string `json:"location"`
	IsActive *bool   `json:"is_active"`
}
