package dto

// CreateHodRequest is the administrative direct-create path for head
// accounts. It bypasses the pre-provisioned identity flow entirely; when no
// hodId is supplied one is generated from the department sequence.
type CreateHodRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department"`
	HodID      string `json:"hodId"`
}

// UpdateHodRequest represents head account updates
type UpdateHodRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// ResetHodPasswordRequest represents an administrative password reset
type ResetHodPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// HodListResponse wraps the head account list
type HodListResponse struct {
	Count int             `json:"count"`
	Hods  []*UserResponse `json:"hods"`
}
