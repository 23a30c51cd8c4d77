package dto

import (
	"time"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// CreateTribeRequest represents a new tribe submission. JoinCode is required
// when privacy is private and must be absent when public.
type CreateTribeRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=60"`
	Description string `json:"description" binding:"max=500"`
	Privacy     string `json:"privacy" binding:"required,oneof=public private"`
	JoinCode    string `json:"joinCode" binding:"omitempty,min=4,max=32"`
}

// UpdateTribeRequest updates tribe metadata or flips its privacy.
// Switching to private requires a join code; switching to public clears it.
type UpdateTribeRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=60"`
	Description string `json:"description" binding:"max=500"`
	Privacy     string `json:"privacy" binding:"required,oneof=public private"`
	JoinCode    string `json:"joinCode" binding:"omitempty,min=4,max=32"`
}

// JoinTribeRequest carries the join code for private tribes
type JoinTribeRequest struct {
	JoinCode string `json:"joinCode"`
}

// TribeResponse represents a tribe
type TribeResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	OwnerID        int64     `json:"ownerId"`
	Privacy        string    `json:"privacy"`
	MemberCount    int64     `json:"memberCount"`
	ViewerIsMember bool      `json:"viewerIsMember"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TribeListResponse wraps a list of tribes
type TribeListResponse struct {
	Tribes []TribeResponse `json:"tribes"`
}

// ToTribeResponse maps a tribe model to its response DTO
func ToTribeResponse(tribe *models.Tribe) TribeResponse {
	return TribeResponse{
		ID:             tribe.ID,
		Name:           tribe.Name,
		Description:    tribe.Description,
		OwnerID:        tribe.OwnerID,
		Privacy:        string(tribe.Privacy),
		MemberCount:    tribe.MemberCount,
		ViewerIsMember: tribe.ViewerIsMember,
		CreatedAt:      tribe.CreatedAt,
	}
}
