package dto

// AdminStatsResponse is the admin dashboard summary
type AdminStatsResponse struct {
	TotalUsers       int64          `json:"totalUsers"`
	TotalPosts       int64          `json:"totalPosts"`
	TotalTribes      int64          `json:"totalTribes"`
	PendingPostCount int64          `json:"pendingPostCount"`
	RecentUsers      []UserResponse `json:"recentUsers"`
	RecentPending    []PostResponse `json:"recentPendingPosts"`
}

// AdminUserListResponse is a paged list of users for the admin panel
type AdminUserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// ModeratePostRequest approves or rejects a pending post
type ModeratePostRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
