package dto

// AnalyticsResponse aggregates the caller's authoring statistics
type AnalyticsResponse struct {
	TotalPosts        int64             `json:"totalPosts"`
	TotalViews        int64             `json:"totalViews"`
	TotalLikes        int64             `json:"totalLikes"`
	TotalComments     int64             `json:"totalComments"`
	TotalReposts      int64             `json:"totalReposts"`
	FollowerCount     int64             `json:"followerCount"`
	FollowingCount    int64             `json:"followingCount"`
	AvgReadTimeMin    int64             `json:"avgReadTimeMinutes"`
	TopPosts          []PostAnalytics   `json:"topPosts"`
	EngagementByMonth []MonthEngagement `json:"engagementByMonth"`
}

// PostAnalytics summarizes one post for the analytics dashboard
type PostAnalytics struct {
	PostID          int64  `json:"postId"`
	Title           string `json:"title"`
	Views           int64  `json:"views"`
	Likes           int64  `json:"likes"`
	Comments        int64  `json:"comments"`
	ReadTimeMinutes int64  `json:"readTimeMinutes"`
	TrendingScore   int64  `json:"trendingScore"`
}

// MonthEngagement buckets likes and comments received per calendar month
type MonthEngagement struct {
	Month    string `json:"month" example:"2026-08"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
}
