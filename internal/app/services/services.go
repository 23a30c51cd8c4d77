package services

// Services holds all service instances
type Services struct {
	Auth         AuthService
	User         UserService
	Post         PostService
	Notification NotificationService
	Tribe        TribeService
	Chat         ChatService
	Analytics    AnalyticsService
	Admin        AdminService
}
