package services

// ServiceContainer bundles every service the handlers depend on.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	PieceService   PieceService
	RatingService  RatingService
	ReviewService  ReviewService
	LikeService    LikeService
	CommentService CommentService
	UploadService  UploadService
}
