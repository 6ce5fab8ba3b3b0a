package apperrors

const (
	// Generic
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"

	// Domain
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeGroupNotFound   ErrorCode = "GROUP_NOT_FOUND"
	CodePieceNotFound   ErrorCode = "PIECE_NOT_FOUND"
	CodeReviewNotFound  ErrorCode = "REVIEW_NOT_FOUND"
	CodeCommentNotFound ErrorCode = "COMMENT_NOT_FOUND"
	CodeInvalidStars    ErrorCode = "INVALID_STARS"
	CodeInvalidGrade    ErrorCode = "INVALID_GRADE"
	CodeInvalidLocale   ErrorCode = "INVALID_LOCALE"
	CodeInvalidUpload   ErrorCode = "INVALID_UPLOAD"
)
