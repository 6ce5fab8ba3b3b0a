package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainymonked/reviews/internal/services"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService  services.ReviewService
	likeService    services.LikeService
	commentService services.CommentService
}

func NewReviewHandler(
	base *BaseHandler,
	reviewService services.ReviewService,
	likeService services.LikeService,
	commentService services.CommentService,
) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:    base,
		reviewService:  reviewService,
		likeService:    likeService,
		commentService: commentService,
	}
}

// RegisterRoutes wires the review surface. Everything runs behind the
// optional auth middleware; services reject anonymous mutations.
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.POST("", h.CreateReview)
		reviews.GET("/:reviewId", h.GetReview)
		reviews.PUT("/:reviewId", h.UpdateReview)
		reviews.DELETE("/:reviewId", h.DeleteReview)

		reviews.POST("/:reviewId/like", h.ToggleLike)

		reviews.GET("/:reviewId/comments", h.ListComments)
		reviews.POST("/:reviewId/comments", h.AddComment)
	}

	comments := r.Group("/comments")
	{
		comments.DELETE("/:commentId", h.DeleteComment)
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewService.Get(c.Request.Context(), c.Param("reviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	req.Title = h.SanitizeStrict(req.Title)
	req.Text = h.SanitizeUGC(req.Text)

	review, err := h.reviewService.Create(c.Request.Context(), h.Caller(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req dto.UpdateReviewRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	req.Title = h.SanitizeStrict(req.Title)
	req.Text = h.SanitizeUGC(req.Text)

	review, err := h.reviewService.Update(c.Request.Context(), h.Caller(c), c.Param("reviewId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.Delete(c.Request.Context(), h.Caller(c), c.Param("reviewId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	like, err := h.likeService.Toggle(h.Caller(c), c.Param("reviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, like)
}

func (h *ReviewHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListByReview(c.Param("reviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *ReviewHandler) AddComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	req.Text = h.SanitizeUGC(req.Text)

	comment, err := h.commentService.Add(h.Caller(c), c.Param("reviewId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	if err := h.commentService.Delete(h.Caller(c), c.Param("commentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
