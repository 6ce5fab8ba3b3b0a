package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainymonked/reviews/internal/services"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type PieceHandler struct {
	*BaseHandler
	pieceService  services.PieceService
	ratingService services.RatingService
}

func NewPieceHandler(base *BaseHandler, pieceService services.PieceService, ratingService services.RatingService) *PieceHandler {
	return &PieceHandler{
		BaseHandler:   base,
		pieceService:  pieceService,
		ratingService: ratingService,
	}
}

func (h *PieceHandler) RegisterRoutes(r *gin.RouterGroup) {
	pieces := r.Group("/pieces")
	{
		pieces.GET("", h.ListPieces)
		pieces.POST("", h.CreatePiece)
		pieces.GET("/:pieceId", h.GetPiece)
		pieces.POST("/:pieceId/rate", h.RatePiece)
	}

	groups := r.Group("/groups")
	{
		groups.GET("", h.ListGroups)
	}
}

func (h *PieceHandler) ListPieces(c *gin.Context) {
	pieces, err := h.pieceService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pieces": pieces})
}

func (h *PieceHandler) GetPiece(c *gin.Context) {
	piece, err := h.pieceService.Get(c.Request.Context(), h.Caller(c), c.Param("pieceId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, piece)
}

func (h *PieceHandler) CreatePiece(c *gin.Context) {
	var req dto.CreatePieceRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	req.TitleEn = h.SanitizeStrict(req.TitleEn)
	req.TitleRu = h.SanitizeStrict(req.TitleRu)
	req.DescriptionEn = h.SanitizeUGC(req.DescriptionEn)
	req.DescriptionRu = h.SanitizeUGC(req.DescriptionRu)

	piece, err := h.pieceService.Create(h.Caller(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, piece)
}

func (h *PieceHandler) RatePiece(c *gin.Context) {
	var req dto.RateRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	rating, err := h.ratingService.Rate(h.Caller(c), c.Param("pieceId"), req.Stars)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *PieceHandler) ListGroups(c *gin.Context) {
	groups, err := h.pieceService.ListGroups()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}
