package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes nests reviews under /titles/:title_id. Reads are public;
// create requires authentication; update/delete additionally check
// ownership/role inside the service.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, authChain ...gin.HandlerFunc) {
	reviews := rg.Group("/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)
		reviews.POST("", append(authChain, h.Create)...)
		reviews.PATCH("/:review_id", append(authChain, h.Update)...)
		reviews.DELETE("/:review_id", append(authChain, h.Delete)...)
	}
}

func parseReviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, false
	}
	return id, true
}

// List handles GET /titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	resp, err := h.reviewService.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /titles/:title_id/reviews. The author is always the
// requesting actor, never client input.
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	actor, ok := middleware.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.reviewService.Create(c.Request.Context(), titleID, actor.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.GetByID(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}
	actor, ok := middleware.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.reviewService.Update(c.Request.Context(), titleID, reviewID, *actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}
	actor, ok := middleware.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), titleID, reviewID, *actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
