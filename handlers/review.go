package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bean-buzz/beanbuzz-backend/database"
	"github.com/bean-buzz/beanbuzz-backend/middleware"
	"github.com/bean-buzz/beanbuzz-backend/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ReviewHandler serves customer review CRUD with pagination.
type ReviewHandler struct {
	reviews database.ReviewStore
	logger  *zap.Logger
}

// NewReviewHandler wires the review endpoints.
func NewReviewHandler(reviews database.ReviewStore, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// ValidateID runs before the id-based handlers: malformed ids 400 and
// missing reviews 404 before the handler sees the request.
func (h *ReviewHandler) ValidateID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		c.Abort()
		return
	}
	if _, err := h.reviews.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no review with id " + idParam})
			c.Abort()
			return
		}
		h.logger.Error("review validate id", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		c.Abort()
		return
	}
	c.Next()
}

// List returns one page of reviews with the pagination envelope
func (h *ReviewHandler) List(c *gin.Context) {
	filter := database.ReviewFilter{
		Search:      c.Query("search"),
		Status:      c.Query("reviewStatus"),
		OldestFirst: c.Query("sort") == "oldest",
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	skip := int64(page-1) * int64(limit)

	reviews, total, err := h.reviews.List(c.Request.Context(), filter, skip, int64(limit))
	if err != nil {
		h.logger.Error("review list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	numOfPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"totalReviews": total,
		"numOfPages":   numOfPages,
		"currentPage":  page,
		"reviews":      reviews,
	})
}

type createReviewRequest struct {
	UserName      string              `json:"userName"`
	Rating        *int                `json:"rating"`
	ReviewMessage string              `json:"reviewMessage"`
	ReviewStatus  models.ReviewStatus `json:"reviewStatus"`
}

// Create adds a review for the signed-in user
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.UserName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userName is required"})
		return
	}
	if req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating is required"})
		return
	}
	if req.ReviewMessage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "reviewMessage is required"})
		return
	}
	if req.ReviewStatus != "" && req.ReviewStatus != models.ReviewApproved && req.ReviewStatus != models.ReviewDeclined {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid reviewStatus value"})
		return
	}

	review := &models.Review{
		UserName:      req.UserName,
		Rating:        *req.Rating,
		ReviewMessage: req.ReviewMessage,
		ReviewStatus:  req.ReviewStatus,
	}
	if createdBy, err := primitive.ObjectIDFromHex(middleware.GetUserID(c)); err == nil {
		review.CreatedBy = createdBy
	}

	created, err := h.reviews.Create(c.Request.Context(), review)
	if err != nil {
		h.logger.Error("review create", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": created})
}

// Get returns a single review by id
func (h *ReviewHandler) Get(c *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))
	review, err := h.reviews.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no review with id " + c.Param("id")})
			return
		}
		h.logger.Error("review get", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

type updateReviewRequest struct {
	UserName      *string              `json:"userName"`
	Rating        *int                 `json:"rating"`
	ReviewMessage *string              `json:"reviewMessage"`
	ReviewStatus  *models.ReviewStatus `json:"reviewStatus"`
}

// Update partially modifies a review
func (h *ReviewHandler) Update(c *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.ReviewStatus != nil && *req.ReviewStatus != models.ReviewApproved && *req.ReviewStatus != models.ReviewDeclined {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid reviewStatus value"})
		return
	}

	updated, err := h.reviews.Update(c.Request.Context(), id, database.ReviewUpdate{
		UserName:      req.UserName,
		Rating:        req.Rating,
		ReviewMessage: req.ReviewMessage,
		ReviewStatus:  req.ReviewStatus,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no review with id " + c.Param("id")})
			return
		}
		h.logger.Error("review update", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "review modified", "review": updated})
}

// Delete removes a review by id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	review, err := h.reviews.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no review with id " + c.Param("id")})
			return
		}
		h.logger.Error("review delete: find", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("review delete", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "review deleted", "review": review})
}
