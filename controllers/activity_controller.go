package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/repositories"
)

type ActivityController struct {
	db   *gorm.DB
	repo *repositories.ActivityRepository
}

func NewActivityController(db *gorm.DB, repo *repositories.ActivityRepository) *ActivityController {
	return &ActivityController{db: db, repo: repo}
}

type ActivityRequest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	City        string    `json:"city"`
	Venue       string    `json:"venue"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}

func (ac *ActivityController) GetActivities(c *gin.Context) {
	activities, err := ac.repo.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

func (ac *ActivityController) GetActivity(c *gin.Context) {
	activity, err := ac.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (ac *ActivityController) CreateActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The client assigns the id so it can reconcile its local copy against
	// the confirmed record; generate one only when it is missing.
	activityID := req.ID
	if activityID == "" {
		activityID = uuid.New().String()
	} else if _, err := uuid.Parse(activityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity id"})
		return
	}

	var host models.User
	if err := ac.db.First(&host, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	activity := models.Activity{
		ID:          activityID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		City:        req.City,
		Venue:       req.Venue,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if err := ac.repo.Create(c.Request.Context(), &activity, &host); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// UpdateActivity runs behind middleware.RequireHost; by the time it
// executes the principal is known to be the activity's host.
func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	activityID := c.Param("id")

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"date":        req.Date,
		"city":        req.City,
		"venue":       req.Venue,
		"latitude":    req.Latitude,
		"longitude":   req.Longitude,
	}

	if err := ac.repo.Update(c.Request.Context(), activityID, updates); err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
		return
	}

	activity, err := ac.repo.GetByID(c.Request.Context(), activityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, activity)
}

// DeleteActivity runs behind middleware.RequireHost.
func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	activityID := c.Param("id")

	if err := ac.repo.Delete(c.Request.Context(), activityID); err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted successfully"})
}

func (ac *ActivityController) AttendActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	if _, err := ac.repo.GetByID(c.Request.Context(), activityID); err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := ac.repo.AddAttendee(c.Request.Context(), activityID, &user); err != nil {
		if errors.Is(err, repositories.ErrAlreadyAttending) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already attending this activity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully joined activity"})
}

func (ac *ActivityController) WithdrawActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	if err := ac.repo.RemoveAttendee(c.Request.Context(), activityID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotAttending) {
			// Hosts land here too: their link is excluded from removal
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not a removable attendee of this activity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw from activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully withdrew from activity"})
}
