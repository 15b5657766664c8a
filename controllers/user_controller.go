package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/models"
	"github.com/relief-grid/api-go/services"
	"gorm.io/gorm"
)

type UserController struct {
	DB     *gorm.DB
	Fanout *services.FanoutService
}

func NewUserController(db *gorm.DB, fanout *services.FanoutService) *UserController {
	return &UserController{DB: db, Fanout: fanout}
}

type UpsertUserInput struct {
	Phone     string   `json:"phone" binding:"required"`
	LastLat   *float64 `json:"last_lat"`
	LastLng   *float64 `json:"last_lng"`
	LastTower *string  `json:"last_tower"`
}

type MoveUserInput struct {
	Phone string   `json:"phone" binding:"required"`
	Lat   *float64 `json:"lat" binding:"required"`
	Lng   *float64 `json:"lng" binding:"required"`
}

// UpsertUser godoc
// @Summary Create a user or merge non-null fields into an existing one
// @Description A position update re-scans the user against all active disasters
// @Tags users
// @Accept json
// @Produce json
// @Param payload body UpsertUserInput true "User fields"
// @Success 200 {object} models.User
// @Router /users [post]
func (uc *UserController) UpsertUser(c *gin.Context) {
	var input UpsertUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (input.LastLat == nil) != (input.LastLng == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "last_lat and last_lng must be provided together"})
		return
	}

	var user models.User
	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", input.Phone).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			user = models.User{Phone: input.Phone}
		}

		if input.LastLat != nil && input.LastLng != nil {
			user.LastLat = input.LastLat
			user.LastLng = input.LastLng
		}
		if input.LastTower != nil {
			user.LastTower = input.LastTower
		}
		user.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if input.LastLat != nil && input.LastLng != nil {
			if _, err := uc.Fanout.ScanUser(tx, &user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// MoveUser godoc
// @Summary Update a user's position and re-scan active disasters
// @Tags users
// @Accept json
// @Produce json
// @Param payload body MoveUserInput true "New position"
// @Success 200 {object} map[string]interface{}
// @Router /move-user [post]
func (uc *UserController) MoveUser(c *gin.Context) {
	var input MoveUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAlerts := 0
	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("phone = ?", input.Phone).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			user = models.User{Phone: input.Phone}
		}

		user.LastLat = input.Lat
		user.LastLng = input.Lng
		user.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		n, err := uc.Fanout.ScanUser(tx, &user)
		if err != nil {
			return err
		}
		newAlerts = n
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "new_alerts": newAlerts})
}

// ListUsers returns recent users for the operator view.
func (uc *UserController) ListUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("id DESC").Limit(500).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}
