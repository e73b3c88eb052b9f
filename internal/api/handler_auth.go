package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahmoudbymassen/station-managment/internal/auth"
	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/scope"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an admin or manager and issues a 1 hour token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	var user model.User
	if err := h.store.DB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	role, ok := auth.NormalizeRole(user.Role)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	var stationID int64
	if user.StationID != nil {
		stationID = *user.StationID
	}

	token, err := auth.SignToken(h.secret, user.ID, role, stationID, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"userId":    user.ID,
		"role":      user.Role,
		"stationId": user.StationID,
	})
}

type createManagerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	StationID int64  `json:"stationId"`
}

// CreateManager adds a manager account bound to one station. Admin only.
func (h *Handler) CreateManager(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	var req createManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.StationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, password, and station ID are required"})
		return
	}

	db := h.store.DB()
	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	var station model.Station
	if err := db.First(&station, req.StationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid station ID"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	user := model.User{
		Email:     req.Email,
		Password:  hash,
		Role:      string(auth.RoleManager),
		StationID: &req.StationID,
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating manager", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Manager created successfully", "userId": user.ID})
}

// ListManagers returns all manager accounts with their station. Admin only.
func (h *Handler) ListManagers(c *gin.Context) {
	ident := mustIdentity(c)
	if err := scope.RequireAdmin(ident); err != nil {
		abortScope(c, err, "")
		return
	}

	var managers []model.User
	if err := h.store.DB().Preload("Station").
		Where("role = ?", string(auth.RoleManager)).
		Find(&managers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching managers", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, managers)
}
