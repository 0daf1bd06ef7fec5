package user

import (
	"log"
	"net/http"
	"strings"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Register creates a local account and returns a JWT.
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	var existingID gocql.UUID
	if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An account with this e-mail already exists"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create account"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	insertUser := database.GetPreparedInsertUser()
	if insertUser == nil {
		insertUser = session.Query(`INSERT INTO users (user_id, email, password, name, phone, role, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	}
	if err := insertUser.Bind(userID, email, hashed, input.Name, input.Phone, "customer", true, now, now).Exec(); err != nil {
		log.Printf("❌ User insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create account"})
		return
	}

	insertByEmail := database.GetPreparedInsertUserByEmail()
	if insertByEmail == nil {
		insertByEmail = session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`)
	}
	if err := insertByEmail.Bind(email, userID).Exec(); err != nil {
		log.Printf("⚠️ users_by_email insert failed: %v", err)
	}

	user := models.User{
		ID:    userID.String(),
		Email: email,
		Name:  input.Name,
		Phone: input.Phone,
		Role:  "customer",
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not issue token"})
		return
	}

	log.Printf("✅ Account created: %s", email)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Login verifies credentials and returns a JWT.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	lookup := database.GetPreparedGetUserByEmail()
	if lookup == nil {
		lookup = session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`)
	}
	var userID gocql.UUID
	if err := lookup.Bind(email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid e-mail or password"})
		return
	}

	byID := database.GetPreparedGetUserByID()
	if byID == nil {
		byID = session.Query(`SELECT email, password, name, phone, role, is_active FROM users WHERE user_id = ?`)
	}
	var (
		storedEmail, password, name, phone, role string
		isActive                                 bool
	)
	if err := byID.Bind(userID).
		Scan(&storedEmail, &password, &name, &phone, &role, &isActive); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid e-mail or password"})
		return
	}

	if !isActive {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Account disabled"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid e-mail or password"})
		return
	}

	user := models.User{
		ID:    userID.String(),
		Email: storedEmail,
		Name:  name,
		Phone: phone,
		Role:  role,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	uid, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	var (
		email, name, phone, role string
		isActive                 bool
	)
	if err := session.Query(`SELECT email, name, phone, role, is_active FROM users WHERE user_id = ?`, gocql.UUID(uid)).
		Scan(&email, &name, &phone, &role, &isActive); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": models.User{
			ID:       userID,
			Email:    email,
			Name:     name,
			Phone:    phone,
			Role:     role,
			IsActive: isActive,
		},
	})
}
