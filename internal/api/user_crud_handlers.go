package api

import (
	"log"
	"net/http"

	"innerlog/internal/auth"
	"innerlog/internal/cycle"
	"innerlog/internal/db"
	"innerlog/internal/profile"
	"innerlog/internal/storage"
	"innerlog/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// requireAdmin double-checks the role even behind the admin-gated
// middleware, so a mis-registered route fails closed.
func requireAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	if role != string(user.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Forbidden"}})
		return false
	}
	return true
}

func userJSON(u *user.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"username":    u.Username,
		"displayName": u.DisplayName,
		"role":        u.Role,
		"createdAt":   u.CreatedAt,
	}
}

// purgeUserData removes everything keyed by the account id once the row
// is gone: the profile and cycle blobs, and the active session.
func purgeUserData(c *gin.Context, rdb *redis.Client, id uint) {
	keys := []string{profile.StorageKey(id), cycle.StorageKey(id)}
	if err := db.DB.Where("key IN ?", keys).Delete(&storage.Record{}).Error; err != nil {
		log.Printf("[API] WARNING: failed to purge blobs for deleted user %d: %v", id, err)
	}
	if rdb != nil {
		_ = auth.DeleteSession(c.Request.Context(), rdb, id)
	}
}

// GET /users  [admin only]
func ListUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		var users []user.User
		if err := db.DB.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		result := make([]gin.H, 0, len(users))
		for i := range users {
			result = append(result, userJSON(&users[i]))
		}
		c.JSON(http.StatusOK, result)
	}
}

type CreateUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Password    string `json:"password"`
}

// POST /users  [admin only]
func CreateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Missing username or password"}})
			return
		}
		pwHash, err := user.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Password hash failed"}})
			return
		}
		newUser := user.User{
			Username:     req.Username,
			DisplayName:  req.DisplayName,
			PasswordHash: pwHash,
			Role:         user.RoleUser,
		}
		if err := db.DB.Create(&newUser).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Create error"}})
			return
		}
		c.JSON(http.StatusCreated, userJSON(&newUser))
	}
}

// GET /users/me
func GetMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var u user.User
		if err := db.DB.First(&u, userId.(uint)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "User not found"}})
			return
		}
		c.JSON(http.StatusOK, userJSON(&u))
	}
}

type UpdateMeRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Password    string  `json:"password,omitempty"`
}

// PUT /users/me
func UpdateMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var req UpdateMeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		var u user.User
		if err := db.DB.First(&u, userId.(uint)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "User not found"}})
			return
		}
		if req.DisplayName != nil {
			u.DisplayName = *req.DisplayName
		}
		if req.Password != "" {
			pwHash, err := user.HashPassword(req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Password hash failed"}})
				return
			}
			u.PasswordHash = pwHash
		}
		if err := db.DB.Save(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Update error"}})
			return
		}
		c.JSON(http.StatusOK, userJSON(&u))
	}
}

// DELETE /users/me
func DeleteMeHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		id := userId.(uint)
		if err := db.DB.Delete(&user.User{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		purgeUserData(c, rdb, id)
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}

// DELETE /users/:id  [admin only]
func DeleteUserByIdHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		var u user.User
		if err := db.DB.First(&u, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "User not found"}})
			return
		}
		if err := db.DB.Delete(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		purgeUserData(c, rdb, u.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}
