package handlers

import (
	"errors"
	"strings"
	"time"

	"rentoasis/internal/models"
	"rentoasis/internal/services"
	apperrors "rentoasis/pkg/errors"
	"rentoasis/pkg/jwt"
	"rentoasis/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=landlord tenant"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// Login 用户登录
//
// 邮箱不存在和密码错误对外是同一条提示，避免账号枚举。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.ServerError(c, "Login failed")
		return
	}

	h.respondWithToken(c, user)
}

// Signup 用户注册，成功后直接登录
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 解析验证错误，提供更友好的提示
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			errorMsg := "Invalid request"
			for _, fieldErr := range validationErr {
				switch fieldErr.Field() {
				case "Name":
					errorMsg = "Name is required"
				case "Email":
					errorMsg = "A valid email address is required"
				case "Password":
					errorMsg = "Password must be at least 6 characters"
				case "Role":
					errorMsg = "Role must be landlord or tenant"
				}
				break // 只返回第一个错误
			}
			response.BadRequest(c, errorMsg)
			return
		}
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.Signup(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			response.Conflict(c, "Email already in use")
			return
		}
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Signup failed")
		return
	}

	h.respondWithToken(c, user)
}

// Logout 用户登出
//
// 令牌到期自动失效，前端丢弃本地令牌即可，无论令牌状态都算登出成功。
func (h *AuthHandler) Logout(c *gin.Context) {
	response.SuccessWithMessage(c, "Logged out successfully", gin.H{
		"logout_time": time.Now(),
	})
}

// RefreshToken 刷新Token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "Invalid authorization header")
		return
	}

	tokenString := authHeader[7:] // 去掉 "Bearer "

	claims, err := h.jwtManager.VerifyToken(tokenString)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token")
		return
	}

	user, err := h.userService.GetByID(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "User not found")
		return
	}

	h.respondWithToken(c, user)
}

// Me 获取当前登录用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	value, exists := c.Get("user")
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return
	}
	user := value.(*models.User)

	response.Success(c, UserInfo{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user *models.User) {
	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		response.ServerError(c, "Failed to generate token")
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	response.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserInfo{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Role:         user.Role,
			ProfileImage: user.ProfileImage,
		},
	})
}
