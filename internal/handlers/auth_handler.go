package handlers

import (
	"errors"
	"strings"
	"time"

	"pmp/internal/models"
	"pmp/internal/portal"
	"pmp/internal/services"
	"pmp/pkg/jwt"
	"pmp/pkg/logger"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
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
	Role     string `json:"role" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	View      portal.View `json:"view"` // 登录后的落地视图
	User      UserInfo    `json:"user"`
}

type UserInfo struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	ResidentID *uint  `json:"resident_id,omitempty"`
}

// Login 用户登录
// 登录流程走门户会话状态机：角色与凭证一起校验，
// 凭证错误和账号禁用返回具体原因并停留在登录页
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	session := portal.NewSession(req.Role)
	if session.State() != portal.StateAwaitingLogin {
		response.BadRequest(c, "未知的门户角色: "+req.Role)
		return
	}

	if err := session.Login(h.userService, req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrAccountDisabled) {
			response.AccountDisabled(c, err.Error())
			return
		}
		response.CredentialError(c, err.Error())
		return
	}

	user, err := h.userService.GetByUsername(req.Username)
	if err != nil {
		response.CredentialError(c, "用户名或密码错误")
		return
	}

	var residentID uint
	if user.ResidentID != nil {
		residentID = *user.ResidentID
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Username, user.Role, residentID)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	if err := h.userService.UpdateLastLogin(user.ID); err != nil {
		logger.GetLogger().Warnf("更新最后登录时间失败: %v", err)
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	response.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		View:      session.CurrentView(),
		User: UserInfo{
			ID:         user.ID,
			Username:   user.Username,
			Name:       user.Name,
			Role:       user.Role,
			ResidentID: user.ResidentID,
		},
	})
}

// Logout 用户登出
// 登出后会话完全重置，共享URL不再携带角色参数
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if claims, err := h.jwtManager.VerifyToken(authHeader[7:]); err == nil {
			logger.GetLogger().Infof("用户登出: %s", claims.Username)
		}
	}

	session := portal.NewSession("")
	session.Logout()

	// role为空串，入口回到门户选择页
	response.SuccessWithMessage(c, "登出成功", gin.H{
		"role": session.RoleParam(),
	})
}

// RefreshToken 刷新令牌
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "认证头格式错误")
		return
	}

	newToken, err := h.jwtManager.RefreshToken(authHeader[7:])
	if err != nil {
		response.Unauthorized(c, "Token无效或已过期")
		return
	}

	response.Success(c, gin.H{
		"token":      newToken,
		"expires_at": time.Now().Add(h.jwtManager.GetTokenDuration()).Unix(),
	})
}

// Me 当前登录用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	response.Success(c, UserInfo{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name,
		Role:       user.Role,
		ResidentID: user.ResidentID,
	})
}
