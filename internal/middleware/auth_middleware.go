package middleware

import (
	"strings"

	"pmp/internal/models"
	"pmp/internal/portal"
	"pmp/internal/services"
	"pmp/pkg/jwt"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 权限中间件
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		userService: services.NewUserService(),
		jwtManager:  jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

// RequireLogin 要求已登录
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 检查Bearer格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		tokenString := authHeader[7:] // 去掉 "Bearer "

		// 验证token
		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		// 获取用户信息
		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		// 检查账号状态
		if !user.IsActive() {
			response.AccountDisabled(c, "账号已被禁用")
			c.Abort()
			return
		}

		// 将用户信息保存到上下文
		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireView 要求角色可访问指定视图
// 路由层的权限判断统一走 portal.IsViewAllowed，保证权限逻辑只有一处
func (m *AuthMiddleware) RequireView(view portal.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !portal.IsViewAllowed(role.(string), view) {
			response.ViewDenied(c, "无权访问该功能")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireStaff 要求后台角色（管理员或物业经理）
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !user.(*models.User).IsStaff() {
			response.Forbidden(c, "需要后台管理权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireResident 要求住户角色
func (m *AuthMiddleware) RequireResident() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		userObj := user.(*models.User)
		if userObj.Role != models.RoleResident || userObj.ResidentID == nil {
			response.Forbidden(c, "仅住户门户可用")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ResolveScope 解析数据可见范围并写入上下文
// 管理员看到全量数据；物业经理只能看到分配给自己的物业；
// 未分配任何物业的经理看到空集而不是全量
func (m *AuthMiddleware) ResolveScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		userObj := user.(*models.User)
		scope, err := m.userService.ScopeFor(userObj)
		if err != nil {
			response.ServerError(c, "解析数据范围失败")
			c.Abort()
			return
		}

		c.Set("scope", scope)
		c.Next()
	}
}

// GetScope 从上下文读取数据范围
func GetScope(c *gin.Context) *services.Scope {
	if v, exists := c.Get("scope"); exists {
		return v.(*services.Scope)
	}
	// 缺省按空范围处理，避免越权
	return &services.Scope{}
}
