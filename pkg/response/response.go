package response

import (
	"net/http"

	"pmp/pkg/errors"
	"pmp/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// Response 统一返回格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 成功返回（自定义消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// SuccessWithPage 分页成功返回
func SuccessWithPage(c *gin.Context, data interface{}, pageInfo *pagination.PageInfo) {
	c.JSON(http.StatusOK, gin.H{
		"code":      errors.CodeSuccess,
		"message":   "success",
		"data":      data,
		"page_info": pageInfo,
	})
}

// Error 通用错误返回
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, errors.CodeInvalidParam, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, errors.CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, errors.CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, errors.CodeNotFound, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, errors.CodeServerError, message)
}

// ========== 门户业务错误快捷方法 ==========

// CredentialError 登录凭证错误（会话停留在登录页）
func CredentialError(c *gin.Context, message string) {
	Error(c, errors.CodeCredentialInvalid, message)
}

// AccountDisabled 账号或住户记录已停用
func AccountDisabled(c *gin.Context, message string) {
	Error(c, errors.CodeAccountDisabled, message)
}

// ViewDenied 角色无权访问视图
func ViewDenied(c *gin.Context, message string) {
	Error(c, errors.CodeViewDenied, message)
}

// ScopeDenied 目标物业不在数据范围内
func ScopeDenied(c *gin.Context, message string) {
	Error(c, errors.CodeScopeDenied, message)
}

// RoomNumberInvalid 房间号规范化后为空
func RoomNumberInvalid(c *gin.Context, message string) {
	Error(c, errors.CodeRoomNumberInvalid, message)
}
