package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pmp/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordResponse(t *testing.T, write func(c *gin.Context)) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := recordResponse(t, func(c *gin.Context) {
		Success(c, gin.H{"id": 1})
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, errors.CodeSuccess, body.Code)
	assert.Equal(t, "success", body.Message)
	assert.NotNil(t, body.Data)
}

// 业务错误走HTTP 200，前端按code字段区分提示方式
func TestPortalErrorCodes(t *testing.T) {
	tests := []struct {
		name    string
		write   func(c *gin.Context)
		code    int
		message string
	}{
		{"凭证错误", func(c *gin.Context) { CredentialError(c, "用户名或密码错误") }, errors.CodeCredentialInvalid, "用户名或密码错误"},
		{"账号停用", func(c *gin.Context) { AccountDisabled(c, "账号已被禁用") }, errors.CodeAccountDisabled, "账号已被禁用"},
		{"视图无权", func(c *gin.Context) { ViewDenied(c, "无权访问该视图") }, errors.CodeViewDenied, "无权访问该视图"},
		{"范围越权", func(c *gin.Context) { ScopeDenied(c, "无权操作该物业") }, errors.CodeScopeDenied, "无权操作该物业"},
		{"房间号非法", func(c *gin.Context) { RoomNumberInvalid(c, "房间号不能为空白") }, errors.CodeRoomNumberInvalid, "房间号不能为空白"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := recordResponse(t, tt.write)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.Nil(t, body.Data)
		})
	}
}
