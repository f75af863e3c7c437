package errors

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// 门户业务错误码 (1000+)
// 前端据此区分登录页提示、停用提示与权限提示
const (
	CodeCredentialInvalid = 1001 // 用户名或密码错误，停留在登录页
	CodeAccountDisabled   = 1002 // 账号或住户记录已停用
	CodeViewDenied        = 1003 // 角色无权访问该视图
	CodeScopeDenied       = 1004 // 目标物业不在数据范围内
	CodeRoomNumberInvalid = 1005 // 房间号规范化后为空
)
