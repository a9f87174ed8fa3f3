package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一 JSON 响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Success bool        `json:"success"`
}

// PageInfo 分页信息
type PageInfo struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	PageCount int `json:"page_count"`
}

// 未传 message 时使用
var defaultMessages = map[int]string{
	http.StatusBadRequest:          "请求参数错误",
	http.StatusUnauthorized:        "未登录",
	http.StatusForbidden:           "无权限",
	http.StatusNotFound:            "资源不存在",
	http.StatusInternalServerError: "服务器内部错误",
}

// Success 200 + data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// Error 错误响应，message 为空时取默认文案
func Error(c *gin.Context, status int, message string) {
	if message == "" {
		message = defaultMessages[status]
	}
	if message == "" {
		message = http.StatusText(status)
	}
	c.JSON(status, Response{Code: status, Message: message})
}

func BadRequest(c *gin.Context, message string)          { Error(c, http.StatusBadRequest, message) }
func Unauthorized(c *gin.Context, message string)        { Error(c, http.StatusUnauthorized, message) }
func Forbidden(c *gin.Context, message string)           { Error(c, http.StatusForbidden, message) }
func NotFound(c *gin.Context, message string)            { Error(c, http.StatusNotFound, message) }
func InternalServerError(c *gin.Context, message string) { Error(c, http.StatusInternalServerError, message) }
