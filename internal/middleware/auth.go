package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/config"
	"zaika-pay-api/internal/constant"
	"zaika-pay-api/internal/utils"
)

// UserAuth 校验 X-User-Id / X-User-Token，token 为 HMAC-SHA256(userId)
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.GetHeader("X-User-Id")
		token := c.GetHeader("X-User-Token")
		if userIDStr == "" || token == "" {
			c.JSON(200, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			c.JSON(200, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(config.C.Security.HMACSecret))
		mac.Write([]byte(userIDStr))
		expect := hex.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(expect), []byte(token)) {
			c.JSON(200, utils.Error(constant.CodeSignatureError))
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// AdminAuth 管理端令牌校验
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Admin-Token")
		expect := config.C.Security.AdminToken
		if expect == "" || !hmac.Equal([]byte(token), []byte(expect)) {
			c.JSON(200, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID 从上下文取已认证的用户 id
func UserID(c *gin.Context) uint64 {
	v, _ := c.Get("user_id")
	id, _ := v.(uint64)
	return id
}
