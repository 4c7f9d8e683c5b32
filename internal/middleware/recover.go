package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/constant"
	"zaika-pay-api/internal/utils"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Recover] panic: %v, path: %s", r, c.Request.URL.Path)
				c.JSON(200, utils.Error(constant.CodeSystemError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
