package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func CheckAdmin(c *gin.Context) {
	if !c.MustGet("admin").(bool) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
}
