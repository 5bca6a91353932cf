package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckID rejects requests whose named path parameters are not valid
// ObjectID hex strings, before any handler runs.
func CheckID(params ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, param := range params {
			if _, err := primitive.ObjectIDFromHex(c.Param(param)); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid Id"})
				return
			}
		}
		c.Next()
	}
}
