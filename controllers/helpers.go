package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-service/apperrors"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var validate = validator.New()

// renderError maps an error onto the wire: operational errors keep their
// status and description, everything else is logged and collapsed to a
// generic internal error.
func renderError(c *gin.Context, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Code, gin.H{"error": apiErr.Description})
		return
	}

	zap.L().Error("Unexpected error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// parsePage reads the page query parameter; anything that is not a
// positive integer defaults to 1.
func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page <= 0 {
		return 1
	}
	return page
}

func parseFilters(c *gin.Context) services.ListFilters {
	return services.ListFilters{
		ExactPrice: c.Query("exactPrice"),
		LTEPrice:   c.Query("ltePrice"),
		GTEPrice:   c.Query("gtePrice"),
		Name:       c.Query("name"),
		Options:    c.Query("options"),
	}
}

// objectIDParam parses a path parameter already vetted by the CheckID
// middleware.
func objectIDParam(c *gin.Context, name string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(c.Param(name))
	return id
}
