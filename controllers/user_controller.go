package controllers

import (
	"context"
	"net/http"

	"catalog-service/middleware"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserServiceAPI defines the account operations the controller depends on.
type UserServiceAPI interface {
	SignUp(ctx context.Context, req services.SignUpRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, req services.UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserController struct {
	service UserServiceAPI
}

func NewUserController(service UserServiceAPI) *UserController {
	return &UserController{service: service}
}

type signUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required,alpha,max=100"`
	LastName  string `json:"lastName" validate:"required,alpha,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// authenticatedID reads the user id placed on the context by the auth
// middleware.
func authenticatedID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func (ctrl *UserController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctrl.service.SignUp(c.Request.Context(), services.SignUpRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User successfully created",
		"data":    user,
	})
}

func (ctrl *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}

	token, err := ctrl.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (ctrl *UserController) Profile(c *gin.Context) {
	id, ok := authenticatedID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}

	user, err := ctrl.service.Profile(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	id, ok := authenticatedID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}

	user, err := ctrl.service.Update(c.Request.Context(), id, services.UserUpdateRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User successfully updated",
		"data":    user,
	})
}

func (ctrl *UserController) DeleteProfile(c *gin.Context) {
	id, ok := authenticatedID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User successfully deleted"})
}
