package services

import (
	"context"
	"errors"
	"time"

	"catalog-service/apperrors"
	"catalog-service/models"
	"catalog-service/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued token stays valid.
const tokenTTL = 24 * time.Hour

type UserService struct {
	users     *repository.UserRepository
	jwtSecret []byte
}

func NewUserService(users *repository.UserRepository, jwtSecret []byte) *UserService {
	return &UserService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// SignUp hashes the password and persists the user. The returned model
// never serializes the hash.
func (s *UserService) SignUp(ctx context.Context, req SignUpRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     NormalizeEmail(req.Email),
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return user, nil
}

// Login verifies the credentials and issues a signed token carrying the
// user id and a 24 hour expiry. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.BadRequest("Bad Request", "Please enter your email and password")
	}

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
			return s.issueToken(user.ID)
		}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	return "", apperrors.Unauthorized("Email or password is incorrect")
}

func (s *UserService) issueToken(id primitive.ObjectID) (string, error) {
	claims := jwt.MapClaims{
		"id":  id.Hex(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Profile looks up the token subject. A missing user surfaces as an access
// denial, not a not-found: the token no longer maps to an account.
func (s *UserService) Profile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Unauthorized("Access Denied")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req UserUpdateRequest) (*models.User, error) {
	updates := bson.M{}
	if req.Email != nil {
		updates["email"] = NormalizeEmail(*req.Email)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if req.FirstName != nil {
		updates["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["lastName"] = *req.LastName
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("Validation Error", "No update fields provided")
	}

	user, err := s.users.UpdateByID(ctx, id, updates)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Unauthorized("Access Denied")
	}
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.users.DeleteByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.Unauthorized("Access Denied")
	}
	return err
}
