package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/utils"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

type SignupInput struct {
	Username  string
	Password1 string
	Password2 string
}

func (in *SignupInput) Validate() FormErrors {
	in.Username = strings.TrimSpace(in.Username)

	errs := FormErrors{}
	switch {
	case in.Username == "":
		errs.Add("username", "This field is required.")
	case utf8.RuneCountInString(in.Username) > 150:
		errs.Add("username", "Ensure this value has at most 150 characters.")
	case !usernamePattern.MatchString(in.Username):
		errs.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	if in.Password1 == "" {
		errs.Add("password1", "This field is required.")
	}
	if in.Password2 == "" {
		errs.Add("password2", "This field is required.")
	}
	if in.Password1 != "" && in.Password2 != "" {
		if in.Password1 != in.Password2 {
			errs.Add("password2", "The two password fields didn't match.")
		} else {
			if utf8.RuneCountInString(in.Password1) < minPasswordLength {
				errs.Add("password2", fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
			}
			if digitsOnly.MatchString(in.Password1) {
				errs.Add("password2", "This password is entirely numeric.")
			}
		}
	}
	return errs
}

// AuthService owns user accounts: signup, credential checks, admin bootstrap.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Signup validates the form and creates a customer account.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	errs := in.Validate()
	if _, bad := errs["username"]; !bad {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if count > 0 {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if err := errs.orNil(); err != nil {
		return nil, err
	}

	return s.createUser(ctx, in.Username, in.Password1, models.RoleCustomer)
}

// CreateAdmin bootstraps a back-office account.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*models.User, error) {
	in := SignupInput{Username: username, Password1: password, Password2: password}
	if err := in.Validate().orNil(); err != nil {
		return nil, err
	}
	return s.createUser(ctx, in.Username, password, models.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, username, password, role string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Username, user.Role)
	return &user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
