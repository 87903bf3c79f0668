package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/foodcourt/middlewares"
	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

type UserController struct {
	Auth   *services.AuthService
	Tokens *utils.TokenIssuer
}

func NewUserController(auth *services.AuthService, tokens *utils.TokenIssuer) *UserController {
	return &UserController{Auth: auth, Tokens: tokens}
}

// Signup creates a customer account and logs it in.
func (uc *UserController) Signup(c *gin.Context) {
	user, err := uc.Auth.Signup(c.Request.Context(), services.SignupInput{
		Username:  c.PostForm("username"),
		Password1: c.PostForm("password1"),
		Password2: c.PostForm("password2"),
	})
	var formErrs services.FormErrors
	if errors.As(err, &formErrs) {
		utils.RespondFormErrors(c, http.StatusBadRequest, "Please correct the errors below.", formErrs)
		return
	}
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("signup failed")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not create your account"))
		return
	}

	uc.startSession(c, http.StatusCreated, "User registered", user)
}

func (uc *UserController) Login(c *gin.Context) {
	user, err := uc.Auth.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	uc.startSession(c, http.StatusOK, "Login success", user)
}

func (uc *UserController) startSession(c *gin.Context, code int, message string, user *models.User) {
	token, err := uc.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	session.FromContext(c).Login(user.ID, user.Role)

	utils.RespondJSON(c, code, message, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"token":    token,
	})
}

// Logout ends the session and revokes the bearer token the request carried.
func (uc *UserController) Logout(c *gin.Context) {
	if claims, ok := middlewares.BearerClaims(c); ok {
		uc.Tokens.Revoke(claims)
	}
	session.FromContext(c).Logout()
	c.Redirect(http.StatusFound, "/")
}
