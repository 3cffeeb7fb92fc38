package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/app"
	"postboard/internal/model"
	"postboard/internal/transport/http/middleware"
	"postboard/internal/transport/http/response"
)

const actionLogin = "login"

type UserHandler struct {
	authService *app.AuthService
	logger      *zap.Logger
}

// UsersRequest serves both registration and, with action "login", sign-in.
type UsersRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func NewUserHandler(authService *app.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{authService: authService, logger: logger}
}

func (h *UserHandler) Users(c *gin.Context) {
	var req UsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	switch req.Action {
	case actionLogin:
		h.login(c, req)
	case "", "register":
		h.register(c, req)
	default:
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "unknown action")
	}
}

func (h *UserHandler) register(c *gin.Context, req UsersRequest) {
	result, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, response.CodeUsernameExists, err.Error())
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusBadRequest, response.CodeEmailExists, err.Error())
		default:
			writeError(c, h.logger, err, "register")
		}
		return
	}

	response.Created(c, newAuthResponse(result))
}

func (h *UserHandler) login(c *gin.Context, req UsersRequest) {
	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredential) {
			response.Error(c, http.StatusBadRequest, response.CodeInvalidCredentials, err.Error())
			return
		}
		writeError(c, h.logger, err, "login")
		return
	}

	response.OK(c, newAuthResponse(result))
}

func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, h.logger, err, "fetch current user")
		return
	}
	if user == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
		return
	}

	response.OK(c, newUserView(user))
}

func newAuthResponse(result *app.AuthResult) authResponse {
	return authResponse{Token: result.Token, User: newUserView(result.User)}
}

func newUserView(u *model.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email}
}
