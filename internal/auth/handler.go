package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-site/internal/session"
	"resume-site/internal/shared/server/respond"
	"resume-site/internal/validate"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// Handler wires login, signup and logout to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches auth routes. The session middleware must run first.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/login", h.loginPage)
	rg.POST("/login", h.login)
	rg.GET("/signup", h.signupPage)
	rg.POST("/signup", h.signup)
	rg.GET("/logout", h.logout)
	rg.POST("/logout", h.logout)
}

type pageState struct {
	Flash map[string]string `json:"flash,omitempty"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type signupForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (h *Handler) loginPage(c *gin.Context) {
	h.page(c)
}

func (h *Handler) signupPage(c *gin.Context) {
	h.page(c)
}

func (h *Handler) page(c *gin.Context) {
	sess := session.FromContext(c)
	if sess.IsLoggedIn() {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	respond.OK(c, pageState{Flash: sess.Flashes()})
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form body", nil)
		return
	}

	v := validate.New()
	if !v.ValidateLogin(form.Username, form.Password) {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", v.ErrorsAsString(". "), v.Errors())
		return
	}

	res := h.Svc.Authenticate(c.Request.Context(), form.Username, form.Password)
	if !res.Success {
		status, code := failureStatus(res.Err)
		respond.Error(c, status, code, res.Message, nil)
		return
	}

	sess := session.FromContext(c)
	sess.Login(res.User.ID, res.User.Username, res.User.Email)
	sess.SetFlash("success", "Welcome back, "+res.User.Username+"!")
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form body", nil)
		return
	}

	v := validate.New()
	if !v.ValidateRegistration(form.Username, form.Email, form.Password, form.ConfirmPassword) {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", v.ErrorsAsString(". "), v.Errors())
		return
	}

	res := h.Svc.Register(c.Request.Context(), form.Username, form.Email, form.Password)
	if !res.Success {
		status, code := failureStatus(res.Err)
		respond.Error(c, status, code, res.Message, nil)
		return
	}

	session.FromContext(c).SetFlash("success", res.Message)
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (h *Handler) logout(c *gin.Context) {
	sess := session.FromContext(c)
	sess.Logout()
	sess.SetFlash("success", "You have been logged out.")
	c.Redirect(http.StatusSeeOther, loginPath)
}

func failureStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusUnprocessableEntity, "validation_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
