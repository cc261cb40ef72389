package resume

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-site/internal/session"
	"resume-site/internal/shared/server/respond"
	"resume-site/internal/shared/telemetry"
	"resume-site/internal/users"
)

const loginPath = "/login"

// Handler serves the public resume, the owner dashboard and the edit form.
type Handler struct {
	Svc *Service
	// Diagnostics allows ?debug=1 to surface raw storage errors.
	Diagnostics bool
}

func NewHandler(svc *Service, diagnostics bool) *Handler {
	return &Handler{Svc: svc, Diagnostics: diagnostics}
}

// RegisterRoutes attaches resume routes. The session middleware must run first.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume", h.view)
	rg.GET("/resume/:segment", h.view)

	owner := rg.Group("", session.RequireLogin(loginPath))
	owner.GET("/dashboard", h.dashboard)
	owner.GET("/edit", h.editForm)
	owner.POST("/edit", h.edit)
}

type dashboardResponse struct {
	View
	Flash map[string]string `json:"flash,omitempty"`
}

type editFormResponse struct {
	Values ProfileForm       `json:"values"`
	Flash  map[string]string `json:"flash,omitempty"`
}

type editFailure struct {
	Errors []string    `json:"errors"`
	Values ProfileForm `json:"values"`
}

func (h *Handler) options(c *gin.Context) Options {
	return Options{Diagnostic: h.Diagnostics && c.Query("debug") == "1"}
}

func (h *Handler) view(c *gin.Context) {
	slug := c.Query("u")
	if slug == "" {
		slug = c.Query("slug")
	}
	sig := Signals{
		ID:          c.Query("id"),
		Slug:        slug,
		PathSegment: c.Param("segment"),
		ViewerID:    session.FromContext(c).UserID(),
	}
	opts := h.options(c)

	view, err := h.Svc.View(c.Request.Context(), sig, opts)
	if err != nil {
		h.fail(c, err, opts)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) dashboard(c *gin.Context) {
	sess := session.FromContext(c)
	opts := h.options(c)

	view, err := h.Svc.Assembler.Assemble(c.Request.Context(), sess.UserID(), opts)
	if err != nil {
		h.fail(c, err, opts)
		return
	}
	view.IsOwner = true
	respond.OK(c, dashboardResponse{View: view, Flash: sess.Flashes()})
}

func (h *Handler) editForm(c *gin.Context) {
	sess := session.FromContext(c)
	u, err := h.Svc.Users.GetByID(c.Request.Context(), sess.UserID())
	if err != nil {
		h.fail(c, notFoundOr(err), Options{})
		return
	}
	respond.OK(c, editFormResponse{Values: FormOf(u), Flash: sess.Flashes()})
}

func (h *Handler) edit(c *gin.Context) {
	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form body", nil)
		return
	}

	sess := session.FromContext(c)
	msgs, err := h.Svc.UpdateProfile(c.Request.Context(), sess.UserID(), form)
	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			respond.Error(c, http.StatusUnprocessableEntity, "validation_error", strings.Join(msgs, ". "), editFailure{Errors: msgs, Values: form})
			return
		}
		h.fail(c, err, Options{})
		return
	}

	sess.Set(session.KeyEmail, strings.TrimSpace(form.Email))
	sess.SetFlash("success", "Profile updated successfully!")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) fail(c *gin.Context, err error, opts Options) {
	switch {
	case errors.Is(err, ErrUnresolved):
		c.Redirect(http.StatusFound, loginPath)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	default:
		telemetry.Error("resume.request_failed", map[string]any{"path": c.Request.URL.Path, "error": err})
		var details any
		if opts.Diagnostic {
			details = err.Error()
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Unable to load resume", details)
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, users.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
