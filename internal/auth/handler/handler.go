package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raally_backend/internal/auth/service"
	"raally_backend/internal/auth/token"
	"raally_backend/internal/auth/transport"
	"raally_backend/platform/httpkit"
	"raally_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SignUp registers a local-credentials account.
// POST /api/v1/auth/sign-up
func (h *Handler) SignUp(c *gin.Context) {
	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	signed, err := h.svc.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if httpkit.HandleError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, transport.TokenResponse{Token: signed})
}

// SignIn authenticates local credentials.
// POST /api/v1/auth/sign-in
func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	signed, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.TokenResponse{Token: signed})
}

// SocialRedirect returns the provider authorization URL.
// GET /api/v1/auth/social/:provider
func (h *Handler) SocialRedirect(c *gin.Context) {
	p, err := h.svc.Provider(c.Param("provider"))
	if httpkit.HandleError(c, err) {
		return
	}

	state, err := token.GenerateRandomToken(16)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "could not generate state")
		return
	}
	httpkit.OK(c, transport.AuthURLResponse{URL: p.AuthURL(state)})
}

// SocialCallback exchanges the authorization code and signs the user in.
// GET /api/v1/auth/social/:provider/callback
func (h *Handler) SocialCallback(c *gin.Context) {
	p, err := h.svc.Provider(c.Param("provider"))
	if httpkit.HandleError(c, err) {
		return
	}

	code := c.Query("code")
	if code == "" {
		httpkit.Error(c, http.StatusBadRequest, "missing authorization code")
		return
	}

	identity, err := p.Exchange(c.Request.Context(), code)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "provider exchange failed")
		return
	}

	signed, err := h.svc.SignInFromSocial(c.Request.Context(), identity)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.TokenResponse{Token: signed})
}

// Onboard places the signed-in user into a tenant.
// POST /api/v1/auth/onboard
func (h *Handler) Onboard(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	signed, err := h.svc.HandleOnboard(c.Request.Context(), identity.UserID(), req.InvitationToken, req.TenantName)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.TokenResponse{Token: signed})
}

// GetMe returns the signed-in account.
// GET /api/v1/users/me
func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	user, err := h.svc.Me(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToProfileResponse(user))
}

// RegisterRoutes mounts the public auth routes on the given group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/sign-up", h.SignUp)
	group.POST("/sign-in", h.SignIn)
	group.GET("/social/:provider", h.SocialRedirect)
	group.GET("/social/:provider/callback", h.SocialCallback)
}
