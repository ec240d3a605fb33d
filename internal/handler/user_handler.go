package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/policy"
	"reviewhub/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the user administration and profile routes.
// The whole group runs behind AuthRequired; "me" in the username position
// aliases the caller's own profile.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:username", h.Get)
		users.PATCH("/:username", h.Update)
		users.PUT("/:username", h.FullReplace)
		users.DELETE("/:username", h.Delete)
	}
}

// resolveTarget maps the "me" alias to the caller's own username.
func resolveTarget(c *gin.Context) (username string, isMe bool) {
	username = c.Param("username")
	if username == "me" {
		return middleware.GetIdentity(c).Username, true
	}
	return username, false
}

// List returns users ordered by username, admin only
// GET /api/v1/users?limit=20&offset=0&search=<username>
func (h *UserHandler) List(c *gin.Context) {
	if !policy.IsAdmin(middleware.GetIdentity(c)) {
		respondError(c, service.ErrForbidden)
		return
	}

	limit, offset := parseLimitOffset(c)
	users, err := h.userService.List(limit, offset, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create adds a user with an arbitrary role, admin only
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	if !policy.IsAdmin(middleware.GetIdentity(c)) {
		respondError(c, service.ErrForbidden)
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Get retrieves a profile: own profile through the "me" alias, any profile
// for admins
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	target, isMe := resolveTarget(c)
	if !policy.SelfOrAdmin(middleware.GetIdentity(c), isMe) {
		respondError(c, service.ErrForbidden)
		return
	}

	user, err := h.userService.Get(target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update partially updates a profile. On the "me" alias any role value in
// the payload is discarded in favor of the caller's current role.
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	target, isMe := resolveTarget(c)
	if !policy.SelfOrAdmin(middleware.GetIdentity(c), isMe) {
		respondError(c, service.ErrForbidden)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(target, req, isMe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// FullReplace always rejects: profiles only support partial updates
// PUT /api/v1/users/:username
func (h *UserHandler) FullReplace(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "full replace is not allowed on profiles, use PATCH"})
}

// Delete removes a user, admin only. Deleting one's own profile through
// the "me" alias is rejected even for admins.
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	target, isMe := resolveTarget(c)
	if isMe {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "deleting your own profile is not allowed"})
		return
	}
	if !policy.IsAdmin(middleware.GetIdentity(c)) {
		respondError(c, service.ErrForbidden)
		return
	}

	if err := h.userService.Delete(target); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
