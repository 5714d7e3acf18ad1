package rbac

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Mthinuay/SingularXpress/internal/shared/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service Service
	repo    Repository
}

func NewHandler(service Service, repo Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	if req.UserID == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to evaluate permission", nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.repo.ListRoles()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list roles", nil)
		return
	}

	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description})
	}

	response.Success(c, http.StatusOK, out, nil)
}

func (h *Handler) GetRole(c *gin.Context) {
	id := c.Param("id")

	role, err := h.repo.GetRoleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Role not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get role", nil)
		return
	}

	perms, err := h.repo.GetPermissionsByRoleID(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get role permissions", nil)
		return
	}

	response.Success(c, http.StatusOK, toRoleResponse(role, perms), nil)
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req UpsertRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if existing, err := h.repo.GetRoleByName(req.Name); err == nil && existing != nil {
		response.Error(c, http.StatusConflict, "DUPLICATE", "Role name already exists", nil)
		return
	}

	role := &RoleRow{Name: req.Name, Description: req.Description}
	if err := h.repo.CreateRole(role); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create role", nil)
		return
	}

	if len(req.PermissionIDs) > 0 {
		if err := h.repo.UpdateRolePermissions(role.ID, req.PermissionIDs); err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign permissions", nil)
			return
		}
	}

	response.Success(c, http.StatusCreated, RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description}, nil)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	id := c.Param("id")

	var req UpsertRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	role, err := h.repo.GetRoleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Role not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get role", nil)
		return
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := h.repo.UpdateRole(role); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update role", nil)
		return
	}

	if req.PermissionIDs != nil {
		if err := h.repo.UpdateRolePermissions(role.ID, req.PermissionIDs); err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update permissions", nil)
			return
		}
	}

	response.Success(c, http.StatusOK, RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description}, nil)
}

func (h *Handler) DeleteRole(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.repo.GetRoleByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Role not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get role", nil)
		return
	}

	if err := h.repo.DeleteRole(id); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete role", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.repo.ListPermissions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list permissions", nil)
		return
	}

	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionResponse{ID: p.ID, Resource: p.Resource, Action: p.Action, Label: p.Label, Category: p.Category})
	}

	response.Success(c, http.StatusOK, out, nil)
}

func toRoleResponse(role *RoleRow, perms []PermissionRow) RoleResponse {
	out := RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description}
	for _, p := range perms {
		out.Permissions = append(out.Permissions, PermissionResponse{
			ID: p.ID, Resource: p.Resource, Action: p.Action, Label: p.Label, Category: p.Category,
		})
	}
	return out
}
