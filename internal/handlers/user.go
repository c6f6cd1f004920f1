// internal/handlers/user.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juntai-br/juntai-backend/internal/services"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

type UserHandler struct {
	userService    *services.UserService
	projectService *services.ProjectService
	storageService *services.StorageService
}

func NewUserHandler(userService *services.UserService, projectService *services.ProjectService, storageService *services.StorageService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		projectService: projectService,
		storageService: storageService,
	}
}

// GetUser returns a user's public profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	profile, err := h.userService.GetPublicProfile(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch user")
		return
	}

	utils.SuccessResponse(c, profile)
}

// GetUserProjects lists a user's projects, for the public creator page.
func (h *UserHandler) GetUserProjects(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.GetCreatorProjects(id, params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch projects")
		return
	}

	result := utils.CreatePaginationResult(projects, total, params)
	utils.PaginatedResponse(c, result)
}

// UpdateProfile updates the authenticated user's own profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update profile")
		return
	}

	utils.SuccessResponse(c, user)
}

// UploadAvatar stores a new profile picture and saves its URL.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions("avatars")
	upload, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	user, err := h.userService.UpdateProfile(userID, &services.UpdateProfileRequest{AvatarURL: upload.URL})
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to save avatar")
		return
	}

	utils.SuccessResponse(c, gin.H{"avatar_url": user.AvatarURL})
}
