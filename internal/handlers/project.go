// internal/handlers/project.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juntai-br/juntai-backend/internal/models"
	"github.com/juntai-br/juntai-backend/internal/services"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	storageService *services.StorageService
}

func NewProjectHandler(projectService *services.ProjectService, storageService *services.StorageService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		storageService: storageService,
	}
}

// GET /projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.SearchProjects(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(projects, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project ID", nil)
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.NotFoundResponse(c, "Project")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"project": project})
}

// POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	project, err := h.projectService.CreateProject(userID, &req)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"project": project})
}

// PATCH /projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project ID", nil)
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(id, userID, &req)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"project": project})
}

// POST /projects/:id/deactivate
func (h *ProjectHandler) DeactivateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project ID", nil)
		return
	}

	project, err := h.projectService.DeactivateProject(id, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"project": project})
}

// POST /projects/:id/activate
func (h *ProjectHandler) ActivateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project ID", nil)
		return
	}

	project, err := h.projectService.ActivateProject(id, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"project": project})
}

// DELETE /projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project ID", nil)
		return
	}

	var req services.DeleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Password is required", err.Error())
		return
	}

	if err := h.projectService.DeleteProject(id, userID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectStillLive),
			errors.Is(err, services.ErrCoolOffNotElapsed):
			utils.BadRequestResponse(c, err.Error(), nil)
		case errors.Is(err, services.ErrWrongPassword):
			utils.ForbiddenResponse(c, err.Error())
		default:
			respondProjectError(c, err)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Project deleted"})
}

// GET /projects/my
func (h *ProjectHandler) GetMyProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.GetCreatorProjects(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(projects, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /projects/:id/media
// Accepts a multipart upload, stores the file, and attaches the resulting URL
// to the project.
func (h *ProjectHandler) UploadMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project ID", nil)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", err.Error())
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions("project_media")
	upload, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	mediaType := models.MediaTypeImage
	if c.PostForm("media_type") == "video" {
		mediaType = models.MediaTypeVideo
	}

	media, err := h.projectService.AddMedia(id, userID, &services.AddMediaRequest{
		URL:       upload.URL,
		MediaType: mediaType,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"media": media})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		utils.NotFoundResponse(c, "Project")
	case errors.Is(err, services.ErrNotProjectOwner):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "Category")
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
