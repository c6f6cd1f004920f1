// internal/handlers/comment.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juntai-br/juntai-backend/internal/services"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	comment, err := h.commentService.CreateComment(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.NotFoundResponse(c, "Project")
			return
		}
		utils.InternalErrorResponse(c, "Failed to create comment")
		return
	}

	utils.CreatedResponse(c, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return
	}

	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	comment, err := h.commentService.UpdateComment(id, userID, &req)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	utils.SuccessResponse(c, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return
	}

	if err := h.commentService.DeleteComment(id, userID); err != nil {
		respondCommentError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Comment deleted"})
}

// GetProjectComments lists a project's comments, newest first. No auth needed.
func (h *CommentHandler) GetProjectComments(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	comments, total, err := h.commentService.GetProjectComments(projectID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch comments")
		return
	}

	result := utils.CreatePaginationResult(comments, total, params)
	utils.PaginatedResponse(c, result)
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound):
		utils.NotFoundResponse(c, "Comment")
	case errors.Is(err, services.ErrNotCommentAuthor):
		utils.ForbiddenResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, "Failed to process comment")
	}
}
