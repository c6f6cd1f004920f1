// internal/services/comment_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juntai-br/juntai-backend/internal/models"
)

func setupCommentTest(t *testing.T) (*CommentService, *models.User, *models.Project) {
	t.Helper()

	db := setupTestDB(t)
	service := NewCommentService(db)
	author := createTestUser(t, db, "autora@example.com", "52998224725", "SenhaForte123")
	category := createTestCategory(t, db, "Comunidade", "comunidade")
	project := createTestProject(t, db, author.ID, category.ID, 1000)

	return service, author, project
}

func TestCreateComment(t *testing.T) {
	service, author, project := setupCommentTest(t)

	comment, err := service.CreateComment(author.ID, &CreateCommentRequest{
		ProjectID: project.ID,
		Content:   "Projeto lindo, boa sorte!",
	})
	require.NoError(t, err)
	assert.Equal(t, author.ID, comment.AuthorID)

	_, err = service.CreateComment(author.ID, &CreateCommentRequest{
		ProjectID: uuid.New(),
		Content:   "Comentário órfão",
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestUpdateCommentOnlyByAuthor(t *testing.T) {
	service, author, project := setupCommentTest(t)
	stranger := createTestUser(t, service.db, "outro@example.com", "11144477735", "SenhaForte123")

	comment, err := service.CreateComment(author.ID, &CreateCommentRequest{
		ProjectID: project.ID,
		Content:   "Primeira versão",
	})
	require.NoError(t, err)

	_, err = service.UpdateComment(comment.ID, stranger.ID, &UpdateCommentRequest{Content: "Invadido"})
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	updated, err := service.UpdateComment(comment.ID, author.ID, &UpdateCommentRequest{Content: "Segunda versão"})
	require.NoError(t, err)
	assert.Equal(t, "Segunda versão", updated.Content)
}

func TestDeleteComment(t *testing.T) {
	service, author, project := setupCommentTest(t)

	comment, err := service.CreateComment(author.ID, &CreateCommentRequest{
		ProjectID: project.ID,
		Content:   "Para apagar",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, service.DeleteComment(comment.ID, uuid.New()), ErrNotCommentAuthor)
	require.NoError(t, service.DeleteComment(comment.ID, author.ID))
	assert.ErrorIs(t, service.DeleteComment(comment.ID, author.ID), ErrCommentNotFound)
}

func TestGetProjectComments(t *testing.T) {
	service, author, project := setupCommentTest(t)

	for _, content := range []string{"um", "dois", "três"} {
		_, err := service.CreateComment(author.ID, &CreateCommentRequest{
			ProjectID: project.ID,
			Content:   content,
		})
		require.NoError(t, err)
	}

	comments, total, err := service.GetProjectComments(project.ID, paginationDefaults())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, comments, 3)
}
