// internal/services/project_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/juntai-br/juntai-backend/internal/models"
)

func setupProjectTest(t *testing.T) (*ProjectService, *gorm.DB, *models.User, *models.Category) {
	t.Helper()

	db := setupTestDB(t)
	service := NewProjectService(db)
	creator := createTestUser(t, db, "criadora@example.com", "52998224725", "SenhaForte123")
	category := createTestCategory(t, db, "Educação", "educacao")

	return service, db, creator, category
}

func TestCreateProject(t *testing.T) {
	service, _, creator, category := setupProjectTest(t)

	project, err := service.CreateProject(creator.ID, &CreateProjectRequest{
		Title:            "Horta comunitária",
		ShortDescription: "Uma horta no terreno baldio da rua Sete",
		Description:      "Vamos transformar o terreno baldio em uma horta para o bairro inteiro.",
		GoalAmount:       5000,
		EndDate:          time.Now().Add(60 * 24 * time.Hour),
		CategoryID:       category.ID,
		Tags:             []string{"horta", "alimentação"},
	})
	require.NoError(t, err)

	assert.True(t, project.IsActive)
	assert.Zero(t, project.CurrentAmount)
	assert.Nil(t, project.DeactivatedAt)
	assert.Equal(t, []string{"horta", "alimentação"}, []string(project.Tags))
	assert.Equal(t, "educacao", project.Category.Slug)
}

func TestCreateProjectUnknownCategory(t *testing.T) {
	service, _, creator, _ := setupProjectTest(t)

	_, err := service.CreateProject(creator.ID, &CreateProjectRequest{
		Title:            "Horta comunitária",
		ShortDescription: "Uma horta",
		Description:      "Descrição longa o bastante.",
		GoalAmount:       5000,
		EndDate:          time.Now().Add(time.Hour),
		CategoryID:       uuid.New(),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateProjectOwnershipEnforced(t *testing.T) {
	service, db, creator, category := setupProjectTest(t)
	project := createTestProject(t, db, creator.ID, category.ID, 1000)
	stranger := createTestUser(t, db, "outra@example.com", "11144477735", "SenhaForte123")

	_, err := service.UpdateProject(project.ID, stranger.ID, &UpdateProjectRequest{Title: "Meu agora"})
	assert.ErrorIs(t, err, ErrNotProjectOwner)

	updated, err := service.UpdateProject(project.ID, creator.ID, &UpdateProjectRequest{Title: "Novo título"})
	require.NoError(t, err)
	assert.Equal(t, "Novo título", updated.Title)
}

func TestDeactivateAndActivateProject(t *testing.T) {
	service, _, creator, category := setupProjectTest(t)
	project := createTestProject(t, service.db, creator.ID, category.ID, 1000)

	_, err := service.DeactivateProject(project.ID, creator.ID)
	require.NoError(t, err)

	var stored models.Project
	require.NoError(t, service.db.First(&stored, project.ID).Error)
	assert.False(t, stored.IsActive)
	require.NotNil(t, stored.DeactivatedAt)

	// Reactivating clears the cool-off clock
	_, err = service.ActivateProject(project.ID, creator.ID)
	require.NoError(t, err)

	var reactivated models.Project
	require.NoError(t, service.db.First(&reactivated, project.ID).Error)
	assert.True(t, reactivated.IsActive)
	assert.Nil(t, reactivated.DeactivatedAt)
}

func TestDeleteProjectGuards(t *testing.T) {
	service, db, creator, category := setupProjectTest(t)
	project := createTestProject(t, db, creator.ID, category.ID, 1000)

	// Guard 1: an active project cannot be deleted
	err := service.DeleteProject(project.ID, creator.ID, &DeleteProjectRequest{Password: "SenhaForte123"})
	assert.ErrorIs(t, err, ErrProjectStillLive)

	// Guard 2: the 48 hour cool-off runs from deactivation
	_, err = service.DeactivateProject(project.ID, creator.ID)
	require.NoError(t, err)

	err = service.DeleteProject(project.ID, creator.ID, &DeleteProjectRequest{Password: "SenhaForte123"})
	assert.ErrorIs(t, err, ErrCoolOffNotElapsed)

	past := time.Now().Add(-49 * time.Hour)
	require.NoError(t, db.Model(&models.Project{}).
		Where("id = ?", project.ID).Update("deactivated_at", &past).Error)

	// Guard 3: the account password must match
	err = service.DeleteProject(project.ID, creator.ID, &DeleteProjectRequest{Password: "senha-errada"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	var count int64
	db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count)
	assert.EqualValues(t, 1, count, "failed guard must not remove the project")

	// All guards pass: the project and its children go away for good
	require.NoError(t, db.Create(&models.ProjectMedia{
		ProjectID: project.ID,
		URL:       "https://cdn.example.com/capa.jpg",
		MediaType: models.MediaTypeImage,
	}).Error)
	require.NoError(t, db.Create(&models.Comment{
		AuthorID:  creator.ID,
		ProjectID: project.ID,
		Content:   "Força!",
	}).Error)
	require.NoError(t, db.Create(&models.Donation{
		DonorID:         creator.ID,
		ProjectID:       project.ID,
		Amount:          250,
		Currency:        "BRL",
		Provider:        models.PaymentProviderPayPal,
		ProviderOrderID: "ORDER-DELETE-1",
		Status:          models.DonationStatusCompleted,
	}).Error)

	err = service.DeleteProject(project.ID, creator.ID, &DeleteProjectRequest{Password: "SenhaForte123"})
	require.NoError(t, err)

	db.Unscoped().Model(&models.Project{}).Where("id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	db.Unscoped().Model(&models.ProjectMedia{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	db.Unscoped().Model(&models.Comment{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	db.Unscoped().Model(&models.Donation{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteProjectByStranger(t *testing.T) {
	service, db, creator, category := setupProjectTest(t)
	project := createTestProject(t, db, creator.ID, category.ID, 1000)
	stranger := createTestUser(t, db, "outra@example.com", "11144477735", "SenhaForte123")

	err := service.DeleteProject(project.ID, stranger.ID, &DeleteProjectRequest{Password: "SenhaForte123"})
	assert.ErrorIs(t, err, ErrNotProjectOwner)
}

func TestSearchProjects(t *testing.T) {
	service, db, creator, category := setupProjectTest(t)
	saude := createTestCategory(t, db, "Saúde", "saude")

	escola := createTestProject(t, db, creator.ID, category.ID, 1000)

	hospital := createTestProject(t, db, creator.ID, saude.ID, 2000)
	require.NoError(t, db.Model(hospital).Updates(map[string]interface{}{
		"title":             "Ala nova do hospital",
		"short_description": "Equipamentos para a ala infantil",
		"description":       "Compra de equipamentos para a ala infantil do hospital regional.",
		"is_featured":       true,
	}).Error)

	ambulancia := createTestProject(t, db, creator.ID, saude.ID, 3000)
	require.NoError(t, db.Model(ambulancia).Updates(map[string]interface{}{
		"title":             "Ambulância para o posto de saúde",
		"short_description": "Compra de uma ambulância nova",
		"description":       "O posto do bairro precisa de uma ambulância própria.",
	}).Error)

	hidden := createTestProject(t, db, creator.ID, category.ID, 500)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	// Inactive projects never show up
	views, total, err := service.SearchProjects(paginationDefaults())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, views, 3)

	// Search is case-insensitive over title and descriptions
	params := paginationDefaults()
	params.Search = "ESCOLA"
	views, total, err = service.SearchProjects(params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, escola.ID, views[0].ID)

	// Category filter goes through the slug; sorting stays unambiguous with
	// the category join in place
	params = paginationDefaults()
	params.Category = "saude"
	params.Sort = "goal_amount"
	params.Order = "asc"
	views, total, err = service.SearchProjects(params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, views, 2)
	assert.Equal(t, "Ala nova do hospital", views[0].Title)
	assert.Equal(t, ambulancia.ID, views[1].ID)

	// Search combined with the category filter
	params = paginationDefaults()
	params.Category = "saude"
	params.Search = "ambulância"
	_, total, err = service.SearchProjects(params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Featured filter
	params = paginationDefaults()
	params.Featured = true
	_, total, err = service.SearchProjects(params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestGetProjectView(t *testing.T) {
	service, db, creator, category := setupProjectTest(t)
	project := createTestProject(t, db, creator.ID, category.ID, 1000)

	require.NoError(t, db.Model(project).Update("current_amount", 250).Error)
	require.NoError(t, db.Create(&models.ProjectMedia{
		ProjectID: project.ID,
		URL:       "https://cdn.example.com/capa.jpg",
		MediaType: models.MediaTypeImage,
	}).Error)
	require.NoError(t, db.Create(&models.Donation{
		DonorID:         creator.ID,
		ProjectID:       project.ID,
		Amount:          250,
		Provider:        models.PaymentProviderPayPal,
		ProviderOrderID: "ORDER-VIEW-1",
		Status:          models.DonationStatusCompleted,
	}).Error)
	require.NoError(t, db.Create(&models.Donation{
		DonorID:         creator.ID,
		ProjectID:       project.ID,
		Amount:          99,
		Provider:        models.PaymentProviderPayPal,
		ProviderOrderID: "ORDER-VIEW-2",
		Status:          models.DonationStatusCreated,
	}).Error)

	view, err := service.GetProject(project.ID)
	require.NoError(t, err)

	assert.InDelta(t, 25, view.ProgressPercentage, 0.001)
	assert.Positive(t, view.DaysRemaining)
	assert.Equal(t, "https://cdn.example.com/capa.jpg", view.CoverImageURL)

	// Only completed donations count toward the donor list
	assert.EqualValues(t, 1, view.DonationCount)
	require.Len(t, view.Donations, 1)
	assert.Equal(t, "ORDER-VIEW-1", view.Donations[0].ProviderOrderID)
}

func TestGetProjectNotFound(t *testing.T) {
	service, _, _, _ := setupProjectTest(t)

	_, err := service.GetProject(uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestAddMedia(t *testing.T) {
	service, db, creator, category := setupProjectTest(t)
	project := createTestProject(t, db, creator.ID, category.ID, 1000)

	media, err := service.AddMedia(project.ID, creator.ID, &AddMediaRequest{
		URL:       "https://cdn.example.com/video.mp4",
		MediaType: models.MediaTypeVideo,
		Position:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaTypeVideo, media.MediaType)

	_, err = service.AddMedia(project.ID, uuid.New(), &AddMediaRequest{
		URL:       "https://cdn.example.com/extra.jpg",
		MediaType: models.MediaTypeImage,
	})
	assert.ErrorIs(t, err, ErrNotProjectOwner)
}

func TestGetCreatorProjects(t *testing.T) {
	service, db, creator, category := setupProjectTest(t)
	createTestProject(t, db, creator.ID, category.ID, 1000)
	createTestProject(t, db, creator.ID, category.ID, 2000)

	projects, total, err := service.GetCreatorProjects(creator.ID, paginationDefaults())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, projects, 2)

	_, total, err = service.GetCreatorProjects(uuid.New(), paginationDefaults())
	require.NoError(t, err)
	assert.Zero(t, total)
}
