package services

import (
	"testing"
	"time"

	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReviewCreateRequiresExistingPlace(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	user := createUser(t, db, "camper", roles[models.RoleUser])

	svc := NewReviewService(repositories.NewReviewRepository(db), repositories.NewCampPlaceRepository(db))

	_, err := svc.Create(models.CreateReviewRequest{
		CampPlaceID: 999,
		Rating:      4,
		Comment:     "nice",
	}, identityFor(user))
	assert.IsType(t, models.ErrorNotFound{}, err)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewCreateSetsAuthorAndTimestamp(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	user := createUser(t, db, "camper", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &user.ID)

	svc := NewReviewService(repositories.NewReviewRepository(db), repositories.NewCampPlaceRepository(db))

	before := time.Now().UTC()
	review, err := svc.Create(models.CreateReviewRequest{
		CampPlaceID: campPlace.ID,
		Rating:      5,
		Comment:     "lovely spot",
	}, identityFor(user))
	require.NoError(t, err)

	// The author is always the caller, regardless of the request body.
	assert.Equal(t, user.ID, review.UserID)
	assert.Equal(t, campPlace.ID, review.CampPlaceID)
	assert.False(t, review.CreatedAt.Before(before.Add(-time.Second)))
	assert.Nil(t, review.DateModified)
}

func TestReviewUpdateKeepsAuthorAndPlace(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	author := createUser(t, db, "author", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &author.ID)

	review := models.Review{CampPlaceID: campPlace.ID, UserID: author.ID, Rating: 2, Comment: "meh"}
	require.NoError(t, db.Create(&review).Error)

	svc := NewReviewService(repositories.NewReviewRepository(db), repositories.NewCampPlaceRepository(db))

	updated, err := svc.Update(review.ID, models.UpdateReviewRequest{
		Rating:  4,
		Comment: "better on a second visit",
	}, identityFor(author))
	require.NoError(t, err)

	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "better on a second visit", updated.Comment)
	assert.Equal(t, author.ID, updated.UserID)
	assert.Equal(t, campPlace.ID, updated.CampPlaceID)
	assert.NotNil(t, updated.DateModified)
}

func TestReviewUpdateForbiddenForNonAuthor(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	author := createUser(t, db, "author", roles[models.RoleUser])
	other := createUser(t, db, "other", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &author.ID)

	review := models.Review{CampPlaceID: campPlace.ID, UserID: author.ID, Rating: 3, Comment: "fine"}
	require.NoError(t, db.Create(&review).Error)

	svc := NewReviewService(repositories.NewReviewRepository(db), repositories.NewCampPlaceRepository(db))

	_, err := svc.Update(review.ID, models.UpdateReviewRequest{Rating: 1, Comment: "sabotage"}, identityFor(other))
	assert.IsType(t, models.ErrorForbidden{}, err)
}

// deleteBeforeUpdateReviewRepo drops the review right before the save,
// simulating a concurrent delete between read and write.
type deleteBeforeUpdateReviewRepo struct {
	repositories.ReviewRepository
	db *gorm.DB
}

func (r *deleteBeforeUpdateReviewRepo) Update(review *models.Review) error {
	if err := r.db.Delete(&models.Review{}, review.ID).Error; err != nil {
		return err
	}
	return r.ReviewRepository.Update(review)
}

func TestReviewUpdateConflictWhenRowVanishes(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	author := createUser(t, db, "author", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &author.ID)

	review := models.Review{CampPlaceID: campPlace.ID, UserID: author.ID, Rating: 3, Comment: "fine"}
	require.NoError(t, db.Create(&review).Error)

	repo := &deleteBeforeUpdateReviewRepo{ReviewRepository: repositories.NewReviewRepository(db), db: db}
	svc := NewReviewService(repo, repositories.NewCampPlaceRepository(db))

	_, err := svc.Update(review.ID, models.UpdateReviewRequest{Rating: 4, Comment: "revised"}, identityFor(author))
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestReviewDeleteByAdminReturnsPlaceID(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	author := createUser(t, db, "author", roles[models.RoleUser])
	admin := createUser(t, db, "boss", roles[models.RoleAdmin])
	campPlace := createCampPlace(t, db, "Lake View", &author.ID)

	review := models.Review{CampPlaceID: campPlace.ID, UserID: author.ID, Rating: 3, Comment: "fine"}
	require.NoError(t, db.Create(&review).Error)

	svc := NewReviewService(repositories.NewReviewRepository(db), repositories.NewCampPlaceRepository(db))

	placeID, err := svc.Delete(review.ID, identityFor(admin))
	require.NoError(t, err)
	assert.Equal(t, campPlace.ID, placeID)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}
