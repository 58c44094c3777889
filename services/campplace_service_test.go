package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCampPlaceCreateWithoutPhoto(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	user := createUser(t, db, "camper", roles[models.RoleUser])

	store := newFakePhotoStore()
	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), store)

	before := time.Now()
	campPlace, err := svc.Create(context.Background(), models.CampPlaceRequest{
		Name:        "Lake View",
		Description: "Quiet",
		Latitude:    floatPtr(42.0),
		Longitude:   floatPtr(23.0),
	}, nil, identityFor(user))
	require.NoError(t, err)

	assert.Equal(t, "Lake View", campPlace.Name)
	assert.Nil(t, campPlace.Photo)
	require.NotNil(t, campPlace.UserID)
	assert.Equal(t, user.ID, *campPlace.UserID)
	assert.False(t, campPlace.DateCreated.Before(before.Add(-time.Second)))
	assert.Empty(t, store.ops)
}

func TestCampPlaceCreateWithPhoto(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	user := createUser(t, db, "camper", roles[models.RoleUser])

	store := newFakePhotoStore()
	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), store)

	campPlace, err := svc.Create(context.Background(), models.CampPlaceRequest{
		Name:        "Forest Spot",
		Description: "Shaded",
		Latitude:    floatPtr(41.5),
		Longitude:   floatPtr(24.0),
	}, fileHeader(t, "tent.jpg", "jpeg bytes"), identityFor(user))
	require.NoError(t, err)

	require.NotNil(t, campPlace.Photo)
	assert.Contains(t, *campPlace.Photo, "/images/campplaces/")
	assert.Contains(t, *campPlace.Photo, "tent.jpg")
}

func TestCampPlaceUpdateForbiddenForNonOwner(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	owner := createUser(t, db, "owner", roles[models.RoleUser])
	other := createUser(t, db, "other", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &owner.ID)

	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), newFakePhotoStore())

	_, err := svc.Update(context.Background(), campPlace.ID, models.CampPlaceRequest{
		Name:        "Hijacked",
		Description: "nope",
		Latitude:    floatPtr(1),
		Longitude:   floatPtr(1),
	}, nil, identityFor(other))
	assert.IsType(t, models.ErrorForbidden{}, err)

	var unchanged models.CampPlace
	require.NoError(t, db.First(&unchanged, campPlace.ID).Error)
	assert.Equal(t, "Lake View", unchanged.Name)
}

func TestCampPlaceUpdateByAdmin(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	owner := createUser(t, db, "owner", roles[models.RoleUser])
	admin := createUser(t, db, "boss", roles[models.RoleAdmin])
	campPlace := createCampPlace(t, db, "Lake View", &owner.ID)

	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), newFakePhotoStore())

	updated, err := svc.Update(context.Background(), campPlace.ID, models.CampPlaceRequest{
		Name:        "Lake View Renamed",
		Description: "Still quiet",
		Latitude:    floatPtr(42.0),
		Longitude:   floatPtr(23.0),
	}, nil, identityFor(admin))
	require.NoError(t, err)
	assert.Equal(t, "Lake View Renamed", updated.Name)
	assert.NotNil(t, updated.DateModified)
	// Ownership does not change on edit.
	require.NotNil(t, updated.UserID)
	assert.Equal(t, owner.ID, *updated.UserID)
}

func TestCampPlaceUpdateNotFound(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	user := createUser(t, db, "camper", roles[models.RoleUser])

	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), newFakePhotoStore())

	_, err := svc.Update(context.Background(), 12345, models.CampPlaceRequest{
		Name:        "Ghost",
		Description: "none",
		Latitude:    floatPtr(1),
		Longitude:   floatPtr(1),
	}, nil, identityFor(user))
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestCampPlaceUpdateWritesNewPhotoBeforeDeletingOld(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	owner := createUser(t, db, "owner", roles[models.RoleUser])

	store := newFakePhotoStore()
	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), store)

	campPlace, err := svc.Create(context.Background(), models.CampPlaceRequest{
		Name:        "Lake View",
		Description: "Quiet",
		Latitude:    floatPtr(42.0),
		Longitude:   floatPtr(23.0),
	}, fileHeader(t, "old.jpg", "old"), identityFor(owner))
	require.NoError(t, err)
	oldPhoto := *campPlace.Photo

	updated, err := svc.Update(context.Background(), campPlace.ID, models.CampPlaceRequest{
		Name:        "Lake View",
		Description: "Quiet",
		Latitude:    floatPtr(42.0),
		Longitude:   floatPtr(23.0),
	}, fileHeader(t, "new.jpg", "new"), identityFor(owner))
	require.NoError(t, err)

	require.NotNil(t, updated.Photo)
	assert.NotEqual(t, oldPhoto, *updated.Photo)
	// New file written first, old file removed last.
	require.Len(t, store.ops, 3)
	assert.Contains(t, store.ops[1], "save ")
	assert.Equal(t, "delete "+oldPhoto, store.ops[2])
}

func TestCampPlaceUpdateReportsVanishedRow(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	owner := createUser(t, db, "owner", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &owner.ID)

	repo := repositories.NewCampPlaceRepository(db)
	require.NoError(t, db.Delete(&models.CampPlace{}, campPlace.ID).Error)

	// Saving against a row deleted underneath us must not report success.
	err := repo.Update(campPlace)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

// deleteBeforeUpdateRepo drops the row right before the save, simulating a
// concurrent delete between read and write.
type deleteBeforeUpdateRepo struct {
	repositories.CampPlaceRepository
	db *gorm.DB
}

func (r *deleteBeforeUpdateRepo) Update(campPlace *models.CampPlace) error {
	if err := r.db.Delete(&models.CampPlace{}, campPlace.ID).Error; err != nil {
		return err
	}
	return r.CampPlaceRepository.Update(campPlace)
}

func TestCampPlaceUpdateConflictWhenRowVanishes(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	owner := createUser(t, db, "owner", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &owner.ID)

	repo := &deleteBeforeUpdateRepo{CampPlaceRepository: repositories.NewCampPlaceRepository(db), db: db}
	svc := NewCampPlaceService(repo, newFakePhotoStore())

	_, err := svc.Update(context.Background(), campPlace.ID, models.CampPlaceRequest{
		Name:        "Lake View",
		Description: "Quiet",
		Latitude:    floatPtr(42.0),
		Longitude:   floatPtr(23.0),
	}, nil, identityFor(owner))
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestCampPlaceDeleteCascadesReviews(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	owner := createUser(t, db, "owner", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &owner.ID)

	review := models.Review{CampPlaceID: campPlace.ID, UserID: owner.ID, Rating: 5, Comment: "great"}
	require.NoError(t, db.Create(&review).Error)

	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), newFakePhotoStore())
	require.NoError(t, svc.Delete(context.Background(), campPlace.ID, identityFor(owner)))

	var reviewCount int64
	require.NoError(t, db.Model(&models.Review{}).Where("camp_place_id = ?", campPlace.ID).Count(&reviewCount).Error)
	assert.Zero(t, reviewCount)
}

func TestCampPlaceDeleteForbiddenForNonOwner(t *testing.T) {
	db := testDB(t)
	roles := seedRoles(t, db)
	owner := createUser(t, db, "owner", roles[models.RoleUser])
	other := createUser(t, db, "other", roles[models.RoleUser])
	campPlace := createCampPlace(t, db, "Lake View", &owner.ID)

	svc := NewCampPlaceService(repositories.NewCampPlaceRepository(db), newFakePhotoStore())

	err := svc.Delete(context.Background(), campPlace.ID, identityFor(other))
	assert.IsType(t, models.ErrorForbidden{}, err)

	var count int64
	require.NoError(t, db.Model(&models.CampPlace{}).Where("id = ?", campPlace.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
