package config

import (
	"path/filepath"
	"testing"

	"github.com/marti-georgiev/camprating/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedBootstrapsRolesUsersAndPlaces(t *testing.T) {
	db := seedTestDB(t)

	require.NoError(t, Seed(db))

	var roleCount, userCount, placeCount int64
	require.NoError(t, db.Model(&models.Role{}).Count(&roleCount).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.CampPlace{}).Count(&placeCount).Error)

	assert.EqualValues(t, 2, roleCount)
	assert.EqualValues(t, 2, userCount)
	assert.EqualValues(t, 2, placeCount)

	var admin models.User
	require.NoError(t, db.Preload("Roles").Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, []string{models.RoleAdmin}, admin.RoleNames())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("Admin123!")))
}

func TestSeedIsIdempotentOnNonEmptyUserTable(t *testing.T) {
	db := seedTestDB(t)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var userCount, placeCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.CampPlace{}).Count(&placeCount).Error)
	assert.EqualValues(t, 2, userCount)
	assert.EqualValues(t, 2, placeCount)
}
