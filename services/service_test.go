package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/marti-georgiev/camprating/config"
	"github.com/marti-georgiev/camprating/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDB opens a throwaway SQLite database with foreign keys enforced, so the
// restrict/cascade behavior matches production.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedRoles(t *testing.T, db *gorm.DB) map[string]models.Role {
	t.Helper()

	roles := map[string]models.Role{}
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		role := models.Role{Name: name}
		require.NoError(t, db.Create(&role).Error)
		roles[name] = role
	}
	return roles
}

func createUser(t *testing.T, db *gorm.DB, username string, roles ...models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Roles:    roles,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCampPlace(t *testing.T, db *gorm.DB, name string, ownerID *uint) *models.CampPlace {
	t.Helper()

	campPlace := &models.CampPlace{
		Name:        name,
		Description: "test description",
		Latitude:    42.0,
		Longitude:   23.0,
		UserID:      ownerID,
	}
	require.NoError(t, db.Create(campPlace).Error)
	return campPlace
}

func floatPtr(v float64) *float64 {
	return &v
}

func identityFor(user *models.User) models.Identity {
	return models.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.RoleNames(),
	}
}

// fakePhotoStore records saves and deletes in order without touching disk.
type fakePhotoStore struct {
	nextID int
	ops    []string
	saved  map[string]bool
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{saved: map[string]bool{}}
}

func (f *fakePhotoStore) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.nextID++
	path := fmt.Sprintf("/images/campplaces/%d_%s", f.nextID, originalFilename)
	f.saved[path] = true
	f.ops = append(f.ops, "save "+path)
	return path, nil
}

func (f *fakePhotoStore) Delete(ctx context.Context, publicPath string) error {
	if !f.saved[publicPath] {
		return fmt.Errorf("photo not found")
	}
	delete(f.saved, publicPath)
	f.ops = append(f.ops, "delete "+publicPath)
	return nil
}

// fileHeader builds a real multipart file header the way gin would hand one
// to a handler.
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["photo"][0]
}
