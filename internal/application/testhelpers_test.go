package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/render"
	"github.com/propside/portal-go/internal/repository"
	"github.com/propside/portal-go/internal/testutils"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// stubRenderer returns a fixed artifact without touching gofpdf; rendering
// itself is covered in the render package tests.
type stubRenderer struct{}

func (stubRenderer) Render(ctx context.Context, in render.Input) ([]byte, error) {
	return []byte("%PDF-stub " + in.Title), nil
}

// memStore keeps artifacts in a map so tests can assert on what was written.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[key], nil
}

func (s *memStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func newRepos(t *testing.T) *repository.Repos {
	t.Helper()
	return repository.NewRepositories(testutils.SetupTestDB(t))
}

func createUser(t *testing.T, repos *repository.Repos, username string, role user.Role) user.User {
	t.Helper()
	u := user.User{Username: username, Password: "x", Role: role}
	require.NoError(t, repos.User.CreateUser(&u))
	return u
}

func createTemplate(t *testing.T, repos *repository.Repos, category template.Category, commission *float64, fields ...template.Field) template.Template {
	t.Helper()
	if len(fields) == 0 {
		fields = []template.Field{
			{ID: "f1", Label: "Full Name", Type: template.FieldText, Required: true},
			{ID: "f2", Label: "Unit Number", Type: template.FieldNumber},
		}
	}
	tpl := template.Template{
		Name:                 "Test Template",
		Category:             category,
		Fields:               datatypes.NewJSONType(fields),
		CommissionPercentage: commission,
		CreatedBy:            1,
	}
	require.NoError(t, repos.Template.CreateTemplate(&tpl))
	return tpl
}

func floatPtr(v float64) *float64 {
	return &v
}
