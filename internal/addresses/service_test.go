package addresses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/db/dbtest"
	"github.com/gocart/storefront/pkg/db/models"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/types"
)

type stubEnsurer struct {
	calls int
	err   error
}

func (s *stubEnsurer) EnsureUser(ctx context.Context, identity users.Identity) (*models.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: identity.UserID}, nil
}

func validInput() Input {
	return Input{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Street:  "1 Main St",
		City:    "Springfield",
		State:   "IL",
		Zip:     "62701",
		Country: "US",
		Phone:   "5550100",
	}
}

func newTestService(t *testing.T) (Service, *stubEnsurer) {
	t.Helper()
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&models.User{ID: "user_1", Name: "Jane", Email: "jane@example.com", Cart: types.JSONMap{}}).Error)
	ensurer := &stubEnsurer{}
	svc, err := NewService(NewRepository(db), ensurer)
	require.NoError(t, err)
	return svc, ensurer
}

func TestCreateAndList(t *testing.T) {
	svc, ensurer := newTestService(t)
	ctx := context.Background()

	input := validInput()
	input.City = "  Springfield  "
	created, err := svc.Create(ctx, users.Identity{UserID: "user_1"}, input)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", created.City)
	assert.Equal(t, 1, ensurer.calls)

	rows, err := svc.List(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)

	empty, err := svc.List(ctx, "someone_else")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCreateRequiresAllFields(t *testing.T) {
	svc, ensurer := newTestService(t)

	input := validInput()
	input.Phone = " "
	_, err := svc.Create(context.Background(), users.Identity{UserID: "user_1"}, input)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "got %v", err)
	assert.Equal(t, "All address fields are required", pkgerrors.As(err).Message())
	assert.Zero(t, ensurer.calls, "user must not be created for an invalid payload")
}

func TestFindOwnedRejectsForeignAddress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, users.Identity{UserID: "user_1"}, validInput())
	require.NoError(t, err)

	found, err := svc.FindOwned(ctx, "user_1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.FindOwned(ctx, "user_2", created.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = svc.FindOwned(ctx, "user_1", uuid.New())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
