package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocart/storefront/internal/addresses"
	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/db/models"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

type stubUsers struct {
	user     *models.User
	err      error
	ensured  users.Identity
	update   users.UpdateProfileInput
	profiled string
}

func (s *stubUsers) EnsureUser(_ context.Context, identity users.Identity) (*models.User, error) {
	s.ensured = identity
	return s.user, nil
}

func (s *stubUsers) Profile(_ context.Context, userID string) (*models.User, error) {
	s.profiled = userID
	return s.user, s.err
}

func (s *stubUsers) UpdateProfile(_ context.Context, _ string, input users.UpdateProfileInput) (*models.User, error) {
	s.update = input
	return s.user, s.err
}

func TestProfileEnsuresUser(t *testing.T) {
	svc := &stubUsers{user: &models.User{ID: "user_1", Name: "user_1"}}
	rec := serve(Profile(svc, nil), asUser(jsonRequest(http.MethodGet, "/api/users", ""), "user_1", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, users.Identity{
		UserID: "user_1",
		Email:  "user_1@example.com",
		Name:   "user_1",
		Image:  "https://img.example.com/user_1.png",
	}, svc.ensured)
	assert.Equal(t, "user_1", svc.profiled)

	var got struct {
		User models.User `json:"user"`
	}
	decodeData(t, rec, &got)
	assert.Equal(t, "user_1", got.User.ID)
}

func TestUpdateProfileOnlyProvidedFields(t *testing.T) {
	svc := &stubUsers{user: &models.User{ID: "user_1"}}
	rec := serve(UpdateProfile(svc, nil), asUser(jsonRequest(http.MethodPut, "/api/users", `{"name":"New Name","cart":{"p1":2}}`), "user_1", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.update.Name)
	assert.Equal(t, "New Name", *svc.update.Name)
	assert.Nil(t, svc.update.Email)
	assert.Nil(t, svc.update.Image)
	require.NotNil(t, svc.update.Cart)
	assert.EqualValues(t, 2, (*svc.update.Cart)["p1"])
}

func TestUpdateProfileRejectsBadEmail(t *testing.T) {
	svc := &stubUsers{}
	rec := serve(UpdateProfile(svc, nil), asUser(jsonRequest(http.MethodPut, "/api/users", `{"email":"not-an-email"}`), "user_1", ""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error.Details, "email")
}

type stubAddresses struct {
	list    []models.Address
	created *models.Address
	err     error
	input   addresses.Input
}

func (s *stubAddresses) List(_ context.Context, _ string) ([]models.Address, error) {
	return s.list, s.err
}

func (s *stubAddresses) Create(_ context.Context, _ users.Identity, input addresses.Input) (*models.Address, error) {
	s.input = input
	return s.created, s.err
}

func (s *stubAddresses) FindOwned(_ context.Context, _ string, _ uuid.UUID) (*models.Address, error) {
	return nil, errors.New("not used")
}

func TestCreateAddress(t *testing.T) {
	created := &models.Address{ID: uuid.New(), City: "Austin"}
	svc := &stubAddresses{created: created}
	body := `{"name":"Jane","email":"jane@example.com","street":"1 Main","city":"Austin","state":"TX","zip":"78701","country":"US","phone":"555"}`

	rec := serve(CreateAddress(svc, nil), asUser(jsonRequest(http.MethodPost, "/api/addresses", body), "user_1", ""))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Austin", svc.input.City)

	var got struct {
		Address models.Address `json:"address"`
	}
	decodeData(t, rec, &got)
	assert.Equal(t, created.ID, got.Address.ID)
}

func TestCreateAddressValidation(t *testing.T) {
	svc := &stubAddresses{err: pkgerrors.New(pkgerrors.CodeValidation, "All address fields are required")}
	rec := serve(CreateAddress(svc, nil), asUser(jsonRequest(http.MethodPost, "/api/addresses", `{"name":"Jane"}`), "user_1", ""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All address fields are required", decodeEnvelope(t, rec).Error.Message)
}

func TestListAddresses(t *testing.T) {
	svc := &stubAddresses{list: []models.Address{{ID: uuid.New()}}}
	rec := serve(ListAddresses(svc, nil), asUser(jsonRequest(http.MethodGet, "/api/addresses", ""), "user_1", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Addresses []models.Address `json:"addresses"`
	}
	decodeData(t, rec, &got)
	assert.Len(t, got.Addresses, 1)
}
