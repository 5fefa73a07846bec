package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/enums"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

type stubStores struct {
	mine      *stores.MyStore
	created   *models.Store
	review    []stores.ReviewStore
	updated   *stores.ReviewStore
	approved  *models.Store
	err       error
	identity  users.Identity
	input     stores.CreateStoreInput
	filter    *enums.StoreStatus
	updatedID uuid.UUID
	status    enums.StoreStatus
}

func (s *stubStores) GetMine(_ context.Context, _ string) (*stores.MyStore, error) {
	return s.mine, s.err
}

func (s *stubStores) Create(_ context.Context, identity users.Identity, input stores.CreateStoreInput) (*models.Store, error) {
	s.identity, s.input = identity, input
	return s.created, s.err
}

func (s *stubStores) ListForReview(_ context.Context, status *enums.StoreStatus) ([]stores.ReviewStore, error) {
	s.filter = status
	return s.review, s.err
}

func (s *stubStores) UpdateStatus(_ context.Context, id uuid.UUID, status enums.StoreStatus) (*stores.ReviewStore, error) {
	s.updatedID, s.status = id, status
	return s.updated, s.err
}

func (s *stubStores) ApprovedStoreFor(_ context.Context, _ string) (*models.Store, error) {
	return s.approved, s.err
}

func TestMyStore(t *testing.T) {
	svc := &stubStores{mine: &stores.MyStore{HasStore: false}}

	rec := serve(MyStore(svc, nil), asUser(jsonRequest(http.MethodGet, "/api/stores", ""), "user_1", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	decodeData(t, rec, &got)
	assert.Equal(t, map[string]any{"hasStore": false}, got)

	rec = serve(MyStore(svc, nil), jsonRequest(http.MethodGet, "/api/stores", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateStore(t *testing.T) {
	created := &models.Store{ID: uuid.New(), Username: "acme", Status: enums.StoreStatusPending}
	svc := &stubStores{created: created}

	body := `{"name":"  Acme  ","username":"Acme","description":"Tools","email":"shop@acme.test","contact":"555","address":"1 Main St"}`
	rec := serve(CreateStore(svc, nil), asUser(jsonRequest(http.MethodPost, "/api/stores", body), "user_1", ""))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got struct {
		Store   models.Store `json:"store"`
		Message string       `json:"message"`
	}
	decodeData(t, rec, &got)
	assert.Equal(t, created.ID, got.Store.ID)
	assert.Equal(t, "Store created successfully! It will be activated after admin approval.", got.Message)
	assert.Equal(t, "Acme", svc.input.Name)
	assert.Equal(t, "user_1", svc.identity.UserID)
	assert.Equal(t, "user_1@example.com", svc.identity.Email)
}

func TestCreateStoreRejectsUnknownFields(t *testing.T) {
	svc := &stubStores{}
	rec := serve(CreateStore(svc, nil), asUser(jsonRequest(http.MethodPost, "/api/stores", `{"name":"x","owner":"y"}`), "user_1", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.identity.UserID)
}

func TestCreateStoreAcceptsInlineLogo(t *testing.T) {
	svc := &stubStores{created: &models.Store{ID: uuid.New()}}
	logo := "data:image/png;base64," + strings.Repeat("A", 3<<20)
	body := `{"name":"Acme","username":"acme","description":"Tools","email":"shop@acme.test","contact":"555","address":"1 Main St","logo":"` + logo + `"}`

	rec := serve(CreateStore(svc, nil), asUser(jsonRequest(http.MethodPost, "/api/stores", body), "user_1", ""))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, logo, svc.input.Logo)

	huge := strings.Replace(body, logo, "data:image/png;base64,"+strings.Repeat("A", createStoreBodyLimit), 1)
	rec = serve(CreateStore(svc, nil), asUser(jsonRequest(http.MethodPost, "/api/stores", huge), "user_2", ""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is too large", decodeEnvelope(t, rec).Error.Message)
}

func TestCreateStoreSurfacesServiceError(t *testing.T) {
	svc := &stubStores{err: pkgerrors.New(pkgerrors.CodeValidation, "You already have a store. Only one store per user is allowed.")}
	rec := serve(CreateStore(svc, nil), asUser(jsonRequest(http.MethodPost, "/api/stores", `{}`), "user_1", ""))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "You already have a store. Only one store per user is allowed.", env.Error.Message)
}

type stubFeed struct {
	storeID uuid.UUID
	called  bool
}

func (s *stubFeed) Serve(w http.ResponseWriter, _ *http.Request, storeID uuid.UUID) error {
	s.called, s.storeID = true, storeID
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

func TestStoreOrderFeedRequiresApprovedStore(t *testing.T) {
	feed := &stubFeed{}
	svc := &stubStores{err: pkgerrors.New(pkgerrors.CodeForbidden, "Store is not approved")}

	rec := serve(StoreOrderFeed(svc, feed, nil), asUser(jsonRequest(http.MethodGet, "/api/stores/orders/ws", ""), "user_1", "seller"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, feed.called)

	store := &models.Store{ID: uuid.New()}
	svc = &stubStores{approved: store}
	rec = serve(StoreOrderFeed(svc, feed, nil), asUser(jsonRequest(http.MethodGet, "/api/stores/orders/ws", ""), "user_1", "seller"))
	assert.Equal(t, http.StatusSwitchingProtocols, rec.Code)
	assert.Equal(t, store.ID, feed.storeID)
}

func TestAdminListStoresFilter(t *testing.T) {
	svc := &stubStores{review: []stores.ReviewStore{}}

	rec := serve(AdminListStores(svc, nil), jsonRequest(http.MethodGet, "/api/admin/stores?status=Approved", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter)
	assert.Equal(t, enums.StoreStatusApproved, *svc.filter)

	rec = serve(AdminListStores(svc, nil), jsonRequest(http.MethodGet, "/api/admin/stores?status=archived", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.filter = nil
	rec = serve(AdminListStores(svc, nil), jsonRequest(http.MethodGet, "/api/admin/stores", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.filter)
}

func TestAdminUpdateStoreStatus(t *testing.T) {
	id := uuid.New()
	svc := &stubStores{updated: &stores.ReviewStore{Store: models.Store{ID: id, Status: enums.StoreStatusApproved, IsActive: true}}}

	rec := serve(AdminUpdateStoreStatus(svc, nil), jsonRequest(http.MethodPatch, "/api/admin/stores", `{"storeId":"`+id.String()+`","status":"approved"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Message string `json:"message"`
	}
	decodeData(t, rec, &got)
	assert.Equal(t, "Store approved successfully", got.Message)
	assert.Equal(t, id, svc.updatedID)
	assert.Equal(t, enums.StoreStatusApproved, svc.status)
}

func TestAdminUpdateStoreStatusBadID(t *testing.T) {
	svc := &stubStores{err: errors.New("should not be called")}
	rec := serve(AdminUpdateStoreStatus(svc, nil), jsonRequest(http.MethodPatch, "/api/admin/stores", `{"storeId":"nope","status":"approved"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uuid.Nil, svc.updatedID)
}
