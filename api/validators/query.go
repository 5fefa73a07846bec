package validators

import (
	"net/http"
	"strings"

	"github.com/gocart/storefront/pkg/enums"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

// ParseStoreStatusFilter reads an optional store status query parameter.
// An absent value yields nil.
func ParseStoreStatusFilter(r *http.Request, key string) (*enums.StoreStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseStoreStatus(strings.ToLower(raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid status. Must be pending, approved, or rejected").
			WithDetails(map[string]any{"field": key})
	}
	return &status, nil
}
