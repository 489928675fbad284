package apicontract_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/product-api/api-contract"
)

func TestLoad(t *testing.T) {
	doc, err := apicontract.Load("/catalog")
	require.NoError(t, err)

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "/catalog", doc.Servers[0].URL)

	for path, methods := range map[string][]string{
		"/":     {http.MethodGet, http.MethodPost},
		"/{id}": {http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete},
	} {
		item := doc.Paths.Value(path)
		require.NotNil(t, item, path)
		for _, method := range methods {
			assert.NotNil(t, item.GetOperation(method), "%s %s", method, path)
		}
	}
}
