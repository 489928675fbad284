package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/tuanvumaihuynh/product-api/internal/apperr"
	"github.com/tuanvumaihuynh/product-api/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-api/pkg/correlationid"
)

// Cors admits cross-origin requests from allowedOrigin only. A request whose
// Origin header names any other origin is rejected with 403 before routing;
// requests without an Origin header are same-origin and pass through.
func Cors(allowedOrigin string) func(http.Handler) http.Handler {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", correlationid.Header},
		ExposedHeaders: []string{correlationid.Header},
		MaxAge:         300,
	})

	res := apierr.New(apperr.OriginNotAllowedErr)
	errorMsg, err := json.Marshal(res)
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		allowed := corsHandler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && origin != allowedOrigin {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(res.StatusCode)
				//nolint:errcheck
				w.Write(errorMsg)
				return
			}

			allowed.ServeHTTP(w, r)
		})
	}
}
