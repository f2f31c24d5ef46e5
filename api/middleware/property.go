package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/angelmondragon/keyhold-backend/api/responses"
	"github.com/angelmondragon/keyhold-backend/api/validators"
	"github.com/angelmondragon/keyhold-backend/pkg/logger"
)

const propertyIDParam = "propertyId"

// PropertyContext lifts the propertyId from the query string or JSON body into
// the request context and log fields. The body is restored for the handler.
func PropertyContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			propertyID := strings.TrimSpace(r.URL.Query().Get(propertyIDParam))

			if propertyID == "" && r.Body != nil && r.Method != http.MethodGet {
				body, err := validators.ReadBody(w, r)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				propertyID = extractPropertyID(body)
			}

			if propertyID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithPropertyID(r.Context(), propertyID)
			if logg != nil {
				ctx = logg.WithPropertyID(ctx, propertyID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractPropertyID(payload []byte) string {
	var body struct {
		PropertyID string `json:"propertyId"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.PropertyID)
}
