package middleware

import (
	"net/http"
	"strings"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
)

// AuthMiddleware authenticates a request and attaches UserClaims to the
// context. Two paths: an X-API-Key (bot/API clients, role resolved from the
// caller's membership) or a Bearer presigned link token (read-only web
// client access). The ledger core itself trusts whatever lands in claims.
func AuthMiddleware(keysRepo *repositories.KeysRepo, orgRepo *repositories.OrganizationRepository, signer *common.LinkSignerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case apiKey != "":
				orgID := r.Header.Get("X-Org-Id")
				userID := r.Header.Get("X-User-Id")

				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}
				if !keyRes.IsActive {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				role := constants.RoleViewer
				if orgID != "" && userID != "" {
					membership, err := orgRepo.GetUserRole(r.Context(), orgID, userID)
					if err == nil && membership != nil {
						role = membership.Role
					}
				}

				claims = &auth.APIKeyClaims{
					UserUUID:  userID,
					OrgUUID:   orgID,
					RoleValue: role,
				}

			case strings.HasPrefix(authHeader, "Bearer "):
				token := strings.TrimPrefix(authHeader, "Bearer ")
				link, err := signer.ValidateLink(r.Context(), token)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid link token", http.StatusUnauthorized)
					return
				}
				claims = &auth.LinkClaims{
					UserUUID: link.UserID,
					OrgUUID:  link.OrganizationID,
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
