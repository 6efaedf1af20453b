package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/auth"
	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/utils"
)

type UserStore interface {
	FindOrCreateUser(ctx context.Context, subject, nickname string) (models.User, bool, error)
}

// SyncUserMiddleware ensures the token's user exists in the DB and attaches
// its identity to the request context. Requests without a token continue
// without an identity.
func SyncUserMiddleware(users UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := utils.GetAuth0ID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, _ := utils.GetClaims(r)
			nickname := ""
			if customClaims, ok := claims.CustomClaims.(*CustomClaims); ok && customClaims != nil {
				nickname = customClaims.Nickname
			}

			user, created, err := users.FindOrCreateUser(r.Context(), subject, nickname)
			if err != nil {
				log.Println("SyncUserMiddleware: Database error:", err)
				http.Error(w, "Failed to load user", http.StatusInternalServerError)
				return
			}
			if created {
				log.Printf("SyncUserMiddleware: Created new user: %s\n", user.Nickname)
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{
				UserID:   user.ID,
				Subject:  subject,
				Nickname: nickname,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
