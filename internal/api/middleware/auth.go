package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/userservice"
)

const (
	// UserIDHeader заголовок с ID пользователя, проставляется API-шлюзом
	UserIDHeader = "X-User-ID"

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgUnknownUser   = "пользователь не найден"
	msgUnknownRole   = "неизвестная роль пользователя"
)

type contextKey string

const actorKey contextKey = "actor"

// UserResolver возвращает пользователя с ролью
type UserResolver interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth определяет исполнителя запроса по заголовку X-User-ID
// Роль берется из UserService, результат кладется в контекст как domain.Actor
func Auth(users UserResolver, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userservice.ErrUserNotFound) {
					log.Warn("Auth: user_id=%d not found", userID)
					handlers.RespondUnauthorized(w, msgUnknownUser)
					return
				}
				log.Error("Auth: failed to resolve user_id=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			actor := domain.Actor{UserID: user.ID, Role: domain.Role(user.Role)}
			switch actor.Role {
			case domain.RoleCustomer, domain.RoleSupplier, domain.RoleAdmin:
			default:
				log.Warn("Auth: user_id=%d has unknown role %q", userID, user.Role)
				handlers.RespondForbidden(w, msgUnknownRole)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладет исполнителя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает исполнителя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
