package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ProviderBookingService/internal/api/handlers"
)

// HeaderUserID заголовок с principal аутентифицированного вызывающего
// Проставляется API gateway после проверки токена
const HeaderUserID = "X-User-ID"

type contextKey string

const principalKey contextKey = "principal"

// Auth проверяет наличие principal вызывающего и кладет его в контекст
// Запросы без заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := r.Header.Get(HeaderUserID)
		if principal == "" {
			handlers.RespondUnauthorized(w, "требуется аутентификация")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Principal возвращает principal вызывающего из контекста
// Пустая строка означает, что запрос не прошел через Auth
func Principal(ctx context.Context) string {
	principal, _ := ctx.Value(principalKey).(string)
	return principal
}
