package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/accountd/accountd/internal/controller"
)

// Recoverer is a middleware that recovers from panics outside the
// controller and answers with the same 500 envelope the controller uses.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.ErrorContext(r.Context(), "panic_recovered",
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				resp := controller.ServerError(controller.InternalError())
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(resp.StatusCode)
				_ = json.NewEncoder(w).Encode(resp.Body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
