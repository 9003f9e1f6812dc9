package httpx

import (
	"database/sql"
	"io"
	"net/http"

	"github.com/redis/go-redis/v9"
)

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		return
	}
}

// readyHandler reports readiness by pinging the database and Redis.
func readyHandler(db *sql.DB, rdb redis.UniversalClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, ErrCode: "db_unavailable", Err: err})
			return
		}
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, ErrCode: "redis_unavailable", Err: err})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
