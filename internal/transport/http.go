package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/handler"
)

// TimeSource reports the database server's clock; satisfied by *db.Postgres.
type TimeSource interface {
	Now(ctx context.Context) (time.Time, error)
}

type Deps struct {
	Products *handler.ProductHandler
	Orders   *handler.OrderHandler
	DB       TimeSource
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("SJ server is running"))
	})

	r.Get("/db-test", func(w http.ResponseWriter, r *http.Request) {
		now, err := d.DB.Now(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("db-test query failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database unreachable"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"now":"` + now.Format("2006-01-02T15:04:05.999999Z07:00") + `"}`))
	})

	r.Route("/api", func(api chi.Router) {
		d.Products.RegisterRoutes(api)
		d.Orders.RegisterRoutes(api)
	})

	return r
}
