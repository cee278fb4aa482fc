package news

import (
	"log/slog"
	"net/http"

	newsUC "newsbrief/internal/usecase/news"
)

// Register registers the news HTTP handlers with the given mux.
// The ingest route takes an extra middleware slot for rate limiting, since
// every ingest triggers paid collaborator calls.
func Register(mux *http.ServeMux, svc *newsUC.Service, logger *slog.Logger, ingestGuard func(http.Handler) http.Handler) {
	mux.Handle("GET  /api/news", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /api/news/seed", SeedHandler{Svc: svc, Logger: logger})

	var fetch http.Handler = FetchHandler{Svc: svc, Logger: logger}
	if ingestGuard != nil {
		fetch = ingestGuard(fetch)
	}
	mux.Handle("POST /api/news/fetch", fetch)
}
