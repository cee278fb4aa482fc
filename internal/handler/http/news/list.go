package news

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"newsbrief/internal/handler/http/requestid"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/observability/logging"
	newsUC "newsbrief/internal/usecase/news"
)

type ListHandler struct {
	Svc    *newsUC.Service
	Logger *slog.Logger
}

// ServeHTTP ニュース一覧取得
// GET /api/news?category=<string>&limit=<int>
// category省略または"all"は全件、limitはデフォルト50
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "all"
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			logger.Warn("Invalid limit parameter",
				"limit", rawLimit,
				"request_id", reqID)
			respond.JSON(w, http.StatusBadRequest, errorResponse{
				Error: "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	items, err := h.Svc.List(ctx, category, limit)
	if err != nil {
		logger.Error("Failed to list news",
			"error", err.Error(),
			"category", category,
			"limit", limit,
			"request_id", reqID)
		respond.JSON(w, http.StatusInternalServerError, errorResponse{
			Error: "failed to load news",
		})
		return
	}

	dtos := toDTOs(items)

	logger.Info("News list request",
		"category", category,
		"returned_count", len(dtos),
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, listResponse{
		Success:   true,
		Count:     len(dtos),
		Category:  category,
		NewsItems: dtos,
	})
}
