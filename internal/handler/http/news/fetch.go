package news

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"newsbrief/internal/handler/http/requestid"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/observability/logging"
	newsUC "newsbrief/internal/usecase/news"
)

type FetchHandler struct {
	Svc    *newsUC.Service
	Logger *slog.Logger
}

// ServeHTTP ニュース取り込み
// POST /api/news/fetch {"topics": [...], "count": n}
// コラボレータに要約を依頼し、結果を一括保存して返す
func (h FetchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	var req struct {
		Topics []string `json:"topics"`
		Count  int      `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid request body",
		})
		return
	}

	items, err := h.Svc.Ingest(ctx, req.Topics, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, newsUC.ErrInvalidCount), errors.Is(err, newsUC.ErrEmptyTopics):
			respond.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, newsUC.ErrCollaborator):
			logger.Error("Collaborator failed during ingest",
				"error", respond.SanitizeError(err),
				"topics", req.Topics,
				"request_id", reqID)
			respond.JSON(w, http.StatusBadGateway, errorResponse{
				Error: "news summarization service unavailable",
			})
		default:
			logger.Error("Failed to store ingested news",
				"error", err.Error(),
				"request_id", reqID)
			respond.JSON(w, http.StatusInternalServerError, errorResponse{
				Error: "failed to store news",
			})
		}
		return
	}

	logger.Info("News ingested via API",
		"topics", req.Topics,
		"items", len(items),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, fetchResponse{
		Success:   true,
		Message:   fmt.Sprintf("fetched %d news items", len(items)),
		NewsItems: toDTOs(items),
	})
}
