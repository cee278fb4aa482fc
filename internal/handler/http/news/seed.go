package news

import (
	"fmt"
	"log/slog"
	"net/http"

	"newsbrief/internal/handler/http/requestid"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/observability/logging"
	newsUC "newsbrief/internal/usecase/news"
)

type SeedHandler struct {
	Svc    *newsUC.Service
	Logger *slog.Logger
}

// ServeHTTP サンプルデータ投入
// POST /api/news/seed
// ストアが空のときだけサンプル5件を入れる。空でなければcount=0を返す。
func (h SeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	count, err := h.Svc.Seed(ctx)
	if err != nil {
		logger.Error("Failed to seed news",
			"error", err.Error(),
			"request_id", reqID)
		respond.JSON(w, http.StatusInternalServerError, errorResponse{
			Error: "failed to seed news",
		})
		return
	}

	message := fmt.Sprintf("seeded %d news items", count)
	if count == 0 {
		message = "store already populated, nothing seeded"
	}

	logger.Info("Seed requested",
		"created", count,
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, seedResponse{
		Success: true,
		Message: message,
		Count:   count,
	})
}
