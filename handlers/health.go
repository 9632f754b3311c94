package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/utils"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			a.Logger.Error("health check failed", "error", err)
			utils.HandleError(w, r, responses.ServiceUnavailableError{Msg: "Database unavailable"})
			return
		}
	}
	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"status": "ok"}))
}
