package overdue

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ELMS-backend/internal/platform/apierr"
	"ELMS-backend/internal/platform/auth"
)

type Handler struct{ sweeper *Sweeper }

func RegisterRoutes(r gin.IRoutes, sweeper *Sweeper) {
	h := &Handler{sweeper: sweeper}

	// テストや運用リカバリ用の手動トリガ
	r.POST("/overdue/run", auth.RequireRole(auth.RoleStaff, auth.RoleAdmin), h.Run)
}

// Run godoc
// @Summary 延滞スイープを即時実行
// @Tags overdue
// @Produce json
// @Success 200 {object} map[string]int
// @Router /overdue/run [post]
func (h *Handler) Run(c *gin.Context) {
	flagged, err := h.sweeper.RunOnce(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrSweepRunning) {
			c.JSON(http.StatusConflict, apierr.Body(apierr.CodeConflict, "sweep is already running"))
			return
		}
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"flagged": flagged})
}
