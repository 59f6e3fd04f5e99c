package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ELMS-backend/internal/platform/apierr"
	"ELMS-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	staff := auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)
	r.GET("/notifications/unread", staff, h.ListUnread)
	r.PUT("/notifications/:notification_id/read", staff, h.MarkRead)
}

// ListUnread godoc
// @Summary 未読通知の一覧
// @Tags notifications
// @Produce json
// @Success 200 {array} NotificationResponse
// @Router /notifications/unread [get]
func (h *Handler) ListUnread(c *gin.Context) {
	res, err := h.svc.ListUnread(c.Request.Context())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("notification_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid notification_id"))
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), id); err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.Status(http.StatusNoContent)
}
