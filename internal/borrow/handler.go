package borrow

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ELMS-backend/internal/platform/apierr"
	"ELMS-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 申請と自分の一覧は利用者（学生・職員）
	r.POST("/borrow/requests", auth.RequireRole(auth.RoleStudent, auth.RoleStaff), h.Create)
	r.GET("/borrow/my", h.ListMine)

	// 運用系は職員・管理者のみ
	staff := auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)
	r.GET("/borrow/pending", staff, h.ListPending)
	r.GET("/borrow/issued", staff, h.ListIssued)
	r.PUT("/borrow/requests/:request_ulid/approve", staff, h.Approve)
	r.PUT("/borrow/requests/:request_ulid/issue", staff, h.Issue)
	r.PUT("/borrow/requests/:request_ulid/return", staff, h.Return)
	r.PUT("/borrow/requests/:request_ulid/reject", staff, h.Reject)
}

// Create godoc
// @Summary 貸出リクエストを作成
// @Tags borrow
// @Accept json
// @Produce json
// @Param body body CreateBorrowRequest true "request"
// @Success 201 {object} BorrowResponse
// @Router /borrow/requests [post]
func (h *Handler) Create(c *gin.Context) {
	userID, err := auth.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierr.BodyFrom(err))
		return
	}

	var req CreateBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.Header("Location", "/borrow/requests/"+res.RequestULID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, err := auth.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierr.BodyFrom(err))
		return
	}
	res, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListPending(c *gin.Context) {
	res, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListIssued(c *gin.Context) {
	res, err := h.svc.ListIssued(c.Request.Context())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Approve godoc
// @Summary 貸出リクエストを承認
// @Tags borrow
// @Accept json
// @Produce json
// @Param request_ulid path string true "request ulid"
// @Param body body DecisionRequest false "comment"
// @Success 200 {object} BorrowResponse
// @Router /borrow/requests/{request_ulid}/approve [put]
func (h *Handler) Approve(c *gin.Context) {
	approverID, err := auth.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierr.BodyFrom(err))
		return
	}

	var req DecisionRequest
	// ボディ無しも許す（コメント省略）
	_ = c.ShouldBindJSON(&req)

	res, err := h.svc.Approve(c.Request.Context(), c.Param("request_ulid"), approverID, req.Comment)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Issue(c *gin.Context) {
	issuerID, err := auth.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierr.BodyFrom(err))
		return
	}
	res, err := h.svc.Issue(c.Request.Context(), c.Param("request_ulid"), issuerID)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Return(c *gin.Context) {
	res, err := h.svc.Return(c.Request.Context(), c.Param("request_ulid"))
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Reject(c *gin.Context) {
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.svc.Reject(c.Request.Context(), c.Param("request_ulid"), req.Comment)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
