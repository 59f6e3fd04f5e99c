package equipment

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

	// 参照は認証済みなら誰でも可
	r.GET("/equipment", h.List)
	r.GET("/equipment/:equipment_id", h.Get)

	// カタログ管理はADMINのみ
	r.POST("/equipment", auth.RequireRole(auth.RoleAdmin), h.Create)
	r.PUT("/equipment/:equipment_id", auth.RequireRole(auth.RoleAdmin), h.Update)
	r.DELETE("/equipment/:equipment_id", auth.RequireRole(auth.RoleAdmin), h.Delete)
}

// Create godoc
// @Summary 機材を登録
// @Tags equipment
// @Accept json
// @Produce json
// @Param body body CreateEquipmentRequest true "equipment"
// @Success 201 {object} EquipmentResponse
// @Router /equipment [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.Header("Location", "/equipment/"+strconv.FormatInt(res.EquipmentID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("equipment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid equipment_id"))
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary 機材情報・総数を更新
// @Tags equipment
// @Accept json
// @Produce json
// @Param equipment_id path int true "equipment id"
// @Param body body UpdateEquipmentRequest true "patch"
// @Success 200 {object} EquipmentResponse
// @Router /equipment/{equipment_id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("equipment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid equipment_id"))
		return
	}
	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("equipment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid equipment_id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
		return
	}
	c.Status(http.StatusNoContent)
}
