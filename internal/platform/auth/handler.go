package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ELMS-backend/internal/platform/apierr"
)

type AuthHandler struct{ svc AuthService }

func RegisterRoutes(r gin.IRoutes, svc AuthService, secret []byte) {
	h := &AuthHandler{svc: svc}
	r.POST("/auth/login", h.Login)
	// 匿名でも叩けるが、管理者トークンが付いていればロール指定を許す
	r.POST("/auth/register", OptionalAuth(secret), h.Register)
}

type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary ログインしてBearerトークンを取得
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid request"))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.LoginID, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "login id or password is incorrect"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Login successful",
	})
}

type RegisterRequest struct {
	LoginID  string  `json:"login_id" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Role     *string `json:"role,omitempty"` // 未指定なら STUDENT
}

// Register godoc
// @Summary アカウント登録
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "account"
// @Success 201 {object} map[string]any
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid request"))
		return
	}

	role := RoleStudent
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}
	if !ValidRole(role) {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "unknown role"))
		return
	}
	// STAFF/ADMIN の作成はADMINのみ。トークン無しならSTUDENT登録だけ許す
	if role != RoleStudent && Role(c) != RoleAdmin {
		c.JSON(http.StatusForbidden, apierr.Body(apierr.CodeUnauthenticated, "only admins may create staff accounts"))
		return
	}

	userID, err := h.svc.Register(c.Request.Context(), req.LoginID, req.Password, role)
	if err != nil {
		if err == ErrAlreadyExists {
			c.JSON(http.StatusConflict, apierr.Body(apierr.CodeConflict, "login id already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierr.Body(apierr.CodeInternal, "register failed"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": userID, "message": "registered"})
}
