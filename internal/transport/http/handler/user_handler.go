package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-user-api/internal/service"
	mdw "go-user-api/internal/transport/http/middleware"
	resp "go-user-api/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type signupReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileReq struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstName" binding:"omitempty,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,max=50"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// POST /user/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var in signupReq
	if !h.bindJSON(c, &in) {
		return
	}
	u, tok, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, gin.H{"token": tok, "user": u})
}

// POST /user/login
func (h *UserHandler) Login(c *gin.Context) {
	var in loginReq
	if !h.bindJSON(c, &in) {
		return
	}
	u, tok, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"token": tok, "user": u})
}

// GET /user/getuser
func (h *UserHandler) GetUser(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if u == nil {
		resp.Fail(c, http.StatusUnauthorized, "you are not logged in, login to continue")
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"user": u})
}

// PUT /user/update-profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if u == nil {
		resp.Fail(c, http.StatusUnauthorized, "you are not logged in, login to continue")
		return
	}
	var in updateProfileReq
	if !h.bindJSON(c, &in) {
		return
	}
	updated, err := h.svc.UpdateProfile(c.Request.Context(), u, service.UpdateProfileInput{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"user": updated})
}

// PUT /user/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if u == nil {
		resp.Fail(c, http.StatusUnauthorized, "you are not logged in, login to continue")
		return
	}
	var in changePasswordReq
	if !h.bindJSON(c, &in) {
		return
	}
	tok, err := h.svc.ChangePassword(c.Request.Context(), u.ID, in.CurrentPassword, in.NewPassword)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"token": tok})
}

// POST /user/logout
// 无服务端状态可清，仅作确认；token 到期前依然有效
func (h *UserHandler) Logout(c *gin.Context) {
	resp.Message(c, http.StatusOK, "logged out successfully")
}

// bindJSON 绑定失败统一 400；校验错误展开成字段级列表
func (h *UserHandler) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fes := make([]resp.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fes = append(fes, resp.FieldError{Field: fe.Field(), Message: tagMessage(fe)})
		}
		resp.FailFields(c, http.StatusBadRequest, "validation failed", fes)
		return false
	}
	resp.Fail(c, http.StatusBadRequest, "invalid request body")
	return false
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	default:
		return "is invalid"
	}
}

// fail 错误种类 → 状态码的唯一出口
func (h *UserHandler) fail(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindDuplicateAccount, service.KindDuplicateEmail:
		resp.Fail(c, http.StatusBadRequest, err.Error())
	case service.KindUserNotFound, service.KindInvalidCredentials:
		resp.Fail(c, http.StatusUnauthorized, err.Error())
	default:
		h.log.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		resp.Fail(c, http.StatusInternalServerError, "internal server error")
	}
}
