package handler

import (
	"errors"
	"net/http"

	"github.com/fitbook/fitbook/internal/service"
	"github.com/fitbook/fitbook/internal/utils"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Optional fields decode into pointers so a missing field and an explicit
// zero value are distinguishable at validation time.
type SignupRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type PutProfileRequest struct {
	Name *string `json:"name"`
}

type PutPasswordRequest struct {
	Password           *string `json:"password"`
	NewPassword        *string `json:"new_password"`
	ConfirmNewPassword *string `json:"confirm_new_password"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingString(req.Name) || utils.IsBlank(*req.Name) ||
		utils.IsMissingString(req.Email) || utils.IsBlank(*req.Email) ||
		utils.IsMissingString(req.Password) || utils.IsBlank(*req.Password) {
		logger.Log.Warn("Signup validation failed")
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}
	if !utils.IsValidPassword(*req.Password) {
		respondFailed(c, http.StatusBadRequest, msgPasswordRule)
		return
	}

	user, err := h.userService.Signup(*req.Name, *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondFailed(c, http.StatusConflict, "Email 已被使用")
			return
		}
		logger.Log.Error("Signup failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"id":   user.ID,
			"name": user.Name,
		},
	})
}

// Login responds 201 on success, matching the established API contract.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingString(req.Email) || utils.IsBlank(*req.Email) ||
		utils.IsMissingString(req.Password) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}
	if !utils.IsValidPassword(*req.Password) {
		respondFailed(c, http.StatusBadRequest, msgPasswordRule)
		return
	}

	user, token, err := h.userService.Login(*req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same response for unknown email and wrong password
			respondFailed(c, http.StatusBadRequest, "使用者不存在或密碼輸入錯誤")
			return
		}
		logger.Log.Error("Login failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"name": user.Name,
		},
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(currentUserID(c))
	if err != nil {
		logger.Log.Error("Failed to get profile", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"name":  user.Name,
		"email": user.Email,
	})
}

func (h *UserHandler) PutProfile(c *gin.Context) {
	var req PutProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingString(req.Name) || utils.IsBlank(*req.Name) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	user, err := h.userService.UpdateName(currentUserID(c), *req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameUnchanged):
			respondFailed(c, http.StatusBadRequest, "使用者名稱未變更")
		case errors.Is(err, service.ErrProfileUpdateFailed):
			respondFailed(c, http.StatusBadRequest, "更新使用者資料失敗")
		default:
			logger.Log.Error("Failed to update profile", zap.Error(err))
			respondServerError(c)
		}
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"name": user.Name,
	})
}

func (h *UserHandler) PutPassword(c *gin.Context) {
	var req PutPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingString(req.Password) || utils.IsBlank(*req.Password) ||
		utils.IsMissingString(req.NewPassword) || utils.IsBlank(*req.NewPassword) ||
		utils.IsMissingString(req.ConfirmNewPassword) || utils.IsBlank(*req.ConfirmNewPassword) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}
	if *req.NewPassword != *req.ConfirmNewPassword {
		respondFailed(c, http.StatusBadRequest, "新密碼與驗證新密碼不一致")
		return
	}
	if !utils.IsValidPassword(*req.NewPassword) {
		respondFailed(c, http.StatusBadRequest, msgPasswordRule)
		return
	}

	err := h.userService.UpdatePassword(currentUserID(c), *req.Password, *req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordReused):
			respondFailed(c, http.StatusBadRequest, "新密碼不能與舊密碼相同")
		case errors.Is(err, service.ErrOldPasswordMismatch):
			respondFailed(c, http.StatusBadRequest, "舊密碼輸入錯誤")
		case errors.Is(err, service.ErrPasswordUpdateFailed):
			respondFailed(c, http.StatusBadRequest, "更新密碼失敗")
		default:
			logger.Log.Error("Failed to update password", zap.Error(err))
			respondServerError(c)
		}
		return
	}

	respondSuccessMessage(c, http.StatusOK, "更新密碼成功")
}

// GetAllUsers lists all users without pagination.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		logger.Log.Error("Failed to list users", zap.Error(err))
		respondServerError(c)
		return
	}

	data := make([]gin.H, 0, len(users))
	for _, user := range users {
		data = append(data, gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		})
	}

	respondSuccess(c, http.StatusOK, data)
}

func (h *UserHandler) GetPurchases(c *gin.Context) {
	purchases, err := h.userService.GetPurchases(currentUserID(c))
	if err != nil {
		logger.Log.Error("Failed to list purchases", zap.Error(err))
		respondServerError(c)
		return
	}

	data := make([]gin.H, 0, len(purchases))
	for _, purchase := range purchases {
		data = append(data, gin.H{
			"purchased_credits": purchase.PurchasedCredits,
			"price_paid":        purchase.PricePaid,
			"purchase_at":       purchase.PurchaseAt,
			"credit_package": gin.H{
				"id":   purchase.CreditPackage.ID,
				"name": purchase.CreditPackage.Name,
			},
		})
	}

	respondSuccess(c, http.StatusOK, data)
}

func (h *UserHandler) GetBookedCourses(c *gin.Context) {
	courses, err := h.userService.GetBookedCourses(currentUserID(c))
	if err != nil {
		logger.Log.Error("Failed to list booked courses", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"course_booking": courses,
	})
}
