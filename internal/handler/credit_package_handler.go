package handler

import (
	"errors"
	"net/http"

	"github.com/fitbook/fitbook/internal/service"
	"github.com/fitbook/fitbook/internal/utils"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreditPackageHandler struct {
	creditService *service.CreditService
}

func NewCreditPackageHandler(creditService *service.CreditService) *CreditPackageHandler {
	return &CreditPackageHandler{creditService: creditService}
}

type PostPackageRequest struct {
	Name         *string `json:"name"`
	CreditAmount *int    `json:"credit_amount"`
	Price        *int    `json:"price"`
}

func (h *CreditPackageHandler) GetAllPackages(c *gin.Context) {
	packages, err := h.creditService.ListPackages()
	if err != nil {
		logger.Log.Error("Failed to list packages", zap.Error(err))
		respondServerError(c)
		return
	}

	data := make([]gin.H, 0, len(packages))
	for _, pkg := range packages {
		data = append(data, gin.H{
			"id":            pkg.ID,
			"name":          pkg.Name,
			"credit_amount": pkg.CreditAmount,
			"price":         pkg.Price,
		})
	}

	respondSuccess(c, http.StatusOK, data)
}

// PostPackage responds 200 on success, matching the established API
// contract (the one create endpoint that does not use 201).
func (h *CreditPackageHandler) PostPackage(c *gin.Context) {
	var req PostPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingString(req.Name) || utils.IsBlank(*req.Name) ||
		utils.IsMissingInt(req.CreditAmount) || utils.IsInvalidCount(*req.CreditAmount) ||
		utils.IsMissingInt(req.Price) || utils.IsInvalidCount(*req.Price) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	pkg, err := h.creditService.AddPackage(*req.Name, *req.CreditAmount, *req.Price)
	if err != nil {
		if errors.Is(err, service.ErrPackageExists) {
			respondFailed(c, http.StatusConflict, "資料重複")
			return
		}
		logger.Log.Error("Package creation failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"id":            pkg.ID,
		"name":          pkg.Name,
		"credit_amount": pkg.CreditAmount,
		"price":         pkg.Price,
	})
}

func (h *CreditPackageHandler) PostBuy(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("creditPackageId"))
	if err != nil {
		respondFailed(c, http.StatusBadRequest, msgBadID)
		return
	}

	if err := h.creditService.Buy(currentUserID(c), packageID); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			respondFailed(c, http.StatusBadRequest, msgBadID)
			return
		}
		logger.Log.Error("Purchase failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, nil)
}

func (h *CreditPackageHandler) DeletePackage(c *gin.Context) {
	raw := c.Param("creditPackageId")
	if utils.IsBlank(raw) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	packageID, err := uuid.Parse(raw)
	if err != nil {
		respondFailed(c, http.StatusBadRequest, msgBadID)
		return
	}

	if err := h.creditService.DeletePackage(packageID); err != nil {
		if errors.Is(err, service.ErrPackageDeleteNoRow) {
			respondFailed(c, http.StatusBadRequest, msgBadID)
			return
		}
		logger.Log.Error("Package deletion failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccessBare(c)
}
