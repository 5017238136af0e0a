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

type SkillHandler struct {
	skillService *service.SkillService
}

func NewSkillHandler(skillService *service.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

type PostSkillRequest struct {
	Name *string `json:"name"`
}

func (h *SkillHandler) PostSkill(c *gin.Context) {
	var req PostSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingString(req.Name) || utils.IsBlank(*req.Name) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	skill, err := h.skillService.AddSkill(*req.Name)
	if err != nil {
		if errors.Is(err, service.ErrSkillExists) {
			respondFailed(c, http.StatusConflict, "資料重複")
			return
		}
		logger.Log.Error("Skill creation failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"id":   skill.ID,
		"name": skill.Name,
	})
}

func (h *SkillHandler) GetSkills(c *gin.Context) {
	skills, err := h.skillService.ListSkills()
	if err != nil {
		logger.Log.Error("Failed to list skills", zap.Error(err))
		respondServerError(c)
		return
	}

	data := make([]gin.H, 0, len(skills))
	for _, skill := range skills {
		data = append(data, gin.H{
			"id":   skill.ID,
			"name": skill.Name,
		})
	}

	respondSuccess(c, http.StatusOK, data)
}

// DeleteSkill responds 404 for an unknown skill, unlike the other
// not-found paths which use 400.
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		respondFailed(c, http.StatusNotFound, "找不到技能")
		return
	}

	if err := h.skillService.DeleteSkill(skillID); err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			respondFailed(c, http.StatusNotFound, "找不到技能")
		case errors.Is(err, service.ErrSkillDeleteNoRow):
			respondFailed(c, http.StatusBadRequest, msgBadID)
		default:
			logger.Log.Error("Skill deletion failed", zap.Error(err))
			respondServerError(c)
		}
		return
	}

	respondSuccessBare(c)
}
