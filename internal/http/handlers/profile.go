package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venturematch/backend/internal/http/response"
	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
	"github.com/venturematch/backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GET /profiles/:id
func (ph *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, err := pathProfileID(c)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}

	profile, err := ph.profileService.Get(c.Request.Context(), profileID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": profile})
}

// PATCH /profiles/:id/attributes
func (ph *ProfileHandler) UpdateAttributes(c *gin.Context) {
	profileID, err := pathProfileID(c)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}

	var req services.AttributeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondDomainError(c, fmt.Errorf("invalid request body: %w", pkgerrors.ErrInvalidArgument))
		return
	}

	profile, err := ph.profileService.UpdateAttributes(c.Request.Context(), profileID, req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": profile})
}

func pathProfileID(c *gin.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed profile id: %w", pkgerrors.ErrInvalidArgument)
	}
	return id, nil
}
