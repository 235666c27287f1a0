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

type LikesHandler struct {
	matchingService services.MatchingService
}

func NewLikesHandler(matchingService services.MatchingService) *LikesHandler {
	return &LikesHandler{matchingService: matchingService}
}

// POST /likes
// body: { "sender_id": "...", "recipient_id": "...", "note": "..." }
func (lh *LikesHandler) RecordLike(c *gin.Context) {
	var req struct {
		SenderID    string  `json:"sender_id"`
		RecipientID string  `json:"recipient_id"`
		Note        *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondDomainError(c, fmt.Errorf("invalid request body: %w", pkgerrors.ErrInvalidArgument))
		return
	}

	senderID, err := uuid.Parse(strings.TrimSpace(req.SenderID))
	if err != nil {
		response.RespondDomainError(c, fmt.Errorf("malformed sender_id: %w", pkgerrors.ErrInvalidArgument))
		return
	}
	recipientID, err := uuid.Parse(strings.TrimSpace(req.RecipientID))
	if err != nil {
		response.RespondDomainError(c, fmt.Errorf("malformed recipient_id: %w", pkgerrors.ErrInvalidArgument))
		return
	}

	result, err := lh.matchingService.RecordLike(c.Request.Context(), senderID, recipientID, req.Note)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /matches?profile_id
func (lh *LikesHandler) ListMatches(c *gin.Context) {
	profileID, err := queryProfileID(c)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}

	matches, err := lh.matchingService.ListMatches(c.Request.Context(), profileID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"matches": matches})
}
