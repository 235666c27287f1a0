package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/venturematch/backend/internal/domain"
	"github.com/venturematch/backend/internal/http/response"
	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
	"github.com/venturematch/backend/internal/services"
)

type FeedHandler struct {
	feedService       services.FeedService
	likesQueueService services.LikesQueueService
	standoutsService  services.StandoutsService
}

func NewFeedHandler(
	feedService services.FeedService,
	likesQueueService services.LikesQueueService,
	standoutsService services.StandoutsService,
) *FeedHandler {
	return &FeedHandler{
		feedService:       feedService,
		likesQueueService: likesQueueService,
		standoutsService:  standoutsService,
	}
}

// GET /feed/discover?profile_id&role?&limit?&cursor?
func (fh *FeedHandler) Discover(c *gin.Context) {
	viewerID, err := queryProfileID(c)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}

	var targetRole *types.Role
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		role := types.Role(raw)
		targetRole = &role
	}

	cursor := 0
	if raw := strings.TrimSpace(c.Query("cursor")); raw != "" {
		cursor, err = strconv.Atoi(raw)
		if err != nil {
			response.RespondDomainError(c, fmt.Errorf("malformed cursor: %w", pkgerrors.ErrInvalidArgument))
			return
		}
	}
	limit := queryInt(c, "limit", 0)

	page, err := fh.feedService.GetPage(c.Request.Context(), viewerID, targetRole, cursor, limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /feed/likes-queue?profile_id&limit?
func (fh *FeedHandler) LikesQueue(c *gin.Context) {
	recipientID, err := queryProfileID(c)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	limit := queryInt(c, "limit", 0)

	entries, err := fh.likesQueueService.Queue(c.Request.Context(), recipientID, limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"likes": entries})
}

// GET /feed/standouts?profile_id&limit?
func (fh *FeedHandler) Standouts(c *gin.Context) {
	viewerID, err := queryProfileID(c)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	limit := queryInt(c, "limit", 0)

	standouts, err := fh.standoutsService.Standouts(c.Request.Context(), viewerID, limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"standouts": standouts})
}

func queryProfileID(c *gin.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query("profile_id"))
	if raw == "" {
		return uuid.Nil, fmt.Errorf("profile_id required: %w", pkgerrors.ErrInvalidArgument)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed profile_id: %w", pkgerrors.ErrInvalidArgument)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, defaultVal int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return v
}
