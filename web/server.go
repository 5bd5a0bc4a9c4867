package web

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bot/domain"
	"bot/transport"
)

// Store is the read side the leaderboard and collection endpoints need.
type Store interface {
	FindUserProfile(ctx context.Context, userID string) (domain.UserProfile, error)
	TopChats(ctx context.Context, limit int) ([]domain.ChatStats, error)
	TopCollectors(ctx context.Context, chatID string, limit int) ([]domain.ChatUserTally, error)
}

// UpdateHandler consumes inbound messages delivered over the webhook.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, msg domain.IncomingMessage)
}

type handler struct {
	updates UpdateHandler
	store   Store
}

const defaultLeaderboardSize = 10

func NewRouter(updates UpdateHandler, store Store, allowedOrigins []string) *gin.Engine {
	h := &handler{updates: updates, store: store}

	r := gin.Default()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if len(allowedOrigins) > 0 {
		r.Use(func(ctx *gin.Context) {
			origin := ctx.Request.Header.Get("Origin")
			if origin == "" || slices.Contains(allowedOrigins, origin) {
				ctx.Next()
				return
			}
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden origin"})
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{"Content-Type", "Origin"},
		}))
	}

	r.POST("/updates", h.postUpdate)
	r.GET("/leaderboard/chats", h.topChats)
	r.GET("/leaderboard/chats/:chatID/users", h.topCollectors)
	r.GET("/users/:userID/collection", h.collection)

	return r
}

// webhookUpdate mirrors the gateway's message frame for platforms that push
// updates over HTTP instead of the socket.
type webhookUpdate struct {
	ChatID    string         `json:"chatId" binding:"required"`
	ChatTitle string         `json:"chatTitle"`
	From      domain.UserRef `json:"from" binding:"required"`
	Text      string         `json:"text"`
	Timestamp int64          `json:"ts"`
}

func (h *handler) postUpdate(ctx *gin.Context) {
	var update webhookUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-update"})
		return
	}
	if update.From.ID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-update"})
		return
	}

	command, args := transport.ParseCommand(update.Text)
	h.updates.HandleUpdate(ctx.Request.Context(), domain.IncomingMessage{
		ChatID:    update.ChatID,
		ChatTitle: update.ChatTitle,
		From:      update.From,
		Text:      update.Text,
		Command:   command,
		Args:      args,
		Timestamp: time.Unix(update.Timestamp, 0),
	})
	ctx.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

func (h *handler) topChats(ctx *gin.Context) {
	stats, err := h.store.TopChats(ctx.Request.Context(), limitParam(ctx))
	if err != nil {
		log.Error().Err(err).Msg("top chats lookup failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"chats": stats})
}

func (h *handler) topCollectors(ctx *gin.Context) {
	tallies, err := h.store.TopCollectors(ctx.Request.Context(), ctx.Param("chatID"), limitParam(ctx))
	if err != nil {
		log.Error().Err(err).Msg("top collectors lookup failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"users": tallies})
}

func (h *handler) collection(ctx *gin.Context) {
	profile, err := h.store.FindUserProfile(ctx.Request.Context(), ctx.Param("userID"))
	if errors.Is(err, domain.ErrNotFound) {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user-not-found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("profile lookup failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"userId":    profile.ID,
		"username":  profile.Username,
		"firstName": profile.FirstName,
		"items":     profile.Items,
		"favorite":  profile.FavoriteID,
	})
}

func limitParam(ctx *gin.Context) int {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", ""))
	if err != nil || limit <= 0 || limit > 100 {
		return defaultLeaderboardSize
	}
	return limit
}
