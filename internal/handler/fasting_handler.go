package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	apperrors "fasting/backend/internal/errors"
	"fasting/backend/internal/metrics"
	"fasting/backend/internal/middleware"
	"fasting/backend/internal/service"
	"fasting/backend/internal/timer"
)

const (
	liveTickInterval = time.Second
	liveWriteTimeout = 5 * time.Second
)

type FastingHandler struct {
	fastingService *service.FastingService
	upgrader       websocket.Upgrader
	logger         *slog.Logger
}

type versionRequest struct {
	BaseVersion int `json:"baseVersion"`
}

func NewFastingHandler(fastingService *service.FastingService, corsOrigins []string, logger *slog.Logger) *FastingHandler {
	return &FastingHandler{
		fastingService: fastingService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     middleware.OriginChecker(corsOrigins),
		},
		logger: logger,
	}
}

func (h *FastingHandler) GetState(c *gin.Context) {
	state, apiErr := h.fastingService.GetState(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *FastingHandler) Start(c *gin.Context) {
	h.transition(c, h.fastingService.Start)
}

func (h *FastingHandler) Pause(c *gin.Context) {
	h.transition(c, h.fastingService.Pause)
}

func (h *FastingHandler) Reset(c *gin.Context) {
	h.transition(c, h.fastingService.Reset)
}

func (h *FastingHandler) Finish(c *gin.Context) {
	baseVersion, ok := bindBaseVersion(c)
	if !ok {
		return
	}

	result, apiErr := h.fastingService.Finish(c.Request.Context(), middleware.UserID(c), baseVersion)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Live streams the state once per second while the fast runs. The stream
// sends a final frame and closes once the fast stops.
func (h *FastingHandler) Live(c *gin.Context) {
	userID := middleware.UserID(c)
	ctx := c.Request.Context()

	initial, apiErr := h.fastingService.GetState(ctx, userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade live stream", "user_id", userID, "error", err)
		return
	}
	defer ws.Close()

	metrics.LiveStreams.Inc()
	defer metrics.LiveStreams.Dec()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		// Client frames are ignored; a read error means the peer went away.
		defer cancel()
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := h.send(ws, initial); err != nil {
		return
	}

	timer.Run(ctx,
		liveTickInterval,
		func() bool { return h.fastingService.IsRunning(ctx, userID) },
		func(time.Time) {
			state, apiErr := h.fastingService.GetState(ctx, userID)
			if apiErr != nil {
				cancel()
				return
			}
			if err := h.send(ws, state); err != nil {
				cancel()
			}
		},
	)

	if ctx.Err() != nil {
		return
	}
	if final, apiErr := h.fastingService.GetState(ctx, userID); apiErr == nil {
		_ = h.send(ws, final)
	}
	_ = ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "fast stopped"),
		time.Now().Add(liveWriteTimeout),
	)
}

func (h *FastingHandler) send(ws *websocket.Conn, state *service.StateView) error {
	_ = ws.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := ws.WriteJSON(gin.H{"state": state}); err != nil {
		h.logger.Debug("live stream write failed", "user_id", state.UserID, "error", err)
		return err
	}
	return nil
}

type transitionFunc func(ctx context.Context, userID string, baseVersion int) (*service.StateView, *apperrors.APIError)

func (h *FastingHandler) transition(c *gin.Context, fn transitionFunc) {
	baseVersion, ok := bindBaseVersion(c)
	if !ok {
		return
	}

	state, apiErr := fn(c.Request.Context(), middleware.UserID(c), baseVersion)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func bindBaseVersion(c *gin.Context) (int, bool) {
	var req versionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return 0, false
	}
	if req.BaseVersion <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_base_version", "message": "baseVersion is required"},
		})
		return 0, false
	}
	return req.BaseVersion, true
}
