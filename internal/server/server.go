package server

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/neo/botspotter_backend/internal/device"
	"github.com/neo/botspotter_backend/internal/logging"
	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/round"
)

// deviceSampleTTL bounds how long a panel reading stays usable for a
// device-driven round start. The Arduino sends on every knob change, so a
// stale reading means the panel went quiet.
const deviceSampleTTL = 5 * time.Minute

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
	EnableCompression: true,
}

// wsClient wraps a websocket connection with a write mutex so the timer
// goroutine and guess handlers can both push events safely.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Server struct {
	router  *gin.Engine
	manager *RoundManager
	flags   *FeatureFlagManager

	hubMutex sync.RWMutex
	hubs     map[string][]*wsClient

	deviceMutex  sync.RWMutex
	deviceConfig *personality.BotConfig
	deviceSeenAt time.Time
}

// NewServer creates a new HTTP server with WebSocket support
func NewServer(manager *RoundManager, flags *FeatureFlagManager) *Server {
	router := gin.New()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, HEAD")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(ErrorHandler())

	server := &Server{
		router:  router,
		manager: manager,
		flags:   flags,
		hubs:    make(map[string][]*wsClient),
	}

	manager.SetEventListener(server.broadcastRoundEvent)

	// Setup routes
	api := router.Group("/api")
	{
		api.POST("/round/start", server.startRound)
		api.GET("/round/:id", server.getRound)
		api.POST("/round/:id/guess", server.guess)
		api.POST("/round/:id/restart", server.restartRound)
		api.GET("/round/:id/results", server.getResults)
		api.GET("/round/:id/receipt", server.getReceipt)
		api.GET("/leaderboard", server.getLeaderboard)
		api.GET("/leaderboard/rank/:code", server.getPlayerRank)
		api.GET("/topics", server.listTopics)
		api.GET("/logs", server.listGameLogs)
	}
	router.GET("/ws/round/:id", server.handleRoundWebSocket)
	router.GET("/ws/device", server.handleDeviceWebSocket)

	return server
}

type startRoundRequest struct {
	PlayerCode string                 `json:"player_code"`
	UseDevice  bool                   `json:"use_device"`
	Config     *personality.BotConfig `json:"config"`
}

func (s *Server) startRound(c *gin.Context) {
	var req startRoundRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var cfg personality.BotConfig
	switch {
	case req.UseDevice:
		deviceCfg, ok := s.latestDeviceConfig()
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "No recent device input available"})
			return
		}
		cfg = deviceCfg
	case req.Config != nil:
		cfg = *req.Config
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a config or set use_device"})
		return
	}

	roundID, err := s.manager.CreateRound(cfg, req.PlayerCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"round_id": roundID,
		"status":   "loading",
	})
}

func (s *Server) getRound(c *gin.Context) {
	mr, exists := s.manager.GetRound(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
		return
	}

	resp := gin.H{
		"round_id":   mr.id,
		"load_state": mr.LoadState(),
	}

	if r := mr.Round(); r != nil {
		resp["state"] = r.State()
		resp["time_remaining"] = r.TimeRemaining()
		resp["comments"] = r.VisibleComments()
	}
	if summary, done := mr.Summary(); done {
		resp["summary"] = summary
	}

	c.JSON(http.StatusOK, resp)
}

type guessRequest struct {
	CommentID string `json:"comment_id"`
}

func (s *Server) guess(c *gin.Context) {
	mr, exists := s.manager.GetRound(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
		return
	}

	var req guessRequest
	if err := c.BindJSON(&req); err != nil || req.CommentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment_id is required"})
		return
	}

	r := mr.Round()
	if r == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Round is still loading"})
		return
	}

	result, err := r.Guess(req.CommentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) restartRound(c *gin.Context) {
	roundID := c.Param("id")
	if err := s.manager.RestartRound(roundID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	s.closeRoundClients(roundID)
	c.JSON(http.StatusOK, gin.H{"message": "Round restarted"})
}

func (s *Server) getResults(c *gin.Context) {
	mr, exists := s.manager.GetRound(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
		return
	}

	summary, done := mr.Summary()
	if !done {
		c.JSON(http.StatusConflict, gin.H{"error": "Round has no results yet"})
		return
	}

	resp := gin.H{"summary": summary}
	if r := mr.Round(); r != nil {
		resp["comments"] = r.VisibleComments()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getReceipt(c *gin.Context) {
	if !s.flags.GetFlags().EnablePrinting {
		c.JSON(http.StatusForbidden, gin.H{"error": "Printing is disabled"})
		return
	}

	text, err := s.manager.Receipt(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.String(http.StatusOK, text)
}

func (s *Server) getLeaderboard(c *gin.Context) {
	params := GetPaginationParams(c)
	entries := s.manager.leaderboard.GetScores()
	params.Total = len(entries)

	c.JSON(http.StatusOK, BuildPaginationResponse(params, PageSlice(entries, params)))
}

func (s *Server) getPlayerRank(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player code is required"})
		return
	}

	rank := s.manager.leaderboard.GetPlayerRank(code)
	c.JSON(http.StatusOK, gin.H{
		"code":  code,
		"rank":  rank,
		"found": rank <= len(s.manager.leaderboard.GetScores()),
	})
}

func (s *Server) listTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": device.Topics()})
}

func (s *Server) listGameLogs(c *gin.Context) {
	if !s.flags.GetFlags().EnableGameLogAPI {
		c.JSON(http.StatusForbidden, gin.H{"error": "Game log API is disabled"})
		return
	}

	params := GetPaginationParams(c)
	logs, err := s.manager.RecentLogs(params.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// handleRoundWebSocket streams live round events (ticks, guesses,
// completion) to a client watching the given round.
func (s *Server) handleRoundWebSocket(c *gin.Context) {
	roundID := c.Param("id")
	mr, exists := s.manager.GetRound(roundID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.LogWebSocketEvent("upgrade_failed", roundID, c.ClientIP(), map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := &wsClient{conn: ws}
	s.hubMutex.Lock()
	s.hubs[roundID] = append(s.hubs[roundID], client)
	s.hubMutex.Unlock()

	logging.LogWebSocketEvent("client_connected", roundID, c.ClientIP(), nil)

	// Initial snapshot so late joiners see the current feed.
	snapshot := gin.H{
		"type":       "snapshot",
		"load_state": mr.LoadState(),
	}
	if r := mr.Round(); r != nil {
		snapshot["state"] = r.State()
		snapshot["time_remaining"] = r.TimeRemaining()
		snapshot["comments"] = r.VisibleComments()
	}
	if err := client.writeJSON(snapshot); err != nil {
		s.dropClient(roundID, client)
		return
	}

	// Read loop exists only to notice the close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.LogWebSocketEvent("read_error", roundID, c.ClientIP(), map[string]interface{}{
					"error": err.Error(),
				})
			}
			break
		}
	}

	s.dropClient(roundID, client)
	logging.LogWebSocketEvent("client_disconnected", roundID, c.ClientIP(), nil)
}

// broadcastRoundEvent pushes a round event to every client watching it.
func (s *Server) broadcastRoundEvent(roundID string, ev round.Event) {
	s.hubMutex.RLock()
	clients := make([]*wsClient, len(s.hubs[roundID]))
	copy(clients, s.hubs[roundID])
	s.hubMutex.RUnlock()

	for _, client := range clients {
		if err := client.writeJSON(ev); err != nil {
			s.dropClient(roundID, client)
		}
	}
}

func (s *Server) dropClient(roundID string, client *wsClient) {
	s.hubMutex.Lock()
	defer s.hubMutex.Unlock()

	clients := s.hubs[roundID]
	for i, c := range clients {
		if c == client {
			s.hubs[roundID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(s.hubs[roundID]) == 0 {
		delete(s.hubs, roundID)
	}
	client.conn.Close()
}

func (s *Server) closeRoundClients(roundID string) {
	s.hubMutex.Lock()
	clients := s.hubs[roundID]
	delete(s.hubs, roundID)
	s.hubMutex.Unlock()

	for _, client := range clients {
		client.writeJSON(gin.H{"type": "round_restarted"})
		client.conn.Close()
	}
}

// handleDeviceWebSocket receives raw samples from the physical input panel
// and keeps the most recent mapped config for device-driven round starts.
func (s *Server) handleDeviceWebSocket(c *gin.Context) {
	if !s.flags.GetFlags().EnableDeviceInput {
		c.JSON(http.StatusForbidden, gin.H{"error": "Device input is disabled"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.LogDeviceEvent("upgrade_failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer ws.Close()

	logging.LogDeviceEvent("panel_connected", map[string]interface{}{
		"remote": c.ClientIP(),
	})

	var writeMu sync.Mutex
	for {
		var sample device.RawDeviceSample
		if err := ws.ReadJSON(&sample); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.LogDeviceEvent("read_error", map[string]interface{}{
					"error": err.Error(),
				})
			}
			break
		}

		cfg := device.MapDeviceInputToConfig(sample)

		s.deviceMutex.Lock()
		s.deviceConfig = &cfg
		s.deviceSeenAt = time.Now()
		s.deviceMutex.Unlock()

		logging.LogDeviceEvent("sample_mapped", map[string]interface{}{
			"topic":    cfg.Topic,
			"stance":   cfg.Stance,
			"platform": cfg.Platform,
		})

		writeMu.Lock()
		err = ws.WriteJSON(gin.H{"type": "mapped", "config": cfg})
		writeMu.Unlock()
		if err != nil {
			break
		}
	}

	logging.LogDeviceEvent("panel_disconnected", nil)
}

// latestDeviceConfig returns the most recent panel-mapped config if it is
// fresh enough to start a round with.
func (s *Server) latestDeviceConfig() (personality.BotConfig, bool) {
	s.deviceMutex.RLock()
	defer s.deviceMutex.RUnlock()

	if s.deviceConfig == nil || time.Since(s.deviceSeenAt) > deviceSampleTTL {
		return personality.BotConfig{}, false
	}
	return *s.deviceConfig, true
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
