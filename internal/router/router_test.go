package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fasting/backend/internal/db"
	"fasting/backend/internal/handler"
	"fasting/backend/internal/logging"
	"fasting/backend/internal/middleware"
	"fasting/backend/internal/record"
	"fasting/backend/internal/repository"
	"fasting/backend/internal/router"
	"fasting/backend/internal/service"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

type stateEnvelope struct {
	State struct {
		Status         string  `json:"status"`
		Version        int     `json:"version"`
		TargetHours    float64 `json:"targetHours"`
		ElapsedSeconds int64   `json:"elapsedSeconds"`
		Phase          struct {
			Phase struct {
				Hour int `json:"hour"`
			} `json:"phase"`
		} `json:"phase"`
	} `json:"state"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			State struct {
				Version int `json:"version"`
			} `json:"state"`
		} `json:"details"`
	} `json:"error"`
}

type recordsEnvelope struct {
	Records []struct {
		Date      string  `json:"date"`
		Hours     float64 `json:"hours"`
		Completed bool    `json:"completed"`
		Color     string  `json:"color"`
	} `json:"records"`
}

type finishEnvelope struct {
	State struct {
		Status  string `json:"status"`
		Version int    `json:"version"`
	} `json:"state"`
	Record struct {
		Date      string  `json:"date"`
		Hours     float64 `json:"hours"`
		Completed bool    `json:"completed"`
	} `json:"record"`
}

type summaryEnvelope struct {
	Summary struct {
		TotalFasts     int     `json:"totalFasts"`
		CompletedCount int     `json:"completedCount"`
		CompletionRate float64 `json:"completionRate"`
		AverageHours   float64 `json:"averageHours"`
		LongestFast    float64 `json:"longestFast"`
		LongestStreak  int     `json:"longestStreak"`
	} `json:"summary"`
}

func TestFastingTimerSyncAndConflict(t *testing.T) {
	engine := setupTestEngine(t, 1000)

	user1 := registerUser(t, engine, "user1@example.com", "123456")
	user2 := registerUser(t, engine, "user2@example.com", "123456")

	state1 := getState(t, engine, user1.Token)
	require.Equal(t, 1, state1.State.Version)
	assert.Equal(t, "idle", state1.State.Status)
	assert.Equal(t, 16.0, state1.State.TargetHours)

	status, _ := requestJSON(t, engine, http.MethodPost, "/api/fast/start", user1.Token, map[string]int{
		"baseVersion": state1.State.Version,
	})
	require.Equal(t, http.StatusOK, status)

	// A second device still holding the old version must be rejected.
	status, rawConflict := requestJSON(t, engine, http.MethodPost, "/api/fast/pause", user1.Token, map[string]int{
		"baseVersion": state1.State.Version,
	})
	require.Equal(t, http.StatusConflict, status)

	var conflictResp apiErrorEnvelope
	require.NoError(t, json.Unmarshal(rawConflict, &conflictResp))
	assert.Equal(t, "state_conflict", conflictResp.Error.Code)

	latestVersion := conflictResp.Error.Details.State.Version
	require.Equal(t, 2, latestVersion)

	status, rawPaused := requestJSON(t, engine, http.MethodPost, "/api/fast/pause", user1.Token, map[string]int{
		"baseVersion": latestVersion,
	})
	require.Equal(t, http.StatusOK, status)
	var paused stateEnvelope
	require.NoError(t, json.Unmarshal(rawPaused, &paused))
	assert.Equal(t, "paused", paused.State.Status)
	assert.Equal(t, 0, paused.State.Phase.Phase.Hour)

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/fast/reset", user1.Token, map[string]int{
		"baseVersion": paused.State.Version,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", getState(t, engine, user1.Token).State.Status)

	// Timers are isolated per user.
	state2 := getState(t, engine, user2.Token)
	assert.Equal(t, 1, state2.State.Version)
	assert.Equal(t, "idle", state2.State.Status)
}

func TestFastActionsRequireBaseVersion(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	user := registerUser(t, engine, "version@example.com", "123456")

	status, body := requestJSON(t, engine, http.MethodPost, "/api/fast/start", user.Token, map[string]int{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_base_version", decodeError(t, body).Error.Code)
}

func TestFinishLogsRecord(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	user := registerUser(t, engine, "finish@example.com", "123456")

	state := getState(t, engine, user.Token)
	status, rawStarted := requestJSON(t, engine, http.MethodPost, "/api/fast/start", user.Token, map[string]int{
		"baseVersion": state.State.Version,
	})
	require.Equal(t, http.StatusOK, status)
	var started stateEnvelope
	require.NoError(t, json.Unmarshal(rawStarted, &started))

	status, rawFinish := requestJSON(t, engine, http.MethodPost, "/api/fast/finish", user.Token, map[string]int{
		"baseVersion": started.State.Version,
	})
	require.Equal(t, http.StatusOK, status, string(rawFinish))

	var finished finishEnvelope
	require.NoError(t, json.Unmarshal(rawFinish, &finished))
	assert.Equal(t, "idle", finished.State.Status)
	assert.Equal(t, record.FormatDate(time.Now().UTC()), finished.Record.Date)
	assert.False(t, finished.Record.Completed)

	status, rawRecords := requestJSON(t, engine, http.MethodGet, "/api/records", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var records recordsEnvelope
	require.NoError(t, json.Unmarshal(rawRecords, &records))
	require.Len(t, records.Records, 1)
	assert.Equal(t, finished.Record.Date, records.Records[0].Date)

	// Nothing left to finish.
	status, body := requestJSON(t, engine, http.MethodPost, "/api/fast/finish", user.Token, map[string]int{
		"baseVersion": finished.State.Version,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "no_active_fast", decodeError(t, body).Error.Code)
}

func TestRecordCRUD(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	user := registerUser(t, engine, "records@example.com", "123456")

	status, _ := requestJSON(t, engine, http.MethodPut, "/api/records/2024-12-01", user.Token, map[string]interface{}{
		"hours":     16,
		"startTime": "20:00",
		"endTime":   "12:00",
		"completed": true,
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = requestJSON(t, engine, http.MethodPut, "/api/records/2024-11-30", user.Token, map[string]interface{}{
		"hours": 10,
	})
	require.Equal(t, http.StatusOK, status)

	status, rawMonth := requestJSON(t, engine, http.MethodGet, "/api/records?year=2024&month=12", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var month recordsEnvelope
	require.NoError(t, json.Unmarshal(rawMonth, &month))
	require.Len(t, month.Records, 1)
	assert.Equal(t, "2024-12-01", month.Records[0].Date)
	assert.Equal(t, "#10B981", month.Records[0].Color)

	status, _ = requestJSON(t, engine, http.MethodPatch, "/api/records/2024-12-01", user.Token, map[string]interface{}{
		"notes": "felt great",
	})
	assert.Equal(t, http.StatusOK, status)

	status, body := requestJSON(t, engine, http.MethodPatch, "/api/records/2024-12-02", user.Token, map[string]interface{}{
		"hours": 12,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "record_not_found", decodeError(t, body).Error.Code)

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/records/2024-12-02", user.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = requestJSON(t, engine, http.MethodPut, "/api/records/2024-12-03", user.Token, map[string]interface{}{
		"hours": 25,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_hours", decodeError(t, body).Error.Code)

	status, body = requestJSON(t, engine, http.MethodPut, "/api/records/2024-13-01", user.Token, map[string]interface{}{
		"hours": 12,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_date", decodeError(t, body).Error.Code)

	status, body = requestJSON(t, engine, http.MethodPut, "/api/records/2024-12-04", user.Token, map[string]interface{}{
		"notes": "missing hours",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", decodeError(t, body).Error.Code)

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/records/2024-12-01", user.Token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/records/2024-12-01", user.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecordTimesAreFreeText(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	user := registerUser(t, engine, "freetext@example.com", "123456")

	status, body := requestJSON(t, engine, http.MethodPut, "/api/records/2024-12-01", user.Token, map[string]interface{}{
		"hours":     16,
		"startTime": "8pm",
		"endTime":   "noon",
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var resp struct {
		Record struct {
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "8pm", resp.Record.StartTime)
	assert.Equal(t, "noon", resp.Record.EndTime)
}

func TestLiveStreamClosesWhenFastStops(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	user := registerUser(t, engine, "live@example.com", "123456")
	status, rawStarted := requestJSON(t, engine, http.MethodPost, "/api/fast/start", user.Token, map[string]int{
		"baseVersion": getState(t, engine, user.Token).State.Version,
	})
	require.Equal(t, http.StatusOK, status)
	var started stateEnvelope
	require.NoError(t, json.Unmarshal(rawStarted, &started))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/fast/live?access_token=" + user.Token
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	readFrame := func() (stateEnvelope, error) {
		var frame stateEnvelope
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		err := conn.ReadJSON(&frame)
		return frame, err
	}

	initial, err := readFrame()
	require.NoError(t, err)
	assert.Equal(t, "running", initial.State.Status)
	assert.Equal(t, started.State.Version, initial.State.Version)

	tick, err := readFrame()
	require.NoError(t, err)
	assert.Equal(t, "running", tick.State.Status)

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/fast/pause", user.Token, map[string]int{
		"baseVersion": started.State.Version,
	})
	require.Equal(t, http.StatusOK, status)

	var last stateEnvelope
	for {
		frame, err := readFrame()
		if err != nil {
			require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			var closeErr *websocket.CloseError
			require.ErrorAs(t, err, &closeErr)
			assert.Equal(t, "fast stopped", closeErr.Text)
			break
		}
		last = frame
	}
	assert.Equal(t, "paused", last.State.Status)
}

func TestProgressSummary(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	user := registerUser(t, engine, "progress@example.com", "123456")

	for date, hours := range map[string]float64{"2024-12-01": 16, "2024-12-02": 18, "2024-12-04": 12, "2024-11-20": 8} {
		status, _ := requestJSON(t, engine, http.MethodPut, "/api/records/"+date, user.Token, map[string]interface{}{
			"hours":     hours,
			"completed": hours >= 16,
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/progress/summary?year=2024&month=12", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var summary summaryEnvelope
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 3, summary.Summary.TotalFasts)
	assert.Equal(t, 2, summary.Summary.CompletedCount)
	assert.Equal(t, 67.0, summary.Summary.CompletionRate)
	assert.Equal(t, 15.3, summary.Summary.AverageHours)
	assert.Equal(t, 18.0, summary.Summary.LongestFast)
	assert.Equal(t, 2, summary.Summary.LongestStreak)

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/progress/summary", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 4, summary.Summary.TotalFasts)

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/progress/week", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var week struct {
		Days []json.RawMessage `json:"days"`
	}
	require.NoError(t, json.Unmarshal(raw, &week))
	assert.Len(t, week.Days, 7)

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/progress/summary?year=2024", user.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCycleSelectionDrivesTarget(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	user := registerUser(t, engine, "cycle@example.com", "123456")

	status, body := requestJSON(t, engine, http.MethodPut, "/api/cycle/phase", user.Token, map[string]string{"phase": "luteal"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 14.0, getState(t, engine, user.Token).State.TargetHours)

	status, body = requestJSON(t, engine, http.MethodPut, "/api/cycle/phase", user.Token, map[string]string{"phase": "winter"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_phase", decodeError(t, body).Error.Code)

	status, body = requestJSON(t, engine, http.MethodPut, "/api/cycle/custom", user.Token, map[string]interface{}{"customHours": 30})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_custom_hours", decodeError(t, body).Error.Code)

	status, _ = requestJSON(t, engine, http.MethodPut, "/api/cycle/custom", user.Token, map[string]interface{}{"customHours": 18.5})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 18.5, getState(t, engine, user.Token).State.TargetHours)

	status, body = requestJSON(t, engine, http.MethodPut, "/api/cycle/custom", user.Token, map[string]interface{}{"customHours": nil})
	require.Equal(t, http.StatusOK, status)
	var cycleResp struct {
		Cycle struct {
			EffectiveHours     float64 `json:"effectiveHours"`
			IsUsingCustomTimer bool    `json:"isUsingCustomTimer"`
		} `json:"cycle"`
	}
	require.NoError(t, json.Unmarshal(body, &cycleResp))
	assert.Equal(t, 14.0, cycleResp.Cycle.EffectiveHours)
	assert.False(t, cycleResp.Cycle.IsUsingCustomTimer)
}

func TestPhasesArePublic(t *testing.T) {
	engine := setupTestEngine(t, 1000)

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/phases", "", nil)
	require.Equal(t, http.StatusOK, status)
	var phases struct {
		Phases []struct {
			Hour int `json:"hour"`
		} `json:"phases"`
	}
	require.NoError(t, json.Unmarshal(raw, &phases))
	assert.Len(t, phases.Phases, 12)

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/phases/resolve?hours=13.5", "", nil)
	require.Equal(t, http.StatusOK, status)
	var resolved struct {
		Phase struct {
			Hour int `json:"hour"`
		} `json:"phase"`
		NextPhase struct {
			Hour int `json:"hour"`
		} `json:"nextPhase"`
	}
	require.NoError(t, json.Unmarshal(raw, &resolved))
	assert.Equal(t, 12, resolved.Phase.Hour)
	assert.Equal(t, 14, resolved.NextPhase.Hour)

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/phases/resolve?hours=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestExportAndReset(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	user := registerUser(t, engine, "export@example.com", "123456")

	status, _ := requestJSON(t, engine, http.MethodPut, "/api/records/2024-12-01", user.Token, map[string]interface{}{"hours": 16})
	require.Equal(t, http.StatusOK, status)

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/export", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var export struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Records []json.RawMessage `json:"records"`
	}
	require.NoError(t, json.Unmarshal(raw, &export))
	assert.Equal(t, "export@example.com", export.User.Email)
	assert.Len(t, export.Records, 1)
	assert.NotContains(t, string(raw), "passwordHash")

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/data", user.Token, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/records", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var records recordsEnvelope
	require.NoError(t, json.Unmarshal(raw, &records))
	assert.Empty(t, records.Records)
}

func TestAuthFlow(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	registerUser(t, engine, "login@example.com", "123456")

	status, body := requestJSON(t, engine, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "login@example.com",
		"password": "123456",
		"name":     "Again",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email_exists", decodeError(t, body).Error.Code)

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "LOGIN@example.com",
		"password": "123456",
	})
	require.Equal(t, http.StatusOK, status)
	var login authResponse
	require.NoError(t, json.Unmarshal(raw, &login))

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "login@example.com")

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/fast/state", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthRateLimit(t *testing.T) {
	engine := setupTestEngine(t, 2)

	credentials := map[string]string{"email": "nobody@example.com", "password": "123456"}
	for i := 0; i < 2; i++ {
		status, _ := requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", credentials)
		require.Equal(t, http.StatusUnauthorized, status)
	}

	status, body := requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", credentials)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate_limited", decodeError(t, body).Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	engine := setupTestEngine(t, 1000)
	req := httptest.NewRequest(http.MethodOptions, "/api/records/2024-12-01", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func setupTestEngine(t *testing.T, authBurst int) http.Handler {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	_, err = db.RunMigrations(context.Background(), database, migrationsDir)
	require.NoError(t, err)

	logger := logging.Discard()
	userRepo := repository.NewUserRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	recordRepo := repository.NewRecordRepository(database)
	stateStore := repository.NewSQLiteFastingStateStore(database)

	authService := service.NewAuthService(userRepo, settingsRepo, recordRepo, stateStore, service.AuthOptions{
		JWTSecret: "test-secret",
		TokenTTL:  24 * time.Hour,
	}, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	recordService := service.NewRecordService(recordRepo, time.UTC, logger)
	fastingService := service.NewFastingService(stateStore, settingsService, recordService, time.UTC, logger)
	accountService := service.NewAccountService(authService, settingsService, recordService, fastingService, logger)

	origins := []string{"http://localhost:5173"}
	return router.New(router.Dependencies{
		AuthService:     authService,
		AuthHandler:     handler.NewAuthHandler(authService),
		PhaseHandler:    handler.NewPhaseHandler(),
		SettingsHandler: handler.NewSettingsHandler(settingsService),
		FastingHandler:  handler.NewFastingHandler(fastingService, origins, logger),
		RecordHandler:   handler.NewRecordHandler(recordService),
		AccountHandler:  handler.NewAccountHandler(accountService),
		AuthLimiter:     middleware.NewRateLimiter(1, authBurst),
		CORSOrigins:     origins,
		Logger:          logger,
	})
}

func registerUser(t *testing.T, server http.Handler, email, password string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %s", email, string(body))

	var resp authResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token, "empty token for user %s", email)
	return resp
}

func getState(t *testing.T, server http.Handler, token string) stateEnvelope {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodGet, "/api/fast/state", token, nil)
	require.Equal(t, http.StatusOK, status, "get state: %s", string(body))

	var stateResp stateEnvelope
	require.NoError(t, json.Unmarshal(body, &stateResp))
	return stateResp
}

func decodeError(t *testing.T, body []byte) apiErrorEnvelope {
	t.Helper()
	var resp apiErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
