package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtauth "medicine-tracker/internal/adapters/auth/jwt"
	"medicine-tracker/internal/platform/metrics"
	"medicine-tracker/internal/platform/ratelimit"
	"medicine-tracker/internal/router"
)

func TestHTTP_EndToEnd_DailyMedicineFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "user-1"
	today := time.Now().UTC().Format("2006-01-02")

	// 1) Crear medicamento diario que empieza hoy
	medID := createMedicine(t, ts.URL, ownerID, map[string]any{
		"name":       "Aspirin",
		"dosage":     "100mg",
		"frequency":  "daily",
		"start_date": today,
	})

	// 2) Hoy tiene exactamente una toma a las 09:00
	var todays []map[string]any
	{
		st, body := doReq(t, ts.URL, "GET", "/api/schedules/today", ownerID, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		require.NoError(t, json.Unmarshal(body, &todays))
		require.Len(t, todays, 1)
		assert.Equal(t, "09:00", todays[0]["scheduled_time"])
		assert.Equal(t, today, todays[0]["scheduled_date"])
		assert.Equal(t, "Aspirin", todays[0]["medicine_name"])
		assert.NotContains(t, todays[0], "name")
		assert.Equal(t, false, todays[0]["taken"])
	}
	scheduleID := todays[0]["id"].(string)

	// 3) Marcar como tomada dos veces: ambas 200, un solo registro en historial
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "PUT", "/api/schedules/"+scheduleID+"/taken", ownerID, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		assert.Contains(t, string(body), "Medicine marked as taken")
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/api/history", ownerID, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var items []map[string]any
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, 1)
		assert.Equal(t, "taken", items[0]["status"])
		assert.Equal(t, "Aspirin", items[0]["medicine_name"])
	}

	// 4) Registrar una toma perdida
	{
		st, body := doReq(t, ts.URL, "POST", "/api/medicines/"+medID+"/record", ownerID, map[string]any{
			"status": "missed",
			"notes":  "olvidé",
		})
		require.Equal(t, http.StatusCreated, st, string(body))
	}

	// 5) Estadísticas: 1 tomada, 1 perdida => 50%
	{
		st, body := doReq(t, ts.URL, "GET", "/api/stats", ownerID, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var stats map[string]any
		require.NoError(t, json.Unmarshal(body, &stats))
		assert.EqualValues(t, 1, stats["total_medicines"])
		assert.EqualValues(t, 1, stats["total_doses_taken"])
		assert.EqualValues(t, 1, stats["total_doses_missed"])
		assert.EqualValues(t, 50, stats["adherence_rate"])
	}

	// 6) Soft delete: desaparece del listado y de las tomas de hoy
	{
		st, body := doReq(t, ts.URL, "DELETE", "/api/medicines/"+medID, ownerID, nil)
		require.Equal(t, http.StatusOK, st, string(body))

		st, body = doReq(t, ts.URL, "GET", "/api/medicines", ownerID, nil)
		require.Equal(t, http.StatusOK, st)
		assert.JSONEq(t, "[]", string(body))

		st, body = doReq(t, ts.URL, "GET", "/api/schedules/today", ownerID, nil)
		require.Equal(t, http.StatusOK, st)
		assert.JSONEq(t, "[]", string(body))
	}
}

func TestHTTP_OtherUsersSeeNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	otherID := "other-1"

	medID := createMedicine(t, ts.URL, ownerID, map[string]any{
		"name":       "Ibuprofen",
		"dosage":     "200mg",
		"frequency":  "twice-daily",
		"start_date": time.Now().UTC().Format("2006-01-02"),
	})

	st, body := doReq(t, ts.URL, "GET", "/api/schedules/today", ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	var todays []map[string]any
	require.NoError(t, json.Unmarshal(body, &todays))
	require.Len(t, todays, 2)
	assert.Equal(t, "09:00", todays[0]["scheduled_time"])
	assert.Equal(t, "18:00", todays[1]["scheduled_time"])

	cases := []struct {
		method, path string
		body         any
	}{
		{"GET", "/api/medicines/" + medID, nil},
		{"PUT", "/api/medicines/" + medID, map[string]any{"name": "Hijacked"}},
		{"DELETE", "/api/medicines/" + medID, nil},
		{"PUT", "/api/schedules/" + todays[0]["id"].(string) + "/taken", nil},
		{"POST", "/api/medicines/" + medID + "/record", nil},
		{"POST", "/api/schedules", map[string]any{"medicine_id": medID, "scheduled_time": "12:00"}},
		{"POST", "/api/reminders", map[string]any{"medicine_id": medID, "reminder_time": "08:30"}},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, otherID, tc.body)
		assert.Equal(t, http.StatusNotFound, st, "%s %s body=%s", tc.method, tc.path, string(body))
	}

	// El otro usuario no ve nada en sus listados
	for _, path := range []string{"/api/medicines", "/api/schedules", "/api/history", "/api/reminders"} {
		st, body := doReq(t, ts.URL, "GET", path, otherID, nil)
		require.Equal(t, http.StatusOK, st, path)
		assert.JSONEq(t, "[]", string(body), path)
	}

	// El dueño sigue viendo su medicamento intacto
	st, body = doReq(t, ts.URL, "GET", "/api/medicines/"+medID, ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `"name":"Ibuprofen"`)
	assert.Contains(t, string(body), `"active":true`)
}

func TestHTTP_ValidationAndAuth(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	userID := "user-v"

	// Sin usuario => 401
	st, _ := doReq(t, ts.URL, "GET", "/api/medicines", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	// Campos requeridos
	st, body := doReq(t, ts.URL, "POST", "/api/medicines", userID, map[string]any{
		"dosage":     "1 pill",
		"frequency":  "daily",
		"start_date": "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, st, string(body))
	assert.Contains(t, string(body), "name")

	// Fecha mal formada
	st, _ = doReq(t, ts.URL, "POST", "/api/medicines", userID, map[string]any{
		"name": "X", "dosage": "1", "frequency": "daily", "start_date": "01/02/2025",
	})
	assert.Equal(t, http.StatusBadRequest, st)

	// JSON inválido
	st, _ = doRaw(t, ts.URL, "POST", "/api/medicines", userID, strings.NewReader("{nope"))
	assert.Equal(t, http.StatusBadRequest, st)

	// PUT sin campos
	medID := createMedicine(t, ts.URL, userID, map[string]any{
		"name": "Vitamin D", "dosage": "1000IU", "frequency": "as-needed", "start_date": "2025-01-01",
	})
	st, _ = doReq(t, ts.URL, "PUT", "/api/medicines/"+medID, userID, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, st)

	// as-needed no genera tomas
	st, body = doReq(t, ts.URL, "GET", "/api/schedules", userID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, "[]", string(body))

	// Hora inválida en toma manual
	st, _ = doReq(t, ts.URL, "POST", "/api/schedules", userID, map[string]any{
		"medicine_id": medID, "scheduled_time": "25:99",
	})
	assert.Equal(t, http.StatusBadRequest, st)

	// Estado inválido en historial
	st, _ = doReq(t, ts.URL, "POST", "/api/medicines/"+medID+"/record", userID, map[string]any{"status": "forgotten"})
	assert.Equal(t, http.StatusBadRequest, st)

	// Sin historial: estadísticas en cero
	st, body = doReq(t, ts.URL, "GET", "/api/stats", userID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `{"total_medicines":1,"total_doses_taken":0,"total_doses_missed":0,"adherence_rate":0}`, string(body))
}

func TestHTTP_UpdateMedicine(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	userID := "user-u"
	medID := createMedicine(t, ts.URL, userID, map[string]any{
		"name": "Metformin", "dosage": "500mg", "frequency": "as-needed",
		"start_date": "2025-01-01", "end_date": "2025-06-30",
	})

	st, body := doReq(t, ts.URL, "PATCH", "/api/medicines/"+medID, userID, map[string]any{
		"dosage":   "850mg",
		"end_date": nil,
	})
	require.Equal(t, http.StatusOK, st, string(body))
	assert.Contains(t, string(body), "Medicine updated successfully")

	st, body = doReq(t, ts.URL, "GET", "/api/medicines/"+medID, userID, nil)
	require.Equal(t, http.StatusOK, st)
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, "850mg", m["dosage"])
	assert.Equal(t, "Metformin", m["name"])
	assert.Nil(t, m["end_date"])

	// end_date anterior a start_date
	st, _ = doReq(t, ts.URL, "PUT", "/api/medicines/"+medID, userID, map[string]any{"end_date": "2024-12-31"})
	assert.Equal(t, http.StatusBadRequest, st)
}

func TestHTTP_RemindersCRUD(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	userID := "user-r"
	medID := createMedicine(t, ts.URL, userID, map[string]any{
		"name": "Omeprazole", "dosage": "20mg", "frequency": "as-needed", "start_date": "2025-01-01",
	})

	st, body := doReq(t, ts.URL, "POST", "/api/reminders", userID, map[string]any{
		"medicine_id": medID, "reminder_time": "08:30",
	})
	require.Equal(t, http.StatusCreated, st, string(body))
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	remID := created["id"].(string)
	assert.Equal(t, true, created["enabled"])

	st, body = doReq(t, ts.URL, "GET", "/api/reminders", userID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `"medicine_name":"Omeprazole"`)

	// Deshabilitar => sale del listado
	st, _ = doReq(t, ts.URL, "PUT", "/api/reminders/"+remID, userID, map[string]any{"enabled": false})
	require.Equal(t, http.StatusOK, st)
	st, body = doReq(t, ts.URL, "GET", "/api/reminders", userID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, "[]", string(body))

	st, _ = doReq(t, ts.URL, "PUT", "/api/reminders/"+remID, "intruder", map[string]any{"enabled": true})
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = doReq(t, ts.URL, "DELETE", "/api/reminders/"+remID, userID, nil)
	assert.Equal(t, http.StatusOK, st)
	st, _ = doReq(t, ts.URL, "DELETE", "/api/reminders/"+remID, userID, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_JWTMode(t *testing.T) {
	v := jwtauth.NewVerifier("test-secret")
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: v}))
	defer ts.Close()

	// En modo verifier el header de debug no alcanza
	st, _ := doReq(t, ts.URL, "GET", "/api/medicines", "user-1", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	token, err := v.Issue("user-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest("GET", ts.URL+"/api/medicines", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Token inválido o vencido: 403, distinto de no mandar credenciales
	expired, err := v.Issue("user-1", "user@example.com", -time.Minute)
	require.NoError(t, err)
	for _, bearer := range []string{"garbage", expired} {
		req, err := http.NewRequest("GET", ts.URL+"/api/medicines", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+bearer)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/api/medicines", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.JSONEq(t, `{"error":"Access token required"}`, string(body))
}

func TestHTTP_HealthMetricsAndRateLimit(t *testing.T) {
	m := metrics.New("medicine_tracker")
	limiter := ratelimit.New(0.01, 3, 0)
	defer limiter.Stop()

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Metrics:     m,
		RateLimiter: limiter,
		Environment: "test",
	}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/api/health", "", nil)
	require.Equal(t, http.StatusOK, st)
	var health map[string]any
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "OK", health["status"])
	assert.Equal(t, "test", health["environment"])

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `medicine_tracker_http_requests_total{method="GET",route="/api/health",status="200"} 1`)

	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)

	// Burst agotado (3 requests) => 429
	st, body = doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, st, string(body))
}

// ---------------- helpers ----------------

func createMedicine(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/medicines", userID, payload)
	require.Equal(t, http.StatusCreated, st, "create medicine body=%s", string(body))

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	id, ok := out["id"].(string)
	require.True(t, ok, "missing id in response: %s", string(body))
	return id
}

func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	return doRaw(t, baseURL, method, path, userID, r)
}

func doRaw(t *testing.T, baseURL, method, path, userID string, r io.Reader) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, baseURL+path, r)
	require.NoError(t, err)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, b
}
