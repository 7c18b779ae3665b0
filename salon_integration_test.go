package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/config"
	"github.com/yeremiapane/gastro-os/router"
	"github.com/yeremiapane/gastro-os/services"
	"github.com/yeremiapane/gastro-os/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	utils.InitLogger("warn")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type integrationTable struct {
	ID      string  `json:"id"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	PosX    int     `json:"pos_x"`
	PosY    int     `json:"pos_y"`
	GroupID *string `json:"group_id"`
}

// TestSalonEndToEnd walks the main flow:
// 1. Register a restaurant and log in as its owner
// 2. Add a manager and two tables
// 3. Both open the floor editor
// 4. The owner drops one table onto the other
// 5. After revalidation the manager's editor shows the merged group
func TestSalonEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	salon := services.NewSalonService(db)
	layouts := services.NewLayoutService(salon)
	monitor := services.NewChangeMonitor(db, layouts, nil)
	r := router.SetupRouter(db, router.Options{Layouts: layouts, TokenTTL: time.Hour})

	call(t, r, http.MethodPost, "/register", "", map[string]interface{}{
		"restaurant_name": "Casa Pepe",
		"name":            "Pepe",
		"email":           "pepe@example.com",
		"password":        "secret123",
	}, http.StatusCreated)
	owner := loginTest(t, r, "pepe@example.com")

	call(t, r, http.MethodPost, "/admin/users", owner, map[string]interface{}{
		"name":     "Marta",
		"email":    "marta@example.com",
		"password": "secret123",
		"role":     "manager",
	}, http.StatusCreated)
	manager := loginTest(t, r, "marta@example.com")

	var a, b integrationTable
	decodeData(t, call(t, r, http.MethodPost, "/admin/salon/tables", owner, map[string]interface{}{
		"name": "Mesa 1", "pos_x": 240, "pos_y": 240,
	}, http.StatusCreated), &a)
	decodeData(t, call(t, r, http.MethodPost, "/admin/salon/tables", owner, map[string]interface{}{
		"name": "Mesa 2",
	}, http.StatusCreated), &b)

	var floors []struct {
		ID string `json:"id"`
	}
	decodeData(t, call(t, r, http.MethodGet, "/admin/salon/floors", owner, nil, http.StatusOK), &floors)
	base := "/admin/salon/floors/" + floors[0].ID

	call(t, r, http.MethodGet, base+"/layout", owner, nil, http.StatusOK)
	call(t, r, http.MethodGet, base+"/layout", manager, nil, http.StatusOK)
	monitor.CheckChanges()

	pointer := func(x, y float64) map[string]interface{} {
		return map[string]interface{}{"pointer": map[string]interface{}{"id": 1, "x": x, "y": y}}
	}
	call(t, r, http.MethodPost, base+"/drag/begin", owner, map[string]interface{}{
		"kind": "move", "target_id": a.ID, "pointer": map[string]interface{}{"id": 1, "x": 240, "y": 240},
	}, http.StatusOK)
	call(t, r, http.MethodPost, base+"/drag/move", owner, pointer(120, 120), http.StatusOK)
	call(t, r, http.MethodPost, base+"/drag/end", owner, pointer(10, 10), http.StatusOK)
	layouts.Drain()

	if processed := monitor.CheckChanges(); processed == 0 {
		t.Fatalf("expected layout changes after the drag")
	}

	var snap struct {
		Tables []integrationTable `json:"tables"`
	}
	decodeData(t, call(t, r, http.MethodGet, base+"/layout", manager, nil, http.StatusOK), &snap)
	if len(snap.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(snap.Tables))
	}
	for _, table := range snap.Tables {
		if table.GroupID == nil || *table.GroupID != b.ID {
			t.Fatalf("table %s: expected group %s, got %v", table.ID, b.ID, table.GroupID)
		}
		if table.ID == a.ID && (table.X != 96 || table.Y != 0) {
			t.Fatalf("dropped table at (%d,%d), want (96,0)", table.X, table.Y)
		}
	}

	// waiters switch table status from the POS
	waiterToken, err := utils.GenerateToken(99, "waiter", 1, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	call(t, r, http.MethodPatch, "/pos/tables/"+a.ID+"/status", waiterToken, map[string]interface{}{
		"status": "occupied",
	}, http.StatusOK)
}

// setupTestDB -> sqlite in-memory with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:salon_e2e?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body interface{}, want int) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != want {
		t.Fatalf("%s %s: expected %d, got %d, body=%s", method, path, want, w.Code, w.Body.String())
	}

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: invalid body %q", method, path, w.Body.String())
	}
	return resp
}

func decodeData(t *testing.T, resp envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("decode %s: %v", resp.Message, err)
	}
}

func loginTest(t *testing.T, r *gin.Engine, email string) string {
	resp := call(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	}, http.StatusOK)

	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, resp, &data)
	if data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}
	return data.Token
}
