package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecosort/ecosort-backend/internal/handler"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/internal/service"
	"github.com/ecosort/ecosort-backend/internal/testhelpers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScanRouter(t *testing.T, db *gorm.DB, userID uuid.UUID, withRedis bool) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var mr *miniredis.Miniredis
	var rdb *redis.Client
	if withRedis {
		var err error
		mr, err = miniredis.Run()
		if err != nil {
			t.Fatalf("failed to start miniredis: %v", err)
		}
		t.Cleanup(mr.Close)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { rdb.Close() })
	}

	scanRepo := repository.NewScanRepository(db)
	impactSvc := service.NewImpactService(repository.NewImpactRepository(db), scanRepo, nil)
	progressSvc := service.NewProgressService(scanRepo, repository.NewBadgeRepository(db), impactSvc)
	scanSvc := service.NewScanService(scanRepo, impactSvc, progressSvc, rdb, 2*time.Second)
	h := handler.NewScanHandler(scanSvc)

	router := gin.New()
	group := router.Group("/recycle")
	group.Use(func(c *gin.Context) {
		c.Set("user_id", userID.String())
	})
	group.POST("/scan", h.RecordScan)
	group.GET("/scans", h.ListScans)
	return router, mr
}

func TestRecordScanEndpoint(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := seedRewardsUser(t, db, 0)
	router, _ := newScanRouter(t, db, user.ID, false)

	body := `{"item_name":"Bottle","predicted_material":"plastic","confidence":0.95,"decision":"Recycle"}`
	req := httptest.NewRequest(http.MethodPost, "/recycle/scan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var scan map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scan))
	assert.Equal(t, "Bottle", scan["item_name"])
	assert.Equal(t, "Recycle", scan["decision"])
}

func TestRecordScanRejectsUnknownDecision(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := seedRewardsUser(t, db, 0)
	router, _ := newScanRouter(t, db, user.ID, false)

	body := `{"item_name":"Bottle","predicted_material":"plastic","confidence":0.95,"decision":"Burn It"}`
	req := httptest.NewRequest(http.MethodPost, "/recycle/scan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordScanTooManyRequests(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := seedRewardsUser(t, db, 0)
	router, _ := newScanRouter(t, db, user.ID, true)

	body := `{"item_name":"Can","predicted_material":"metal","confidence":0.9,"decision":"Recycle"}`
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/recycle/scan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send().Code)
	assert.Equal(t, http.StatusTooManyRequests, send().Code)
}

func TestListScansEndpoint(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := seedRewardsUser(t, db, 3)
	router, _ := newScanRouter(t, db, user.ID, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recycle/scans?limit=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Scans []map[string]interface{} `json:"scans"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Scans, 2)
}
