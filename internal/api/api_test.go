package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/config"
	"github.com/mahmoudbymassen/station-managment/internal/auth"
	"github.com/mahmoudbymassen/station-managment/internal/db"
	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

var testSecret = []byte("test-secret")

// testAPI bundles the router with direct database access for seeding.
type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(testDB))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = string(testSecret)
	cfg.Auth.TokenTTL = time.Hour
	cfg.Server.RateLimitPerSec = 10000

	return &testAPI{
		router: NewRouter(cfg, store.NewGormStore(testDB), nil),
		db:     testDB,
	}
}

func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.SignToken(testSecret, 1, auth.RoleAdmin, 0, time.Hour)
	require.NoError(t, err)
	return token
}

func (a *testAPI) managerToken(t *testing.T, stationPK int64) string {
	t.Helper()
	token, err := auth.SignToken(testSecret, 2, auth.RoleManager, stationPK, time.Hour)
	require.NoError(t, err)
	return token
}

// do performs a request with an optional bearer token and JSON body.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) seedStation(t *testing.T, seq int, name string) model.Station {
	t.Helper()
	station := model.Station{
		StationID:   seq,
		Name:        name,
		Address:     "1 Avenue Hassan II",
		City:        "Casablanca",
		InServiceAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Latitude:    33.57,
		Longitude:   -7.59,
		Status:      model.StationActive,
	}
	require.NoError(t, a.db.Create(&station).Error)
	return station
}

func (a *testAPI) seedTank(t *testing.T, seq int, stationPK int64) model.Tank {
	t.Helper()
	tank := model.Tank{
		TankID:      seq,
		StationID:   stationPK,
		Capacity:    20000,
		InstalledAt: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		FuelType:    "Diesel",
		Status:      model.TankOperational,
	}
	require.NoError(t, a.db.Create(&tank).Error)
	return tank
}

func (a *testAPI) seedEmployee(t *testing.T, seq int, stationPK int64) model.Employee {
	t.Helper()
	emp := model.Employee{
		EmployeeID:   seq,
		CIN:          fmt.Sprintf("BK%05d", seq),
		LastName:     "Berrada",
		FirstName:    "Amine",
		Email:        fmt.Sprintf("emp%d@%s.example", seq, t.Name()),
		Gender:       "M",
		BirthDate:    time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Address:      "12 Rue des Fleurs",
		Nationality:  "Moroccan",
		Status:       model.EmployeeActive,
		ContractType: "CDI",
		StationID:    stationPK,
	}
	require.NoError(t, a.db.Create(&emp).Error)
	return emp
}

func (a *testAPI) seedProduct(t *testing.T, seq int, name string) model.Product {
	t.Helper()
	product := model.Product{
		ProductID: seq,
		Name:      name,
		Type:      "Fuel",
		AddedAt:   time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		Unit:      "Liter",
	}
	require.NoError(t, a.db.Create(&product).Error)
	return product
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
