package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/config"
	"github.com/mahmoudbymassen/station-managment/internal/api"
	"github.com/mahmoudbymassen/station-managment/internal/auth"
	"github.com/mahmoudbymassen/station-managment/internal/db"
	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// TestBackOfficeLifecycle walks the whole admin/manager flow over HTTP:
// seed the admin, create a station and a manager for it, then exercise
// the manager's station-scoped view of employees, sales and stock.
func TestBackOfficeLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, db.Migrate(testDB))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "integration-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.AdminEmail = "admin@example.com"
	cfg.Auth.AdminPassword = "admin-pass"
	cfg.Server.RateLimitPerSec = 10000

	require.NoError(t, auth.EnsureAdmin(testDB, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword))

	router := api.NewRouter(cfg, store.NewGormStore(testDB), nil)

	call := func(method, path, token string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	login := func(email, password string) string {
		w := call(http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": email, "password": password,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		return resp.Token
	}

	adminToken := login(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)

	// Admin creates two stations.
	var central, nord model.Station
	for i, target := range []*model.Station{&central, &nord} {
		w := call(http.MethodPost, "/api/stations", adminToken, map[string]any{
			"NomStation":        fmt.Sprintf("Station %d", i+1),
			"AdresseStation":    "1 Avenue Hassan II",
			"VilleStation":      "Casablanca",
			"DateMiseEnService": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			"Latitude":          33.57,
			"Longitude":         -7.59,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
	}
	assert.Equal(t, 1, central.StationID)
	assert.Equal(t, 2, nord.StationID)

	// Admin creates a manager for the first station.
	w := call(http.MethodPost, "/api/auth/managers", adminToken, map[string]any{
		"email":     "manager@example.com",
		"password":  "manager-pass",
		"stationId": central.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	managerToken := login("manager@example.com", "manager-pass")

	// The manager sees exactly their station.
	w = call(http.MethodGet, "/api/stations", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stations []model.Station
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stations))
	require.Len(t, stations, 1)
	assert.Equal(t, central.ID, stations[0].ID)

	// The manager hires an employee for their station.
	w = call(http.MethodPost, "/api/employees", managerToken, map[string]any{
		"CINEmploye":           "BK12345",
		"NomEmploye":           "Berrada",
		"PrenomEmploye":        "Amine",
		"EmailEmploye":         "amine@example.com",
		"GenreEmploye":         "M",
		"DateNaissanceEmploye": time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		"AdresseEmploye":       "12 Rue des Fleurs",
		"NationaliteEmploye":   "Moroccan",
		"TypeContrat":          "CDI",
		"stationId":            central.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var employee model.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &employee))
	assert.Equal(t, 1, employee.EmployeeID)

	// ...but not for the other station.
	w = call(http.MethodPost, "/api/employees", managerToken, map[string]any{
		"CINEmploye":           "BK99999",
		"NomEmploye":           "Ghali",
		"PrenomEmploye":        "Sara",
		"EmailEmploye":         "sara@example.com",
		"GenreEmploye":         "F",
		"DateNaissanceEmploye": time.Date(1992, 2, 2, 0, 0, 0, 0, time.UTC),
		"AdresseEmploye":       "3 Rue Atlas",
		"NationaliteEmploye":   "Moroccan",
		"TypeContrat":          "CDD",
		"stationId":            nord.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Attendance round trip.
	checkIn := time.Now().Add(-2 * time.Hour)
	w = call(http.MethodPost, "/api/attendance/checkin", managerToken, map[string]any{
		"employeeId":  employee.EmployeeID,
		"checkInTime": checkIn,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = call(http.MethodPost, "/api/attendance/checkout", managerToken, map[string]any{
		"employeeId": employee.EmployeeID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Admin adds a product; the manager books a sale against it.
	w = call(http.MethodPost, "/api/products", adminToken, map[string]any{
		"NomProduit": "Diesel",
		"Type":       "Fuel",
		"Date_ajout": time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		"Unite":      "Liter",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = call(http.MethodPost, "/api/sales", managerToken, map[string]any{
		"day":       "Monday",
		"sales":     1500.0,
		"productId": product.ProductID,
		"stationId": central.StationID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Stock set + delivery accumulate, with history snapshots behind them.
	w = call(http.MethodPost, "/api/stock", managerToken, map[string]any{
		"item":      model.ItemFuel,
		"level":     300.0,
		"stationId": central.StationID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(http.MethodPost, "/api/stock/deliveries", managerToken, map[string]any{
		"item":          model.ItemFuel,
		"amount":        200.0,
		"supplier":      "Afriquia",
		"scheduledDate": time.Now().Add(48 * time.Hour),
		"stationId":     central.StationID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stocks []model.Stock
	require.NoError(t, testDB.Where("station_id = ?", central.StationID).Find(&stocks).Error)
	require.Len(t, stocks, 1)
	assert.Equal(t, 500.0, stocks[0].Level)

	var historyCount int64
	require.NoError(t, testDB.Model(&model.StockHistory{}).
		Where("station_id = ?", central.StationID).Count(&historyCount).Error)
	assert.Equal(t, int64(2), historyCount)

	// The manager cannot touch admin-only resources.
	w = call(http.MethodPost, "/api/suppliers", managerToken, map[string]any{
		"NomFournisseur":       "Afriquia",
		"AdresseFournisseur":   "Zone Industrielle",
		"TelephoneFournisseur": "0522000000",
		"EmailFournisseur":     "contact@afriquia.example",
		"VilleFournisseur":     "Casablanca",
		"ContactFournisseur":   "K. Alami",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
