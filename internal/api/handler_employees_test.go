package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

func employeePayload(stationPK int64, email string) map[string]any {
	return map[string]any{
		"CINEmploye":           "BK12345",
		"NomEmploye":           "Berrada",
		"PrenomEmploye":        "Amine",
		"EmailEmploye":         email,
		"GenreEmploye":         "M",
		"DateNaissanceEmploye": time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		"AdresseEmploye":       "12 Rue des Fleurs",
		"NationaliteEmploye":   "Moroccan",
		"TypeContrat":          "CDI",
		"stationId":            stationPK,
	}
}

func TestCreateEmployeeAllocatesID(t *testing.T) {
	a := setupAPI(t)
	station := a.seedStation(t, 1, "Central")

	w := a.do(t, http.MethodPost, "/api/employees", a.adminToken(t), employeePayload(station.ID, "amine@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[model.Employee](t, w)
	assert.Equal(t, 1, created.EmployeeID)
	assert.Equal(t, model.EmployeeActive, created.Status)
}

func TestCreateEmployeeUnknownStation(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/employees", a.adminToken(t), employeePayload(99, "ghost@example.com"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid station ID"}`, w.Body.String())
}

func TestManagerCreatesOnlyForOwnStation(t *testing.T) {
	a := setupAPI(t)
	own := a.seedStation(t, 1, "Central")
	other := a.seedStation(t, 2, "Nord")
	token := a.managerToken(t, own.ID)

	w := a.do(t, http.MethodPost, "/api/employees", token, employeePayload(own.ID, "own@example.com"))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodPost, "/api/employees", token, employeePayload(other.ID, "other@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Access denied: Can only add employees to your station"}`, w.Body.String())
}

func TestManagerListsOwnEmployees(t *testing.T) {
	a := setupAPI(t)
	own := a.seedStation(t, 1, "Central")
	other := a.seedStation(t, 2, "Nord")
	a.seedEmployee(t, 1, own.ID)
	a.seedEmployee(t, 2, other.ID)

	w := a.do(t, http.MethodGet, "/api/employees", a.managerToken(t, own.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	employees := decodeBody[[]model.Employee](t, w)
	require.Len(t, employees, 1)
	assert.Equal(t, 1, employees[0].EmployeeID)
}

func TestManagerUpdateCannotCarryStation(t *testing.T) {
	a := setupAPI(t)
	own := a.seedStation(t, 1, "Central")
	emp := a.seedEmployee(t, 1, own.ID)
	token := a.managerToken(t, own.ID)

	// Even the manager's own station in the payload is rejected.
	payload := employeePayload(own.ID, emp.Email)
	w := a.do(t, http.MethodPut, fmt.Sprintf("/api/employees/%d", emp.EmployeeID), token, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Access denied: Cannot change station"}`, w.Body.String())

	// Without the station reference the update goes through.
	payload["stationId"] = 0
	payload["NomEmploye"] = "Alaoui"
	w = a.do(t, http.MethodPut, fmt.Sprintf("/api/employees/%d", emp.EmployeeID), token, payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alaoui", decodeBody[model.Employee](t, w).LastName)
}

func TestManagerCannotTouchOtherStationsEmployee(t *testing.T) {
	a := setupAPI(t)
	own := a.seedStation(t, 1, "Central")
	other := a.seedStation(t, 2, "Nord")
	emp := a.seedEmployee(t, 1, other.ID)
	token := a.managerToken(t, own.ID)

	payload := employeePayload(0, emp.Email)
	w := a.do(t, http.MethodPut, fmt.Sprintf("/api/employees/%d", emp.EmployeeID), token, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Access denied: Can only edit employees in your station"}`, w.Body.String())

	w = a.do(t, http.MethodDelete, fmt.Sprintf("/api/employees/%d", emp.EmployeeID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMovesEmployeeBetweenStations(t *testing.T) {
	a := setupAPI(t)
	first := a.seedStation(t, 1, "Central")
	second := a.seedStation(t, 2, "Nord")
	emp := a.seedEmployee(t, 1, first.ID)

	payload := employeePayload(second.ID, emp.Email)
	w := a.do(t, http.MethodPut, fmt.Sprintf("/api/employees/%d", emp.EmployeeID), a.adminToken(t), payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, second.ID, decodeBody[model.Employee](t, w).StationID)
}

func TestDeleteEmployee(t *testing.T) {
	a := setupAPI(t)
	station := a.seedStation(t, 1, "Central")
	emp := a.seedEmployee(t, 1, station.ID)

	w := a.do(t, http.MethodDelete, fmt.Sprintf("/api/employees/%d", emp.EmployeeID), a.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Employee deleted"}`, w.Body.String())

	w = a.do(t, http.MethodDelete, fmt.Sprintf("/api/employees/%d", emp.EmployeeID), a.adminToken(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
