package scope

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/auth"
	"github.com/mahmoudbymassen/station-managment/internal/db"
	"github.com/mahmoudbymassen/station-managment/internal/model"
)

func newTestScope(t *testing.T) (*Scope, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(testDB))
	return New(testDB), testDB
}

func seedStation(t *testing.T, testDB *gorm.DB, seq int) model.Station {
	t.Helper()
	station := model.Station{
		StationID:   seq,
		Name:        fmt.Sprintf("Station %d", seq),
		Address:     "1 Rue Centrale",
		City:        "Casablanca",
		InServiceAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, testDB.Create(&station).Error)
	return station
}

func admin() auth.Identity {
	return auth.Identity{UserID: 1, Role: auth.RoleAdmin}
}

func manager(stationPK int64) auth.Identity {
	return auth.Identity{UserID: 2, Role: auth.RoleManager, StationID: stationPK}
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(admin()))
	assert.ErrorIs(t, RequireAdmin(manager(1)), ErrAdminOnly)
}

func TestListPK(t *testing.T) {
	_, restricted := ListPK(admin())
	assert.False(t, restricted)

	pk, restricted := ListPK(manager(42))
	assert.True(t, restricted)
	assert.Equal(t, int64(42), pk)
}

func TestListSeqResolvesManagerStation(t *testing.T) {
	sc, testDB := newTestScope(t)
	station := seedStation(t, testDB, 7)

	seq, restricted, err := sc.ListSeq(context.Background(), manager(station.ID))
	require.NoError(t, err)
	assert.True(t, restricted)
	assert.Equal(t, 7, seq)

	_, restricted, err = sc.ListSeq(context.Background(), admin())
	require.NoError(t, err)
	assert.False(t, restricted)
}

func TestListSeqMissingStation(t *testing.T) {
	sc, _ := newTestScope(t)

	_, _, err := sc.ListSeq(context.Background(), manager(999))
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestCheckCreatePK(t *testing.T) {
	assert.NoError(t, CheckCreatePK(admin(), 5))
	assert.NoError(t, CheckCreatePK(manager(5), 5))
	assert.ErrorIs(t, CheckCreatePK(manager(5), 6), ErrCrossStation)
}

func TestCheckMutatePK(t *testing.T) {
	// Admins mutate anything, including moving records between stations.
	assert.NoError(t, CheckMutatePK(admin(), 5, 9))

	// Managers mutate their own records but may not carry a station
	// reference in the payload, not even their own.
	assert.NoError(t, CheckMutatePK(manager(5), 5, 0))
	assert.ErrorIs(t, CheckMutatePK(manager(5), 6, 0), ErrCrossStation)
	assert.ErrorIs(t, CheckMutatePK(manager(5), 5, 5), ErrStationChange)
	assert.ErrorIs(t, CheckMutatePK(manager(5), 5, 9), ErrStationChange)
}

func TestCheckCreateSeq(t *testing.T) {
	sc, testDB := newTestScope(t)
	station := seedStation(t, testDB, 3)
	ctx := context.Background()

	assert.NoError(t, sc.CheckCreateSeq(ctx, admin(), 99))
	assert.NoError(t, sc.CheckCreateSeq(ctx, manager(station.ID), 3))
	assert.ErrorIs(t, sc.CheckCreateSeq(ctx, manager(station.ID), 4), ErrCrossStation)
}

func TestCheckMutateSeq(t *testing.T) {
	sc, testDB := newTestScope(t)
	station := seedStation(t, testDB, 3)
	ctx := context.Background()

	assert.NoError(t, sc.CheckMutateSeq(ctx, manager(station.ID), 3, 0))
	assert.ErrorIs(t, sc.CheckMutateSeq(ctx, manager(station.ID), 4, 0), ErrCrossStation)
	assert.ErrorIs(t, sc.CheckMutateSeq(ctx, manager(station.ID), 3, 3), ErrStationChange)
}
