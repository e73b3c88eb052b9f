// Package scope centralizes the role/station access rules applied by
// every resource handler: admins are unrestricted, managers are confined
// to their own station. Two reference schemes coexist: employees, tanks
// and users point at a station's primary key, while sales, services,
// stock and deliveries point at its sequential id.
package scope

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/auth"
	"github.com/mahmoudbymassen/station-managment/internal/model"
)

var (
	// ErrAdminOnly denies a manager an admin-only operation.
	ErrAdminOnly = errors.New("scope: admin only")
	// ErrCrossStation denies access to a record of another station.
	ErrCrossStation = errors.New("scope: cross-station access")
	// ErrStationChange denies any attempt to move a record between
	// stations, even to the manager's own.
	ErrStationChange = errors.New("scope: station reference change")
	// ErrStationNotFound means the manager's station record is gone.
	ErrStationNotFound = errors.New("scope: manager's station not found")
)

// Scope resolves manager station references against the stations table.
type Scope struct {
	db *gorm.DB
}

// New creates a Scope backed by the given database.
func New(db *gorm.DB) *Scope {
	return &Scope{db: db}
}

// RequireAdmin rejects non-admin identities.
func RequireAdmin(ident auth.Identity) error {
	if !ident.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// ListPK returns the station primary key a manager's listing must be
// narrowed to. restricted is false for admins.
func ListPK(ident auth.Identity) (pk int64, restricted bool) {
	if ident.IsAdmin() {
		return 0, false
	}
	return ident.StationID, true
}

// StationSeq resolves the manager's opaque station reference to the
// station's sequential id.
func (s *Scope) StationSeq(ctx context.Context, ident auth.Identity) (int, error) {
	var station model.Station
	err := s.db.WithContext(ctx).First(&station, ident.StationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrStationNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve manager station: %w", err)
	}
	return station.StationID, nil
}

// ListSeq returns the sequential station id a manager's listing must be
// narrowed to. restricted is false for admins.
func (s *Scope) ListSeq(ctx context.Context, ident auth.Identity) (seq int, restricted bool, err error) {
	if ident.IsAdmin() {
		return 0, false, nil
	}
	seq, err = s.StationSeq(ctx, ident)
	return seq, true, err
}

// CheckCreatePK allows a create whose payload references stationPK.
func CheckCreatePK(ident auth.Identity, stationPK int64) error {
	if ident.IsAdmin() {
		return nil
	}
	if stationPK != ident.StationID {
		return ErrCrossStation
	}
	return nil
}

// CheckCreateSeq allows a create whose payload references the station by
// sequential id.
func (s *Scope) CheckCreateSeq(ctx context.Context, ident auth.Identity, stationSeq int) error {
	if ident.IsAdmin() {
		return nil
	}
	own, err := s.StationSeq(ctx, ident)
	if err != nil {
		return err
	}
	if stationSeq != own {
		return ErrCrossStation
	}
	return nil
}

// CheckMutatePK allows an update or delete of a record currently owned
// by currentPK. payloadPK is the station reference carried by an update
// payload; managers may not carry one at all (zero means absent).
func CheckMutatePK(ident auth.Identity, currentPK, payloadPK int64) error {
	if ident.IsAdmin() {
		return nil
	}
	if currentPK != ident.StationID {
		return ErrCrossStation
	}
	if payloadPK != 0 {
		return ErrStationChange
	}
	return nil
}

// CheckMutateSeq is CheckMutatePK for the sequential reference scheme.
func (s *Scope) CheckMutateSeq(ctx context.Context, ident auth.Identity, currentSeq, payloadSeq int) error {
	if ident.IsAdmin() {
		return nil
	}
	own, err := s.StationSeq(ctx, ident)
	if err != nil {
		return err
	}
	if currentSeq != own {
		return ErrCrossStation
	}
	if payloadSeq != 0 {
		return ErrStationChange
	}
	return nil
}
