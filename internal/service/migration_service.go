package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/repository"
	"github.com/Abd-ElghanyMohammed/myflash/internal/serial"
)

// MigrationService retires range-encoded unit records by replacing each
// with one record per serial. The sweep is idempotent (a store with no
// legacy records is left untouched) and per-record isolated: one
// unparseable record is logged and skipped, the rest still migrate.
//
// Deleting the legacy record and writing its replacements are two
// separate store calls with no rollback; a crash in between loses the
// legacy record without replacements. Accepted, not retried.
type MigrationService interface {
	Sweep(ctx context.Context, tenantID uuid.UUID) (*dto.MigrateResponse, error)
	SweepAll(ctx context.Context) error
}

type migrationService struct {
	units repository.UnitRepository
	users repository.UserRepository
	hub   *SnapshotHub
}

func NewMigrationService(units repository.UnitRepository, users repository.UserRepository, hub *SnapshotHub) MigrationService {
	return &migrationService{units: units, users: users, hub: hub}
}

func (s *migrationService) Sweep(ctx context.Context, tenantID uuid.UUID) (*dto.MigrateResponse, error) {
	all, err := s.units.List(ctx, tenantID, dto.UnitFilter{})
	if err != nil {
		return nil, errs.NewPersistence("load units for migration", err)
	}

	resp := &dto.MigrateResponse{}
	for _, unit := range all {
		if !serial.IsLegacy(unit.Name, unit.SerialNumber) {
			continue
		}

		rng, ok := serial.ParseLegacyRange(unit.SerialNumber)
		if !ok {
			resp.Skipped++
			log.Warn().
				Str("tenant", tenantID.String()).
				Str("serial", unit.SerialNumber).
				Msg("unparseable legacy range, skipping")
			continue
		}

		created, err := s.migrateOne(ctx, unit, rng)
		if err != nil {
			resp.Skipped++
			log.Error().Err(err).
				Str("tenant", tenantID.String()).
				Str("serial", unit.SerialNumber).
				Msg("legacy unit migration failed")
			continue
		}
		resp.Migrated++
		resp.Created += created
	}

	if resp.Migrated > 0 {
		s.publish(ctx, tenantID)
	}
	return resp, nil
}

// migrateOne retires one legacy record and reports how many replacement
// units it wrote. An inverted range expands to nothing: the record is
// still retired, with zero replacements.
func (s *migrationService) migrateOne(ctx context.Context, legacy model.Unit, rng serial.LegacyRange) (int, error) {
	if err := s.units.Delete(ctx, legacy.TenantID, legacy.ID); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	intents := rng.Expand()
	units := make([]model.Unit, 0, len(intents))
	for _, in := range intents {
		units = append(units, model.Unit{
			TenantID:     legacy.TenantID,
			SerialNumber: in.SerialNumber,
			Name:         legacy.Name,
			Warehouse:    legacy.Warehouse,
			FromSerial:   in.Index,
			ToSerial:     in.Index,
			Quantity:     1,
			CreatedAt:    legacy.CreatedAt,
			MigratedAt:   &now,
		})
	}
	if len(units) == 0 {
		return 0, nil
	}
	if err := s.units.CreateBatch(ctx, units); err != nil {
		return 0, err
	}
	return len(units), nil
}

// SweepAll runs the sweep for every tenant; used at startup.
func (s *migrationService) SweepAll(ctx context.Context) error {
	tenants, err := s.users.ListIDs(ctx)
	if err != nil {
		return errs.NewPersistence("list tenants", err)
	}
	for _, tenantID := range tenants {
		resp, err := s.Sweep(ctx, tenantID)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenantID.String()).Msg("migration sweep failed")
			continue
		}
		if resp.Migrated > 0 || resp.Skipped > 0 {
			log.Info().
				Str("tenant", tenantID.String()).
				Int("migrated", resp.Migrated).
				Int("created", resp.Created).
				Int("skipped", resp.Skipped).
				Msg("legacy migration sweep")
		}
	}
	return nil
}

func (s *migrationService) publish(ctx context.Context, tenantID uuid.UUID) {
	if s.hub == nil {
		return
	}
	units, err := s.units.List(ctx, tenantID, dto.UnitFilter{})
	if err != nil {
		return
	}
	s.hub.Publish(tenantID, units)
}
