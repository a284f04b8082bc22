// Package initsvc prepares a fresh or migrated database for the server and the CLI:
// identifier allocators, counter floors and the first admin account.
package initsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/therebootai/rebootcrmbackend-sub000/config"
	staffsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// InitService seeds default data.
type InitService struct {
	userService *staffsvc.UserService
}

// NewInitService creates the service. Collections must be registered first.
func NewInitService() (*InitService, error) {
	userService, err := staffsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &InitService{userService: userService}, nil
}

// RegisterAllocators builds the allocator of every entity on db, replacing earlier ones.
func RegisterAllocators(db *mongo.Database, cols global.MongoDB_CollectionNames, loc *time.Location) error {
	defs := sequence.Definitions(cols)
	if err := sequence.RegisterAll(defs, db, db.Collection(cols.Counters), loc); err != nil {
		return err
	}
	logger.WithModule("init").Infof("Registered %d identifier allocators", len(defs))
	return nil
}

// SeedCounters raises every counter-backed allocator to the highest identifier already
// stored, so imported data never collides with new identifiers. It returns the counter
// values by entity.
func SeedCounters(ctx context.Context, db *mongo.Database, cols global.MongoDB_CollectionNames) (map[string]int, error) {
	store := &sequence.MongoCounterStore{Collection: db.Collection(cols.Counters)}
	seeded := map[string]int{}
	for _, def := range sequence.Definitions(cols) {
		if def.Strategy != sequence.StrategyCounter {
			continue
		}
		a, err := sequence.For(def.Entity)
		if err != nil {
			return seeded, err
		}
		counter, ok := a.(*sequence.CounterAllocator)
		if !ok {
			return seeded, fmt.Errorf("allocator %s is not counter backed", def.Entity)
		}
		ids := &sequence.MongoIDLister{Collection: db.Collection(def.Collection), Field: def.Field, Filter: def.Filter}
		value, err := sequence.SeedCounter(ctx, counter, store, ids)
		if err != nil {
			return seeded, fmt.Errorf("seed counter %s: %w", def.Entity, err)
		}
		seeded[def.Entity] = value
	}
	return seeded, nil
}

// InitAdminUser creates the configured admin when the database has none.
func (s *InitService) InitAdminUser(ctx context.Context, cfg *config.Configuration) error {
	created, err := s.userService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminMobile, cfg.AdminPassword)
	if err != nil {
		return err
	}
	log := logger.WithModule("init")
	switch {
	case created:
		log.WithField("mobile", cfg.AdminMobile).Info("Created initial admin account")
	case cfg.AdminMobile == "" || cfg.AdminPassword == "":
		log.Debug("ADMIN_MOBILE/ADMIN_PASSWORD not set, skipping admin bootstrap")
	}
	return nil
}
