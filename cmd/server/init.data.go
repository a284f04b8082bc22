package main

import (
	"context"
	"time"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/initsvc"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// InitDefaultData seeds the counters and the first admin account.
func InitDefaultData() {
	log := logger.GetAppLogger()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := global.MongoDB_ServerConfig
	db := global.MongoDB_Session.Database(cfg.MongoDB_DBName)
	seeded, err := initsvc.SeedCounters(ctx, db, global.MongoDB_ColNames)
	if err != nil {
		log.Fatalf("Failed to seed counters: %v", err)
	}
	for entity, value := range seeded {
		log.WithField("entity", entity).WithField("value", value).Info("Counter ready")
	}

	initService, err := initsvc.NewInitService()
	if err != nil {
		log.Fatalf("Failed to initialize init service: %v", err)
	}
	if err := initService.InitAdminUser(ctx, cfg); err != nil {
		log.Warnf("Failed to initialize admin user: %v", err)
	}
}
