package main

import (
	"github.com/sirupsen/logrus"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/initsvc"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
)

// InitRegistry registers the collections and the identifier allocators.
func InitRegistry() {
	cfg := global.MongoDB_ServerConfig
	db := global.MongoDB_Session.Database(cfg.MongoDB_DBName)

	if err := initsvc.RegisterCollections(db, global.MongoDB_ColNames); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	if err := initsvc.RegisterAllocators(db, global.MongoDB_ColNames, cfg.Location()); err != nil {
		logrus.Fatalf("Failed to initialize allocators: %v", err)
	}
}
