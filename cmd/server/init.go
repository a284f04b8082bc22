package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/therebootai/rebootcrmbackend-sub000/config"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/initsvc"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/database"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
)

// InitGlobal loads the configuration and prepares the process-wide state.
func InitGlobal() {
	initValidator()
	initConfig()
	initDatabase_MongoDB()
}

func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	if err := initsvc.EnsureSchema(ctx, db, global.MongoDB_ColNames); err != nil {
		logrus.Fatalf("Failed to ensure collections and indexes: %v", err)
	}
}
