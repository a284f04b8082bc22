package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/initsvc"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/database"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/worker"
)

func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread runs the server until it is stopped.
func main_thread() {
	app := InitFiberApp()
	cfg := global.MongoDB_ServerConfig
	address := ":" + cfg.Address
	log := logger.GetAppLogger()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}
		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    cfg.TLSCertFile,
		}).Info("Starting server with HTTPS/TLS")
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
		return
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")
	if err := app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// startWorkers launches the background jobs enabled in the configuration.
func startWorkers(ctx context.Context) {
	cfg := global.MongoDB_ServerConfig
	if cfg.CounterSyncMinutes <= 0 {
		logger.GetAppLogger().Info("Counter sync worker disabled")
		return
	}
	db := global.MongoDB_Session.Database(cfg.MongoDB_DBName)
	w := worker.NewCounterSyncWorker(time.Duration(cfg.CounterSyncMinutes)*time.Minute, func(ctx context.Context) (map[string]int, error) {
		return initsvc.SeedCounters(ctx, db, global.MongoDB_ColNames)
	})
	go utility.GoProtect(func() { w.Start(ctx) })
}

func main() {
	initLogger()
	defer logger.Flush()

	InitGlobal()
	defer database.CloseInstance(global.MongoDB_Session)

	InitRegistry()
	InitDefaultData()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx)

	main_thread()
}
