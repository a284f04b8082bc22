package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/therebootai/rebootcrmbackend-sub000/config"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/initsvc"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/database"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rebootctl",
	Short: "Maintenance commands for the RebootCRM backend",
	Long: `rebootctl runs maintenance tasks against the CRM database using the same
configuration as the server (config/env/<GO_ENV>.env or the process environment).

Examples:
  # Show the identifier the next business would receive
  rebootctl sequence next business

  # Raise the counters after importing data
  rebootctl sequence seed-counters

  # Create missing collections and indexes
  rebootctl indexes ensure`,
	SilenceUsage: true,
}

var envFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", "Env file to load instead of config/env/<GO_ENV>.env")
}

// session is an open connection prepared like the server's.
type session struct {
	cfg    *config.Configuration
	client *mongo.Client
	db     *mongo.Database
}

func (s *session) Close() {
	_ = database.CloseInstance(s.client)
	logger.Flush()
}

// connect loads the configuration, connects and registers collections and allocators.
func connect() (*session, error) {
	if err := logger.Init(nil); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	var cfg *config.Configuration
	if envFile != "" {
		cfg = config.NewConfig(envFile)
	} else {
		cfg = config.NewConfig()
	}
	if cfg == nil {
		return nil, fmt.Errorf("invalid configuration")
	}
	global.MongoDB_ServerConfig = cfg
	global.InitValidator()

	client, err := database.GetInstance(cfg)
	if err != nil {
		return nil, err
	}
	global.MongoDB_Session = client
	db := client.Database(cfg.MongoDB_DBName)

	if err := initsvc.RegisterCollections(db, global.MongoDB_ColNames); err != nil {
		_ = database.CloseInstance(client)
		return nil, err
	}
	if err := initsvc.RegisterAllocators(db, global.MongoDB_ColNames, cfg.Location()); err != nil {
		_ = database.CloseInstance(client)
		return nil, err
	}
	return &session{cfg: cfg, client: client, db: db}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
