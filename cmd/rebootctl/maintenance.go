package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/initsvc"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Manage collections and indexes",
}

var indexesEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create missing collections and every declared index",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := initsvc.EnsureSchema(commandContext(cmd), s.db, global.MongoDB_ColNames); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexes ensured on %s\n", s.db.Name())
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the initial admin account",
}

var adminEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create the admin from ADMIN_* settings when no admin exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect()
		if err != nil {
			return err
		}
		defer s.Close()

		initService, err := initsvc.NewInitService()
		if err != nil {
			return err
		}
		return initService.InitAdminUser(commandContext(cmd), s.cfg)
	},
}

func init() {
	indexesCmd.AddCommand(indexesEnsureCmd)
	adminCmd.AddCommand(adminEnsureCmd)
	rootCmd.AddCommand(indexesCmd, adminCmd)
}
