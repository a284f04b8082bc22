package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/initsvc"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

func entityNames() []string {
	var names []string
	for _, def := range sequence.Definitions(global.DefaultColNames()) {
		names = append(names, def.Entity)
	}
	sort.Strings(names)
	return names
}

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Inspect and repair identifier sequences",
}

var sequenceNextCmd = &cobra.Command{
	Use:       "next <entity>",
	Short:     "Print the identifier the next insert of entity would receive",
	Long:      "Print the identifier the next insert would receive without consuming it.\nEntities: " + strings.Join(entityNames(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: entityNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect()
		if err != nil {
			return err
		}
		defer s.Close()

		alloc, err := sequence.For(args[0])
		if err != nil {
			return fmt.Errorf("unknown entity %q (known: %s)", args[0], strings.Join(entityNames(), ", "))
		}
		id, err := alloc.Peek(commandContext(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", alloc.Entity(), alloc.Strategy(), id)
		return nil
	},
}

var sequenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every registered allocator with its strategy and next identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := commandContext(cmd)
		for _, entity := range sequence.Allocators.Names() {
			alloc, _ := sequence.Allocators.Get(entity)
			id, err := alloc.Peek(ctx)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s\t%s\terror: %v\n", entity, alloc.Strategy(), err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", entity, alloc.Strategy(), id)
		}
		return nil
	},
}

var sequenceSeedCmd = &cobra.Command{
	Use:   "seed-counters",
	Short: "Raise counter-backed sequences above the highest stored identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect()
		if err != nil {
			return err
		}
		defer s.Close()

		seeded, err := initsvc.SeedCounters(commandContext(cmd), s.db, global.MongoDB_ColNames)
		if err != nil {
			return err
		}
		entities := make([]string, 0, len(seeded))
		for entity := range seeded {
			entities = append(entities, entity)
		}
		sort.Strings(entities)
		for _, entity := range entities {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", entity, seeded[entity])
		}
		return nil
	},
}

func init() {
	sequenceCmd.AddCommand(sequenceListCmd, sequenceNextCmd, sequenceSeedCmd)
	rootCmd.AddCommand(sequenceCmd)
}
