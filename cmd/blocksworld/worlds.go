package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anthropics/blocksworld-engine/internal/world"
)

func newWorldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worlds",
		Short: "List the example worlds",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := world.NewLibrary()
			if err != nil {
				return err
			}
			for _, name := range lib.Names() {
				s, err := lib.Get(name)
				if err != nil {
					return err
				}
				var total int
				for _, stack := range s.Stacks {
					total += len(stack)
				}
				fmt.Printf("%-10s %d columns, %d objects\n", name, s.Columns(), total)
				for i, stack := range s.Stacks {
					fmt.Printf("  %d: %s\n", i, strings.Join(stack, " "))
				}
			}
			return nil
		},
	}
}
