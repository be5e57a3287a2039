package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/engine"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

func newReplCmd(a *app) *cobra.Command {
	var worldName string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive session: each planned command is executed on the world",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := world.NewLibrary()
			if err != nil {
				return err
			}
			if worldName == "" {
				worldName = a.cfg.DefaultWorld
			}
			state, err := lib.Get(worldName)
			if err != nil {
				return err
			}

			eng := engine.New(a.cfg.MaxStates)
			printWorld(state)

			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("> ")
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
				case "quit", "exit":
					return nil
				case "world":
					printWorld(state)
				default:
					outcome, err := eng.Process(cmd.Context(), state, line)
					if err != nil {
						fmt.Println(userMessage(err))
						break
					}
					for i := 0; i+1 < len(outcome.Result.Plan); i += 2 {
						fmt.Printf("%s.\n", outcome.Result.Plan[i])
					}
					next, err := engine.Execute(state, outcome.Result.Plan)
					if err != nil {
						return err
					}
					state = next
					printWorld(state)
				}
				fmt.Print("> ")
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&worldName, "world", "", "world to start from (default from config)")
	return cmd
}

// userMessage strips the engine-error prefix for interactive display.
func userMessage(err error) string {
	var engErr *domain.EngineError
	if errors.As(err, &engErr) {
		return engErr.Message
	}
	return err.Error()
}

func printWorld(s *world.State) {
	for i, stack := range s.Stacks {
		marker := "  "
		if i == s.Arm {
			marker = "v "
		}
		fmt.Printf("%s%d: %s\n", marker, i, strings.Join(stack, " "))
	}
	if s.Holding != "" {
		fmt.Printf("holding: %s\n", s.Holding)
	}
}
