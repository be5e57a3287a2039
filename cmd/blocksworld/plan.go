package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/engine"
	"github.com/anthropics/blocksworld-engine/internal/store"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

func newPlanCmd(a *app) *cobra.Command {
	var worldName string
	var record bool

	cmd := &cobra.Command{
		Use:   "plan [utterance...]",
		Short: "Interpret one utterance and print the plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			utterance := strings.Join(args, " ")

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
			outcome, perr := eng.Process(cmd.Context(), state, utterance)

			if record {
				if err := recordSession(a, worldName, utterance, outcome, perr); err != nil {
					return err
				}
			}
			if perr != nil {
				return perr
			}

			fmt.Printf("goal: %s\n", outcome.Goal)
			for i := 0; i+1 < len(outcome.Result.Plan); i += 2 {
				fmt.Printf("%s (%s)\n", outcome.Result.Plan[i], outcome.Result.Plan[i+1])
			}
			if len(outcome.Result.Plan) == 0 {
				fmt.Println("already satisfied, nothing to do")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&worldName, "world", "", "world to plan against (default from config)")
	cmd.Flags().BoolVar(&record, "record", false, "record the session in the database")
	return cmd
}

func recordSession(a *app, worldName, utterance string, outcome *engine.Outcome, perr error) error {
	db, err := store.NewDB(a.cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rec := domain.Session{
		SessionID: uuid.NewString(),
		World:     worldName,
		Utterance: utterance,
		Status:    "planned",
		CreatedAt: time.Now().Unix(),
	}
	if perr != nil {
		rec.Status = "failed"
		rec.Error = perr.Error()
	} else {
		rec.Goal = outcome.Goal
		planJSON, _ := json.Marshal(outcome.Result.Plan)
		rec.PlanJSON = string(planJSON)
	}
	repo := &store.SessionRepo{}
	return repo.Insert(context.Background(), db, rec)
}
