package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/service"
	"github.com/urfave/cli/v2"
)

const (
	flagImportance = "importance"
	flagUrgency    = "urgency"
)

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a new task",
		ArgsUsage: "TITLE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagImportance,
				Aliases: []string{"i"},
				Value:   string(core.ImportanceHigh),
				Usage:   "importance: high or low",
			},
			&cli.StringFlag{
				Name:    flagUrgency,
				Aliases: []string{"u"},
				Value:   string(core.UrgencyLow),
				Usage:   "urgency: high or low",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: add expects exactly one TITLE argument (options go before it)", ErrUsage)
			}
			title := c.Args().First()

			importance, err := core.ParseImportance(strings.ToLower(c.String(flagImportance)))
			if err != nil {
				return err
			}
			urgency, err := core.ParseUrgency(strings.ToLower(c.String(flagUrgency)))
			if err != nil {
				return err
			}

			return withTracker(c, func(ctx context.Context, tracker *service.Tracker) error {
				task, err := tracker.Add(ctx, title, importance, urgency)
				if err != nil {
					return err
				}

				fmt.Fprintf(c.App.Writer, "Added task #%d: %s\n", task.ID, task.Title)
				return nil
			})
		},
	}
}
