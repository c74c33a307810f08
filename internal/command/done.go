package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rezkam/eisen/internal/service"
	"github.com/urfave/cli/v2"
)

func doneCommand() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a task as done",
		ArgsUsage: "ID",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: done expects exactly one ID argument", ErrUsage)
			}

			id, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return fmt.Errorf("%w: task id must be an integer: %q", ErrUsage, c.Args().First())
			}

			return withTracker(c, func(ctx context.Context, tracker *service.Tracker) error {
				if _, err := tracker.MarkDone(ctx, id); err != nil {
					return err
				}

				fmt.Fprintf(c.App.Writer, "Marked #%d as done.\n", id)
				return nil
			})
		},
	}
}
