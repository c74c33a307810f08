package command

import (
	"context"
	"fmt"
	"io"

	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/service"
	"github.com/rezkam/eisen/internal/storage/document"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	flagAll    = "all"
	flagFormat = "format"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks ranked by quadrant",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagAll,
				Aliases: []string{"a"},
				Usage:   "include completed tasks",
			},
			&cli.StringFlag{
				Name:    flagFormat,
				Aliases: []string{"f"},
				Value:   formatText,
				Usage:   "output format: text, json, yaml",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return fmt.Errorf("%w: list takes no arguments", ErrUsage)
			}

			render, err := renderer(c.String(flagFormat))
			if err != nil {
				return err
			}

			return withTracker(c, func(ctx context.Context, tracker *service.Tracker) error {
				tasks, err := tracker.List(ctx, c.Bool(flagAll))
				if err != nil {
					return err
				}

				return render(c.App.Writer, tasks)
			})
		},
	}
}

func renderer(format string) (func(io.Writer, []core.Task) error, error) {
	switch format {
	case formatText:
		return renderText, nil
	case formatJSON:
		return document.Encode, nil
	case formatYAML:
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q (want text, json or yaml)", ErrUsage, format)
	}
}

func renderText(w io.Writer, tasks []core.Task) error {
	for _, task := range tasks {
		status := " "
		if task.Done {
			status = "✓"
		}
		if _, err := fmt.Fprintf(w, "[%s] #%d %s (imp=%s, urg=%s)\n",
			status, task.ID, task.Title, task.Importance, task.Urgency); err != nil {
			return err
		}
	}
	return nil
}

type yamlTask struct {
	ID         int    `yaml:"id"`
	Title      string `yaml:"title"`
	Importance string `yaml:"importance"`
	Urgency    string `yaml:"urgency"`
	Done       bool   `yaml:"done"`
	Quadrant   int    `yaml:"quadrant"`
}

func renderYAML(w io.Writer, tasks []core.Task) error {
	items := make([]yamlTask, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, yamlTask{
			ID:         task.ID,
			Title:      task.Title,
			Importance: string(task.Importance),
			Urgency:    string(task.Urgency),
			Done:       task.Done,
			Quadrant:   task.Quadrant(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
