package core

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Task is a single entry of the Eisenhower task list.
// Tasks are values: operations return modified copies and never write through.
type Task struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Importance Importance `json:"importance"`
	Urgency    Urgency    `json:"urgency"`
	Done       bool       `json:"done"`
}

// Quadrant returns the Eisenhower quadrant of the task.
func (t Task) Quadrant() int {
	return Quadrant(t.Importance, t.Urgency)
}

// Quadrant maps importance and urgency to a priority bucket, 1 (do first) to 4 (drop).
func Quadrant(importance Importance, urgency Urgency) int {
	switch {
	case importance == ImportanceHigh && urgency == UrgencyHigh:
		return 1
	case importance == ImportanceHigh:
		return 2
	case urgency == UrgencyHigh:
		return 3
	default:
		return 4
	}
}

type rankedTask struct {
	task  Task
	title string
}

func compareRanked(a, b rankedTask) int {
	if a.task.Done != b.task.Done {
		if a.task.Done {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.task.Quadrant(), b.task.Quadrant()); c != 0 {
		return c
	}
	return cmp.Compare(a.title, b.title)
}

// SortedTasks returns a new slice ordered by open before done, then quadrant,
// then case-insensitive title. Equal keys keep their input order.
func SortedTasks(tasks []Task) []Task {
	caser := cases.Lower(language.Und)

	ranked := make([]rankedTask, len(tasks))
	for i, t := range tasks {
		ranked[i] = rankedTask{task: t, title: caser.String(t.Title)}
	}
	slices.SortStableFunc(ranked, compareRanked)

	out := make([]Task, len(ranked))
	for i, r := range ranked {
		out[i] = r.task
	}
	return out
}

// Sorted ranks tasks like SortedTasks and drops completed ones unless includeDone is set.
func Sorted(tasks []Task, includeDone bool) []Task {
	ordered := SortedTasks(tasks)
	if includeDone {
		return ordered
	}
	return slices.DeleteFunc(ordered, func(t Task) bool { return t.Done })
}

// NextID returns one past the highest id in tasks, or 1 for an empty list.
// Gaps are never refilled.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		maxID = max(maxID, t.ID)
	}
	return maxID + 1
}

// AddTask returns a copy of tasks with a new open task appended as the last element.
func AddTask(tasks []Task, title string, importance Importance, urgency Urgency) []Task {
	out := make([]Task, len(tasks), len(tasks)+1)
	copy(out, tasks)

	return append(out, Task{
		ID:         NextID(tasks),
		Title:      title,
		Importance: importance,
		Urgency:    urgency,
	})
}

// MarkDone returns a copy of tasks where the task with the given id is done.
// Positions are preserved. Returns ErrNotFound if no task has that id.
func MarkDone(tasks []Task, id int) ([]Task, error) {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	found := false
	for i := range out {
		if out[i].ID == id {
			out[i].Done = true
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: no task with id %d", ErrNotFound, id)
	}

	return out, nil
}
