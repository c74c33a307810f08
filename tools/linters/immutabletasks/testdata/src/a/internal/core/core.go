package core

type Task struct {
	ID    int
	Title string
	Done  bool
}

// MarkDone writes in place; allowed inside the core package.
func MarkDone(tasks []Task, id int) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == id {
			out[i].Done = true
		}
	}
	return out
}
