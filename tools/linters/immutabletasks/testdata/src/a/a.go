package a

import "a/internal/core"

type TaskList []core.Task

type other struct {
	Done bool
}

func fieldWrite(tasks []core.Task) {
	tasks[0].Done = true // want `in-place write to a \[\]core\.Task element`
}

func elementWrite(tasks []core.Task) {
	tasks[0] = core.Task{ID: 1} // want `in-place write to a \[\]core\.Task element`
}

func incDec(tasks []core.Task) {
	tasks[0].ID++ // want `in-place write to a \[\]core\.Task element`
}

func namedSlice(tasks TaskList) {
	for i := range tasks {
		tasks[i].Title = "x" // want `in-place write to a \[\]core\.Task element`
	}
}

func parenthesized(tasks []core.Task) {
	(tasks[0]).Done = true // want `in-place write to a \[\]core\.Task element`
}

func viaOperation(tasks []core.Task) []core.Task {
	return core.MarkDone(tasks, 1)
}

func readOnly(tasks []core.Task) bool {
	done := tasks[0].Done
	return done
}

func localCopy(tasks []core.Task) {
	task := tasks[0]
	task.Done = true
	_ = task
}

func unrelatedSlice(items []other) {
	items[0].Done = true
}

func nolintGeneral(tasks []core.Task) {
	//nolint
	tasks[0].Done = true
}

func nolintSpecific(tasks []core.Task) {
	tasks[0].Done = true //nolint:immutabletasks
}

func nolintOther(tasks []core.Task) {
	tasks[0].Done = true //nolint:timeutc // want `in-place write to a \[\]core\.Task element`
}
