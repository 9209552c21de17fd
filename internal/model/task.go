package model

import "math"

// Task is the domain model for a to-do entry.
// ID, Title and Description never change after creation; Done only goes false -> true.
type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Done        bool   `json:"done" yaml:"done"`
}

// NextID returns the id for a task appended to tasks: 1 for an empty
// collection, otherwise the highest existing id plus one. It returns 0 when
// the highest id is already math.MaxInt.
//
// Ids stay unique only because nothing is ever deleted and a single
// process writes the file.
func NextID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	if highest == math.MaxInt {
		return 0
	}
	return highest + 1
}

// Find returns the index of the first task with the given id, or -1.
func Find(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Stats counts done and pending tasks.
func Stats(tasks []Task) (done, pending int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
