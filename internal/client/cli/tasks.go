package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/AnandRajBind/Task-Management/internal/client/api"
	"github.com/AnandRajBind/Task-Management/internal/client/models"
)

// getMultiline is an indirection for tests, like getSimpleText.
var getMultiline = GetMultiline

func printTaskLine(t *models.Task) {
	fmt.Printf("%s  [%s]  %s\n", t.ID, t.Status, t.Title)
}

// List fetches and prints a page of the user's tasks. An optional search
// term filters by title substring.
func (a *App) List(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	list, err := a.client.ListTasks(ctx, api.ListQuery{Search: search})
	if err != nil {
		log.Printf("List unsuccessful: %s", err.Error())
		return err
	}

	if len(list.Tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	for _, t := range list.Tasks {
		printTaskLine(t)
	}
	fmt.Printf("Page %d of %d (%d total)\n", list.Pagination.Page, list.Pagination.TotalPages, list.Pagination.Total)
	return nil
}

// Add prompts for a title and an optional description and creates a task.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := getMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.client.CreateTask(ctx, title, description)
	if err != nil {
		log.Printf("Add unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Created task %s\n", task.ID)
	return nil
}

// Show prompts for a task ID and prints the full task.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.client.GetTask(ctx, id)
	if err != nil {
		log.Printf("Show unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("ID:          %s\n", task.ID)
	fmt.Printf("Title:       %s\n", task.Title)
	fmt.Printf("Status:      %s\n", task.Status)
	if task.Description != "" {
		fmt.Printf("Description: %s\n", task.Description)
	}
	fmt.Printf("Created:     %s\n", task.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("Updated:     %s\n", task.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// Edit prompts for a task ID and new values and applies a partial update.
// An empty answer keeps the current value.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	description, err := getMultiline(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var update api.TaskUpdate
	if title != "" {
		update.Title = &title
	}
	if description != "" {
		update.Description = &description
	}

	task, err := a.client.UpdateTask(ctx, id, update)
	if err != nil {
		log.Printf("Edit unsuccessful: %s", err.Error())
		return err
	}

	printTaskLine(task)
	return nil
}

// Toggle advances a task to the next status in its cycle.
func (a *App) Toggle(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.client.ToggleTask(ctx, id)
	if err != nil {
		log.Printf("Toggle unsuccessful: %s", err.Error())
		return err
	}

	printTaskLine(task)
	return nil
}

// Delete removes a task permanently.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.DeleteTask(ctx, id); err != nil {
		log.Printf("Delete unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}
