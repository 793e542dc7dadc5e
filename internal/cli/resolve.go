package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches input against a set of (id, name) pairs: exact ID first,
// then case-insensitive exact name, then unique ID prefix.
func resolveID(kind, input string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for i, n := range names {
		if strings.EqualFold(n, input) {
			matches = append(matches, ids[i])
		}
	}
	if len(matches) == 0 {
		for _, id := range ids {
			if strings.HasPrefix(id, input) {
				matches = append(matches, id)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s reference %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(projects))
	names := make([]string, len(projects))
	for i, p := range projects {
		ids[i], names[i] = p.ID, p.Name
	}
	return resolveID("project", input, ids, names)
}

func resolveTaskID(ctx context.Context, app *App, projectID, input string) (string, error) {
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	names := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i], names[i] = t.ID, t.Name
	}
	return resolveID("task", input, ids, names)
}

func resolveResourceID(ctx context.Context, app *App, input string) (string, error) {
	resources, err := app.Resources.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(resources))
	names := make([]string, len(resources))
	for i, r := range resources {
		ids[i], names[i] = r.ID, r.Name
	}
	return resolveID("resource", input, ids, names)
}
