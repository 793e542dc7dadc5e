package service

import "errors"

var (
	// ErrCrossProjectDependency indicates an edge between tasks in
	// different projects.
	ErrCrossProjectDependency = errors.New("dependency crosses projects")

	// ErrSelfDependency indicates a task depending on itself.
	ErrSelfDependency = errors.New("task cannot depend on itself")

	// ErrProjectNotScheduled indicates an operation that needs computed
	// dates before any scheduling run happened.
	ErrProjectNotScheduled = errors.New("project has not been scheduled yet")
)
