package domain

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOnHold     TaskStatus = "on_hold"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "completed": true, "on_hold": true,
}

type DependencyType string

const (
	FinishToStart  DependencyType = "FS"
	FinishToFinish DependencyType = "FF"
	StartToStart   DependencyType = "SS"
	StartToFinish  DependencyType = "SF"
)

// ValidDependencyTypes is the canonical set of accepted dependency type strings.
var ValidDependencyTypes = map[string]bool{
	"FS": true, "FF": true, "SS": true, "SF": true,
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// PriorityRank returns a sort rank for a priority (lower = more urgent).
// Unknown or empty priorities rank as medium.
func PriorityRank(p TaskPriority) int {
	switch p {
	case PriorityHigh:
		return 10
	case PriorityLow:
		return 90
	default:
		return 50
	}
}

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectOnHold   ProjectStatus = "on_hold"
	ProjectClosed   ProjectStatus = "closed"
	ProjectArchived ProjectStatus = "archived"
)

type CostType string

const (
	CostLabor    CostType = "labor"
	CostMaterial CostType = "material"
	CostService  CostType = "service"
	CostOther    CostType = "other"
)
