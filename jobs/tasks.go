package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDiscountCodeSweep deactivates discount codes past their validity window.
	TaskDiscountCodeSweep = "discount:sweep"
	// TaskDashboardRefresh rebuilds the cached dashboard aggregates.
	TaskDashboardRefresh = "dashboard:refresh"
)

// DashboardRefreshPayload selects which currency's aggregates to rebuild.
type DashboardRefreshPayload struct {
	Currency string `json:"currency"`
}

// NewDiscountCodeSweepTask constructs the sweep task. It carries no payload.
func NewDiscountCodeSweepTask() *asynq.Task {
	return asynq.NewTask(TaskDiscountCodeSweep, nil)
}

// NewDashboardRefreshTask constructs a refresh task for one currency.
func NewDashboardRefreshTask(currency string) (*asynq.Task, error) {
	data, err := json.Marshal(DashboardRefreshPayload{Currency: currency})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardRefresh, data), nil
}
