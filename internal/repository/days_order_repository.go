package repository

import (
	"context"

	"github.com/noah-isme/sma-report-gateway/pkg/database"
)

// DaysOrderRepository reads the daysorder table.
type DaysOrderRepository struct {
	exec *database.Executor
}

// NewDaysOrderRepository constructs a daysorder repository.
func NewDaysOrderRepository(exec *database.Executor) *DaysOrderRepository {
	return &DaysOrderRepository{exec: exec}
}

// ListByAgentCode returns the orders placed through the given agent.
func (r *DaysOrderRepository) ListByAgentCode(ctx context.Context, agentCode string) ([]database.Row, error) {
	return r.exec.Query(ctx, database.NewQuery("daysorder.by_agent", `SELECT * FROM daysorder WHERE AGENT_CODE = ?`, agentCode))
}
