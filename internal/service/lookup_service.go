package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-report-gateway/internal/dto"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
)

type companyRepository interface {
	List(ctx context.Context) ([]database.Row, error)
	FindByID(ctx context.Context, id string) ([]database.Row, error)
}

type daysOrderRepository interface {
	ListByAgentCode(ctx context.Context, agentCode string) ([]database.Row, error)
}

// LookupService serves the read-only company and daysorder lookups.
type LookupService struct {
	companies companyRepository
	orders    daysOrderRepository
	validator *validator.Validate
}

// NewLookupService constructs LookupService.
func NewLookupService(companies companyRepository, orders daysOrderRepository, validate *validator.Validate) *LookupService {
	if validate == nil {
		validate = validator.New()
	}
	return &LookupService{companies: companies, orders: orders, validator: validate}
}

// ListCompanies returns all companies.
func (s *LookupService) ListCompanies(ctx context.Context) ([]database.Row, error) {
	return s.companies.List(ctx)
}

// GetCompany returns the rows matching id. No match is an empty result, not an error.
func (s *LookupService) GetCompany(ctx context.Context, id string) ([]database.Row, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, malformed(errors.New("empty company id"), "company id is required")
	}
	return s.companies.FindByID(ctx, id)
}

// ListDaysOrders returns the orders for an agent code.
func (s *LookupService) ListDaysOrders(ctx context.Context, query dto.DaysOrderQuery) ([]database.Row, error) {
	query.AgentCode = strings.TrimSpace(query.AgentCode)
	if err := s.validator.Struct(query); err != nil {
		return nil, malformed(err, "code query parameter is required")
	}
	return s.orders.ListByAgentCode(ctx, query.AgentCode)
}
