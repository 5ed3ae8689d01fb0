package repository

import (
	"context"

	"github.com/noah-isme/sma-report-gateway/pkg/database"
)

// CompanyRepository reads the company table.
type CompanyRepository struct {
	exec *database.Executor
}

// NewCompanyRepository constructs a company repository.
func NewCompanyRepository(exec *database.Executor) *CompanyRepository {
	return &CompanyRepository{exec: exec}
}

// List returns all companies.
func (r *CompanyRepository) List(ctx context.Context) ([]database.Row, error) {
	return r.exec.Query(ctx, database.NewQuery("company.list", `SELECT * FROM company`))
}

// FindByID returns the companies whose COMPANY_ID matches; an unknown id yields no rows.
func (r *CompanyRepository) FindByID(ctx context.Context, id string) ([]database.Row, error) {
	return r.exec.Query(ctx, database.NewQuery("company.get", `SELECT * FROM company WHERE COMPANY_ID = ?`, id))
}
