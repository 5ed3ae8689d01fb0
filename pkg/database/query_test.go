package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountPlaceholders(t *testing.T) {
	cases := map[string]int{
		"SELECT * FROM company":                                       0,
		"SELECT * FROM company WHERE COMPANY_ID = ?":                  1,
		"INSERT INTO t (a, b, c) VALUES (?,?,?)":                      3,
		"SELECT * FROM t WHERE a = '?' AND b = ?":                     1,
		"SELECT * FROM t WHERE a = 'it''s ?' AND b = ?":               1,
		"SELECT `weird?col` FROM t WHERE \"x?\" = ? AND y = ?":        2,
		"UPDATE studentreport SET GRADE = ?, SECTION = ? WHERE ROLLID = ?": 3,
	}
	for template, want := range cases {
		assert.Equal(t, want, CountPlaceholders(template), template)
	}
}

func TestQueryRequestValidate(t *testing.T) {
	assert.NoError(t, NewQuery("ok", "DELETE FROM studentreport WHERE ROLLID = ?", 1).Validate())
	assert.Error(t, NewQuery("missing", "DELETE FROM studentreport WHERE ROLLID = ?").Validate())
	assert.Error(t, NewQuery("extra", "SELECT * FROM company", "x").Validate())
	assert.Error(t, NewQuery("empty", "  ").Validate())
}
