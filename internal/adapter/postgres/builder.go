package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// Builder returns a squirrel statement builder that numbers placeholders
// for PostgreSQL ($1, $2, ...).
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// ScopePredicate renders an access scope as a SQL condition over the given
// editor column. Every scoped query goes through it.
//
//	Admin      -> (1=1)
//	Owner(id)  -> (column IS NULL OR column = ?)
func ScopePredicate(scope domain.AccessScope, column string) sq.Sqlizer {
	owner, ok := scope.OwnerID()
	if !ok {
		return sq.And{}
	}
	return sq.Or{
		sq.Eq{column: nil},
		sq.Expr(column+" = ?", owner),
	}
}
