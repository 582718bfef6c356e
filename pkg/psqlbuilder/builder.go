package psqlbuilder

import "github.com/Masterminds/squirrel"

// Dialect SQL-диалект хранилища
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// psql билдер с плейсхолдерами $1, $2, ...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// For возвращает билдер с плейсхолдерами нужного диалекта
// SQLite используется для локальной разработки и тестов
func For(dialect Dialect) squirrel.StatementBuilderType {
	if dialect == DialectSQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return psql
}
