package testsupport

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// NewSQLiteBunDB opens a private in-memory SQLite database named after name.
// A single connection is used so concurrent writers queue instead of failing
// with table locks.
func NewSQLiteBunDB(name string) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", unsafeName.ReplaceAllString(name, "_"))
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
