package testsupport

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a private in-memory database. Each call gets its
// own named instance so parallel tests never share tables.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return sql.Open("sqlite3", dsn)
}
