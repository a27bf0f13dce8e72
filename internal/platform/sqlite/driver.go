package sqlite

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/vocabcards/internal/domain"
)

// DriverName is the database/sql driver name registered by this package.
const DriverName = "sqlite3_vocabcards"

// CollationNoCase is the collation used for case-insensitive word comparison.
const CollationNoCase = "UNICODE_NOCASE"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if err := conn.RegisterCollation(CollationNoCase, compareFolded); err != nil {
					return err
				}
				return conn.RegisterFunc("casefold", domain.Fold, true)
			},
		})
	})
}

func compareFolded(a, b string) int {
	return strings.Compare(domain.Fold(a), domain.Fold(b))
}
