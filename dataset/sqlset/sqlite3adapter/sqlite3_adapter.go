/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqlset package that works
over an SQLite3 database.
*/
package sqlite3adapter

import (
	"database/sql"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/cropforest/dataset/sqlset"
)

// Dialect is the SQLite3 dialect for sqlset adapters.
var Dialect = sqlset.Dialect{
	Placeholder:  func(int) string { return "?" },
	IDColumnType: "INTEGER PRIMARY KEY AUTOINCREMENT",
	FloatType:    "REAL",
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (sqlset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return sqlset.NewAdapter(db, Dialect), nil
}
