/*
Package pgadapter provides an implementation of the
Adapter interface in the sqlset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	"github.com/pbanos/cropforest/dataset/sqlset"
)

// Dialect is the PostgreSQL dialect for sqlset adapters.
var Dialect = sqlset.Dialect{
	Placeholder:  func(i int) string { return fmt.Sprintf("$%d", i) },
	IDColumnType: "SERIAL PRIMARY KEY",
	FloatType:    "DOUBLE PRECISION",
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqlset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return sqlset.NewAdapter(db, Dialect), nil
}
