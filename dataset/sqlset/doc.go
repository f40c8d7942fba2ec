/*
Package sqlset stores datasets in SQL databases.

Samples are stored on a single samples table with an
autoincremental id column, a label column, a column
for every numeric feature and a soil_type column.
Database specifics are handled by adapters built with
a Dialect, like the ones in the sqlite3adapter and
pgadapter subpackages.
*/
package sqlset
