package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
)

/*
MaxSampleInsertionsPerStatement is the maximum number
of samples that are added with a single insert command
by the AddSamples method of an adapter. Adding more
will result in making more insertion commands.
*/
const MaxSampleInsertionsPerStatement = 10

// LabelColumn is the name of the column holding sample labels.
const LabelColumn = "label"

/*
Adapter is an interface providing the methods
needed to store datasets on a database.
*/
type Adapter interface {
	// CreateSampleTable ensures the samples table exists.
	CreateSampleTable(context.Context) error
	// AddSamples inserts the given samples and returns the
	// number of samples actually inserted.
	AddSamples(context.Context, []dataset.Sample) (int, error)
	// IterateOnSamples calls the lambda function with every
	// stored sample, in insertion order, and its index, until
	// it returns false or an error.
	IterateOnSamples(context.Context, func(int, dataset.Sample) (bool, error)) error
	// CountSamples returns the number of stored samples.
	CountSamples(context.Context) (int, error)
	// Close releases the database connection.
	Close() error
}

/*
Dialect holds what changes between SQL databases
for the statements adapters run.
*/
type Dialect struct {
	// Placeholder returns the placeholder for the i-th (1-based) statement parameter.
	Placeholder func(i int) string
	// IDColumnType is the type definition of the autoincremental primary key.
	IDColumnType string
	// FloatType is the column type for feature values.
	FloatType string
}

type adapter struct {
	db      *sql.DB
	dialect Dialect
}

/*
NewAdapter takes a database and a dialect and returns an Adapter that
stores samples on the database using statements in the dialect.
*/
func NewAdapter(db *sql.DB, d Dialect) Adapter {
	return &adapter{db, d}
}

func columns() []string {
	cols := []string{LabelColumn}
	for _, f := range feature.All() {
		cols = append(cols, f.Name())
	}
	return cols
}

func (a *adapter) CreateSampleTable(ctx context.Context) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(`CREATE TABLE IF NOT EXISTS samples(`)
	createStmtBuf.WriteString(fmt.Sprintf(`"id" %s, `, a.dialect.IDColumnType))
	createStmtBuf.WriteString(fmt.Sprintf(`"%s" TEXT NOT NULL, `, LabelColumn))
	for _, f := range feature.Numeric() {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" %s NOT NULL, `, f.Name(), a.dialect.FloatType))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`"%s" TEXT NOT NULL)`, feature.SoilTypeFeature.Name()))
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) insertStatement(n int) string {
	cols := columns()
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO samples ("`)
	buf.WriteString(strings.Join(cols, `", "`))
	buf.WriteString(`") VALUES `)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j := range cols {
			if j > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(a.dialect.Placeholder(1 + j + i*len(cols)))
		}
		buf.WriteString(")")
	}
	return buf.String()
}

func sampleValues(samples []dataset.Sample) []interface{} {
	values := make([]interface{}, 0, len(samples)*(feature.NumericCount+2))
	for _, s := range samples {
		values = append(values, s.Label)
		for _, f := range feature.Numeric() {
			x, _ := s.Vector.ValueFor(f)
			values = append(values, x)
		}
		values = append(values, string(s.Vector.SoilType))
	}
	return values
}

func (a *adapter) AddSamples(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting samples insertion: %v", err)
	}
	defer tx.Rollback()
	var inserted int
	var fullStmt *sql.Stmt
	for inserted < len(samples) {
		end := inserted + MaxSampleInsertionsPerStatement
		if end > len(samples) {
			end = len(samples)
		}
		chunk := samples[inserted:end]
		var stmt *sql.Stmt
		if len(chunk) == MaxSampleInsertionsPerStatement {
			if fullStmt == nil {
				fullStmt, err = tx.PrepareContext(ctx, a.insertStatement(MaxSampleInsertionsPerStatement))
				if err != nil {
					return 0, fmt.Errorf("preparing insert command for %d samples: %v", MaxSampleInsertionsPerStatement, err)
				}
				defer fullStmt.Close()
			}
			stmt = fullStmt
		} else {
			stmt, err = tx.PrepareContext(ctx, a.insertStatement(len(chunk)))
			if err != nil {
				return 0, fmt.Errorf("preparing insert command for %d samples: %v", len(chunk), err)
			}
			defer stmt.Close()
		}
		_, err = stmt.ExecContext(ctx, sampleValues(chunk)...)
		if err != nil {
			return 0, fmt.Errorf("inserting samples %d to %d: %v", inserted, end, err)
		}
		inserted = end
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing samples insertion: %v", err)
	}
	return inserted, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, lambda func(int, dataset.Sample) (bool, error)) error {
	query := fmt.Sprintf(`SELECT "%s" FROM samples ORDER BY "id"`, strings.Join(columns(), `", "`))
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	numeric := feature.Numeric()
	for j := 0; rows.Next(); j++ {
		var label, soil string
		values := make([]float64, len(numeric))
		dest := make([]interface{}, 0, len(numeric)+2)
		dest = append(dest, &label)
		for i := range values {
			dest = append(dest, &values[i])
		}
		dest = append(dest, &soil)
		if err = rows.Scan(dest...); err != nil {
			return err
		}
		st, err := feature.ParseSoilType(soil)
		if err != nil {
			return fmt.Errorf("sample %d: %v", j, err)
		}
		v := feature.Vector{SoilType: st}
		for i, f := range numeric {
			v = v.With(f, values[i])
		}
		ok, err := lambda(j, dataset.NewSample(v, label))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
