// Package schema turns live database metadata into the textual schema
// description that the SQL-generation prompt consumes.
//
// The renderer emits one CREATE TABLE block per table, in the order the
// engine enumerates them. When the database is unreachable (or metadata
// reads fail mid-flight), Load falls back to a fixed example schema so the
// rest of the pipeline keeps working in test mode.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// Fallback is the example schema used whenever live metadata is unavailable.
// It mirrors the HR-style employees table the assistant was tuned against.
const Fallback = `CREATE TABLE EMPLOYEES (
    EMPLOYEE_ID NUMBER(6) NOT NULL PRIMARY KEY,
    FIRST_NAME_EN VARCHAR2(20) NULL,
    SECOND_NAME_EN VARCHAR2(20) NULL,
    THIRD_NAME_EN VARCHAR2(20) NULL,
    LAST_NAME_EN VARCHAR2(20) NULL,
    FIRST_NAME_AR NVARCHAR2(20) NULL,
    SECOND_NAME_AR NVARCHAR2(20) NULL,
    THIRD_NAME_AR NVARCHAR2(20) NULL,
    LAST_NAME_AR NVARCHAR2(20) NULL,
    EMAIL VARCHAR2(50) NULL,
    PHONE_NUMBER VARCHAR2(20) NULL,
    HIRE_DATE DATE NULL,
    JOB_ID VARCHAR2(10) NULL,
    SALARY NUMBER(8,2) NULL,
    MANAGER_ID NUMBER(6) NULL,
    DEPARTMENT_ID NUMBER(4) NULL
);`

// Column is one column definition as reported by DESCRIBE.
type Column struct {
	Name       string
	Type       string
	Nullable   string // "NO" or "YES", verbatim from the engine
	PrimaryKey bool
}

// Table is a named, ordered list of column definitions.
type Table struct {
	Name    string
	Columns []Column
}

// Describe reads table and column metadata from a MySQL database, preserving
// the enumeration order reported by the engine.
func Describe(ctx context.Context, db *sql.DB) ([]Table, error) {
	rows, err := db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		cols, err := describeTable(ctx, db, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Table{Name: name, Columns: cols})
	}
	return tables, nil
}

func describeTable(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx, "DESCRIBE "+table)
	if err != nil {
		return nil, fmt.Errorf("describing table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		// DESCRIBE returns Field, Type, Null, Key, Default, Extra.
		var field, typ, null, key string
		var def sql.NullString
		var extra string
		if err := rows.Scan(&field, &typ, &null, &key, &def, &extra); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		cols = append(cols, Column{
			Name:       field,
			Type:       typ,
			Nullable:   null,
			PrimaryKey: key == "PRI",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describing table %s: %w", table, err)
	}
	return cols, nil
}

// Render converts table metadata into the CREATE TABLE text that the prompt
// builder embeds. Tables are separated by a blank line; order is preserved.
func Render(tables []Table) string {
	blocks := make([]string, 0, len(tables))
	for _, t := range tables {
		var sb strings.Builder
		sb.WriteString("CREATE TABLE " + t.Name + " (\n")
		for i, c := range t.Columns {
			nullable := "NULL"
			if c.Nullable == "NO" {
				nullable = "NOT NULL"
			}
			sb.WriteString("    " + c.Name + " " + c.Type + " " + nullable)
			if c.PrimaryKey {
				sb.WriteString(" PRIMARY KEY")
			}
			if i < len(t.Columns)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(");")
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}

// Load renders the live schema, falling back to the fixed example schema when
// metadata cannot be read. A nil db goes straight to the fallback.
func Load(ctx context.Context, db *sql.DB) string {
	if db == nil {
		return Fallback
	}
	tables, err := Describe(ctx, db)
	if err != nil {
		slog.Warn("reading schema metadata failed, using fallback schema", "error", err)
		return Fallback
	}
	return Render(tables)
}
