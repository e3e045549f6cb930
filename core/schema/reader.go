package schema

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Source is the collaborator contract for reading table structure.
// Unlike the manifest source there is no safe fallback for a table's real
// structure, so read failures propagate to the caller.
type Source interface {
	// ReadTableSchema reads the full structure of one table.
	ReadTableSchema(ctx context.Context, schemaName, tableName string) (*TableSchema, error)

	// TestConnection verifies the underlying connection is usable.
	TestConnection(ctx context.Context) error
}

// Reader reads table structure from a live gorm connection using catalog
// queries (information_schema on MySQL, PRAGMA on SQLite).
type Reader struct {
	db *gorm.DB
}

// NewReader creates a catalog-backed schema source.
func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// TestConnection pings the underlying connection.
func (r *Reader) TestConnection(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// ReadTableSchema reads columns, primary key, foreign keys and indexes for
// the given table. The returned TableSchema is fully populated and hashed.
func (r *Reader) ReadTableSchema(ctx context.Context, schemaName, tableName string) (*TableSchema, error) {
	var table *TableSchema
	var err error

	if r.db.Dialector.Name() == "sqlite" {
		table, err = r.readSQLite(ctx, tableName)
	} else {
		table, err = r.readMySQL(ctx, schemaName, tableName)
	}
	if err != nil {
		return nil, err
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("table %s not found or has no columns", tableName)
	}

	table.ReadAt = time.Now()
	table.Hash = ComputeHash(table)
	return table, nil
}

// mysqlColumn matches information_schema.columns.
type mysqlColumn struct {
	ColumnName       string
	ColumnType       string
	DataType         string
	IsNullable       string
	ColumnKey        string
	Extra            string
	ColumnDefault    *string
	CharMaxLength    *int64
	NumericPrecision *int64
	NumericScale     *int64
	OrdinalPosition  int
}

func (r *Reader) readMySQL(ctx context.Context, schemaName, tableName string) (*TableSchema, error) {
	db := r.db.WithContext(ctx)

	var rawCols []mysqlColumn
	err := db.Raw(`
		SELECT COLUMN_NAME   AS column_name,
		       COLUMN_TYPE   AS column_type,
		       DATA_TYPE     AS data_type,
		       IS_NULLABLE   AS is_nullable,
		       COLUMN_KEY    AS column_key,
		       EXTRA         AS extra,
		       COLUMN_DEFAULT AS column_default,
		       CHARACTER_MAXIMUM_LENGTH AS char_max_length,
		       NUMERIC_PRECISION AS numeric_precision,
		       NUMERIC_SCALE  AS numeric_scale,
		       ORDINAL_POSITION AS ordinal_position
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ORDINAL_POSITION`, schemaName, tableName).Scan(&rawCols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read columns for table %s: %w", tableName, err)
	}

	table := &TableSchema{
		Schema:   schemaName,
		Name:     tableName,
		Metadata: map[string]string{"dialect": "mysql"},
	}

	var pkColumns []string
	for _, raw := range rawCols {
		sem := SemanticFromNative(raw.ColumnType)
		nullable := strings.EqualFold(raw.IsNullable, "YES")
		extra := strings.ToLower(raw.Extra)

		col := ColumnSchema{
			Name:       raw.ColumnName,
			NativeType: strings.ToLower(raw.ColumnType),
			Semantic:   sem,
			GoType:     GoTypeFor(sem, nullable),
			Nullable:   nullable,
			Identity:   strings.Contains(extra, "auto_increment"),
			Computed:   strings.Contains(extra, "generated"),
			Default:    raw.ColumnDefault,
			Ordinal:    raw.OrdinalPosition,
		}
		if raw.CharMaxLength != nil {
			col.Length = int(*raw.CharMaxLength)
		}
		if raw.NumericPrecision != nil {
			col.Precision = int(*raw.NumericPrecision)
		}
		if raw.NumericScale != nil {
			col.Scale = int(*raw.NumericScale)
		}

		table.Columns = append(table.Columns, col)
		if raw.ColumnKey == "PRI" {
			pkColumns = append(pkColumns, raw.ColumnName)
		}
	}

	if len(pkColumns) > 0 {
		table.PrimaryKey = &PrimaryKeySchema{Name: "PRIMARY", Columns: pkColumns}
	}

	if err := r.readMySQLForeignKeys(ctx, schemaName, tableName, table); err != nil {
		return nil, err
	}
	if err := r.readMySQLIndexes(ctx, schemaName, tableName, table); err != nil {
		return nil, err
	}

	return table, nil
}

type mysqlKeyUsage struct {
	ConstraintName       string
	ColumnName           string
	ReferencedTableName  string
	ReferencedColumnName string
}

func (r *Reader) readMySQLForeignKeys(ctx context.Context, schemaName, tableName string, table *TableSchema) error {
	var usages []mysqlKeyUsage
	err := r.db.WithContext(ctx).Raw(`
		SELECT CONSTRAINT_NAME        AS constraint_name,
		       COLUMN_NAME            AS column_name,
		       REFERENCED_TABLE_NAME  AS referenced_table_name,
		       REFERENCED_COLUMN_NAME AS referenced_column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ? AND table_name = ? AND REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY CONSTRAINT_NAME, ORDINAL_POSITION`, schemaName, tableName).Scan(&usages).Error
	if err != nil {
		return fmt.Errorf("failed to read foreign keys for table %s: %w", tableName, err)
	}

	// Group multi-column constraints by name, preserving first-seen order.
	var order []string
	grouped := make(map[string]*ForeignKeySchema)
	for _, u := range usages {
		fk, ok := grouped[u.ConstraintName]
		if !ok {
			fk = &ForeignKeySchema{Name: u.ConstraintName, ReferencedTable: u.ReferencedTableName}
			grouped[u.ConstraintName] = fk
			order = append(order, u.ConstraintName)
		}
		fk.Columns = append(fk.Columns, u.ColumnName)
		fk.ReferencedColumns = append(fk.ReferencedColumns, u.ReferencedColumnName)
	}
	for _, name := range order {
		table.ForeignKeys = append(table.ForeignKeys, *grouped[name])
	}
	return nil
}

type mysqlIndexRow struct {
	KeyName    string
	ColumnName string
	NonUnique  int
}

func (r *Reader) readMySQLIndexes(ctx context.Context, schemaName, tableName string, table *TableSchema) error {
	var rows []mysqlIndexRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT INDEX_NAME  AS key_name,
		       COLUMN_NAME AS column_name,
		       NON_UNIQUE  AS non_unique
		FROM information_schema.statistics
		WHERE table_schema = ? AND table_name = ? AND INDEX_NAME <> 'PRIMARY'
		ORDER BY INDEX_NAME, SEQ_IN_INDEX`, schemaName, tableName).Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to read indexes for table %s: %w", tableName, err)
	}

	var order []string
	grouped := make(map[string]*IndexSchema)
	for _, row := range rows {
		idx, ok := grouped[row.KeyName]
		if !ok {
			idx = &IndexSchema{Name: row.KeyName, Unique: row.NonUnique == 0}
			grouped[row.KeyName] = idx
			order = append(order, row.KeyName)
		}
		idx.Columns = append(idx.Columns, row.ColumnName)
	}
	for _, name := range order {
		table.Indexes = append(table.Indexes, *grouped[name])
	}
	return nil
}

// sqliteColumn matches PRAGMA table_info output.
type sqliteColumn struct {
	Cid       int
	Name      string
	Type      string
	Notnull   int
	DfltValue *string
	Pk        int
}

func (r *Reader) readSQLite(ctx context.Context, tableName string) (*TableSchema, error) {
	db := r.db.WithContext(ctx)

	var rawCols []sqliteColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rawCols).Error; err != nil {
		return nil, fmt.Errorf("failed to read columns for table %s: %w", tableName, err)
	}

	table := &TableSchema{
		Name:     tableName,
		Metadata: map[string]string{"dialect": "sqlite"},
	}

	var pkColumns []string
	for _, raw := range rawCols {
		sem := SemanticFromNative(raw.Type)
		nullable := raw.Notnull == 0 && raw.Pk == 0

		col := ColumnSchema{
			Name:       raw.Name,
			NativeType: strings.ToLower(raw.Type),
			Semantic:   sem,
			GoType:     GoTypeFor(sem, nullable),
			Nullable:   nullable,
			// SQLite: an INTEGER PRIMARY KEY column is a rowid alias.
			Identity: raw.Pk > 0 && sem == SemanticInt,
			Default:  raw.DfltValue,
			Ordinal:  raw.Cid + 1,
		}
		table.Columns = append(table.Columns, col)
		if raw.Pk > 0 {
			pkColumns = append(pkColumns, raw.Name)
		}
	}

	if len(pkColumns) > 0 {
		table.PrimaryKey = &PrimaryKeySchema{Name: "PRIMARY", Columns: pkColumns}
	}

	if err := r.readSQLiteForeignKeys(ctx, tableName, table); err != nil {
		return nil, err
	}
	if err := r.readSQLiteIndexes(ctx, tableName, table); err != nil {
		return nil, err
	}

	return table, nil
}

type sqliteForeignKey struct {
	ID    int
	Seq   int
	Table string
	From  string
	To    string
}

func (r *Reader) readSQLiteForeignKeys(ctx context.Context, tableName string, table *TableSchema) error {
	var rows []sqliteForeignKey
	if err := r.db.WithContext(ctx).Raw(fmt.Sprintf("PRAGMA foreign_key_list('%s')", tableName)).Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to read foreign keys for table %s: %w", tableName, err)
	}

	var order []int
	grouped := make(map[int]*ForeignKeySchema)
	for _, row := range rows {
		fk, ok := grouped[row.ID]
		if !ok {
			fk = &ForeignKeySchema{
				Name:            fmt.Sprintf("fk_%s_%d", tableName, row.ID),
				ReferencedTable: row.Table,
			}
			grouped[row.ID] = fk
			order = append(order, row.ID)
		}
		fk.Columns = append(fk.Columns, row.From)
		fk.ReferencedColumns = append(fk.ReferencedColumns, row.To)
	}
	for _, id := range order {
		table.ForeignKeys = append(table.ForeignKeys, *grouped[id])
	}
	return nil
}

type sqliteIndex struct {
	Seq    int
	Name   string
	Unique int
}

type sqliteIndexColumn struct {
	Seqno int
	Cid   int
	Name  string
}

func (r *Reader) readSQLiteIndexes(ctx context.Context, tableName string, table *TableSchema) error {
	db := r.db.WithContext(ctx)

	var indexes []sqliteIndex
	if err := db.Raw(fmt.Sprintf("PRAGMA index_list('%s')", tableName)).Scan(&indexes).Error; err != nil {
		return fmt.Errorf("failed to read indexes for table %s: %w", tableName, err)
	}

	for _, idx := range indexes {
		// Skip the implicit autoindexes SQLite creates for PK/unique columns.
		if strings.HasPrefix(idx.Name, "sqlite_autoindex_") {
			continue
		}

		var cols []sqliteIndexColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA index_info('%s')", idx.Name)).Scan(&cols).Error; err != nil {
			return fmt.Errorf("failed to read index %s: %w", idx.Name, err)
		}

		entry := IndexSchema{Name: idx.Name, Unique: idx.Unique == 1}
		for _, col := range cols {
			entry.Columns = append(entry.Columns, col.Name)
		}
		table.Indexes = append(table.Indexes, entry)
	}
	return nil
}
