package mock

import (
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string // parents first
}

// NewDb opens the shared in-memory database once and migrates models,
// which must be listed parents first.
func NewDb(models ...any) *Db {
	if db == nil {
		once.Do(
			func() {
				db = open(models)
			},
		)
	}

	return db
}

func open(models []any) *Db {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	newDbMock := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(err)
		}
		newDbMock.models[stmt.Schema.Table] = model
		newDbMock.tables = append(newDbMock.tables, stmt.Schema.Table)
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	if err := newDbMock.checkTables(); err != nil {
		panic(err)
	}

	return newDbMock
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		model := d.models[d.tables[i]]

		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", d.tables[i], err)
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", d.tables[i]).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

func (d *Db) checkTables() error {
	for table, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s for model %T was not created", table, model)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
