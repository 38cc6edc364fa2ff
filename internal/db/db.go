package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/suPer8Hu/job-assistant/internal/catalog"
	"github.com/suPer8Hu/job-assistant/internal/chat"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Open picks the dialector from the DSN: "sqlite:<path>" uses SQLite, anything
// else is treated as a MySQL DSN.
func Open(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = mysql.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&catalog.Company{},
		&catalog.Job{},
		&chat.Conversation{},
		&chat.Message{},
		&chat.TurnJob{},
	)
}

// Connect opens and migrates the database.
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}
