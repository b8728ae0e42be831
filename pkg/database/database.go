package database

import (
	"fmt"
	stdlog "log"
	"sync"
	"time"

	"github.com/restobook/pkg/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

var (
	db          *gorm.DB
	err         error
	client_once sync.Once
)

// InitDB opens the process-wide connection, migrates and seeds it. It panics
// on failure because nothing can be served without a database.
func InitDB(dbc config.Database) {
	client_once.Do(func() {
		db, err = Open(dbc)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize database")
			panic(err)
		}
		log.Info().Str("driver", dbc.Driver).Msg("database connection established successfully")

		if err = AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("migration failed")
			panic(err)
		}
		if err = Seed(db); err != nil {
			log.Error().Err(err).Msg("seeding failed")
			panic(err)
		}
		log.Info().Msg("database migrations completed successfully")
	})
}

func DBClient() *gorm.DB {
	if db == nil {
		log.Panic().Msg("database is not initialized. Call InitDB first.")
	}
	return db
}

// Open connects to the configured driver and verifies the connection.
func Open(dbc config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbc.Driver {
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC", dbc.Host, dbc.Port, dbc.User, dbc.Pass, dbc.Name)
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			DSN:        SQLiteDSN(dbc.Path),
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbc.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger(),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbc.Driver, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying database connection: %w", err)
	}
	if dbc.Driver == "sqlite" {
		// one writer at a time; also keeps ":memory:" databases on a single connection
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return conn, nil
}

// gormLogger sends gorm's warnings and errors through zerolog. Lookups that
// find nothing are expected and not logged.
func gormLogger() logger.Interface {
	return logger.New(
		stdlog.New(log.Logger.With().Str("component", "gorm").Logger(), "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// SQLiteDSN builds a modernc.org/sqlite DSN. Times are written in the format
// sqlite's date functions understand.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}
