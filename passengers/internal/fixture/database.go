// Package fixture wires passenger tests: a transactional store per test, the
// canonical test passenger, and passengers described in YAML files.
package fixture

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/meetupaws/airport_boarding/internal"
	"github.com/meetupaws/airport_boarding/passengers/internal/model"
	"github.com/meetupaws/airport_boarding/passengers/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// memoryDSN is a sqlite database that lives as long as its connection.
const memoryDSN = "file::memory:?cache=shared"

var (
	openOnce sync.Once
	sharedDB *gorm.DB
	openErr  error
)

func openShared() (*gorm.DB, error) {
	openOnce.Do(func() {
		cfg, err := internal.LoadConfig()
		if err != nil {
			openErr = err
			return
		}
		sharedDB, openErr = repository.OpenDatabase(testDSN(cfg))
	})
	return sharedDB, openErr
}

// testDSN points tests at an in-memory store unless DATABASE_DSN is set.
func testDSN(cfg *internal.Config) string {
	if internal.IsBlank(cfg.Database.DSN) {
		return memoryDSN
	}
	return cfg.Database.DSN
}

// Database opens the store once per test binary and hands each test a DAO
// bound to its own transaction. The transaction is rolled back when the test
// ends, so tests never see each other's rows.
func Database(t *testing.T) repository.PassengerDao {
	t.Helper()
	db, err := openShared()
	if err != nil {
		t.Fatalf("Could not open passengers database: %s\n", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("Could not begin transaction: %s\n", tx.Error)
	}
	t.Cleanup(func() {
		tx.Rollback()
	})

	return &LoggingPassengerDao{
		PassengerDao: repository.NewPassengersRepository(tx),
		Logger:       internal.NewLogger("info", false),
	}
}

// LoggingPassengerDao logs rejected duplicate inserts before handing the error
// back to the test.
type LoggingPassengerDao struct {
	repository.PassengerDao
	Logger zerolog.Logger
}

func (d *LoggingPassengerDao) Insert(ctx context.Context, p model.Passenger) error {
	err := d.PassengerDao.Insert(ctx, p)
	existsErr := &repository.PassengerExistsError{}
	if errors.As(err, &existsErr) {
		d.Logger.Warn().Str("identifier", p.Identifier).Msg(existsErr.Error())
	}
	return err
}
