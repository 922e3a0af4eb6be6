package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetupaws/airport_boarding/passengers/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrPassengerExists   = errors.New("passenger_exists")
	ErrPassengerNotFound = errors.New("passenger_not_found")
)

// PassengerExistsError is returned when inserting a passenger whose identifier
// is already stored. Its message is the passenger's string form.
type PassengerExistsError struct {
	Passenger model.Passenger
}

func (e *PassengerExistsError) Error() string {
	return e.Passenger.String()
}

func (e *PassengerExistsError) Is(target error) bool {
	return target == ErrPassengerExists
}

type PassengerDao interface {
	Insert(ctx context.Context, p model.Passenger) error
	Update(ctx context.Context, identifier string, name string) error
	Delete(ctx context.Context, p model.Passenger) error
	GetByID(ctx context.Context, identifier string) (*model.Passenger, error)
}

type passengerRow struct {
	Identifier  string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	CountryName string
	CountryCode string
}

func (passengerRow) TableName() string {
	return "passengers"
}

type PassengersRepository struct {
	db *gorm.DB
}

var _ PassengerDao = (*PassengersRepository)(nil)

func (r *PassengersRepository) Insert(ctx context.Context, p model.Passenger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&passengerRow{}).Where("identifier = ?", p.Identifier).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &PassengerExistsError{Passenger: p}
		}
		return create(tx, p)
	})
}

// create maps a primary key violation, raised when a concurrent insert wins
// after the count, to the same error as the count check.
func create(db *gorm.DB, p model.Passenger) error {
	err := db.Create(toRow(p)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &PassengerExistsError{Passenger: p}
	}
	return err
}

func (r *PassengersRepository) Update(ctx context.Context, identifier string, name string) error {
	res := r.db.WithContext(ctx).Model(&passengerRow{}).Where("identifier = ?", identifier).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrPassengerNotFound, identifier)
	}
	return nil
}

func (r *PassengersRepository) Delete(ctx context.Context, p model.Passenger) error {
	return r.db.WithContext(ctx).Where("identifier = ?", p.Identifier).Delete(&passengerRow{}).Error
}

// GetByID returns nil without error when no passenger has the identifier.
func (r *PassengersRepository) GetByID(ctx context.Context, identifier string) (*model.Passenger, error) {
	row := passengerRow{}
	err := r.db.WithContext(ctx).Where("identifier = ?", identifier).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := fromRow(row)
	return &p, nil
}

func toRow(p model.Passenger) *passengerRow {
	row := &passengerRow{
		Identifier: p.Identifier,
		Name:       p.Name,
	}
	if p.Country != nil {
		row.CountryName = p.Country.Name
		row.CountryCode = p.Country.CodeName
	}
	return row
}

func fromRow(row passengerRow) model.Passenger {
	p := model.Passenger{
		Identifier: row.Identifier,
		Name:       row.Name,
	}
	if row.CountryName != "" || row.CountryCode != "" {
		p.Country = &model.Country{
			Name:     row.CountryName,
			CodeName: row.CountryCode,
		}
	}
	return p
}

// OpenDatabase opens the passengers store and creates its table.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open passengers database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers, and an in-memory database lives only as long
	// as its connection
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&passengerRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate passengers table: %w", err)
	}
	return db, nil
}

func NewPassengersRepository(db *gorm.DB) *PassengersRepository {
	return &PassengersRepository{
		db: db,
	}
}
