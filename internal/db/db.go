package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/groom-scheduler/internal/config"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
	"github.com/BruksfildServices01/groom-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE organizations
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone)

	return db
}

// Open connects with UTC timestamps and warn-level SQL logging. driver is
// "postgres" or "sqlite".
func Open(driver, dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		gormCfg.PrepareStmt = true
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Organization{},
		&models.BusinessHours{},
		&models.Groomer{},
		&models.Service{},
		&models.Modifier{},
		&models.BookingPolicies{},
		&models.Appointment{},
		&models.AppointmentPet{},
		&models.AppointmentService{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := ensureNoOverlapConstraint(db); err != nil {
			// the repository still serializes per groomer without it
			log.Printf("overlap constraint not installed: %v", err)
		}
	}
	return nil
}

// ensureNoOverlapConstraint makes postgres itself reject two slot-blocking
// appointments of one groomer with intersecting [start,end) ranges.
func ensureNoOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Raw(
		`SELECT COUNT(*) FROM pg_constraint WHERE conname = 'appointments_no_overlap'`,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            groomer_id WITH =,
            tstzrange(start_time, end_time, '[)') WITH &&
        )
        WHERE (status NOT IN ('cancelled', 'no_show'))
    `).Error
}

// OpenInMemory returns a migrated in-memory sqlite database private to name.
// A single connection keeps concurrent writers serialized.
func OpenInMemory(name string) (*gorm.DB, error) {
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
