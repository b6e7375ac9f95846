package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/groom-scheduler/internal/db"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/featuregate"
	"github.com/BruksfildServices01/groom-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/groom-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

// Monday; bookings in the tests land on Tuesday 2026-03-10.
var fixedNow = time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

func tuesday(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

type fixture struct {
	db   *gorm.DB
	repo *repository.AppointmentGormRepository

	org      *models.Organization
	policies *models.BookingPolicies

	ana  *models.Groomer // scissor specialist
	bia  *models.Groomer // no specialties
	bath *models.Service
	cut  *models.Service

	large *models.Modifier
	coat  *models.Modifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := dbpkg.OpenInMemory(name)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{db: db, repo: repository.NewAppointmentGormRepository(db)}

	f.org = &models.Organization{
		Name:                "Paws",
		Slug:                "paws-" + uuid.NewString()[:8],
		Timezone:            "UTC",
		SlotGranularityMin:  30,
		StaffPhone:          "+15550000000",
		Plan:                models.PlanPro,
		SpecialtyCategories: datatypes.JSON(`{"scissor":["haircut","full_groom"]}`),
		BaselineCategories:  datatypes.JSON(`["bath","nails"]`),
	}
	mustCreate(t, db, f.org)

	for wd := 0; wd < 7; wd++ {
		mustCreate(t, db, &models.BusinessHours{
			OrganizationID: f.org.ID,
			Weekday:        wd,
			OpenTime:       "08:00",
			CloseTime:      "18:00",
			Active:         true,
		})
	}

	f.policies = &models.BookingPolicies{
		OrganizationID:                f.org.ID,
		DepositRequired:               true,
		DepositPercentage:             decimal.NewFromInt(25),
		DepositMinimum:                decimal.NewFromInt(15),
		CancellationWindowHours:       24,
		LateCancellationFeePercentage: decimal.NewFromInt(50),
		NoShowFeePercentage:           decimal.NewFromInt(100),
		NewClientMode:                 models.ModeRequestOnly,
		ExistingClientMode:            models.ModeAutoConfirm,
		MaxPetsPerAppointment:         3,
	}
	mustCreate(t, db, f.policies)

	f.ana = &models.Groomer{OrganizationID: f.org.ID, Name: "Ana", Active: true, Specialties: datatypes.JSON(`["scissor"]`), CreatedAt: fixedNow.Add(-2 * time.Hour)}
	f.bia = &models.Groomer{OrganizationID: f.org.ID, Name: "Bia", Active: true, Specialties: datatypes.JSON(`[]`), CreatedAt: fixedNow.Add(-time.Hour)}
	mustCreate(t, db, f.ana)
	mustCreate(t, db, f.bia)

	f.bath = &models.Service{
		OrganizationID: f.org.ID,
		Name:           "Bath",
		DurationMin:    45,
		BasePrice:      decimal.NewFromInt(50),
		Category:       models.CategoryBath,
		Active:         true,
		Modifiers: []models.Modifier{
			{Name: "Large dog", Type: models.ModifierWeight, DurationDelta: 15, PriceAdjustment: decimal.NewFromInt(10)},
			{Name: "Double coat", Type: models.ModifierCoat, PriceAdjustment: decimal.NewFromInt(20), IsPercentage: true},
		},
	}
	mustCreate(t, db, f.bath)
	f.large = &f.bath.Modifiers[0]
	f.coat = &f.bath.Modifiers[1]

	f.cut = &models.Service{
		OrganizationID: f.org.ID,
		Name:           "Haircut",
		DurationMin:    60,
		BasePrice:      decimal.NewFromInt(80),
		Category:       models.CategoryHaircut,
		Active:         true,
	}
	mustCreate(t, db, f.cut)

	return f
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func (f *fixture) bathFor(name string, mods ...uuid.UUID) []pricing.PetSelection {
	return []pricing.PetSelection{{
		PetName:  name,
		Services: []pricing.Selection{{ServiceID: f.bath.ID, ModifierIDs: mods}},
	}}
}

func (f *fixture) createUC() *CreateAppointment {
	uc := NewCreateAppointment(f.repo, lock.NewKeyedMutex(), featuregate.NewPlanGate(), nil, nil)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (f *fixture) availabilityUC() *GetAvailability {
	uc := NewGetAvailability(f.repo)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (f *fixture) seedAppointment(t *testing.T, g *models.Groomer, start time.Time, minutes int, status string) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		OrganizationID: f.org.ID,
		ClientID:       uuid.New(),
		GroomerID:      g.ID,
		Status:         status,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes) * time.Minute),
		DurationMin:    minutes,
		TotalAmount:    decimal.NewFromInt(100),
		PaymentStatus:  models.PaymentUnpaid,
	}
	mustCreate(t, f.db, ap)
	return ap
}
