package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AvailabilityGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AvailabilityGormRepository{db: tx})
	})
}

// LockScope takes a transaction level advisory lock. Postgres releases it
// on commit or rollback, so it must run inside Transaction.
func (r *AvailabilityGormRepository) LockScope(
	ctx context.Context,
	scope string,
) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", scope).
		Error
}

// --------------------------------------------------
// Windows
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetWindow(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *AvailabilityGormRepository) ListWindows(
	ctx context.Context,
	filter domain.WindowFilter,
) ([]models.AvailabilityWindow, error) {

	q := r.db.WithContext(ctx).Model(&models.AvailabilityWindow{})

	if filter.OwnerID != nil {
		q = q.Where("user_id = ?", *filter.OwnerID)
	}
	if filter.Weekday != nil {
		q = q.Where("weekday = ?", int(*filter.Weekday))
	}

	var windows []models.AvailabilityWindow
	if err := q.
		Order("user_id ASC").
		Order("weekday ASC").
		Order("start_time ASC").
		Order("id ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *AvailabilityGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return translate(r.db.WithContext(ctx).Create(w).Error)
}

func (r *AvailabilityGormRepository) UpdateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return translate(r.db.WithContext(ctx).
		Model(w).
		Select("weekday", "start_time", "end_time").
		Updates(w).Error)
}

func (r *AvailabilityGormRepository) DeleteWindow(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.AvailabilityWindow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *AvailabilityGormRepository) ListBookings(
	ctx context.Context,
	filter domain.BookingFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if len(filter.AvailabilityIDs) > 0 {
		q = q.Where("availability_id IN ?", filter.AvailabilityIDs)
	}
	if filter.Date != nil {
		q = q.Where("date = ?", *filter.Date)
	}

	var bookings []models.Booking
	if err := q.
		Order("date ASC").
		Order("start_time ASC").
		Order("id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *AvailabilityGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *AvailabilityGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// translate maps driver level errors onto the repository contract.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case httperr.IsUniqueViolation(err), errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	default:
		return err
	}
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
