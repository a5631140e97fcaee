package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bondyapp/bondy/cmd/config"
	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	bookingrepo "github.com/bondyapp/bondy/repository/booking"
	companionrepo "github.com/bondyapp/bondy/repository/companion"
	userrepo "github.com/bondyapp/bondy/repository/user"
	"github.com/bondyapp/bondy/thirdparty/rabbitmq"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

type BookingApp interface {
	CreateBooking(ctx context.Context, userID string, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error)
	ListUserBookings(ctx context.Context, userID string, status constant.BookingStatus, page, limit int) (*model.BookingListResponse, error)
	UpdateBooking(ctx context.Context, userID, bookingID string, req *model.UpdateBookingRequest) (*model.BookingEntity, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
	RateBooking(ctx context.Context, userID, bookingID string, req *model.RateBookingRequest) error
	GetBookingStats(ctx context.Context, userID string) (*model.BookingStats, error)
}

type bookingAppImpl struct {
	config        *config.Config
	bookingRepo   bookingrepo.BookingRepository
	userRepo      userrepo.UserRepository
	companionRepo companionrepo.CompanionRepository
	publisher     *rabbitmq.Publisher
}

func NewBookingApp(config *config.Config, bookingRepo bookingrepo.BookingRepository, userRepo userrepo.UserRepository, companionRepo companionrepo.CompanionRepository, publisher *rabbitmq.Publisher) BookingApp {
	return &bookingAppImpl{
		config:        config,
		bookingRepo:   bookingRepo,
		userRepo:      userRepo,
		companionRepo: companionRepo,
		publisher:     publisher,
	}
}

// PriceForDuration resolves the billable hours and flat amount for a
// duration selector. Unrecognized durations fall back to two hours.
func PriceForDuration(duration string) (hours, amount int) {
	hours, ok := constant.DurationHours[duration]
	if !ok {
		hours = constant.DefaultDurationHours
	}
	return hours, hours * constant.HourlyRate
}

func (s *bookingAppImpl) CreateBooking(ctx context.Context, userID string, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	if !constant.ServiceTypes[req.ServiceType] {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	startsAt, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, time.Local)
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	if startsAt.Before(time.Now().Add(constant.MinBookingLeadTimeMinutes * time.Minute)) {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[CreateBooking] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	hours, amount := PriceForDuration(req.Duration)

	entity := &model.BookingEntity{
		ID:     uuid.NewString(),
		UserID: userID,
		// Snapshot of contact info so later profile edits leave history intact
		UserContact: model.UserContact{
			Name:  user.Name,
			Phone: user.Phone,
		},
		ServiceType:     req.ServiceType,
		TaskDescription: req.TaskDescription,
		Duration:        req.Duration,
		Hours:           hours,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		Status:          constant.BookingStatusPending,
		Amount:          amount,
	}

	entity, err = s.bookingRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateBooking] err bookingRepo.Create", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	// Schedule a reminder; failures never fail the booking
	if s.publisher != nil {
		msg := rabbitmq.BookingReminderMessage{
			BookingID: entity.ID,
			UserID:    userID,
			Phone:     user.Phone,
			StartsAt:  startsAt,
		}
		if err := s.publisher.PublishBookingReminder(msg); err != nil {
			logger.Error("[CreateBooking] publish booking reminder", zap.String("error", err.Error()))
		}
	}

	return &model.CreateBookingResponse{
		Booking:          entity,
		CalculatedAmount: amount,
		Hours:            hours,
	}, nil
}

func (s *bookingAppImpl) ListUserBookings(ctx context.Context, userID string, status constant.BookingStatus, page, limit int) (*model.BookingListResponse, error) {
	items, total, err := s.bookingRepo.ListByUser(ctx, &model.BookingFilter{
		UserID: userID,
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		logger.Error("[ListUserBookings] err bookingRepo.ListByUser", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return &model.BookingListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    limit,
	}, nil
}

func (s *bookingAppImpl) UpdateBooking(ctx context.Context, userID, bookingID string, req *model.UpdateBookingRequest) (*model.BookingEntity, error) {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	// Edits are only meaningful before a companion is committed
	if booking.Status != constant.BookingStatusPending {
		return nil, cerr.SetCustomError(constant.ErrInvalidState)
	}

	if req.TaskDescription != nil {
		booking.TaskDescription = *req.TaskDescription
	}
	if req.Date != nil {
		booking.Date = *req.Date
	}
	if req.Time != nil {
		booking.Time = *req.Time
	}
	if req.Location != nil {
		booking.Location = *req.Location
	}

	if req.Date != nil || req.Time != nil {
		startsAt, perr := booking.StartsAt(time.Local)
		if perr != nil {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
		if startsAt.Before(time.Now().Add(constant.MinBookingLeadTimeMinutes * time.Minute)) {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
	}

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logger.Error("[UpdateBooking] err bookingRepo.Save", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return booking, nil
}

func (s *bookingAppImpl) CancelBooking(ctx context.Context, userID, bookingID string) error {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return err
	}

	if !booking.Status.Cancellable() {
		return cerr.SetCustomError(constant.ErrInvalidState)
	}

	booking.Status = constant.BookingStatusCancelled
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logger.Error("[CancelBooking] err bookingRepo.Save", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *bookingAppImpl) RateBooking(ctx context.Context, userID, bookingID string, req *model.RateBookingRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return err
	}

	if booking.Status != constant.BookingStatusCompleted {
		return cerr.SetCustomError(constant.ErrInvalidState)
	}

	booking.Rating = req.Rating
	booking.Review = req.Review
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logger.Error("[RateBooking] err bookingRepo.Save", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	// Roll the rating into the companion aggregate; best-effort
	if booking.AssignedCompanionID != "" {
		s.applyCompanionRating(ctx, booking.AssignedCompanionID, req.Rating)
	}
	return nil
}

func (s *bookingAppImpl) applyCompanionRating(ctx context.Context, companionID string, rating int) {
	comp, err := s.companionRepo.Get(ctx, &model.CompanionFilter{ID: companionID})
	if err != nil || comp == nil {
		logger.Warn("[RateBooking] companion lookup for rating aggregate failed", zap.String("companion_id", companionID))
		return
	}
	newCount := comp.RatingCount + 1
	newAvg := (comp.RatingAvg*float64(comp.RatingCount) + float64(rating)) / float64(newCount)
	if err := s.companionRepo.UpdateRating(ctx, companionID, newAvg, newCount); err != nil {
		logger.Warn("[RateBooking] err companionRepo.UpdateRating", zap.String("error", err.Error()))
	}
}

func (s *bookingAppImpl) GetBookingStats(ctx context.Context, userID string) (*model.BookingStats, error) {
	stats, err := s.bookingRepo.Stats(ctx, userID)
	if err != nil {
		logger.Error("[GetBookingStats] err bookingRepo.Stats", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return stats, nil
}

// ownedBooking loads a booking and verifies ownership.
func (s *bookingAppImpl) ownedBooking(ctx context.Context, userID, bookingID string) (*model.BookingEntity, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("[ownedBooking] err bookingRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if booking == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	if booking.UserID != userID {
		return nil, cerr.SetCustomError(constant.ErrForbidden)
	}
	return booking, nil
}
