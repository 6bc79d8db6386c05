package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medqueue/medqueue-go/internal/application/services"
	"github.com/medqueue/medqueue-go/internal/domain/entities"
	apperrors "github.com/medqueue/medqueue-go/pkg/errors"
)

// Mocks

type MockDirectoryClient struct {
	mock.Mock
}

func (m *MockDirectoryClient) ListHospitals(ctx context.Context) ([]entities.Hospital, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Hospital), args.Error(1)
}

func (m *MockDirectoryClient) CreateAppointment(ctx context.Context, req *entities.AppointmentRequest) (*entities.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockDirectoryClient) LookupAppointment(ctx context.Context, code string) (*entities.Appointment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockDirectoryClient) CancelAppointment(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

// stubGate is a fixed-answer auth gate.
type stubGate struct {
	authenticated bool
	phone         string
}

func (g *stubGate) IsAuthenticated(ctx context.Context) bool {
	return g.authenticated
}

func (g *stubGate) CurrentUser(ctx context.Context) (*entities.User, error) {
	if !g.authenticated {
		return nil, apperrors.NewAuthRequiredError("no signed-in user")
	}
	return &entities.User{Name: "Иван Иванов", Phone: g.phone}, nil
}

func (g *stubGate) UpdatePhone(ctx context.Context, phone string) error {
	g.phone = phone
	return nil
}

func validRequest() *entities.AppointmentRequest {
	return &entities.AppointmentRequest{
		PatientName: "Иван Иванов",
		HospitalID:  1,
		Specialty:   "Терапевт",
		Datetime:    "2024-05-01T10:00",
	}
}

// Tests

func TestBookingService_Submit(t *testing.T) {
	t.Run("successfully books and invalidates the cache", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewBookingService(directory, &stubGate{authenticated: true}, invalidator)

		req := validRequest()
		directory.On("CreateAppointment", mock.Anything, req).Return(&entities.Appointment{
			Code:          "K7M3XA",
			PatientName:   req.PatientName,
			Datetime:      req.Datetime,
			QueuePosition: 2,
		}, nil)
		invalidator.On("Invalidate", mock.Anything).Return()

		appointment, err := service.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "K7M3XA", appointment.Code)
		assert.Equal(t, "2024-05-01T10:00", appointment.Datetime)
		directory.AssertExpectations(t)
		invalidator.AssertExpectations(t)
	})

	t.Run("fails fast without a signed-in identity", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewBookingService(directory, &stubGate{authenticated: false}, invalidator)

		_, err := service.Submit(context.Background(), validRequest())

		assert.True(t, apperrors.IsAuthRequired(err))
		directory.AssertNotCalled(t, "CreateAppointment")
		invalidator.AssertNotCalled(t, "Invalidate")
	})

	t.Run("missing hospital fails locally with zero network calls", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewBookingService(directory, &stubGate{authenticated: true}, invalidator)

		req := validRequest()
		req.HospitalID = 0

		_, err := service.Submit(context.Background(), req)

		assert.True(t, apperrors.IsValidation(err))
		directory.AssertNotCalled(t, "CreateAppointment")
	})

	t.Run("missing patient name fails for the full form", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		service := services.NewBookingService(directory, &stubGate{authenticated: true}, new(MockInvalidator))

		req := validRequest()
		req.PatientName = "  "

		_, err := service.Submit(context.Background(), req)

		assert.True(t, apperrors.IsValidation(err))
		directory.AssertNotCalled(t, "CreateAppointment")
	})

	t.Run("backend validation message is surfaced verbatim", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewBookingService(directory, &stubGate{authenticated: true}, invalidator)

		req := validRequest()
		directory.On("CreateAppointment", mock.Anything, req).
			Return(nil, apperrors.NewValidationError("Нельзя записаться на прошедшее время"))

		_, err := service.Submit(context.Background(), req)

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Нельзя записаться на прошедшее время", appErr.Message)
		invalidator.AssertNotCalled(t, "Invalidate")
	})

	t.Run("transport failure becomes a generic connectivity failure", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewBookingService(directory, &stubGate{authenticated: true}, invalidator)

		req := validRequest()
		directory.On("CreateAppointment", mock.Anything, req).
			Return(nil, apperrors.NewTransportError("connection refused", nil))

		_, err := service.Submit(context.Background(), req)

		assert.True(t, apperrors.IsTransport(err))
		assert.Contains(t, err.Error(), "could not reach the booking service")
		invalidator.AssertNotCalled(t, "Invalidate")
	})

	t.Run("phone is synced back to the profile after success", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		gate := &stubGate{authenticated: true}
		service := services.NewBookingService(directory, gate, invalidator)

		req := validRequest()
		req.Phone = "+7 (777) 123-45-67"
		directory.On("CreateAppointment", mock.Anything, req).Return(&entities.Appointment{Code: "K7M3XA"}, nil)
		invalidator.On("Invalidate", mock.Anything).Return()

		_, err := service.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "+7 (777) 123-45-67", gate.phone)
	})
}

func TestBookingService_SubmitQuick(t *testing.T) {
	t.Run("fills in the guest placeholder name", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewBookingService(directory, &stubGate{authenticated: true}, invalidator)

		directory.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(r *entities.AppointmentRequest) bool {
			return r.PatientName == entities.GuestName
		})).Return(&entities.Appointment{Code: "Q2W4ER", QueuePosition: 1}, nil)
		invalidator.On("Invalidate", mock.Anything).Return()

		appointment, err := service.SubmitQuick(context.Background(), &entities.AppointmentRequest{
			HospitalID: 1,
			Specialty:  "Терапевт",
			Datetime:   "2024-05-01T10:00",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, appointment.QueuePosition)
		directory.AssertExpectations(t)
	})
}
