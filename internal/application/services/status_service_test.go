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

func TestStatusService_CheckStatus(t *testing.T) {
	t.Run("normalizes the code and remembers the record", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		service := services.NewStatusService(directory, new(MockInvalidator))

		record := &entities.Appointment{Code: "K7M3XA", QueuePosition: 2, EstimatedWait: 10}
		directory.On("LookupAppointment", mock.Anything, "K7M3XA").Return(record, nil)

		appointment, err := service.CheckStatus(context.Background(), "  k7m3xa ")

		require.NoError(t, err)
		assert.Equal(t, 2, appointment.QueuePosition)
		assert.Equal(t, record, service.Last())
		directory.AssertExpectations(t)
	})

	t.Run("empty code is rejected locally", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		service := services.NewStatusService(directory, new(MockInvalidator))

		_, err := service.CheckStatus(context.Background(), "   ")

		assert.True(t, apperrors.IsValidation(err))
		directory.AssertNotCalled(t, "LookupAppointment")
	})

	t.Run("not found is passed through as a normal outcome", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		service := services.NewStatusService(directory, new(MockInvalidator))

		directory.On("LookupAppointment", mock.Anything, "ZZZZZZ").
			Return(nil, apperrors.NewNotFoundError("no active reservation for code ZZZZZZ"))

		_, err := service.CheckStatus(context.Background(), "zzzzzz")

		assert.True(t, apperrors.IsNotFound(err))
		assert.Nil(t, service.Last())
	})
}

func TestStatusService_AutoCheck(t *testing.T) {
	t.Run("blank deep-link code checks nothing", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		service := services.NewStatusService(directory, new(MockInvalidator))

		appointment, err := service.AutoCheck(context.Background(), "")

		assert.NoError(t, err)
		assert.Nil(t, appointment)
		directory.AssertNotCalled(t, "LookupAppointment")
	})

	t.Run("a present code is checked once", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		service := services.NewStatusService(directory, new(MockInvalidator))

		directory.On("LookupAppointment", mock.Anything, "K7M3XA").
			Return(&entities.Appointment{Code: "K7M3XA"}, nil).Once()

		_, err := service.AutoCheck(context.Background(), "k7m3xa")

		assert.NoError(t, err)
		directory.AssertExpectations(t)
	})
}

func TestStatusService_Cancel(t *testing.T) {
	t.Run("refuses without an explicit confirmation", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewStatusService(directory, invalidator)

		err := service.Cancel(context.Background(), "K7M3XA", false)

		assert.True(t, apperrors.IsValidation(err))
		directory.AssertNotCalled(t, "CancelAppointment")
	})

	t.Run("success invalidates the cache and drops the remembered record", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewStatusService(directory, invalidator)

		directory.On("LookupAppointment", mock.Anything, "K7M3XA").
			Return(&entities.Appointment{Code: "K7M3XA", QueuePosition: 2}, nil)
		directory.On("CancelAppointment", mock.Anything, "K7M3XA").Return(nil)
		invalidator.On("Invalidate", mock.Anything).Return()

		_, err := service.CheckStatus(context.Background(), "K7M3XA")
		require.NoError(t, err)
		require.NotNil(t, service.Last())

		err = service.Cancel(context.Background(), "k7m3xa", true)

		require.NoError(t, err)
		assert.Nil(t, service.Last())
		invalidator.AssertExpectations(t)
	})

	t.Run("cancelling an unresolvable code is a failure outcome", func(t *testing.T) {
		directory := new(MockDirectoryClient)
		invalidator := new(MockInvalidator)
		service := services.NewStatusService(directory, invalidator)

		directory.On("CancelAppointment", mock.Anything, "ZZZZZZ").
			Return(apperrors.NewNotFoundError("no active reservation for code ZZZZZZ"))

		err := service.Cancel(context.Background(), "ZZZZZZ", true)

		assert.True(t, apperrors.IsNotFound(err))
		invalidator.AssertNotCalled(t, "Invalidate")
	})
}
