package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"serenity/config"
	"serenity/infras/otel/mocks"
	timeslotMocks "serenity/internal/domains/timeslot/mocks"
	"serenity/internal/domains/timeslot/model"
	"serenity/internal/domains/timeslot/model/dto"
	"serenity/internal/domains/timeslot/service"
	"serenity/shared/cache"
	cacheMocks "serenity/shared/cache/mocks"
	"serenity/shared/constant"
	"serenity/shared/failure"
)

func newTimeSlotService(t *testing.T) (service.TimeSlot, *timeslotMocks.MockTimeSlot, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := timeslotMocks.NewMockTimeSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestTimeSlotService_Create(t *testing.T) {
	req := dto.CreateTimeSlotRequest{
		Label:       "10:00",
		StartMinute: 600,
		Capacity:    3,
	}

	tests := []struct {
		name      string
		setupMock func(repo *timeslotMocks.MockTimeSlot, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *timeslotMocks.MockTimeSlot, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "duplicate label",
			setupMock: func(repo *timeslotMocks.MockTimeSlot, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			setupMock: func(repo *timeslotMocks.MockTimeSlot, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newTimeSlotService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
			err := svc.Create(ctx, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeSlotService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTimeSlotService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.TimeSlot{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestTimeSlotService_Delete(t *testing.T) {
	t.Run("deactivation removes slot from future availability only", func(t *testing.T) {
		svc, mockRepo, mockCache := newTimeSlotService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(context.Background(), "slot-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
