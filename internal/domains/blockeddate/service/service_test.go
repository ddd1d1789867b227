package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"serenity/config"
	"serenity/infras/otel/mocks"
	blockeddateMocks "serenity/internal/domains/blockeddate/mocks"
	"serenity/internal/domains/blockeddate/model/dto"
	"serenity/internal/domains/blockeddate/service"
	cacheMocks "serenity/shared/cache/mocks"
	"serenity/shared/constant"
	"serenity/shared/failure"
)

func newBlockedDateService(t *testing.T) (service.BlockedDate, *blockeddateMocks.MockBlockedDate, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := blockeddateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestBlockedDateService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBlockedDateRequest
		setupMock func(repo *blockeddateMocks.MockBlockedDate, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateBlockedDateRequest{Date: "2025-12-25", Reason: "holiday"},
			setupMock: func(repo *blockeddateMocks.MockBlockedDate, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "duplicate date",
			req:  dto.CreateBlockedDateRequest{Date: "2025-12-25", Reason: "holiday"},
			setupMock: func(repo *blockeddateMocks.MockBlockedDate, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "invalid date format",
			req:  dto.CreateBlockedDateRequest{Date: "25-12-2025"},
			setupMock: func(repo *blockeddateMocks.MockBlockedDate, cache *cacheMocks.MockRedisCache) {
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "repository error",
			req:  dto.CreateBlockedDateRequest{Date: "2025-12-25"},
			setupMock: func(repo *blockeddateMocks.MockBlockedDate, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newBlockedDateService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
			err := svc.Create(ctx, tt.req)

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

func TestBlockedDateService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newBlockedDateService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("successful delete flushes availability", func(t *testing.T) {
		svc, mockRepo, mockCache := newBlockedDateService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), constant.CachePrefixAvailability+"*").Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(context.Background(), "blocked-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
