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
	treatmentMocks "serenity/internal/domains/treatment/mocks"
	"serenity/internal/domains/treatment/model"
	"serenity/internal/domains/treatment/model/dto"
	"serenity/internal/domains/treatment/service"
	"serenity/shared/cache"
	cacheMocks "serenity/shared/cache/mocks"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	"serenity/shared/failure"
	gModel "serenity/shared/model"
)

func newTreatmentService(t *testing.T) (service.Treatment, *treatmentMocks.MockTreatment, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := treatmentMocks.NewMockTreatment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestTreatmentService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTreatmentRequest
		setupMock func(repo *treatmentMocks.MockTreatment, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateTreatmentRequest{
				Name:            "Hot Stone Massage",
				Price:           350000,
				DurationMinutes: 90,
			},
			setupMock: func(repo *treatmentMocks.MockTreatment, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "repository error",
			req: dto.CreateTreatmentRequest{
				Name:            "Hot Stone Massage",
				Price:           350000,
				DurationMinutes: 90,
			},
			setupMock: func(repo *treatmentMocks.MockTreatment, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newTreatmentService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
			err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTreatmentService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTreatmentService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Treatment{
			ID:              "treatment-1",
			Name:            "Swedish Massage",
			Price:           250000,
			DurationMinutes: 60,
			Active:          true,
			Metadata: gModel.Metadata{
				CreatedAt:  time.Now(),
				ModifiedAt: time.Now(),
			},
		}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "treatment-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "Swedish Massage", res.Name)
		assert.Equal(t, 250000, res.Price)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTreatmentService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Treatment{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestTreatmentService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newTreatmentService(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Treatment{
		{ID: "treatment-1", Name: "Swedish Massage", Price: 250000},
		{ID: "treatment-2", Name: "Hot Stone Massage", Price: 350000},
	}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), params, filter)

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Treatments, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
}

func TestTreatmentService_Update(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newTreatmentService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateTreatmentRequest{Price: 300000}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("successful update", func(t *testing.T) {
		svc, mockRepo, mockCache := newTreatmentService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(context.Background(), dto.UpdateTreatmentRequest{Price: 300000}, "treatment-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestTreatmentService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newTreatmentService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("successful delete", func(t *testing.T) {
		svc, mockRepo, mockCache := newTreatmentService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(context.Background(), "treatment-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
