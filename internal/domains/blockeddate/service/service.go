package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"serenity/config"
	"serenity/infras/otel"
	"serenity/internal/domains/blockeddate/model"
	"serenity/internal/domains/blockeddate/model/dto"
	"serenity/internal/domains/blockeddate/repository"
	"serenity/shared"
	"serenity/shared/cache"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	"serenity/shared/failure"
)

const (
	cacheGetAllBlockedDate = "blockeddate:gets"
	cacheCountBlockedDate  = "blockeddate:count"
)

type BlockedDate interface {
	Create(ctx context.Context, req dto.CreateBlockedDateRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlockedDatesResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.BlockedDate
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.BlockedDate, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) BlockedDate {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlockedDateRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	blocked, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse blocked date request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, blocked); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("this date is already blocked") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create blocked date")

		return fmt.Errorf("failed to create blocked date: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlockedDatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBlockedDate, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count blocked dates")

		return res, fmt.Errorf("failed to count blocked dates: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocked dates")

		return res, fmt.Errorf("failed to get blocked dates: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blocked dates to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if blocked date exists")

		return fmt.Errorf("failed to check if blocked date exists: %w", err)
	}

	if !exist {
		return failure.NotFound("blocked date not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete blocked date")

		return fmt.Errorf("failed to delete blocked date: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBlockedDate)
		shared.InvalidateCaches(c, s.cache, cacheCountBlockedDate)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixAvailability)
	}()
}
