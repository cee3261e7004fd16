package service

import (
	"context"

	"work-exchange-api/core/cache"
	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/params"
	"work-exchange-api/core/queue"
	"work-exchange-api/modules/opportunity/dto"
	"work-exchange-api/modules/opportunity/repository"

	"github.com/google/uuid"
)

type OpportunityServiceInterface interface {
	Create(ctx context.Context, actor coreEntity.Actor, req *dto.OpportunityRequest) (*dto.OpportunityResponse, *errors.AppError)
	GetByID(ctx context.Context, actor *coreEntity.Actor, id uuid.UUID) (*dto.OpportunityResponse, *errors.AppError)
	Update(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, string, *errors.AppError)
	Transition(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.TransitionRequest) (*dto.TransitionResponse, *errors.AppError)
	Actions(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) (*dto.StatusActionsResponse, *errors.AppError)
	Delete(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) *errors.AppError
	ListPublic(ctx context.Context, params params.QueryParams) (*dto.PaginatedOpportunityResponse, *errors.AppError)
	ListMine(ctx context.Context, actor coreEntity.Actor, params params.QueryParams) (*dto.PaginatedOpportunityResponse, *errors.AppError)
	AdminList(ctx context.Context, params params.QueryParams) (*dto.PaginatedOpportunityResponse, *errors.AppError)
}

type OpportunityService struct {
	repo  repository.OpportunityRepositoryInterface
	cache cache.Cache
	queue queue.Enqueuer
}

func NewOpportunityService(repo repository.OpportunityRepositoryInterface, cache cache.Cache, queue queue.Enqueuer) *OpportunityService {
	return &OpportunityService{
		repo:  repo,
		cache: cache,
		queue: queue,
	}
}
