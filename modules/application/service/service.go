package service

import (
	"context"

	"work-exchange-api/core/cache"
	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/params"
	"work-exchange-api/core/queue"
	"work-exchange-api/modules/application/dto"
	"work-exchange-api/modules/application/repository"
	oppEntity "work-exchange-api/modules/opportunity/entity"

	"github.com/google/uuid"
)

// OpportunityStore is the slice of the opportunity repository intake needs.
type OpportunityStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*oppEntity.Opportunity, error)
	IncrementApplicationCounters(ctx context.Context, id uuid.UUID, slotID string) error
}

type ApplicationServiceInterface interface {
	Submit(ctx context.Context, actor coreEntity.Actor, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, string, *errors.AppError)
	GetByID(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) (*dto.ApplicationResponse, *errors.AppError)
	Review(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.ReviewApplicationRequest) (*dto.ReviewApplicationResponse, *errors.AppError)
	SendMessage(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, *errors.AppError)
	MarkRead(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) *errors.AppError
	ListMine(ctx context.Context, actor coreEntity.Actor, params params.QueryParams) (*dto.PaginatedApplicationResponse, *errors.AppError)
	ListReceived(ctx context.Context, actor coreEntity.Actor, opportunityID string, params params.QueryParams) (*dto.PaginatedApplicationResponse, *errors.AppError)
	AdminList(ctx context.Context, params params.QueryParams) (*dto.PaginatedApplicationResponse, *errors.AppError)
}

type ApplicationService struct {
	repo          repository.ApplicationRepositoryInterface
	opportunities OpportunityStore
	cache         cache.Cache
	queue         queue.Enqueuer
}

func NewApplicationService(repo repository.ApplicationRepositoryInterface, opportunities OpportunityStore, cache cache.Cache, queue queue.Enqueuer) *ApplicationService {
	return &ApplicationService{
		repo:          repo,
		opportunities: opportunities,
		cache:         cache,
		queue:         queue,
	}
}
