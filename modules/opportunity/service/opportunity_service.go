package service

import (
	"context"
	"strings"
	"time"

	"work-exchange-api/core/constants"
	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/params"
	notificationDto "work-exchange-api/modules/notification/dto"
	"work-exchange-api/modules/opportunity/dto"
	"work-exchange-api/modules/opportunity/entity"
	"work-exchange-api/modules/opportunity/lifecycle"
	"work-exchange-api/modules/opportunity/mapper"
	"work-exchange-api/modules/opportunity/repository"
	"work-exchange-api/modules/opportunity/validator"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const staleStatusMessage = "the listing changed status while you were editing it, reload and try again"

func (s *OpportunityService) Create(ctx context.Context, actor coreEntity.Actor, req *dto.OpportunityRequest) (*dto.OpportunityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	o := mapper.ToOpportunityEntity(req)
	if result := validator.ValidateOpportunity(o); result.HasError() {
		return nil, result.AppError(errors.ErrValidation)
	}

	o.ID = uuid.New()
	o.HostID = actor.ID
	o.Status = lifecycle.StatusDraft
	o.Slug = makeSlug(o.Title, o.ID)
	o.StatusHistory = entity.StatusHistory{}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create opportunity failed", err)
	}
	logger.Info("OpportunityService:Create:Done", "id", o.ID, "host_id", o.HostID)
	return mapper.ToOpportunityResponse(o), nil
}

// GetByID hides listings that are not public from everyone but their host
// and administrators. Public reads are counted as views.
func (s *OpportunityService) GetByID(ctx context.Context, actor *coreEntity.Actor, id uuid.UUID) (*dto.OpportunityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	o, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	privileged := actor != nil && (actor.Owns(o.HostID) || actor.IsAdmin())
	if !privileged {
		if !isPublic(o.Status) {
			return nil, errors.NewAppError(errors.ErrNotFound, "opportunity not found", nil)
		}
		o.Stats.Views += s.recordView(ctx, o.ID)
	}
	return mapper.ToOpportunityResponse(o), nil
}

// Update saves content, optionally running one status action in the same
// write. The action decides legality; the edit permission of the current
// status decides which fields may change.
func (s *OpportunityService) Update(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, string, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	current, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, "", appErr
	}

	target, appErr := parseTarget(req.TargetStatus, false)
	if appErr != nil {
		return nil, "", appErr
	}
	result, appErr := lifecycle.AttemptTransition(current.Subject(), target, actor, req.Reason)
	if appErr != nil {
		return nil, "", appErr
	}

	next := mapper.ToOpportunityEntity(&req.OpportunityRequest)
	next.TimeSlots = mapper.ToTimeSlots(req.TimeSlots, current.TimeSlots)
	next.ID = current.ID
	next.HostID = current.HostID
	next.Status = current.Status
	next.StatusNote = current.StatusNote
	next.Stats = current.Stats
	next.Slug = current.Slug
	if next.Title != current.Title {
		next.Slug = makeSlug(next.Title, next.ID)
	}

	switch lifecycle.CanEditOpportunity(current.Status) {
	case lifecycle.EditNone:
		return nil, "", errors.NewAppError(errors.ErrOpportunityNotEditable,
			"listings in status "+string(current.Status)+" cannot be edited", nil)
	case lifecycle.EditLimited:
		if v := validator.ValidateLimitedEdit(current, next); v.HasError() {
			return nil, "", v.AppError(errors.ErrOpportunityNotEditable)
		}
	}
	if v := validator.ValidateOpportunity(next); v.HasError() {
		return nil, "", v.AppError(errors.ErrValidation)
	}
	if result.Transition && result.Status == lifecycle.StatusPending {
		if v := validator.ValidateForSubmission(next); v.HasError() {
			return nil, "", v.AppError(errors.ErrValidation)
		}
	}

	var change *entity.StatusChange
	if result.Transition {
		c := newChange(result, actor)
		change = &c
	}
	ok, err := s.repo.Save(ctx, next, current.Status, change)
	if err != nil {
		return nil, "", errors.NewAppError(errors.ErrUpdateFailed, "update opportunity failed", err)
	}
	if !ok {
		return nil, "", errors.NewAppError(errors.ErrInvalidTransition, staleStatusMessage, nil)
	}

	if change != nil {
		next.Status = change.To
		next.StatusNote = change.Reason
		s.notifyStatusChange(ctx, next, result, actor)
	}
	logger.Info("OpportunityService:Update:Done", "id", id, "status", next.Status, "action", result.Action.Key)
	return mapper.ToOpportunityResponse(next), result.Message, nil
}

// Transition runs the transition validator and persists the new status,
// reason and history entry. Submissions for review are checked for
// completeness first.
func (s *OpportunityService) Transition(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.TransitionRequest) (*dto.TransitionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	o, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	target, appErr := parseTarget(req.TargetStatus, true)
	if appErr != nil {
		return nil, appErr
	}
	result, appErr := lifecycle.AttemptTransition(o.Subject(), target, actor, req.Reason)
	if appErr != nil {
		logger.Info("OpportunityService:Transition:Rejected", "id", id, "from", o.Status, "to", target, "code", appErr.Code)
		return nil, appErr
	}
	if result.Status == lifecycle.StatusPending {
		if v := validator.ValidateForSubmission(o); v.HasError() {
			return nil, v.AppError(errors.ErrValidation)
		}
	}

	ok, err := s.repo.UpdateStatus(ctx, o.ID, o.Status, result.Reason, newChange(result, actor))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update opportunity status failed", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidTransition, staleStatusMessage, nil)
	}

	s.notifyStatusChange(ctx, o, result, actor)
	logger.Info("OpportunityService:Transition:Done", "id", id, "from", result.From, "to", result.Status, "actor_id", actor.ID)
	return &dto.TransitionResponse{
		ID:         o.ID,
		FromStatus: result.From,
		Status:     result.Status,
		Reason:     result.Reason,
		Message:    result.Message,
	}, nil
}

func (s *OpportunityService) Actions(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) (*dto.StatusActionsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	o, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !actor.Owns(o.HostID) && !actor.IsAdmin() {
		return nil, errors.NewAppError(errors.ErrForbidden, "you are not allowed to manage this listing", nil)
	}

	resp := &dto.StatusActionsResponse{
		ID:               o.ID,
		Status:           lifecycle.Describe(o.Status),
		CanEdit:          lifecycle.CanEditOpportunity(o.Status),
		SecondaryActions: []lifecycle.Action{},
		NextStates:       []lifecycle.Status{},
		ReasonConfigs:    map[lifecycle.Status]lifecycle.ReasonConfig{},
	}
	for _, a := range lifecycle.AvailableActions(o.Subject(), actor) {
		if a.Primary && resp.PrimaryAction == nil {
			action := a
			resp.PrimaryAction = &action
		} else {
			resp.SecondaryActions = append(resp.SecondaryActions, a)
		}
		if !a.IsTransition() {
			continue
		}
		if a.Target != o.Status {
			resp.NextStates = append(resp.NextStates, a.Target)
		}
		if cfg := lifecycle.GetReasonConfig(o.Status, a.Target); cfg != nil {
			resp.ReasonConfigs[a.Target] = *cfg
		}
	}
	return resp, nil
}

// Delete soft-deletes the listing from any live status.
func (s *OpportunityService) Delete(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	o, appErr := s.load(ctx, id)
	if appErr != nil {
		return appErr
	}
	if !actor.Owns(o.HostID) && !actor.IsAdmin() {
		return errors.NewAppError(errors.ErrForbidden, "you are not allowed to delete this listing", nil)
	}

	change := entity.StatusChange{
		From:      o.Status,
		To:        lifecycle.StatusDeleted,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		ChangedAt: time.Now().UTC(),
	}
	ok, err := s.repo.UpdateStatus(ctx, o.ID, o.Status, o.StatusNote, change)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete opportunity failed", err)
	}
	if !ok {
		return errors.NewAppError(errors.ErrInvalidTransition, staleStatusMessage, nil)
	}
	logger.Info("OpportunityService:Delete:Done", "id", id, "actor_id", actor.ID)
	return nil
}

func (s *OpportunityService) ListPublic(ctx context.Context, params params.QueryParams) (*dto.PaginatedOpportunityResponse, *errors.AppError) {
	return s.list(ctx, repository.ListFilter{Status: lifecycle.StatusActive}, params)
}

func (s *OpportunityService) ListMine(ctx context.Context, actor coreEntity.Actor, params params.QueryParams) (*dto.PaginatedOpportunityResponse, *errors.AppError) {
	filter := repository.ListFilter{HostID: actor.ID, ExcludeDeleted: true}
	if params.Status != "" {
		status, err := lifecycle.ParseStatus(params.Status)
		if err != nil {
			return nil, errors.NewFieldError(errors.ErrInvalidInput, "status", err.Error())
		}
		filter.Status = status
	}
	return s.list(ctx, filter, params)
}

func (s *OpportunityService) AdminList(ctx context.Context, params params.QueryParams) (*dto.PaginatedOpportunityResponse, *errors.AppError) {
	filter := repository.ListFilter{}
	if params.Status != "" {
		status, err := lifecycle.ParseStatus(params.Status)
		if err != nil {
			return nil, errors.NewFieldError(errors.ErrInvalidInput, "status", err.Error())
		}
		filter.Status = status
	}
	return s.list(ctx, filter, params)
}

func (s *OpportunityService) list(ctx context.Context, filter repository.ListFilter, params params.QueryParams) (*dto.PaginatedOpportunityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("OpportunityService:List:Request", "status", filter.Status, "host_id", filter.HostID, "page_number", params.PageNumber, "page_size", params.PageSize, "search", params.Search)
	page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get opportunities failed", err)
	}
	return mapper.ToOpportunityPaginationResponse(page), nil
}

// load returns the listing or NotFound. Deleted listings are not found.
func (s *OpportunityService) load(ctx context.Context, id uuid.UUID) (*entity.Opportunity, *errors.AppError) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get opportunity failed", err)
	}
	if o == nil || o.Status == lifecycle.StatusDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "opportunity not found", nil)
	}
	return o, nil
}

// recordView buffers a view in redis and returns the number of views not
// yet written to Postgres. Failures only cost the count.
func (s *OpportunityService) recordView(ctx context.Context, id uuid.UUID) int64 {
	if s.cache == nil {
		return 0
	}
	key := constants.RedisKeyOpportunityViews + id.String()
	pending, err := s.cache.Incr(ctx, key)
	if err != nil {
		logger.Warn("OpportunityService:recordView:Incr", "error", err, "id", id)
		return 0
	}
	if pending < constants.ViewFlushThreshold {
		return pending
	}
	if err := s.repo.AddViews(ctx, id, pending); err != nil {
		logger.Warn("OpportunityService:recordView:Flush", "error", err, "id", id)
		return pending
	}
	if _, err := s.cache.IncrBy(ctx, key, -pending); err != nil {
		logger.Warn("OpportunityService:recordView:Reset", "error", err, "id", id)
	}
	return pending
}

func (s *OpportunityService) notifyStatusChange(ctx context.Context, o *entity.Opportunity, result *lifecycle.Result, actor coreEntity.Actor) {
	if s.queue == nil || actor.Owns(o.HostID) {
		return
	}
	task := notificationDto.OpportunityStatusTask{
		OpportunityID: o.ID,
		HostID:        o.HostID,
		Title:         o.Title,
		FromStatus:    string(result.From),
		ToStatus:      string(result.Status),
		Reason:        result.Reason,
		Message:       result.Message,
	}
	if err := s.queue.Enqueue(ctx, constants.TaskNotifyOpportunityStatus, task); err != nil {
		logger.Error("OpportunityService:notifyStatusChange:Enqueue", "error", err, "id", o.ID)
	}
}

func newChange(result *lifecycle.Result, actor coreEntity.Actor) entity.StatusChange {
	return entity.StatusChange{
		From:      result.From,
		To:        result.Status,
		Reason:    result.Reason,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		ChangedAt: time.Now().UTC(),
	}
}

// parseTarget reads a requested target status. An empty value is a save
// without transition unless required is set.
func parseTarget(raw string, required bool) (lifecycle.Status, *errors.AppError) {
	if strings.TrimSpace(raw) == "" {
		if required {
			return lifecycle.StatusNone, errors.NewFieldError(errors.ErrValidation, "target_status", "target_status is required")
		}
		return lifecycle.StatusNone, nil
	}
	status, err := lifecycle.ParseStatus(raw)
	if err != nil {
		return lifecycle.StatusNone, errors.NewFieldError(errors.ErrInvalidTransition, "target_status", err.Error())
	}
	return status, nil
}

func isPublic(status lifecycle.Status) bool {
	return status == lifecycle.StatusActive || status == lifecycle.StatusFilled
}

func makeSlug(title string, id uuid.UUID) string {
	short := strings.SplitN(id.String(), "-", 2)[0]
	base := slug.Make(title)
	if base == "" {
		return short
	}
	return base + "-" + short
}
