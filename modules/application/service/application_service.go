package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"work-exchange-api/core/constants"
	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/params"
	"work-exchange-api/core/utils"
	"work-exchange-api/modules/application/dto"
	"work-exchange-api/modules/application/entity"
	"work-exchange-api/modules/application/intake"
	"work-exchange-api/modules/application/mapper"
	"work-exchange-api/modules/application/repository"
	"work-exchange-api/modules/application/workflow"
	notificationDto "work-exchange-api/modules/notification/dto"
	oppEntity "work-exchange-api/modules/opportunity/entity"
	"work-exchange-api/modules/opportunity/lifecycle"

	"github.com/google/uuid"
)

const (
	SubmitSuccessMessage = "Application submitted."

	referencePrefix  = "APP"
	maxMessageLength = 5000
	previewLength    = 120

	staleStatusMessage = "the application changed status in the meantime, reload and try again"
)

// Submit runs the intake pipeline: normalize, validate, check the listing
// and slot, reject duplicates, then create the PENDING application. Counter
// and notification writes after the insert are best-effort.
func (s *ApplicationService) Submit(ctx context.Context, actor coreEntity.Actor, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, string, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !s.allowSubmission(ctx, actor.ID) {
		return nil, "", errors.NewAppError(errors.ErrTooManyRequests, "too many applications, try again in a minute", nil)
	}

	details, warnings := intake.Normalize(req.Details)
	for _, w := range warnings {
		logger.Warn("ApplicationService:Submit:Normalize", "warning", w, "applicant_id", actor.ID)
	}
	opportunityID := strings.TrimSpace(req.OpportunityID)
	if appErr := intake.Validate(opportunityID, &details); appErr != nil {
		return nil, "", appErr
	}

	opp, err := s.opportunities.GetByID(ctx, utils.ToUUID(opportunityID))
	if err != nil {
		return nil, "", errors.NewAppError(errors.ErrGetFailed, "get opportunity failed", err)
	}
	if opp == nil || opp.Status == lifecycle.StatusDeleted {
		return nil, "", errors.NewFieldError(errors.ErrNotFound, "opportunity_id", "opportunity not found")
	}
	if opp.Status != lifecycle.StatusActive {
		return nil, "", errors.NewAppError(errors.ErrOpportunityNotAccepting,
			"this listing is "+lifecycle.Describe(opp.Status).Label+" and not accepting applications", nil)
	}

	var timeSlotID *string
	if id := strings.TrimSpace(req.TimeSlotID); id != "" {
		slot, ok := opp.TimeSlots.Find(id)
		if !ok {
			return nil, "", errors.NewFieldError(errors.ErrNotFound, "time_slot_id", "time slot not found")
		}
		if appErr := intake.CheckSlot(slot, details); appErr != nil {
			return nil, "", appErr
		}
		timeSlotID = &id
	}

	hostID, appErr := resolveHost(req.HostID, opp)
	if appErr != nil {
		return nil, "", appErr
	}

	release, appErr := s.lockTuple(ctx, actor.ID, opp.ID, timeSlotID)
	if appErr != nil {
		return nil, "", appErr
	}
	defer release()

	exists, err := s.repo.ExistsForTuple(ctx, actor.ID, opp.ID, timeSlotID)
	if err != nil {
		return nil, "", errors.NewAppError(errors.ErrGetFailed, "check existing application failed", err)
	}
	if exists {
		return nil, "", duplicateError()
	}

	app := &entity.Application{
		ReferenceCode: utils.GenerateReferenceCode(referencePrefix),
		ApplicantID:   actor.ID,
		OpportunityID: opp.ID,
		HostID:        hostID,
		TimeSlotID:    timeSlotID,
		Status:        workflow.StatusPending,
		Details:       details,
		Communications: entity.Communications{
			Messages: []entity.Message{},
		},
	}
	app.ID = uuid.New()

	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", duplicateError()
		}
		return nil, "", errors.NewAppError(errors.ErrCreateFailed, "create application failed", err)
	}

	slotID := ""
	if timeSlotID != nil {
		slotID = *timeSlotID
	}
	bestEffort(ctx, "ApplicationService:Submit:IncrementCounters", func(ctx context.Context) error {
		return s.opportunities.IncrementApplicationCounters(ctx, opp.ID, slotID)
	})
	if s.queue != nil {
		task := notificationDto.ApplicationCreatedTask{
			ApplicationID:    app.ID,
			ReferenceCode:    app.ReferenceCode,
			OpportunityID:    opp.ID,
			OpportunityTitle: opp.Title,
			HostID:           hostID,
			ApplicantID:      actor.ID,
		}
		bestEffort(ctx, "ApplicationService:Submit:Notify", func(ctx context.Context) error {
			return s.queue.Enqueue(ctx, constants.TaskNotifyApplicationCreated, task)
		})
	}

	logger.Info("ApplicationService:Submit:Done", "id", app.ID, "reference_code", app.ReferenceCode, "opportunity_id", opp.ID, "applicant_id", actor.ID)
	return &dto.SubmitApplicationResponse{ID: app.ID, ReferenceCode: app.ReferenceCode}, SubmitSuccessMessage, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) (*dto.ApplicationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	app, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	side, ok := app.SideOf(actor.ID)
	if !ok && !actor.IsAdmin() {
		return nil, errors.NewAppError(errors.ErrForbidden, "you are not a party to this application", nil)
	}
	return mapper.ToApplicationResponse(app, side), nil
}

// Review moves the application through the workflow on behalf of the host
// or an administrator and tells the applicant.
func (s *ApplicationService) Review(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.ReviewApplicationRequest) (*dto.ReviewApplicationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if strings.TrimSpace(req.Status) == "" {
		return nil, errors.NewFieldError(errors.ErrValidation, "status", "status is required")
	}
	target, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return nil, errors.NewFieldError(errors.ErrInvalidTransition, "status", err.Error())
	}

	app, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	result, appErr := workflow.Review(app.Subject(), target, actor, req.StatusNote)
	if appErr != nil {
		return nil, appErr
	}

	ok, err := s.repo.UpdateStatus(ctx, app.ID, result.From, result.Status, result.Note)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update application status failed", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidTransition, staleStatusMessage, nil)
	}

	if s.queue != nil {
		task := notificationDto.ApplicationReviewedTask{
			ApplicationID: app.ID,
			ReferenceCode: app.ReferenceCode,
			ApplicantID:   app.ApplicantID,
			Status:        string(result.Status),
			StatusNote:    result.Note,
		}
		bestEffort(ctx, "ApplicationService:Review:Notify", func(ctx context.Context) error {
			return s.queue.Enqueue(ctx, constants.TaskNotifyApplicationReviewed, task)
		})
	}

	logger.Info("ApplicationService:Review:Done", "id", app.ID, "from", result.From, "to", result.Status, "actor_id", actor.ID)
	return &dto.ReviewApplicationResponse{
		ID:         app.ID,
		FromStatus: result.From,
		Status:     result.Status,
		StatusNote: result.Note,
		Message:    result.Message,
	}, nil
}

// SendMessage appends to the thread. Only the applicant and the host take
// part in it.
func (s *ApplicationService) SendMessage(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, errors.NewFieldError(errors.ErrValidation, "body", "body is required")
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return nil, errors.NewFieldError(errors.ErrValidation, "body", "body is too long")
	}

	app, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	side, ok := app.SideOf(actor.ID)
	if !ok {
		return nil, errors.NewAppError(errors.ErrForbidden, "you are not a party to this application", nil)
	}
	recipient, recipientID := entity.SideHost, app.HostID
	if side == entity.SideHost {
		recipient, recipientID = entity.SideApplicant, app.ApplicantID
	}

	msg := entity.Message{
		ID:         uuid.New(),
		SenderID:   actor.ID,
		SenderSide: side,
		Body:       body,
		SentAt:     time.Now().UTC(),
	}
	ok, err := s.repo.AppendMessage(ctx, app.ID, msg, recipient)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "send message failed", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "application not found", nil)
	}

	if s.queue != nil {
		task := notificationDto.ApplicationMessageTask{
			ApplicationID: app.ID,
			ReferenceCode: app.ReferenceCode,
			SenderID:      actor.ID,
			RecipientID:   recipientID,
			Preview:       preview(body),
		}
		bestEffort(ctx, "ApplicationService:SendMessage:Notify", func(ctx context.Context) error {
			return s.queue.Enqueue(ctx, constants.TaskNotifyApplicationMessage, task)
		})
	}

	return &dto.MessageResponse{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		SenderSide: msg.SenderSide,
		Body:       msg.Body,
		SentAt:     msg.SentAt,
	}, nil
}

func (s *ApplicationService) MarkRead(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	app, appErr := s.load(ctx, id)
	if appErr != nil {
		return appErr
	}
	side, ok := app.SideOf(actor.ID)
	if !ok {
		return errors.NewAppError(errors.ErrForbidden, "you are not a party to this application", nil)
	}
	if err := s.repo.MarkRead(ctx, app.ID, side); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "mark messages read failed", err)
	}
	return nil
}

func (s *ApplicationService) ListMine(ctx context.Context, actor coreEntity.Actor, params params.QueryParams) (*dto.PaginatedApplicationResponse, *errors.AppError) {
	filter := repository.ListFilter{ApplicantID: actor.ID}
	if appErr := applyStatus(&filter, params.Status); appErr != nil {
		return nil, appErr
	}
	return s.list(ctx, filter, params, entity.SideApplicant)
}

// ListReceived lists applications to the caller's listings, optionally for
// one listing only.
func (s *ApplicationService) ListReceived(ctx context.Context, actor coreEntity.Actor, opportunityID string, params params.QueryParams) (*dto.PaginatedApplicationResponse, *errors.AppError) {
	filter := repository.ListFilter{HostID: actor.ID}
	if opportunityID != "" {
		id, ok := utils.ParseUUID(opportunityID)
		if !ok {
			return nil, errors.NewFieldError(errors.ErrInvalidInput, "opportunity_id", "opportunity_id must be a valid id")
		}
		filter.OpportunityID = id
	}
	if appErr := applyStatus(&filter, params.Status); appErr != nil {
		return nil, appErr
	}
	return s.list(ctx, filter, params, entity.SideHost)
}

func (s *ApplicationService) AdminList(ctx context.Context, params params.QueryParams) (*dto.PaginatedApplicationResponse, *errors.AppError) {
	filter := repository.ListFilter{}
	if appErr := applyStatus(&filter, params.Status); appErr != nil {
		return nil, appErr
	}
	return s.list(ctx, filter, params, "")
}

func (s *ApplicationService) list(ctx context.Context, filter repository.ListFilter, params params.QueryParams, viewer entity.Side) (*dto.PaginatedApplicationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("ApplicationService:List:Request", "applicant_id", filter.ApplicantID, "host_id", filter.HostID, "status", filter.Status, "page_number", params.PageNumber, "page_size", params.PageSize)
	page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get applications failed", err)
	}
	return mapper.ToApplicationPaginationResponse(page, viewer), nil
}

func (s *ApplicationService) load(ctx context.Context, id uuid.UUID) (*entity.Application, *errors.AppError) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get application failed", err)
	}
	if app == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "application not found", nil)
	}
	return app, nil
}

// allowSubmission applies the per-applicant rate limit. Redis failures
// let the request through.
func (s *ApplicationService) allowSubmission(ctx context.Context, applicantID uuid.UUID) bool {
	if s.cache == nil {
		return true
	}
	allowed, err := s.cache.Allow(ctx, constants.RedisKeyApplyRateLimit+applicantID.String(), constants.ApplyRateLimit, constants.ApplyRateLimitWindow)
	if err != nil {
		logger.Warn("ApplicationService:allowSubmission:Error", "error", err, "applicant_id", applicantID)
		return true
	}
	return allowed
}

// lockTuple serializes submissions for one (applicant, opportunity, slot)
// tuple. Without redis the unique index still rejects the loser.
func (s *ApplicationService) lockTuple(ctx context.Context, applicantID, opportunityID uuid.UUID, timeSlotID *string) (func(), *errors.AppError) {
	noop := func() {}
	if s.cache == nil {
		return noop, nil
	}
	key := constants.RedisKeyApplyLock + applicantID.String() + ":" + opportunityID.String()
	if timeSlotID != nil {
		key += ":" + *timeSlotID
	}
	token := uuid.NewString()
	acquired, err := s.cache.AcquireLock(ctx, key, token, constants.ApplyLockTTL)
	if err != nil {
		logger.Warn("ApplicationService:lockTuple:Error", "error", err, "key", key)
		return noop, nil
	}
	if !acquired {
		return nil, errors.NewAppError(errors.ErrDuplicateApplication, "an application for this listing is already being submitted", nil)
	}
	return func() {
		if err := s.cache.ReleaseLock(context.WithoutCancel(ctx), key, token); err != nil {
			logger.Warn("ApplicationService:lockTuple:Release", "error", err, "key", key)
		}
	}, nil
}

// resolveHost takes the listing's host unless the caller named one, which
// must then agree with the listing.
func resolveHost(raw string, opp *oppEntity.Opportunity) (uuid.UUID, *errors.AppError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return opp.HostID, nil
	}
	id, ok := utils.ParseUUID(raw)
	if !ok || id != opp.HostID {
		return uuid.Nil, errors.NewFieldError(errors.ErrValidation, "host_id", "host_id does not match the listing's host")
	}
	return id, nil
}

func applyStatus(filter *repository.ListFilter, raw string) *errors.AppError {
	if raw == "" {
		return nil
	}
	status, err := workflow.ParseStatus(raw)
	if err != nil {
		return errors.NewFieldError(errors.ErrInvalidInput, "status", err.Error())
	}
	filter.Status = status
	return nil
}

// bestEffort runs a follow-up write whose failure is logged and never
// reaches the caller. It survives request cancellation.
func bestEffort(ctx context.Context, step string, fn func(ctx context.Context) error) {
	if err := fn(context.WithoutCancel(ctx)); err != nil {
		logger.Error(step, "error", err)
	}
}

func duplicateError() *errors.AppError {
	return errors.NewAppError(errors.ErrDuplicateApplication, "you have already applied to this listing for this time slot", nil)
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewLength {
		return body
	}
	return string([]rune(body)[:previewLength]) + "…"
}
