package mapper

import (
	"strings"

	"work-exchange-api/modules/opportunity/dto"
	"work-exchange-api/modules/opportunity/entity"
	"work-exchange-api/modules/opportunity/lifecycle"

	"github.com/google/uuid"
)

// ToOpportunityEntity maps the editable content of req. Status, host and
// counters are owned by the service.
func ToOpportunityEntity(req *dto.OpportunityRequest) *entity.Opportunity {
	return &entity.Opportunity{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Type:         strings.TrimSpace(req.Type),
		HasTimeSlots: req.HasTimeSlots,
		TimeSlots:    ToTimeSlots(req.TimeSlots, nil),
		Location:     ToLocation(req.Location),
	}
}

// ToTimeSlots maps requested slots, carrying the counters of existing
// slots with the same id and assigning ids to new ones.
func ToTimeSlots(reqs []dto.TimeSlotRequest, existing entity.TimeSlots) entity.TimeSlots {
	slots := make(entity.TimeSlots, 0, len(reqs))
	for _, r := range reqs {
		slot := entity.TimeSlot{
			ID:              strings.TrimSpace(r.ID),
			StartDate:       strings.TrimSpace(r.StartDate),
			EndDate:         strings.TrimSpace(r.EndDate),
			DefaultCapacity: r.DefaultCapacity,
			MinimumStay:     r.MinimumStay,
			MaximumStay:     r.MaximumStay,
			Status:          entity.SlotStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		}
		if prev, ok := existing.Find(slot.ID); ok && slot.ID != "" {
			slot.AppliedCount = prev.AppliedCount
			slot.ConfirmedCount = prev.ConfirmedCount
			if slot.Status == "" {
				slot.Status = prev.Status
			}
		} else if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.Status == "" {
			slot.Status = entity.SlotOpen
		}
		slots = append(slots, slot)
	}
	return slots
}

func ToLocation(req dto.LocationRequest) entity.Location {
	return entity.Location{
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		Region:    strings.TrimSpace(req.Region),
		Country:   strings.TrimSpace(req.Country),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
}

func ToOpportunityResponse(e *entity.Opportunity) *dto.OpportunityResponse {
	slots := make([]dto.TimeSlotResponse, len(e.TimeSlots))
	for i, s := range e.TimeSlots {
		slots[i] = dto.TimeSlotResponse{
			ID:              s.ID,
			StartDate:       s.StartDate,
			EndDate:         s.EndDate,
			DefaultCapacity: s.DefaultCapacity,
			MinimumStay:     s.MinimumStay,
			MaximumStay:     s.MaximumStay,
			AppliedCount:    s.AppliedCount,
			ConfirmedCount:  s.ConfirmedCount,
			Status:          string(s.Status),
		}
	}
	return &dto.OpportunityResponse{
		ID:           e.ID,
		HostID:       e.HostID,
		Title:        e.Title,
		Slug:         e.Slug,
		Description:  e.Description,
		Type:         e.Type,
		Status:       e.Status,
		StatusNote:   e.StatusNote,
		StatusLabel:  lifecycle.Describe(e.Status).Label,
		CanEdit:      lifecycle.CanEditOpportunity(e.Status),
		HasTimeSlots: e.HasTimeSlots,
		TimeSlots:    slots,
		Location: dto.LocationRequest{
			Address:   e.Location.Address,
			City:      e.Location.City,
			Region:    e.Location.Region,
			Country:   e.Location.Country,
			Latitude:  e.Location.Latitude,
			Longitude: e.Location.Longitude,
		},
		Stats: dto.StatsResponse{
			Views:        e.Stats.Views,
			Applications: e.Stats.Applications,
			Bookmarks:    e.Stats.Bookmarks,
		},
		PublishedAt: e.PublishedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToOpportunityPaginationResponse(e *entity.PaginatedOpportunity) *dto.PaginatedOpportunityResponse {
	if e == nil {
		return &dto.PaginatedOpportunityResponse{Items: []dto.OpportunityResponse{}}
	}
	items := make([]dto.OpportunityResponse, len(e.Items))
	for i := range e.Items {
		items[i] = *ToOpportunityResponse(&e.Items[i])
	}
	return &dto.PaginatedOpportunityResponse{
		Items:      items,
		TotalItems: e.TotalItems,
		TotalPages: e.TotalPages(),
		PageNumber: e.PageNumber,
		PageSize:   e.PageSize,
	}
}
