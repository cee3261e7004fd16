package validator

import (
	"fmt"
	"unicode/utf8"

	"work-exchange-api/core/validator"
	"work-exchange-api/modules/opportunity/entity"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 10000
)

// ValidateOpportunity checks the shape of listing content. Drafts may be
// incomplete, so presence is only enforced by ValidateForSubmission.
func ValidateOpportunity(o *entity.Opportunity) *validator.ValidationResult {
	v := validator.New()
	if utf8.RuneCountInString(o.Title) > maxTitleLength {
		v.AddError("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if utf8.RuneCountInString(o.Description) > maxDescriptionLength {
		v.AddError("description", fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	validateLocation(v, o.Location)
	validateTimeSlots(v, o.TimeSlots)
	return v
}

// ValidateForSubmission runs before a listing enters review.
func ValidateForSubmission(o *entity.Opportunity) *validator.ValidationResult {
	v := validator.New()
	v.Required("title", o.Title)
	v.Required("description", o.Description)
	v.Required("type", o.Type)
	if o.Location.City == "" && o.Location.Country == "" && o.Location.Address == "" {
		v.AddError("location", "location is required")
	}
	if o.HasTimeSlots && len(o.TimeSlots) == 0 {
		v.AddError("time_slots", "at least one time slot is required")
	}
	if v.HasError() {
		return v
	}
	return ValidateOpportunity(o)
}

// ValidateLimitedEdit rejects changes to the fields frozen once a listing
// has been published.
func ValidateLimitedEdit(current, next *entity.Opportunity) *validator.ValidationResult {
	v := validator.New()
	if next.Title != current.Title {
		v.AddError("title", "title cannot be changed on a published listing")
	}
	if next.Type != current.Type {
		v.AddError("type", "type cannot be changed on a published listing")
	}
	if next.Location != current.Location {
		v.AddError("location", "location cannot be changed on a published listing")
	}
	for _, slot := range current.TimeSlots {
		if slot.AppliedCount == 0 {
			continue
		}
		if _, ok := next.TimeSlots.Find(slot.ID); !ok {
			v.AddError("time_slots", fmt.Sprintf("time slot %s already has applications and cannot be removed", slot.ID))
		}
	}
	return v
}

func validateLocation(v *validator.ValidationResult, l entity.Location) {
	if l.Latitude < -90 || l.Latitude > 90 {
		v.AddError("location.latitude", "latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		v.AddError("location.longitude", "longitude must be between -180 and 180")
	}
}

func validateTimeSlots(v *validator.ValidationResult, slots entity.TimeSlots) {
	seen := make(map[string]bool, len(slots))
	for i, s := range slots {
		field := fmt.Sprintf("time_slots[%d]", i)
		if seen[s.ID] {
			v.AddError(field+".id", "duplicate time slot id")
		}
		seen[s.ID] = true

		startOK := v.Month(field+".start_date", s.StartDate)
		endOK := v.Month(field+".end_date", s.EndDate)
		if startOK && endOK && s.StartDate > s.EndDate {
			v.AddError(field+".end_date", "end_date must not be before start_date")
		}
		if s.DefaultCapacity < 1 {
			v.AddError(field+".default_capacity", "default_capacity must be at least 1")
		}
		if s.MinimumStay < 0 {
			v.AddError(field+".minimum_stay", "minimum_stay must not be negative")
		}
		if s.MaximumStay < 0 {
			v.AddError(field+".maximum_stay", "maximum_stay must not be negative")
		}
		if s.MaximumStay > 0 && s.MaximumStay < s.MinimumStay {
			v.AddError(field+".maximum_stay", "maximum_stay must not be less than minimum_stay")
		}
		switch s.Status {
		case entity.SlotOpen, entity.SlotClosed, entity.SlotFull:
		default:
			v.AddError(field+".status", fmt.Sprintf("unknown time slot status %q", s.Status))
		}
	}
}
