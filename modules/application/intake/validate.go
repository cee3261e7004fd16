package intake

import (
	"fmt"
	"time"

	"work-exchange-api/core/errors"
	"work-exchange-api/core/utils"
	"work-exchange-api/core/validator"
	"work-exchange-api/modules/application/entity"
	oppEntity "work-exchange-api/modules/opportunity/entity"
)

const monthLayout = "2006-01"

// Validate checks the required fields of a normalized submission and fills
// in EndDate when the applicant left it out. It never touches storage.
func Validate(opportunityID string, d *entity.Details) *errors.AppError {
	v := validator.New()

	if v.Required("opportunity_id", opportunityID) {
		if _, ok := utils.ParseUUID(opportunityID); !ok {
			v.AddError("opportunity_id", "opportunity_id must be a valid id")
		}
	}
	v.Required("details.message", d.Message)
	if v.Required("details.start_date", d.StartDate) {
		v.Month("details.start_date", d.StartDate)
	}
	if d.Duration < 1 {
		v.AddError("details.duration", "details.duration must be a positive whole number of days")
	}
	if len(d.Languages) == 0 {
		v.AddError("details.languages", "at least one language is required")
	}
	if d.EndDate != "" && v.Month("details.end_date", d.EndDate) && validator.IsMonth(d.StartDate) && d.EndDate < d.StartDate {
		v.AddError("details.end_date", "details.end_date must not be before details.start_date")
	}
	if v.HasError() {
		return v.AppError(errors.ErrValidation)
	}

	if d.EndDate == "" {
		d.EndDate = EndMonth(d.StartDate, d.Duration)
	}
	return nil
}

// EndMonth is the month holding the last day of a stay of duration days
// beginning on the first of start.
func EndMonth(start string, duration int) string {
	t, err := time.Parse(monthLayout, start)
	if err != nil || duration < 1 {
		return start
	}
	return t.AddDate(0, 0, duration-1).Format(monthLayout)
}

// CheckSlot decides whether the requested stay fits the slot. Months are
// compared as YYYY-MM strings.
func CheckSlot(slot oppEntity.TimeSlot, d entity.Details) *errors.AppError {
	if slot.Status != oppEntity.SlotOpen {
		return errors.NewFieldError(errors.ErrSlotClosed, "time_slot_id",
			fmt.Sprintf("time slot is %s and not accepting applications", slot.Status))
	}
	if d.StartDate < slot.StartDate {
		return errors.NewFieldError(errors.ErrOutOfRange, "details.start_date",
			fmt.Sprintf("requested stay starts before the time slot opens in %s", slot.StartDate))
	}
	if d.EndDate > slot.EndDate {
		return errors.NewFieldError(errors.ErrOutOfRange, "details.end_date",
			fmt.Sprintf("requested stay ends after the time slot closes in %s", slot.EndDate))
	}
	if d.Duration < slot.MinimumStay {
		return errors.NewFieldError(errors.ErrOutOfRange, "details.duration",
			fmt.Sprintf("stay of %d days is shorter than the minimum stay of %d days", d.Duration, slot.MinimumStay))
	}
	if slot.MaximumStay > 0 && d.Duration > slot.MaximumStay {
		return errors.NewFieldError(errors.ErrOutOfRange, "details.duration",
			fmt.Sprintf("stay of %d days is longer than the maximum stay of %d days", d.Duration, slot.MaximumStay))
	}
	return nil
}
