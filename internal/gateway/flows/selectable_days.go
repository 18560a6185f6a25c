package flows

import (
	"time"

	"clinicbook/internal/gateway/core"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/timeutil"
)

const SelectableDaysFlowName = "selectable_days"

// SelectableDaysFlow scans forward from a start date and reports which days
// can be offered for booking at all: not in the past and with at least one
// active window after overrides.
type SelectableDaysFlow struct{}

func (SelectableDaysFlow) Name() string { return SelectableDaysFlowName }

func (SelectableDaysFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("load location", LoadLocation),
		core.NewStep("load schedule", LoadSchedule),
		core.NewStep("compute selectable days", ComputeSelectableDays),
	}
}

// SelectableDay is one scanned date with its verdict.
type SelectableDay struct {
	Date       string `json:"date"`
	Selectable bool   `json:"selectable"`
}

func ComputeSelectableDays(ctx *core.FlowContext) error {
	schedule := ctx.Process[SCHEDULE].(*model.Schedule)
	loc := ctx.Deps.Cfg.Location()
	now := time.Now()

	from := ctx.InputString(FROM)
	if core.IsMissing(from) {
		from = timeutil.Today(now, loc)
	}
	if !timeutil.IsValidDay(from) {
		return apperrors.InvalidInput("from must be a YYYY-MM-DD date")
	}

	count, _ := ctx.Input[DAYS].(int)
	count = horizon(count)

	days := make([]SelectableDay, 0, count)
	date := from
	for i := 0; i < count; i++ {
		selectable, err := ctx.Deps.Calc.IsDateSelectable(date, schedule.Weekly, schedule.Overrides, now)
		if err != nil {
			return apperrors.InvalidInput(err.Error())
		}
		days = append(days, SelectableDay{Date: date, Selectable: selectable})

		next, err := timeutil.NextDay(date, loc)
		if err != nil {
			return apperrors.InvalidInput(err.Error())
		}
		date = next
	}

	ctx.Output[OUT_DAYS] = days
	return nil
}
