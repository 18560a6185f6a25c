package flows

import "clinicbook/internal/gateway/core"

const DaySlotsFlowName = "day_slots"

// DaySlotsFlow assembles the bookable slots of one location, date and
// treatment: location (for the treatment duration), schedule (for the
// windows) and the day's active appointments (for the booked flags), then
// runs the calculator.
type DaySlotsFlow struct{}

func (DaySlotsFlow) Name() string { return DaySlotsFlowName }

func (DaySlotsFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("load location", LoadLocation),
		core.NewStep("resolve treatment", ResolveTreatment),
		core.NewStep("load schedule", LoadSchedule),
		core.NewStep("load booked instants", LoadBookedInstants),
		core.NewStep("compute slots", ComputeSlots),
	}
}
