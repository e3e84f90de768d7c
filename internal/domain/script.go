package domain

type StepAction string

const (
	StepAddEvent       StepAction = "add-event"
	StepSolutionOpened StepAction = "solution-opened"
	StepSolutionClosed StepAction = "solution-closed"
	StepInstanceClosed StepAction = "instance-closed"
)

func (a StepAction) Valid() bool {
	switch a {
	case StepAddEvent, StepSolutionOpened, StepSolutionClosed, StepInstanceClosed:
		return true
	default:
		return false
	}
}

// Step is one recorded host lifecycle callback. Record is set only for
// StepAddEvent.
type Step struct {
	Action StepAction
	Record EventRecord
}

// Script is a recorded instance session: the callbacks a host delivered to
// the aggregator, in order.
type Script struct {
	Name  string
	Steps []Step
}
