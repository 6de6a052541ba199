package domain

// State is the whole application state owned by the state store. CountryID and
// Loading are global UI flags, kept apart from the weekly report cache.
type State struct {
	CountryID    string
	Loading      bool
	WeeklyReport WeeklyReport
}

func NewState() State {
	return State{WeeklyReport: EmptyWeeklyReport()}
}

func (s State) Clone() State {
	c := s
	c.WeeklyReport = s.WeeklyReport.Clone()
	return c
}
