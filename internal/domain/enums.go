package domain

// Priority ranks goals when rendering the day plan.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PeriodType classifies a milestone's distribution window.
// Only monthly periods are eligible for balancer rewrites; weekly and
// daily periods are analytics-only.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodWeekly  PeriodType = "weekly"
	PeriodDaily   PeriodType = "daily"
)

func (t PeriodType) String() string { return string(t) }

func (t PeriodType) IsValid() bool {
	switch t {
	case PeriodMonthly, PeriodWeekly, PeriodDaily:
		return true
	}
	return false
}

// Strategy selects how a milestone's remaining target is spread over days.
type Strategy string

const (
	StrategyEven      Strategy = "even"
	StrategyFrontLoad Strategy = "front_load"
	StrategyManual    Strategy = "manual"
)

func (s Strategy) String() string { return string(s) }

func (s Strategy) IsValid() bool {
	switch s {
	case StrategyEven, StrategyFrontLoad, StrategyManual:
		return true
	}
	return false
}

// Platform identifies the external judge a submission came from.
type Platform string

const (
	PlatformLeetCode   Platform = "leetcode"
	PlatformCodeforces Platform = "codeforces"
	PlatformGitHub     Platform = "github"
)

func (p Platform) String() string { return string(p) }

// ActivityCategory returns the activity category recorded for shadow
// activities originating from this platform.
func (p Platform) ActivityCategory() string {
	switch p {
	case PlatformLeetCode:
		return "coding_leetcode"
	case PlatformCodeforces:
		return "coding_codeforces"
	default:
		return "coding"
	}
}
