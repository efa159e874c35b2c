package recur

// Params defines all configurable parameters for recurrence scheduling
type Params struct {
	// MonthlyClampDay caps the day-of-month a monthly rule may land on,
	// sidestepping month-length edge cases. 28 fits every month.
	MonthlyClampDay int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MonthlyClampDay int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MonthlyClampDay: 28,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MonthlyClampDay >= 1 && config.MonthlyClampDay <= 28 {
		params.MonthlyClampDay = config.MonthlyClampDay
	}

	return params
}
