package performance

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
)

// Weights combine the scorecard percentages into the KPI score.
type Weights struct {
	Utilization float64
	Margin      float64
	// Revenue weighs total revenue against the roster mean (100 = average).
	Revenue float64
}

// Tier is one classification bucket. A tier covers [LowerBound, next LowerBound).
type Tier struct {
	LowerBound float64
	Label      string
	Accent     string
}

// Tier boundaries. The lowest tier starts at -Inf so every score maps somewhere.
const (
	TierExcellentFrom = 80.0
	TierGoodFrom      = 65.0
	TierAverageFrom   = 50.0

	TierExcellent        = "Excellent"
	TierGood             = "Good"
	TierAverage          = "Average"
	TierNeedsImprovement = "Needs Improvement"
)

// Policy is the full set of business constants used by the metrics engine.
type Policy struct {
	WindowDays int
	Weights    Weights
	// Tiers are ordered ascending by LowerBound; Tiers[0].LowerBound must be -Inf.
	Tiers []Tier

	UnderUtilizedBelow float64
	LowMarginBelow     float64

	// StandardMonthlyMinutes converts the monthly base salary into a per-minute labor cost.
	StandardMonthlyMinutes float64

	CommissionRates       map[staff.SalaryType]float64
	DefaultCommissionRate float64

	SlowServiceFactor       float64
	DefaultStandardDuration int
	TrendDays               int

	// Concurrency bounds the goroutines used to score a roster.
	Concurrency int
}

func DefaultTiers() []Tier {
	return []Tier{
		{LowerBound: math.Inf(-1), Label: TierNeedsImprovement, Accent: "red"},
		{LowerBound: TierAverageFrom, Label: TierAverage, Accent: "yellow"},
		{LowerBound: TierGoodFrom, Label: TierGood, Accent: "blue"},
		{LowerBound: TierExcellentFrom, Label: TierExcellent, Accent: "green"},
	}
}

func DefaultPolicy() Policy {
	return Policy{
		WindowDays:             7,
		Weights:                Weights{Utilization: 0.5, Margin: 0.5},
		Tiers:                  DefaultTiers(),
		UnderUtilizedBelow:     40,
		LowMarginBelow:         50,
		StandardMonthlyMinutes: 26 * 8 * 60,
		CommissionRates: map[staff.SalaryType]float64{
			staff.SalaryTypeCommission: 0.30,
			staff.SalaryTypeFixed:      0.05,
		},
		DefaultCommissionRate:   0.05,
		SlowServiceFactor:       1.2,
		DefaultStandardDuration: 60,
		TrendDays:               7,
		Concurrency:             8,
	}
}

// Validate checks that the tier table partitions the real line and that the
// numeric constants are usable.
func (p Policy) Validate() error {
	if len(p.Tiers) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidPolicy)
	}
	if !math.IsInf(p.Tiers[0].LowerBound, -1) {
		return fmt.Errorf("%w: lowest tier must start at -Inf", ErrInvalidPolicy)
	}
	seen := make(map[string]struct{}, len(p.Tiers))
	for i, t := range p.Tiers {
		if t.Label == "" {
			return fmt.Errorf("%w: tier %d has no label", ErrInvalidPolicy, i)
		}
		if _, dup := seen[t.Label]; dup {
			return fmt.Errorf("%w: duplicate tier label %q", ErrInvalidPolicy, t.Label)
		}
		seen[t.Label] = struct{}{}
		if math.IsNaN(t.LowerBound) {
			return fmt.Errorf("%w: tier %q has NaN bound", ErrInvalidPolicy, t.Label)
		}
		if i > 0 && t.LowerBound <= p.Tiers[i-1].LowerBound {
			return fmt.Errorf("%w: tier %q must start above tier %q", ErrInvalidPolicy, t.Label, p.Tiers[i-1].Label)
		}
	}
	if p.WindowDays <= 0 {
		return fmt.Errorf("%w: window days must be positive", ErrInvalidPolicy)
	}
	if p.TrendDays <= 0 {
		return fmt.Errorf("%w: trend days must be positive", ErrInvalidPolicy)
	}
	if !(p.StandardMonthlyMinutes > 0) {
		return fmt.Errorf("%w: standard monthly minutes must be positive", ErrInvalidPolicy)
	}
	for _, w := range []float64{p.Weights.Utilization, p.Weights.Margin, p.Weights.Revenue} {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weights must be finite", ErrInvalidPolicy)
		}
	}
	if p.SlowServiceFactor <= 0 {
		return fmt.Errorf("%w: slow service factor must be positive", ErrInvalidPolicy)
	}
	return nil
}

// Classify maps a KPI score to exactly one tier. NaN lands in the lowest tier.
func (p Policy) Classify(score float64) Tier {
	if math.IsNaN(score) {
		return p.Tiers[0]
	}
	for i := len(p.Tiers) - 1; i > 0; i-- {
		if score >= p.Tiers[i].LowerBound {
			return p.Tiers[i]
		}
	}
	return p.Tiers[0]
}

// CommissionRate returns the commission rate for a salary type.
func (p Policy) CommissionRate(t staff.SalaryType) float64 {
	if rate, ok := p.CommissionRates[t]; ok {
		return rate
	}
	return p.DefaultCommissionRate
}
