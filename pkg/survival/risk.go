package survival

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tier is one risk category. MaxDays is the exclusive upper bound of the
// tier's day range; 0 marks the final unbounded tier.
type Tier struct {
	Category       string  `yaml:"category" json:"category"`
	Indicator      string  `yaml:"indicator" json:"indicator"`
	Recommendation string  `yaml:"recommendation" json:"recommendation"`
	MaxDays        float64 `yaml:"max_days" json:"max_days"`
}

// Policy is the ordered tier table. Classification walks it in order and
// the first matching tier wins.
type Policy struct {
	Tiers []Tier `yaml:"tiers" json:"tiers"`
}

// DefaultPolicy returns the clinical tier table the system ships with.
func DefaultPolicy() Policy {
	return Policy{Tiers: []Tier{
		{Category: "HIGH RISK", Indicator: "red", Recommendation: "Immediate intensive care and close monitoring required", MaxDays: 180},
		{Category: "ELEVATED RISK", Indicator: "orange", Recommendation: "Enhanced monitoring and aggressive treatment recommended", MaxDays: 365},
		{Category: "MODERATE RISK", Indicator: "yellow", Recommendation: "Standard treatment protocol with regular follow-ups", MaxDays: 730},
		{Category: "LOWER RISK", Indicator: "green", Recommendation: "Standard care with routine monitoring", MaxDays: 0},
	}}
}

// LoadPolicy reads a tier table from a YAML file, falling back to the
// default table when no path is configured.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultPolicy(), err
	}

	var policy Policy
	if err := yaml.Unmarshal(content, &policy); err != nil {
		return Policy{}, err
	}
	if err := policy.validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func (p Policy) validate() error {
	if len(p.Tiers) == 0 {
		return errors.New("no risk tiers configured")
	}
	previous := math.Inf(-1)
	for i, tier := range p.Tiers {
		if tier.Category == "" || tier.Indicator == "" || tier.Recommendation == "" {
			return fmt.Errorf("tier %d is incomplete", i)
		}
		last := i == len(p.Tiers)-1
		if last {
			if tier.MaxDays != 0 {
				return errors.New("final tier must be unbounded")
			}
			continue
		}
		if tier.MaxDays <= 0 || tier.MaxDays <= previous {
			return errors.New("tier bounds must be positive and strictly increasing")
		}
		previous = tier.MaxDays
	}
	return nil
}

// Classify assigns the tier for a raw day estimate. It always receives the
// unrounded value so display rounding can never flip a boundary.
func (p Policy) Classify(days float64) Tier {
	for _, tier := range p.Tiers {
		if tier.MaxDays == 0 {
			return tier
		}
		if days < tier.MaxDays {
			return tier
		}
	}
	return p.Tiers[len(p.Tiers)-1]
}
