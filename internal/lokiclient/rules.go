package lokiclient

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRuleGroup is wrapped when a rule group body is rejected before
// it is sent.
var ErrInvalidRuleGroup = errors.New("invalid rule group")

type ruleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval"`
	Rules    []rule `yaml:"rules"`
}

type rule struct {
	Alert  string `yaml:"alert"`
	Record string `yaml:"record"`
	Expr   string `yaml:"expr"`
}

// ValidateRuleGroup checks that doc is a YAML rule group with a name and at
// least one alerting or recording rule, each carrying an expression.
func ValidateRuleGroup(doc string) error {
	var g ruleGroup
	if err := yaml.Unmarshal([]byte(doc), &g); err != nil {
		return fmt.Errorf("lokiclient: %w: %v", ErrInvalidRuleGroup, err)
	}
	if g.Name == "" {
		return fmt.Errorf("lokiclient: %w: missing name", ErrInvalidRuleGroup)
	}
	if len(g.Rules) == 0 {
		return fmt.Errorf("lokiclient: %w: group %q has no rules", ErrInvalidRuleGroup, g.Name)
	}
	for i, r := range g.Rules {
		switch {
		case r.Expr == "":
			return fmt.Errorf("lokiclient: %w: rules[%d]: missing expr", ErrInvalidRuleGroup, i)
		case r.Alert == "" && r.Record == "":
			return fmt.Errorf("lokiclient: %w: rules[%d]: needs alert or record", ErrInvalidRuleGroup, i)
		case r.Alert != "" && r.Record != "":
			return fmt.Errorf("lokiclient: %w: rules[%d]: alert and record are exclusive", ErrInvalidRuleGroup, i)
		}
	}
	return nil
}
