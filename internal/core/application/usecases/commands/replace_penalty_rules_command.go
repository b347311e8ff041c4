package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/penalty"
	"dispatch/internal/pkg/guard"
)

var ErrReplacePenaltyRulesCommandIsNotConstructed = errors.New(
	"ReplacePenaltyRulesCommand must be created via NewReplacePenaltyRulesCommand constructor",
)

// RuleSpec is one band of the penalty table as an operator writes it.
type RuleSpec struct {
	Name      string
	HoursFrom int
	HoursTo   int
	Penalty   kernel.Money
	Active    bool
}

// ReplacePenaltyRulesCommand swaps the whole penalty table. It is an operator
// action run from the command line, so it carries no actor.
type ReplacePenaltyRulesCommand struct {
	rules []penalty.Rule

	guard guard.ConstructorGuard
}

func NewReplacePenaltyRulesCommand(specs []RuleSpec) (ReplacePenaltyRulesCommand, error) {
	rules := make([]penalty.Rule, 0, len(specs))
	var ruleErrs []error
	for i, spec := range specs {
		rule, err := penalty.NewRule(kernel.NewUUID(), spec.Name, spec.HoursFrom, spec.HoursTo, spec.Penalty, spec.Active)
		if err != nil {
			ruleErrs = append(ruleErrs, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		rules = append(rules, rule)
	}
	if err := errors.Join(ruleErrs...); err != nil {
		return ReplacePenaltyRulesCommand{}, err
	}
	return ReplacePenaltyRulesCommand{rules: rules, guard: guard.NewConstructorGuard()}, nil
}

func (c ReplacePenaltyRulesCommand) Validate() error {
	return c.guard.Validate(ErrReplacePenaltyRulesCommandIsNotConstructed)
}

func (c ReplacePenaltyRulesCommand) Rules() []penalty.Rule {
	return c.rules
}
