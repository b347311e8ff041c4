package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/BurntSushi/toml"
)

// penaltyRulesFile is the operator-facing rule table:
//
//	[[rule]]
//	name = "last day"
//	hours_from = 0
//	hours_to = 24
//	penalty_eur = "50.00"
type penaltyRulesFile struct {
	Rules []struct {
		Name       string `toml:"name"`
		HoursFrom  int    `toml:"hours_from"`
		HoursTo    int    `toml:"hours_to"`
		PenaltyEUR string `toml:"penalty_eur"`
		Active     *bool  `toml:"active"`
	} `toml:"rule"`
}

// DecodePenaltyRules reads a TOML rule table. Rules are active unless they
// say otherwise; unknown keys are rejected so typos do not silently drop a band.
func DecodePenaltyRules(r io.Reader) ([]commands.RuleSpec, error) {
	var file penaltyRulesFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode penalty rules: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in penalty rules: %s", strings.Join(keys, ", "))
	}
	if len(file.Rules) == 0 {
		return nil, errors.New("penalty rules file has no [[rule]] entries")
	}

	specs := make([]commands.RuleSpec, 0, len(file.Rules))
	for i, rule := range file.Rules {
		amount, err := kernel.MoneyFromString(rule.PenaltyEUR)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.Name, err)
		}
		active := true
		if rule.Active != nil {
			active = *rule.Active
		}
		specs = append(specs, commands.RuleSpec{
			Name:      rule.Name,
			HoursFrom: rule.HoursFrom,
			HoursTo:   rule.HoursTo,
			Penalty:   amount,
			Active:    active,
		})
	}
	return specs, nil
}
