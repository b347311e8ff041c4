package services

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/penalty"
	"dispatch/internal/core/ports"
)

// PenaltyQuote is the outcome of a penalty lookup. Rule is nil when no band matched.
type PenaltyQuote struct {
	HoursToInstall int
	Rule           *penalty.Rule
	Amount         kernel.Money
}

// PenaltyResolver selects the rejection penalty from the active rule table.
//
// Example:
//
//	resolver := NewPenaltyResolver(uow.PenaltyRuleRepository())
//	quote, err := resolver.Quote(ctx, o.InstallAt(clock.Location()), clock.Now())
//	if quote.Amount.IsPositive() {
//	    // debit the company
//	}
type PenaltyResolver struct {
	rules ports.PenaltyRuleRepository
}

func NewPenaltyResolver(rules ports.PenaltyRuleRepository) PenaltyResolver {
	return PenaltyResolver{rules: rules}
}

// Quote loads the active rules and resolves the penalty for a rejection at now.
func (r PenaltyResolver) Quote(ctx context.Context, installAt, now time.Time) (PenaltyQuote, error) {
	rules, err := r.rules.ListActive(ctx)
	if err != nil {
		return PenaltyQuote{}, err
	}

	hours := HoursToInstall(installAt, now)
	rule := FindPenaltyRule(rules, hours)
	if rule == nil {
		return PenaltyQuote{HoursToInstall: hours, Amount: kernel.ZeroMoney()}, nil
	}
	return PenaltyQuote{HoursToInstall: hours, Rule: rule, Amount: rule.Penalty()}, nil
}

// HoursToInstall is the number of whole hours from now until installAt,
// floored, and never negative.
func HoursToInstall(installAt, now time.Time) int {
	d := installAt.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Hour)
}

// FindPenaltyRule returns the active rule whose band contains hours. When bands
// overlap the one with the smallest lower bound wins; the first seen wins a tie.
func FindPenaltyRule(rules []penalty.Rule, hours int) *penalty.Rule {
	var best *penalty.Rule

	for i := range rules {
		r := rules[i]
		if !r.IsActive() || !r.Contains(hours) {
			continue
		}
		if best == nil || r.HoursFrom() < best.HoursFrom() {
			best = &r
		}
	}

	return best
}
