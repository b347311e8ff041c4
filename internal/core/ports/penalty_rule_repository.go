package ports

import (
	"context"

	"dispatch/internal/core/domain/model/penalty"
)

type PenaltyRuleRepository interface {
	// ListActive returns active rules ordered by hours_before_install_from.
	ListActive(ctx context.Context) ([]penalty.Rule, error)

	// ReplaceAll swaps the whole rule table.
	ReplaceAll(ctx context.Context, rules []penalty.Rule) error
}
