package commands

import (
	"context"
)

type ReplacePenaltyRulesCommandHandler struct {
	uowFactory PenaltyRuleUoWFactory
}

func NewReplacePenaltyRulesCommandHandler(uowFactory PenaltyRuleUoWFactory) ReplacePenaltyRulesCommandHandler {
	return ReplacePenaltyRulesCommandHandler{uowFactory: uowFactory}
}

func (h ReplacePenaltyRulesCommandHandler) Handle(ctx context.Context, cmd ReplacePenaltyRulesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PenaltyRuleRepository().ReplaceAll(ctx, cmd.Rules()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
