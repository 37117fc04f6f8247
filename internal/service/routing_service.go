package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Confidence reported when no rule matches and the caller must ask the
// user to pick a company.
const needsChoiceConfidence = 0.5

// RoutingDecision is the outcome of a fingerprint lookup. Either a rule
// matched and ConnectionID carries the owning tenant, or NeedsChoice is
// set and the caller prompts a human.
type RoutingDecision struct {
	ConnectionID *int64
	Confidence   float64
	NeedsChoice  bool
}

type RoutingService struct {
	rules  BankRuleStore
	logger *zap.Logger
}

func NewRoutingService(rules BankRuleStore, logger *zap.Logger) *RoutingService {
	return &RoutingService{
		rules:  rules,
		logger: logger,
	}
}

// Route resolves the owning connection for a (bank name, account last-4)
// fingerprint. The lookup is exact on the lowercased bank name; no fuzzy
// matching. A miss is a valid needs-choice outcome, not an error.
func (s *RoutingService) Route(ctx context.Context, bankName, accountLast4 string) (RoutingDecision, error) {
	rule, err := s.rules.FindByFingerprint(ctx, strings.ToLower(bankName), accountLast4)
	if err != nil {
		return RoutingDecision{}, err
	}

	if rule == nil {
		s.logger.Info("no routing rule for fingerprint",
			zap.String("bank_name", bankName),
			zap.String("account_last4", accountLast4),
		)
		return RoutingDecision{
			ConnectionID: nil,
			Confidence:   needsChoiceConfidence,
			NeedsChoice:  true,
		}, nil
	}

	connectionID := rule.ConnectionID
	return RoutingDecision{
		ConnectionID: &connectionID,
		Confidence:   rule.ConfidenceFloor,
		NeedsChoice:  false,
	}, nil
}
