package services

import (
	"context"
	"fmt"
	"sort"

	"lodge-backend/models"
)

// RuleQuery binds the scope dimensions a lookup cares about. A nil dimension
// is unbound: only rules that leave that dimension open can match it.
type RuleQuery struct {
	PropertyID  uint
	SeasonID    *uint
	MemberLevel *string
	DayClass    *string
	Mode        string
	PricingType string
}

// PricingRuleService picks the single winning rule for a query from the
// admin-configured rule set.
type PricingRuleService struct {
	rules PricingRuleRepository
}

func NewPricingRuleService(rules PricingRuleRepository) *PricingRuleService {
	return &PricingRuleService{rules: rules}
}

// FindMostSpecific returns the matching rule with the highest specificity,
// or nil when no rule matches. Returning nil is how a mode is disabled for
// a season.
func (s *PricingRuleService) FindMostSpecific(ctx context.Context, q RuleQuery) (*models.PricingRule, error) {
	all, err := s.rules.RulesForMode(ctx, q.PropertyID, q.Mode, q.PricingType)
	if err != nil {
		return nil, fmt.Errorf("load pricing rules: %w", err)
	}

	var candidates []models.PricingRule
	for _, r := range all {
		if ruleMatches(r, q) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := ruleSpecificity(candidates[i]), ruleSpecificity(candidates[j])
		if si != sj {
			return si > sj
		}
		return candidates[i].ID < candidates[j].ID
	})
	winner := candidates[0]
	return &winner, nil
}

// ruleMatches reports whether the rule applies to the query. For each scope
// dimension the rule either leaves it open (nil, matches anything) or binds
// a value that must equal the query's bound value.
func ruleMatches(r models.PricingRule, q RuleQuery) bool {
	if r.PropertyID != q.PropertyID || r.Mode != q.Mode || r.PricingType != q.PricingType {
		return false
	}
	if r.SeasonID != nil && (q.SeasonID == nil || *r.SeasonID != *q.SeasonID) {
		return false
	}
	if r.MemberLevel != nil && (q.MemberLevel == nil || *r.MemberLevel != *q.MemberLevel) {
		return false
	}
	if r.DayClass != nil && (q.DayClass == nil || *r.DayClass != *q.DayClass) {
		return false
	}
	return true
}

// ruleSpecificity counts the explicitly bound scope dimensions of a rule.
// Higher wins; ties fall back to the lowest rule ID.
func ruleSpecificity(r models.PricingRule) int {
	n := 0
	if r.SeasonID != nil {
		n++
	}
	if r.MemberLevel != nil {
		n++
	}
	if r.DayClass != nil {
		n++
	}
	return n
}
