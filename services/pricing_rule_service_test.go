package services

import (
	"context"
	"testing"

	"lodge-backend/models"
)

func ruleFixtureService(rules []models.PricingRule) *PricingRuleService {
	store := newMemStore()
	store.rules = rules
	return NewPricingRuleService(store)
}

func TestFindMostSpecificPrefersMoreBoundDims(t *testing.T) {
	svc := ruleFixtureService([]models.PricingRule{
		{ID: 1, PropertyID: 1, Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 5000},
		{ID: 2, PropertyID: 1, SeasonID: uintPtr(7), Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 6000},
		{ID: 3, PropertyID: 1, SeasonID: uintPtr(7), DayClass: strPtr(models.DayClassWeekend), Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 7500},
	})

	q := RuleQuery{
		PropertyID:  1,
		SeasonID:    uintPtr(7),
		DayClass:    strPtr(models.DayClassWeekend),
		Mode:        models.ModeDay,
		PricingType: models.PricingPerGuestPerDay,
	}
	rule, err := svc.FindMostSpecific(context.Background(), q)
	if err != nil {
		t.Fatalf("FindMostSpecific: %v", err)
	}
	if rule == nil || rule.ID != 3 {
		t.Fatalf("expected rule 3 (season+day_class), got %+v", rule)
	}

	// Weekday query: the weekend rule no longer matches, season rule wins.
	q.DayClass = strPtr(models.DayClassWeekday)
	rule, err = svc.FindMostSpecific(context.Background(), q)
	if err != nil {
		t.Fatalf("FindMostSpecific: %v", err)
	}
	if rule == nil || rule.ID != 2 {
		t.Fatalf("expected rule 2 (season only), got %+v", rule)
	}
}

func TestFindMostSpecificTieBreaksByLowestID(t *testing.T) {
	svc := ruleFixtureService([]models.PricingRule{
		{ID: 9, PropertyID: 1, SeasonID: uintPtr(7), Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 6100},
		{ID: 4, PropertyID: 1, MemberLevel: strPtr("gold"), Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 5500},
	})

	q := RuleQuery{
		PropertyID:  1,
		SeasonID:    uintPtr(7),
		MemberLevel: strPtr("gold"),
		Mode:        models.ModeDay,
		PricingType: models.PricingPerGuestPerDay,
	}
	rule, err := svc.FindMostSpecific(context.Background(), q)
	if err != nil {
		t.Fatalf("FindMostSpecific: %v", err)
	}
	if rule == nil || rule.ID != 4 {
		t.Fatalf("expected tie to break to rule 4, got %+v", rule)
	}
}

func TestFindMostSpecificUnboundDimExcludesBoundRules(t *testing.T) {
	svc := ruleFixtureService([]models.PricingRule{
		{ID: 1, PropertyID: 1, MemberLevel: strPtr("gold"), Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 5500},
	})

	// Query doesn't bind member level: a rule bound to gold cannot match.
	rule, err := svc.FindMostSpecific(context.Background(), RuleQuery{
		PropertyID:  1,
		Mode:        models.ModeDay,
		PricingType: models.PricingPerGuestPerDay,
	})
	if err != nil {
		t.Fatalf("FindMostSpecific: %v", err)
	}
	if rule != nil {
		t.Fatalf("expected no match, got rule %d", rule.ID)
	}
}

func TestFindMostSpecificHardFilters(t *testing.T) {
	svc := ruleFixtureService([]models.PricingRule{
		{ID: 1, PropertyID: 1, Mode: models.ModeBuyout, PricingType: models.PricingBuyoutFixed, AmountCents: 80000},
		{ID: 2, PropertyID: 2, Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 5000},
	})

	rule, err := svc.FindMostSpecific(context.Background(), RuleQuery{
		PropertyID:  1,
		Mode:        models.ModeDay,
		PricingType: models.PricingPerGuestPerDay,
	})
	if err != nil {
		t.Fatalf("FindMostSpecific: %v", err)
	}
	if rule != nil {
		t.Fatalf("mode/property filters leaked: got rule %d", rule.ID)
	}
}

func TestRuleSpecificityCount(t *testing.T) {
	r := models.PricingRule{}
	if got := ruleSpecificity(r); got != 0 {
		t.Fatalf("specificity of open rule = %d, want 0", got)
	}
	r.SeasonID = uintPtr(1)
	r.DayClass = strPtr(models.DayClassWeekend)
	if got := ruleSpecificity(r); got != 2 {
		t.Fatalf("specificity = %d, want 2", got)
	}
	r.MemberLevel = strPtr("gold")
	if got := ruleSpecificity(r); got != 3 {
		t.Fatalf("specificity = %d, want 3", got)
	}
}
