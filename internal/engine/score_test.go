package engine

import (
	"testing"

	"emailengine/internal/model"
)

func fullyPositiveChecks() model.Checks {
	return model.Checks{
		Syntax: model.SyntaxCheck{Valid: true},
		Domain: model.DomainCheck{Valid: true},
		MX:     model.MXCheck{Valid: true},
	}
}

func TestBaseVerdictAllPositiveScoresMax(t *testing.T) {
	v := baseVerdict(fullyPositiveChecks())
	if v.Score != 100 {
		t.Errorf("Score = %d, want 100", v.Score)
	}
	if !v.IsValid {
		t.Error("IsValid = false, want true")
	}
	if v.Deliverability != model.DeliverabilityDeliverable {
		t.Errorf("Deliverability = %v, want deliverable", v.Deliverability)
	}
	if v.Risk != model.RiskLow {
		t.Errorf("Risk = %v, want low", v.Risk)
	}
}

func TestBaseVerdictTypoForcesHighRiskAndInvalid(t *testing.T) {
	c := fullyPositiveChecks()
	c.Typo = model.TypoCheck{HasTypo: true}
	v := baseVerdict(c)

	if v.IsValid {
		t.Error("IsValid = true, want false with a typo")
	}
	if v.Risk != model.RiskHigh {
		t.Errorf("Risk = %v, want high", v.Risk)
	}
}

func TestBaseVerdictNoMXIsUnknownDeliverability(t *testing.T) {
	c := fullyPositiveChecks()
	c.MX = model.MXCheck{Valid: false}
	v := baseVerdict(c)

	if v.Deliverability != model.DeliverabilityUnknown {
		t.Errorf("Deliverability = %v, want unknown", v.Deliverability)
	}
}

func TestApplySMTPNonexistentCapsScoreAndFlags(t *testing.T) {
	v := verdict{Score: 90, IsValid: true, Risk: model.RiskLow, Deliverability: model.DeliverabilityDeliverable}
	applySMTP(&v, &model.SMTPCheck{Exists: "false"})

	if v.IsValid {
		t.Error("IsValid = true, want false")
	}
	if v.Score != 20 {
		t.Errorf("Score = %d, want capped at 20", v.Score)
	}
	if v.Deliverability != model.DeliverabilityUndeliverable {
		t.Errorf("Deliverability = %v, want undeliverable", v.Deliverability)
	}
	if v.Risk != model.RiskHigh {
		t.Errorf("Risk = %v, want high", v.Risk)
	}
}

func TestApplySMTPCatchAllPenalizesAndEscalates(t *testing.T) {
	v := verdict{Score: 90, Risk: model.RiskLow}
	applySMTP(&v, &model.SMTPCheck{Exists: "unknown", CatchAll: true})

	if v.Score != 80 {
		t.Errorf("Score = %d, want 80", v.Score)
	}
	if v.Risk != model.RiskMedium {
		t.Errorf("Risk = %v, want escalated to medium", v.Risk)
	}
}

func TestApplyAuthHighScoreBoostsAndCaps(t *testing.T) {
	v := verdict{Score: 98}
	applyAuth(&v, &model.AuthCheck{Score: 85})
	if v.Score != 100 {
		t.Errorf("Score = %d, want capped at 100", v.Score)
	}
}

func TestApplyAuthZeroScorePenalizes(t *testing.T) {
	v := verdict{Score: 3}
	applyAuth(&v, &model.AuthCheck{Score: 0})
	if v.Score != 0 {
		t.Errorf("Score = %d, want floored at 0", v.Score)
	}
}

func TestApplyReputationLowScoreCapsAndFlagsHigh(t *testing.T) {
	v := verdict{Score: 90, Risk: model.RiskLow}
	applyReputation(&v, &model.ReputationCheck{Score: 20})
	if v.Score != 40 {
		t.Errorf("Score = %d, want capped at 40", v.Score)
	}
	if v.Risk != model.RiskHigh {
		t.Errorf("Risk = %v, want high", v.Risk)
	}
}

func TestApplyReputationMidScorePenalizesAndEscalates(t *testing.T) {
	v := verdict{Score: 90, Risk: model.RiskLow}
	applyReputation(&v, &model.ReputationCheck{Score: 50})
	if v.Score != 75 {
		t.Errorf("Score = %d, want 75", v.Score)
	}
	if v.Risk != model.RiskMedium {
		t.Errorf("Risk = %v, want escalated to medium", v.Risk)
	}
}

func TestApplyReputationHighScoreBoosts(t *testing.T) {
	v := verdict{Score: 90}
	applyReputation(&v, &model.ReputationCheck{Score: 85})
	if v.Score != 93 {
		t.Errorf("Score = %d, want 93", v.Score)
	}
}
