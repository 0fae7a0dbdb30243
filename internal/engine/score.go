package engine

import "emailengine/internal/model"

// verdict is the mutable accumulator the scoring fold operates on, re-derived
// from model.Checks and then adjusted in place. Keeping it as one small
// struct instead of mutating model.ValidationResult fields ad-hoc makes each
// step of §4.13 independently testable, per the "score pipeline as a fold
// over scoring contributors" redesign note.
type verdict struct {
	Score          int
	IsValid        bool
	Deliverability model.Deliverability
	Risk           model.RiskLevel
}

// baseVerdict computes §4.13 steps 7-10: the weighted sum of the
// non-optional probes, then isValid/deliverability/risk derived from it.
func baseVerdict(c model.Checks) verdict {
	score := 0
	if c.Syntax.Valid {
		score += 20
	}
	if c.Domain.Valid {
		score += 20
	}
	if c.MX.Valid {
		score += 25
	}
	if !c.Disposable.IsDisposable {
		score += 15
	}
	if !c.Role.IsRoleBased {
		score += 5
	}
	if !c.Typo.HasTypo {
		score += 10
	}
	if !c.Blacklist.Blacklisted {
		score += 5
	}

	v := verdict{Score: score}
	v.IsValid = c.Syntax.Valid && c.Domain.Valid && c.MX.Valid && !c.Typo.HasTypo

	switch {
	case !c.Syntax.Valid || !c.Domain.Valid:
		v.Deliverability = model.DeliverabilityUndeliverable
	case !c.MX.Valid:
		v.Deliverability = model.DeliverabilityUnknown
	case c.Disposable.IsDisposable || c.Blacklist.Blacklisted:
		v.Deliverability = model.DeliverabilityRisky
	default:
		v.Deliverability = model.DeliverabilityDeliverable
	}

	switch {
	case v.Score < 50 || c.Typo.HasTypo || c.Blacklist.Blacklisted:
		v.Risk = model.RiskHigh
	case c.Disposable.IsDisposable || c.Role.IsRoleBased || c.CatchAll.CatchAll || v.Score < 80:
		v.Risk = model.RiskMedium
	default:
		v.Risk = model.RiskLow
	}

	return v
}

// escalateRisk bumps low to medium, leaving medium/high untouched. Step 11
// repeatedly asks for "escalate low to medium", never a downgrade.
func escalateRisk(v *verdict) {
	if v.Risk == model.RiskLow {
		v.Risk = model.RiskMedium
	}
}

func clampScore(v *verdict) {
	if v.Score < 0 {
		v.Score = 0
	}
	if v.Score > 100 {
		v.Score = 100
	}
}

// applySMTP applies §4.13 step 11's SMTP adjustment. Only called when the
// SMTP probe actually ran.
func applySMTP(v *verdict, c *model.SMTPCheck) {
	if c.Exists == "false" {
		v.IsValid = false
		if v.Score > 20 {
			v.Score = 20
		}
		v.Deliverability = model.DeliverabilityUndeliverable
		v.Risk = model.RiskHigh
	}
	if c.CatchAll {
		v.Score -= 10
		clampScore(v)
		escalateRisk(v)
	}
}

// applyAuth applies §4.13 step 11's authentication adjustment.
func applyAuth(v *verdict, c *model.AuthCheck) {
	switch {
	case c.Score >= 80:
		v.Score += 5
	case c.Score == 0:
		v.Score -= 5
	}
	clampScore(v)
}

// applyReputation applies §4.13 step 11's reputation adjustment.
func applyReputation(v *verdict, c *model.ReputationCheck) {
	switch {
	case c.Score < 40:
		if v.Score > 40 {
			v.Score = 40
		}
		v.Risk = model.RiskHigh
	case c.Score < 60:
		v.Score -= 15
		clampScore(v)
		escalateRisk(v)
	case c.Score >= 80:
		v.Score += 3
	}
	clampScore(v)
}
