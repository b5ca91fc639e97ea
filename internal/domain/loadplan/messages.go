package loadplan

import "fmt"

// Human-readable messages. The numeric facts behind every message are also
// exposed as fields, so callers that render their own text can ignore these.
const (
	msgMissingStrapInput  = "Enter strap rating (LC) and angle."
	msgZeroCapacity       = "Strap angle invalid; capacity becomes zero."
	msgRatingTooSmall     = "Strap rating too small; capacity per strap is negligible."
	msgRatingOutOfRange   = "Strap rating out of range; check the lashing capacity (LC)."
	msgRequiredOutOfRange = "Required force out of range; check load mass, gravity and factors."
	msgTooManyStrapsFmt   = "%s: more than %d straps needed for %.1f daN; direct lashing is not feasible."

	// SWLNotCheckedPrefix starts every advisory about an unverified anchor load.
	SWLNotCheckedPrefix = "SWL NOT CHECKED"

	msgSWLNotChecked = SWLNotCheckedPrefix + ": no anchor safe working load supplied; anchor points are not verified."
	msgSWLNoStraps   = SWLNotCheckedPrefix + ": no straps in use, anchor load cannot be assessed."
	msgSWLIncomplete = SWLNotCheckedPrefix + ": strap configuration incomplete."
	msgSWLOutOfRange = SWLNotCheckedPrefix + ": anchor safe working load out of range."

	msgAnchorOKFmt       = "Anchor OK: %.1f daN per strap within allowed %.1f daN."
	msgAnchorExceededFmt = "Anchor SWL exceeded: %.1f daN per strap exceeds allowed %.1f daN."
)

func capacityMessage(ev RestraintEvaluation, ratingDaN, angleDeg float64) string {
	if ev.Mode == LashingModeManual {
		if ev.AdditionalStrapsNeeded > 0 {
			return fmt.Sprintf("%s: %d strap(s) give %.1f daN, required %.1f daN. Add %d more strap(s).",
				ev.Direction.Label(), ev.StrapCountUsed, ev.TotalCapacityDaN, ev.RequiredForceDaN, ev.AdditionalStrapsNeeded)
		}
		return fmt.Sprintf("%s: %d strap(s) give %.1f daN, required %.1f daN. Capacity sufficient.",
			ev.Direction.Label(), ev.StrapCountUsed, ev.TotalCapacityDaN, ev.RequiredForceDaN)
	}
	return fmt.Sprintf("%s: use %d strap(s) rated %g daN at %g° (required %.1f daN).",
		ev.Direction.Label(), ev.StrapCountUsed, ratingDaN, angleDeg, ev.RequiredForceDaN)
}

func anchorExceededMessage(ev RestraintEvaluation) string {
	return fmt.Sprintf(msgAnchorExceededFmt, ev.PerStrapLoadDaN, ev.AnchorAllowedDaN)
}
