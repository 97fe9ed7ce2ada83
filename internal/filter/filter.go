// Package filter evaluates the declarative row filters and manages named
// filter presets.
package filter

// Filter modes. Unknown values pass every row, so a snapshot written by a
// newer version never hides rows here.
const (
	ApprovalAny  = "any"
	ApprovalGte1 = "gte1"
	ApprovalGte2 = "gte2"
	ApprovalLt2  = "lt2"
	ApprovalEq0  = "eq0"

	NewAny  = "any"
	NewOnly = "onlyNew"
	NewNot  = "notNew"

	DraftAny  = "any"
	DraftHide = "hideDrafts"
	DraftOnly = "onlyDrafts"
)

// State is one complete filter configuration. The JSON keys match the
// persisted snapshot format.
type State struct {
	AwaitingMyReview    bool   `json:"awaitingMyReview"`
	ReviewedNotApproved bool   `json:"reviewedNotApproved"`
	ApprovalMode        string `json:"approvalMode"`
	NewMode             string `json:"newMode"`
	DraftMode           string `json:"draftMode"`
}

// Defaults returns the filter state applied when nothing is persisted.
func Defaults() State {
	return State{
		ApprovalMode: ApprovalAny,
		NewMode:      NewAny,
		DraftMode:    DraftHide,
	}
}

// Normalize fills empty modes with their defaults. Idempotent.
func Normalize(s State) State {
	d := Defaults()
	if s.ApprovalMode == "" {
		s.ApprovalMode = d.ApprovalMode
	}
	if s.NewMode == "" {
		s.NewMode = d.NewMode
	}
	if s.DraftMode == "" {
		s.DraftMode = d.DraftMode
	}
	return s
}

// Equal compares two states after normalization.
func Equal(a, b State) bool {
	return Normalize(a) == Normalize(b)
}

// RowMeta is the per-row metadata the filters evaluate.
type RowMeta struct {
	IsNew                bool
	IsDraft              bool
	IAmRequestedReviewer bool
	MyReviewCount        int    // -1 when enrichment failed
	MyLatestReviewState  string // "none" when never reviewed, "unknown" on failure
	ApprovalCount        int    // -1 when enrichment failed
}

// Matches reports whether a row passes the filter state. Predicates are
// evaluated draft, new, approvals, awaiting-my-review, reviewed-not-approved
// and short-circuit on the first failure.
func Matches(meta RowMeta, f State) bool {
	f = Normalize(f)

	if !matchesDraftMode(meta.IsDraft, f.DraftMode) {
		return false
	}
	if !matchesNewMode(meta.IsNew, f.NewMode) {
		return false
	}
	if !matchesApprovalMode(meta.ApprovalCount, f.ApprovalMode) {
		return false
	}

	if f.AwaitingMyReview {
		if !(meta.IAmRequestedReviewer && meta.MyReviewCount == 0) {
			return false
		}
	}

	if f.ReviewedNotApproved {
		if !(meta.MyReviewCount > 0 && meta.MyLatestReviewState != "APPROVED") {
			return false
		}
	}

	return true
}

func matchesApprovalMode(approvalCount int, mode string) bool {
	if mode == ApprovalAny {
		return true
	}
	// Failed enrichment never satisfies a numeric approval filter.
	if approvalCount < 0 {
		return false
	}
	switch mode {
	case ApprovalGte2:
		return approvalCount >= 2
	case ApprovalLt2:
		return approvalCount < 2
	case ApprovalEq0:
		return approvalCount == 0
	case ApprovalGte1:
		return approvalCount >= 1
	}
	return true
}

func matchesNewMode(isNew bool, mode string) bool {
	switch mode {
	case NewOnly:
		return isNew
	case NewNot:
		return !isNew
	}
	return true
}

func matchesDraftMode(isDraft bool, mode string) bool {
	switch mode {
	case DraftHide:
		return !isDraft
	case DraftOnly:
		return isDraft
	}
	return true
}
