package contract

import (
	"time"

	"github.com/google/uuid"
)

// ClauseKeyFn maps a clause to the applicability key it is grouped by when
// deduplicating, e.g. the scope it applies to.
type ClauseKeyFn func(*Clause) string

// UnscopedKey is the group key for clauses with no applied-to scope.
const UnscopedKey = "unscoped"

// ScopeKey groups clauses by their applied-to scope, with unscoped clauses
// sharing a single sentinel group.
func ScopeKey(c *Clause) string {
	if c.AppliedToScopeID == nil {
		return UnscopedKey
	}
	return c.AppliedToScopeID.String()
}

// LatestApplicable keeps, per group key, only the clauses belonging to a
// single winning amendment: the amendment of the first clause seen for that
// key. The input must be ordered by amendment effective date descending, so
// the winner is the most recently effective applicable amendment. Clauses
// whose amendment is not applicable as of asOf (sign date or effective date
// after asOf) are excluded before grouping; clauses with no amendment loaded
// cannot be tested for applicability and are excluded as well.
func LatestApplicable(clauses []Clause, asOf time.Time, keyFn ClauseKeyFn) []Clause {
	winners := make(map[string]uuid.UUID)
	kept := make([]Clause, 0, len(clauses))
	for i := range clauses {
		c := &clauses[i]
		if c.Amendment == nil || !c.Amendment.ApplicableAsOf(asOf) {
			continue
		}
		key := keyFn(c)
		winner, seen := winners[key]
		if !seen {
			winners[key] = c.AmendmentID
			winner = c.AmendmentID
		}
		if c.AmendmentID == winner {
			kept = append(kept, *c)
		}
	}
	return kept
}
