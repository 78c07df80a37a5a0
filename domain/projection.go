package domain

type ResultKind string

const (
	ResultApplied          ResultKind = "applied"
	ResultSkipped          ResultKind = "skipped"
	ResultReferenceMissing ResultKind = "reference_missing"
	ResultFailed           ResultKind = "failed"
)

// ProjectionResult is the outcome of projecting one change event into the mirror.
// Skipped covers the benign races (duplicate add, missing row); Err is set for every other
// non applied kind.
type ProjectionResult struct {
	Seq        uint64
	Type       ChangeType
	DocumentID string
	Kind       ResultKind
	Err        error
}

func (r ProjectionResult) OK() bool {
	return r.Kind == ResultApplied || r.Kind == ResultSkipped
}
