package metastore

import "errors"

// Error codes surfaced by the catalog, named after their PCP PM_ERR_*
// counterparts. These are sentinel errors the same way the teacher declares
// ErrNoData/ErrDataDoesNotAlign at package scope; callers compare with
// errors.Is.
var (
	// ErrLogRec is returned for any malformed record: a trailer length
	// that disagrees with the header, a truncated payload, or a label
	// record whose jsonlen/nlabels violate the hard limits in §4.1.
	ErrLogRec = errors.New("[METASTORE]> malformed record (PM_ERR_LOGREC)")

	// ErrChangeType/Sem/Indom/Units: a descriptor was re-inserted for a
	// pmid already known, with one of its frozen fields changed.
	ErrChangeType  = errors.New("[METASTORE]> metric type changed (PM_ERR_LOGCHANGETYPE)")
	ErrChangeSem   = errors.New("[METASTORE]> metric semantics changed (PM_ERR_LOGCHANGESEM)")
	ErrChangeIndom = errors.New("[METASTORE]> metric instance domain changed (PM_ERR_LOGCHANGEINDOM)")
	ErrChangeUnits = errors.New("[METASTORE]> metric units changed (PM_ERR_LOGCHANGEUNITS)")

	// ErrIndomLog/InstLog/PmidLog: lookup misses.
	ErrIndomLog = errors.New("[METASTORE]> unknown instance domain (PM_ERR_INDOM_LOG)")
	ErrInstLog  = errors.New("[METASTORE]> unknown instance (PM_ERR_INST_LOG)")
	ErrPmidLog  = errors.New("[METASTORE]> unknown metric id (PM_ERR_PMID_LOG)")

	// ErrNoLabels/ErrText: absent metadata.
	ErrNoLabels = errors.New("[METASTORE]> no labels for this type/identifier (PM_ERR_NOLABELS)")
	ErrText     = errors.New("[METASTORE]> no help text for this type/identifier (PM_ERR_TEXT)")
)

// InsertResult is the outcome of an indom insert: OK or duplicate, kept
// apart from error values (returned separately, as by PutIndom) so a caller
// can't silently drop the ownership-transfer contract implied by a
// duplicate, unlike the teacher's C ancestor which overloaded a single
// error-code union for both cases. Label inserts return no result.
type InsertResult int

const (
	// InsertOK: the new snapshot/group was linked into the chain.
	InsertOK InsertResult = iota
	// InsertDuplicate: content-equal to an existing entry in the same
	// time slot; the existing entry was migrated to the slot head and
	// the caller-supplied value was discarded (PM_ERR_INDOM_PUT_DUP).
	InsertDuplicate
)

func (r InsertResult) String() string {
	switch r {
	case InsertOK:
		return "OK"
	case InsertDuplicate:
		return "DUP"
	default:
		return "unknown"
	}
}
