package replay

import "regexp"

// Record is one chronological question/answer pair.
type Record struct {
	Question string
	Answer   string
}

// DefaultExpeditionOrder is the known expedition sequence used to keep
// grouped bioproject-accession answers in sailing order regardless of
// the order they were answered in. Identifiers outside this list get
// no ordering guarantee and append at the tail.
var DefaultExpeditionOrder = []string{
	"EX2107", "EX2201", "EX2203", "EX2205", "EX2206", "EX2301", "EX2303",
}

var expeditionPattern = regexp.MustCompile(`'expedition_id'\s*=\s*'([^']+)'`)

// Log is the ordered list of every question asked during a run. A
// question appears at most once; re-asking replaces the prior record
// in place.
type Log struct {
	records         []Record
	expeditionOrder []string
}

// NewLog returns an empty log using DefaultExpeditionOrder.
func NewLog() *Log {
	return &Log{expeditionOrder: DefaultExpeditionOrder}
}

// SetExpeditionOrder replaces the expedition ranking used for grouped
// accession inserts.
func (l *Log) SetExpeditionOrder(order []string) {
	l.expeditionOrder = order
}

// Records returns the log contents in order.
func (l *Log) Records() []Record {
	return l.records
}

// Len returns the number of records.
func (l *Log) Len() int {
	return len(l.records)
}

// Upsert records an answer. An existing record with the same
// normalized question is replaced in place; otherwise the record is
// appended, except that grouped bioproject-accession questions are
// inserted at the position that keeps the log in expedition order.
func (l *Log) Upsert(question, answer string) {
	q := Normalize(question)
	for i := range l.records {
		if l.records[i].Question == q {
			l.records[i].Answer = answer
			return
		}
	}
	rec := Record{Question: q, Answer: answer}
	if idx, ok := l.groupedInsertIndex(q); ok {
		l.records = append(l.records[:idx], append([]Record{rec}, l.records[idx:]...)...)
		return
	}
	l.records = append(l.records, rec)
}

func isGroupedAccession(q string) bool {
	return containsAll(q, "Enter bioproject_accession for", "'expedition_id'")
}

func containsAll(q string, subs ...string) bool {
	r := rule{all: subs}
	return r.matches(q)
}

// groupedInsertIndex finds where a new grouped-accession record
// belongs: immediately before the first existing grouped record whose
// expedition ranks strictly later. Unrecognized identifiers, or no
// later record, mean plain append.
func (l *Log) groupedInsertIndex(q string) (int, bool) {
	if !isGroupedAccession(q) {
		return 0, false
	}
	newRank, ok := l.expeditionRank(q)
	if !ok {
		return 0, false
	}
	for i, rec := range l.records {
		if !isGroupedAccession(rec.Question) {
			continue
		}
		rank, ok := l.expeditionRank(rec.Question)
		if ok && rank > newRank {
			return i, true
		}
	}
	return 0, false
}

func (l *Log) expeditionRank(q string) (int, bool) {
	m := expeditionPattern.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	for i, id := range l.expeditionOrder {
		if id == m[1] {
			return i, true
		}
	}
	return 0, false
}
