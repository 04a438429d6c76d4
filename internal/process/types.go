package process

// StatusRunning is the status code the service manager reports for a live process
const StatusRunning = "R"

// Record represents one line of the service manager's process list
type Record struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	PID       string `json:"pid"`
	Timestamp string `json:"timestamp"`
}

// Running reports whether the service manager considers the process running
func (r Record) Running() bool {
	return r.Status == StatusRunning
}

// Table is the numbered process listing shown to the user.
// Indices start at 1 and are contiguous; a Table is never mutated after Parse.
type Table struct {
	records []Record
}

// NewTable numbers the given records from 1 in order
func NewTable(records ...Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Get returns the record displayed at index i
func (t *Table) Get(i int) (Record, bool) {
	if i < 1 || i > t.Len() {
		return Record{}, false
	}
	return t.records[i-1], true
}

// Valid reports whether i is a row of this table
func (t *Table) Valid(i int) bool {
	return i >= 1 && i <= t.Len()
}

// Records returns the rows in display order
func (t *Table) Records() []Record {
	cp := make([]Record, t.Len())
	if t != nil {
		copy(cp, t.records)
	}
	return cp
}
