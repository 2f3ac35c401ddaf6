package collector

// Record is one block device: column name to value. Columns that were not
// reported are absent.
type Record map[string]string

// Get returns the value of col, or "" if it is absent
func (r Record) Get(col string) string {
	return r[col]
}

// Listing is the result of one lsblk run. Err is set when lsblk could not be
// run or produced nothing usable; Records is then empty.
type Listing struct {
	Records []Record
	Err     error
}

// OK reports whether lsblk ran successfully, even if it found no devices
func (l Listing) OK() bool {
	return l.Err == nil
}
