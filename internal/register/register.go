// Package register stores yanked and deleted text between operations. Only
// the unnamed register exists; named registers are out of scope.
package register

// Entry is one register's content. Linewise entries paste as whole lines;
// the text is stored without a trailing newline, paste re-adds structure.
type Entry struct {
	Text     string
	Linewise bool
}

// Registers holds the unnamed register.
type Registers struct {
	unnamed Entry
	set     bool
}

func New() *Registers {
	return &Registers{}
}

// Write replaces the unnamed register's content.
func (r *Registers) Write(e Entry) {
	r.unnamed = e
	r.set = true
}

// Read returns the unnamed register's content. ok is false when nothing
// has been written this session.
func (r *Registers) Read() (Entry, bool) {
	return r.unnamed, r.set
}
