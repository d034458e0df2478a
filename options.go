package retable

import "strings"

// Option is a bit flag changing how a View is converted.
type Option int

const (
	// OptionAddHeaderRow adds the column titles as first row.
	OptionAddHeaderRow Option = 1 << iota
	// OptionRemoveEmptyRows drops rows where every formatted cell is empty.
	OptionRemoveEmptyRows
)

func (o Option) Has(option Option) bool {
	return o&option != 0
}

func (o Option) String() string {
	var names []string
	if o.Has(OptionAddHeaderRow) {
		names = append(names, "AddHeaderRow")
	}
	if o.Has(OptionRemoveEmptyRows) {
		names = append(names, "RemoveEmptyRows")
	}
	if len(names) == 0 {
		return "no Option"
	}
	return strings.Join(names, "|")
}

// HasOption returns true if any of options has option set.
func HasOption(options []Option, option Option) bool {
	for _, o := range options {
		if o.Has(option) {
			return true
		}
	}
	return false
}
