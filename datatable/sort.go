package datatable

import (
	"cmp"
	"math"
	"reflect"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	retable "github.com/plan-dashboard/go-retable"
)

// maxSafeInteger is the largest integer that a float64
// can represent together with all smaller integers.
const maxSafeInteger = 1<<53 - 1

// SafeInteger returns the value as int64 if it is an integer
// or an integral float within ±(2^53-1).
func SafeInteger(val any) (int64, bool) {
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		return i, i >= -maxSafeInteger && i <= maxSafeInteger
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		return int64(min(u, maxSafeInteger)), u <= maxSafeInteger
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// comparator compares record values of a sort column.
// A Collator is not safe for concurrent use,
// so every sort creates its own comparator.
type comparator struct {
	collator   *collate.Collator
	descending bool
}

func newComparator(descending bool) *comparator {
	return &comparator{
		collator:   collate.New(language.Und),
		descending: descending,
	}
}

// compare orders undefined values after defined values
// independent of the direction. Both undefined are equal.
func (c *comparator) compare(a, b any, aDefined, bDefined bool) int {
	switch {
	case !aDefined && !bDefined:
		return 0
	case !aDefined:
		return 1
	case !bDefined:
		return -1
	}
	var result int
	ai, aSafe := SafeInteger(a)
	bi, bSafe := SafeInteger(b)
	if aSafe && bSafe {
		result = cmp.Compare(ai, bi)
	} else {
		result = c.collator.CompareString(ValueString(a), ValueString(b))
	}
	if c.descending {
		return -result
	}
	return result
}

// sortRows stable sorts row indices by the raw key of the column.
func sortRows(rows []retable.Record, indices []int, key string, descending bool) {
	c := newComparator(descending)
	slices.SortStableFunc(indices, func(i, j int) int {
		a, aDefined := rows[i].Lookup(key)
		b, bDefined := rows[j].Lookup(key)
		return c.compare(a, b, aDefined, bDefined)
	})
}
