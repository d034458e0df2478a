package retable

import (
	"context"
	"errors"
	"maps"
	"reflect"
)

// Ensure that ReflectTypeCellFormatter implements CellFormatter
var _ CellFormatter = new(ReflectTypeCellFormatter)

// ReflectTypeCellFormatter selects a CellFormatter by the reflected
// type, implemented interface, or kind of a cell value, in that order.
// If the cell is a non nil pointer without a match, then the
// lookup is repeated for the pointed to type.
//
// The formatter returns errors.ErrUnsupported if no matching formatter
// is found and no Default is configured, so it can be used in formatter chains.
//
// All With* methods return a modified copy.
// A nil *ReflectTypeCellFormatter is valid and supports no cells.
type ReflectTypeCellFormatter struct {
	Types          map[reflect.Type]CellFormatter
	InterfaceTypes map[reflect.Type]CellFormatter
	Kinds          map[reflect.Kind]CellFormatter
	Default        CellFormatter
}

// NewReflectTypeCellFormatter creates a new empty ReflectTypeCellFormatter.
func NewReflectTypeCellFormatter() *ReflectTypeCellFormatter {
	return new(ReflectTypeCellFormatter)
}

// FormatCell implements CellFormatter.
// At each step of the lookup, if a formatter returns errors.ErrUnsupported
// the lookup continues. Any other error is returned immediately.
func (f *ReflectTypeCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	if f == nil {
		return "", false, errors.ErrUnsupported
	}
	if err = ctx.Err(); err != nil {
		return "", false, err
	}
	cellVal := AsReflectCellView(view).ReflectCell(row, col)
	if !cellVal.IsValid() {
		if f.Default != nil {
			return f.Default.FormatCell(ctx, view, row, col)
		}
		return "", false, errors.ErrUnsupported
	}
	cellType := cellVal.Type()
	str, raw, err = f.formatType(ctx, cellType, view, row, col)
	if !errors.Is(err, errors.ErrUnsupported) {
		return str, raw, err
	}
	if cellType.Kind() == reflect.Pointer && !cellVal.IsNil() {
		str, raw, err = f.formatType(ctx, cellType.Elem(), derefCellView{view}, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	if f.Default != nil {
		return f.Default.FormatCell(ctx, view, row, col)
	}
	return "", false, errors.ErrUnsupported
}

func (f *ReflectTypeCellFormatter) formatType(ctx context.Context, cellType reflect.Type, view View, row, col int) (str string, raw bool, err error) {
	if typeFmt, ok := f.Types[cellType]; ok {
		str, raw, err := typeFmt.FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	for interfaceType, interfaceFmt := range f.InterfaceTypes {
		if cellType.Implements(interfaceType) {
			str, raw, err := interfaceFmt.FormatCell(ctx, view, row, col)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
	}
	if kindFmt, ok := f.Kinds[cellType.Kind()]; ok {
		return kindFmt.FormatCell(ctx, view, row, col)
	}
	return "", false, errors.ErrUnsupported
}

// WithTypeFormatter returns a copy with a formatter for the exact type typ.
func (f *ReflectTypeCellFormatter) WithTypeFormatter(typ reflect.Type, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]CellFormatter)
	}
	mod.Types[typ] = fmt
	return mod
}

// WithInterfaceTypeFormatter returns a copy with a formatter
// for all types implementing the interface type typ.
func (f *ReflectTypeCellFormatter) WithInterfaceTypeFormatter(typ reflect.Type, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	if mod.InterfaceTypes == nil {
		mod.InterfaceTypes = make(map[reflect.Type]CellFormatter)
	}
	mod.InterfaceTypes[typ] = fmt
	return mod
}

// WithKindFormatter returns a copy with a formatter for all types of a kind.
func (f *ReflectTypeCellFormatter) WithKindFormatter(kind reflect.Kind, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]CellFormatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}

// WithDefaultFormatter returns a copy with fmt as fallback formatter.
func (f *ReflectTypeCellFormatter) WithDefaultFormatter(fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	mod.Default = fmt
	return mod
}

func (f *ReflectTypeCellFormatter) cloneOrNew() *ReflectTypeCellFormatter {
	if f == nil {
		return new(ReflectTypeCellFormatter)
	}
	return &ReflectTypeCellFormatter{
		Types:          maps.Clone(f.Types),
		InterfaceTypes: maps.Clone(f.InterfaceTypes),
		Kinds:          maps.Clone(f.Kinds),
		Default:        f.Default,
	}
}

// derefCellView dereferences pointer cells of a View.
type derefCellView struct {
	View
}

func (v derefCellView) Cell(row, col int) any {
	val := v.ReflectCell(row, col)
	if !val.IsValid() {
		return nil
	}
	return val.Interface()
}

func (v derefCellView) ReflectCell(row, col int) reflect.Value {
	val := AsReflectCellView(v.View).ReflectCell(row, col)
	if val.Kind() == reflect.Pointer {
		return val.Elem()
	}
	return val
}
