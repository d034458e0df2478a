package retable

var _ View = new(AnyValuesView)

// AnyValuesView is a View implementation
// that holds its rows as slices of value with any type.
type AnyValuesView struct {
	Tit  string
	Cols []string
	Rows [][]any
}

// NewAnyValuesViewFrom reads and caches all cells
// from the source View as AnyValuesView.
func NewAnyValuesViewFrom(source View) *AnyValuesView {
	cols := source.Columns()
	view := &AnyValuesView{
		Tit:  source.Title(),
		Cols: cols,
		Rows: make([][]any, source.NumRows()),
	}
	for row := range view.Rows {
		view.Rows[row] = make([]any, len(cols))
		for col := range view.Rows[row] {
			view.Rows[row][col] = source.Cell(row, col)
		}
	}
	return view
}

func (view *AnyValuesView) Title() string     { return view.Tit }
func (view *AnyValuesView) Columns() []string { return view.Cols }
func (view *AnyValuesView) NumRows() int      { return len(view.Rows) }

func (view *AnyValuesView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Rows[row]) {
		return nil
	}
	return view.Rows[row][col]
}
