package exceltable

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptySheet indicates that a sheet contains no data
	// after removing empty rows and columns.
	ErrEmptySheet = errors.New("empty sheet")
)

// ErrSheetNotExist is re-exported from excelize.
type ErrSheetNotExist = excelize.ErrSheetNotExist
