package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Column describes one column of a RecordTable.
type Column struct {
	Title string
	Width float32
}

// RecordTable is a read-only table with a header row and single row
// selection. Cell text comes from the Cell callback.
type RecordTable struct {
	table    *widget.Table
	columns  []Column
	rows     func() int
	cell     func(row, col int) string
	selected int

	onSelected func(row int)
}

func NewRecordTable(columns []Column, rows func() int, cell func(row, col int) string) *RecordTable {
	rt := &RecordTable{columns: columns, rows: rows, cell: cell, selected: -1}

	rt.table = widget.NewTableWithHeaders(
		func() (int, int) { return rt.rows(), len(rt.columns) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(rt.cell(id.Row, id.Col))
		},
	)
	rt.table.ShowHeaderColumn = false
	rt.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	rt.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(rt.columns) {
			o.(*widget.Label).SetText(rt.columns[id.Col].Title)
		}
	}
	rt.table.OnSelected = func(id widget.TableCellID) {
		rt.selected = id.Row
		if rt.onSelected != nil {
			rt.onSelected(id.Row)
		}
	}
	rt.table.OnUnselected = func(widget.TableCellID) {
		rt.selected = -1
		if rt.onSelected != nil {
			rt.onSelected(-1)
		}
	}

	for i, c := range columns {
		if c.Width > 0 {
			rt.table.SetColumnWidth(i, c.Width)
		}
	}
	return rt
}

// SetSelectionHandler is called with the selected row, or -1 when cleared.
func (rt *RecordTable) SetSelectionHandler(handler func(row int)) {
	rt.onSelected = handler
}

// Selected returns the selected row index or -1.
func (rt *RecordTable) Selected() int {
	if rt.selected >= rt.rows() {
		return -1
	}
	return rt.selected
}

// Reload redraws the table after its rows changed and clears the selection.
func (rt *RecordTable) Reload() {
	rt.table.UnselectAll()
	rt.selected = -1
	rt.table.Refresh()
}

func (rt *RecordTable) Widget() fyne.CanvasObject {
	return rt.table
}
