package editor

import (
	"fmt"

	"github.com/dshills/docmark/document"
)

// TableOpKind names one table mutation.
type TableOpKind string

const (
	TableAddRow            TableOpKind = "add_row"
	TableRemoveRow         TableOpKind = "remove_row"
	TableAddColumn         TableOpKind = "add_column"
	TableRemoveColumn      TableOpKind = "remove_column"
	TableSetCell           TableOpKind = "set_cell"
	TableSetAlignment      TableOpKind = "set_alignment"
	TableSetCellBackground TableOpKind = "set_cell_background"
	TableSetCellStyle      TableOpKind = "set_cell_style"
	TableSetCellSpan       TableOpKind = "set_cell_span"
	TableSetProperties     TableOpKind = "set_properties"
)

// TableOperation is a closed variant over table mutations. Row indices
// address body rows; the header row is maintained implicitly by the
// column operations.
type TableOperation struct {
	Kind             TableOpKind
	Row, Col         int
	Content          []document.InlineNode
	Alignment        document.Alignment
	Color, Style     string
	ColSpan, RowSpan int
	Properties       *document.TableProperties
}

// AddRow inserts an empty body row at the given row index.
func AddRow(at int) TableOperation { return TableOperation{Kind: TableAddRow, Row: at} }

// RemoveRow removes the body row at the given index.
func RemoveRow(at int) TableOperation { return TableOperation{Kind: TableRemoveRow, Row: at} }

// AddColumn inserts an empty column at the given index, header included.
func AddColumn(at int) TableOperation { return TableOperation{Kind: TableAddColumn, Col: at} }

// RemoveColumn removes the column at the given index, header included.
func RemoveColumn(at int) TableOperation { return TableOperation{Kind: TableRemoveColumn, Col: at} }

// SetCell replaces the content of a body cell.
func SetCell(row, col int, content ...document.InlineNode) TableOperation {
	return TableOperation{Kind: TableSetCell, Row: row, Col: col, Content: content}
}

// SetColumnAlignment sets the alignment of a column.
func SetColumnAlignment(col int, a document.Alignment) TableOperation {
	return TableOperation{Kind: TableSetAlignment, Col: col, Alignment: a}
}

// SetCellBackground sets the background color of a body cell.
func SetCellBackground(row, col int, color string) TableOperation {
	return TableOperation{Kind: TableSetCellBackground, Row: row, Col: col, Color: color}
}

// SetCellStyle sets the inline style of a body cell.
func SetCellStyle(row, col int, style string) TableOperation {
	return TableOperation{Kind: TableSetCellStyle, Row: row, Col: col, Style: style}
}

// SetCellSpan sets the column and row span of a body cell; spans below 1
// are rejected at execute time.
func SetCellSpan(row, col, colSpan, rowSpan int) TableOperation {
	return TableOperation{Kind: TableSetCellSpan, Row: row, Col: col, ColSpan: colSpan, RowSpan: rowSpan}
}

// SetTableProperties replaces the table-wide render properties.
func SetTableProperties(p document.TableProperties) TableOperation {
	return TableOperation{Kind: TableSetProperties, Properties: &p}
}

// CreateTableCommand inserts an empty rows-by-cols table at a top-level
// index.
type CreateTableCommand struct {
	Index      int
	RowCount   int
	ColCount   int
	WithHeader bool
}

func NewCreateTableCommand(index, rows, cols int, withHeader bool) *CreateTableCommand {
	return &CreateTableCommand{Index: index, RowCount: rows, ColCount: cols, WithHeader: withHeader}
}

func (c *CreateTableCommand) Execute(doc *document.Document) error {
	if c.RowCount < 1 || c.ColCount < 1 {
		return fmt.Errorf("table %dx%d: %w", c.RowCount, c.ColCount, document.ErrInvalidRange)
	}
	var header []document.TableCell
	if c.WithHeader {
		header = make([]document.TableCell, c.ColCount)
		for i := range header {
			header[i] = document.NewHeaderCell()
		}
	}
	rows := make([][]document.TableCell, c.RowCount)
	for i := range rows {
		rows[i] = make([]document.TableCell, c.ColCount)
		for j := range rows[i] {
			rows[i][j] = document.NewTableCell()
		}
	}
	alignments := make([]document.Alignment, c.ColCount)
	for i := range alignments {
		alignments[i] = document.AlignNone
	}
	return doc.InsertNode(c.Index, document.NewTable(header, rows, alignments))
}

func (c *CreateTableCommand) Undo(doc *document.Document) error {
	_, err := doc.RemoveNode(c.Index)
	return err
}

func (c *CreateTableCommand) Description() string {
	return fmt.Sprintf("create %dx%d table at %d", c.RowCount, c.ColCount, c.Index)
}

// TableOperationCommand applies one TableOperation to the table at a
// top-level index, snapshotting the table for undo.
type TableOperationCommand struct {
	Index int
	Op    TableOperation

	prior *document.Node
}

func NewTableOperationCommand(index int, op TableOperation) *TableOperationCommand {
	return &TableOperationCommand{Index: index, Op: op}
}

func (c *TableOperationCommand) Execute(doc *document.Document) error {
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("table at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	table := &doc.Nodes[c.Index]
	if table.Kind != document.KindTable {
		return fmt.Errorf("table operation on %s node: %w", table.Kind, document.ErrUnsupportedOperation)
	}
	snap := table.Clone()
	if err := applyTableOp(table, c.Op); err != nil {
		return err
	}
	c.prior = &snap
	return nil
}

func applyTableOp(table *document.Node, op TableOperation) error {
	cols := tableWidth(table)
	switch op.Kind {
	case TableAddRow:
		if op.Row < 0 || op.Row > len(table.Rows) {
			return rowErr(op.Row, len(table.Rows))
		}
		row := make([]document.TableCell, cols)
		for i := range row {
			row[i] = document.NewTableCell()
		}
		table.Rows = append(table.Rows, nil)
		copy(table.Rows[op.Row+1:], table.Rows[op.Row:])
		table.Rows[op.Row] = row
	case TableRemoveRow:
		if op.Row < 0 || op.Row >= len(table.Rows) {
			return rowErr(op.Row, len(table.Rows)-1)
		}
		table.Rows = append(table.Rows[:op.Row], table.Rows[op.Row+1:]...)
	case TableAddColumn:
		if op.Col < 0 || op.Col > cols {
			return colErr(op.Col, cols)
		}
		if table.Header != nil {
			table.Header = insertCell(table.Header, op.Col, document.NewHeaderCell())
		}
		for i := range table.Rows {
			table.Rows[i] = insertCell(table.Rows[i], op.Col, document.NewTableCell())
		}
		if table.Alignments != nil {
			table.Alignments = append(table.Alignments, document.AlignNone)
			copy(table.Alignments[op.Col+1:], table.Alignments[op.Col:])
			table.Alignments[op.Col] = document.AlignNone
		}
	case TableRemoveColumn:
		if op.Col < 0 || op.Col >= cols {
			return colErr(op.Col, cols-1)
		}
		if table.Header != nil {
			table.Header = append(table.Header[:op.Col], table.Header[op.Col+1:]...)
		}
		for i := range table.Rows {
			if op.Col < len(table.Rows[i]) {
				table.Rows[i] = append(table.Rows[i][:op.Col], table.Rows[i][op.Col+1:]...)
			}
		}
		if op.Col < len(table.Alignments) {
			table.Alignments = append(table.Alignments[:op.Col], table.Alignments[op.Col+1:]...)
		}
	case TableSetCell:
		cell, err := bodyCell(table, op.Row, op.Col)
		if err != nil {
			return err
		}
		cell.Content = document.CloneInlines(op.Content)
	case TableSetAlignment:
		if op.Col < 0 || op.Col >= cols {
			return colErr(op.Col, cols-1)
		}
		for len(table.Alignments) < cols {
			table.Alignments = append(table.Alignments, document.AlignNone)
		}
		table.Alignments[op.Col] = op.Alignment
	case TableSetCellBackground:
		cell, err := bodyCell(table, op.Row, op.Col)
		if err != nil {
			return err
		}
		cell.BackgroundColor = op.Color
	case TableSetCellStyle:
		cell, err := bodyCell(table, op.Row, op.Col)
		if err != nil {
			return err
		}
		cell.Style = op.Style
	case TableSetCellSpan:
		if op.ColSpan < 1 || op.RowSpan < 1 {
			return fmt.Errorf("cell span %dx%d: %w", op.ColSpan, op.RowSpan, document.ErrInvalidRange)
		}
		cell, err := bodyCell(table, op.Row, op.Col)
		if err != nil {
			return err
		}
		cell.ColSpan = op.ColSpan
		cell.RowSpan = op.RowSpan
	case TableSetProperties:
		if op.Properties == nil {
			return fmt.Errorf("nil table properties: %w", document.ErrInvalidNode)
		}
		p := *op.Properties
		table.TableProps = &p
	default:
		return fmt.Errorf("table operation %q: %w", op.Kind, document.ErrUnsupportedOperation)
	}
	return nil
}

func tableWidth(table *document.Node) int {
	if len(table.Header) > 0 {
		return len(table.Header)
	}
	if len(table.Rows) > 0 {
		return len(table.Rows[0])
	}
	return 0
}

func bodyCell(table *document.Node, row, col int) (*document.TableCell, error) {
	if row < 0 || row >= len(table.Rows) {
		return nil, rowErr(row, len(table.Rows)-1)
	}
	if col < 0 || col >= len(table.Rows[row]) {
		return nil, colErr(col, len(table.Rows[row])-1)
	}
	return &table.Rows[row][col], nil
}

func insertCell(row []document.TableCell, at int, cell document.TableCell) []document.TableCell {
	if at > len(row) {
		at = len(row)
	}
	row = append(row, document.TableCell{})
	copy(row[at+1:], row[at:])
	row[at] = cell
	return row
}

func rowErr(row, max int) error {
	return fmt.Errorf("table row %d (max %d): %w", row, max, document.ErrIndexOutOfBounds)
}

func colErr(col, max int) error {
	return fmt.Errorf("table column %d (max %d): %w", col, max, document.ErrIndexOutOfBounds)
}

func (c *TableOperationCommand) Undo(doc *document.Document) error {
	if c.prior == nil {
		return fmt.Errorf("table operation at %d not executed: %w", c.Index, document.ErrOperationFailed)
	}
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("table at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	doc.Nodes[c.Index] = c.prior.Clone()
	return nil
}

func (c *TableOperationCommand) Description() string {
	return fmt.Sprintf("table %s at %d", c.Op.Kind, c.Index)
}

// CreateTable inserts an empty table at a top-level index.
func (e *Editor) CreateTable(index, rows, cols int, withHeader bool) error {
	return e.Execute(NewCreateTableCommand(index, rows, cols, withHeader))
}

// ApplyTableOperation applies one table mutation to the table at index.
func (e *Editor) ApplyTableOperation(index int, op TableOperation) error {
	return e.Execute(NewTableOperationCommand(index, op))
}
