package document

// Alignment is a cell or column alignment. Markdown renders the horizontal
// subset; the vertical values exist for styled render targets.
type Alignment string

const (
	AlignNone    Alignment = "none"
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
	AlignTop     Alignment = "top"
	AlignMiddle  Alignment = "middle"
	AlignBottom  Alignment = "bottom"
)

// TableCell holds one cell's inline content plus its render attributes.
// ColSpan and RowSpan are always at least 1.
type TableCell struct {
	Content         []InlineNode
	ColSpan         int
	RowSpan         int
	BackgroundColor string
	CSSClass        string
	Style           string
	IsHeader        bool
}

// NewTableCell returns a body cell with unit spans.
func NewTableCell(content ...InlineNode) TableCell {
	return TableCell{Content: content, ColSpan: 1, RowSpan: 1}
}

// NewTableCellText returns a body cell holding a single plain text run.
func NewTableCellText(text string) TableCell {
	return NewTableCell(NewText(text))
}

// NewHeaderCell returns a header cell with unit spans.
func NewHeaderCell(content ...InlineNode) TableCell {
	c := NewTableCell(content...)
	c.IsHeader = true
	return c
}

// TableProperties are table-wide render attributes. Interchange always
// serializes them, defaults included.
type TableProperties struct {
	HasHeader       bool   `json:"has_header"`
	HasBorders      bool   `json:"has_borders"`
	StripedRows     bool   `json:"striped_rows"`
	Hoverable       bool   `json:"hoverable"`
	CSSClass        string `json:"css_class,omitempty"`
	Style           string `json:"style,omitempty"`
	Caption         string `json:"caption,omitempty"`
	CaptionAtBottom bool   `json:"caption_at_bottom,omitempty"`
}

// DefaultTableProperties returns the defaults: a bordered table with a
// header row.
func DefaultTableProperties() TableProperties {
	return TableProperties{HasHeader: true, HasBorders: true}
}

// CodeBlockProperties are code-block render attributes. Interchange always
// serializes them, defaults included.
type CodeBlockProperties struct {
	LineNumbers    bool   `json:"line_numbers"`
	StartLine      int    `json:"start_line"`
	HighlightLines []int  `json:"highlight_lines,omitempty"`
	Theme          string `json:"theme,omitempty"`
	MaxHeight      string `json:"max_height,omitempty"`
	CSSClass       string `json:"css_class,omitempty"`
	Style          string `json:"style,omitempty"`
	CopyButton     bool   `json:"copy_button"`
}

// DefaultCodeBlockProperties returns the defaults: numbering off, counting
// from line 1, copy button shown.
func DefaultCodeBlockProperties() CodeBlockProperties {
	return CodeBlockProperties{StartLine: 1, CopyButton: true}
}
