package document

// Formatting holds the character-level style flags carried by a text run.
// The zero value is unformatted text.
type Formatting struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Code          bool `json:"code,omitempty"`
}

// IsPlain reports whether no style flag is set.
func (f Formatting) IsPlain() bool {
	return !f.Bold && !f.Italic && !f.Strikethrough && !f.Code
}

// Merge returns the union of f and other.
func (f Formatting) Merge(other Formatting) Formatting {
	return Formatting{
		Bold:          f.Bold || other.Bold,
		Italic:        f.Italic || other.Italic,
		Strikethrough: f.Strikethrough || other.Strikethrough,
		Code:          f.Code || other.Code,
	}
}
