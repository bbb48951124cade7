package convert

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/docmark/document"
)

const frontMatterFence = "+++"

// splitFrontMatter separates a TOML front matter block from the markdown
// body. The block is delimited by "+++" lines at the very start of the
// source. Absent front matter returns the source unchanged with nil
// metadata.
func splitFrontMatter(src string) (string, *document.Metadata, error) {
	rest, ok := strings.CutPrefix(src, frontMatterFence+"\n")
	if !ok {
		if src == frontMatterFence {
			return "", nil, &ParseError{Format: "toml", Msg: "unterminated front matter"}
		}
		return src, nil, nil
	}
	raw, body, ok := strings.Cut(rest, "\n"+frontMatterFence)
	if !ok {
		return "", nil, &ParseError{Format: "toml", Msg: "unterminated front matter"}
	}
	body = strings.TrimPrefix(body, "\n")

	meta := &document.Metadata{}
	if err := toml.Unmarshal([]byte(raw), meta); err != nil {
		return "", nil, &ParseError{Format: "toml", Msg: err.Error()}
	}
	return body, meta, nil
}

// renderFrontMatter produces the "+++"-delimited TOML block for a
// document's metadata, or "" when there is nothing to emit.
func renderFrontMatter(meta *document.Metadata) (string, error) {
	if meta == nil {
		return "", nil
	}
	if meta.Title == "" && meta.Author == "" && meta.Date == "" && len(meta.Custom) == 0 {
		return "", nil
	}
	raw, err := toml.Marshal(meta)
	if err != nil {
		return "", &ParseError{Format: "toml", Msg: err.Error()}
	}
	var sb strings.Builder
	sb.WriteString(frontMatterFence)
	sb.WriteString("\n")
	sb.Write(raw)
	if len(raw) == 0 || raw[len(raw)-1] != '\n' {
		sb.WriteString("\n")
	}
	sb.WriteString(frontMatterFence)
	return sb.String(), nil
}
