package domain

import (
	"fmt"
	"maps"
	"unicode/utf16"
)

// Op is one operation of a document delta. Insert holds either a string or
// an embed object such as {"image": "data:..."}.
type Op struct {
	Insert     any            `json:"insert"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Delta is a document expressed as a sequence of insert operations.
type Delta struct {
	Ops []Op `json:"ops"`
}

// Selection is a cursor position (Length 0) or a range in a document.
type Selection struct {
	Index  int `json:"index"`
	Length int `json:"length"`
}

// textLen counts UTF-16 code units, the unit editor indices are expressed in.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// splitText splits s after the first offset UTF-16 code units.
func splitText(s string, offset int) (string, string) {
	n := 0
	for i, r := range s {
		if n >= offset {
			return s[:i], s[i:]
		}
		n += utf16.RuneLen(r)
	}
	return s, ""
}

// Len returns the length of op: text length for strings, 1 for embeds.
func (op Op) Len() int {
	if s, ok := op.Insert.(string); ok {
		return textLen(s)
	}
	return 1
}

// IsEmbed reports whether op inserts an embed rather than text.
func (op Op) IsEmbed() bool {
	_, ok := op.Insert.(string)
	return !ok && op.Insert != nil
}

// Validate checks that d is a document: only non-empty inserts.
func (d *Delta) Validate() error {
	for i, op := range d.Ops {
		switch v := op.Insert.(type) {
		case nil:
			return fmt.Errorf("op %d: document deltas may only contain inserts", i)
		case string:
			if v == "" {
				return fmt.Errorf("op %d: empty text insert", i)
			}
		case map[string]any:
			if len(v) != 1 {
				return fmt.Errorf("op %d: embed must have exactly one key", i)
			}
		default:
			return fmt.Errorf("op %d: unsupported insert type %T", i, v)
		}
	}
	return nil
}

// Length returns the document length.
func (d *Delta) Length() int {
	n := 0
	for _, op := range d.Ops {
		n += op.Len()
	}
	return n
}

// Embeds returns the embeds of the given kind in document order.
func (d *Delta) Embeds(kind string) []any {
	var out []any
	for _, op := range d.Ops {
		if m, ok := op.Insert.(map[string]any); ok {
			if v, ok := m[kind]; ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// InsertEmbed inserts a single embed of the given kind at index, splitting a
// text run when index falls inside it. Indices past the end append. It
// returns the index the embed landed at.
func (d *Delta) InsertEmbed(index int, kind string, value any) int {
	if index < 0 {
		index = 0
	}
	if total := d.Length(); index > total {
		index = total
	}
	embed := Op{Insert: map[string]any{kind: value}}

	ops := make([]Op, 0, len(d.Ops)+2)
	pos := 0
	inserted := false
	for _, op := range d.Ops {
		if inserted {
			ops = append(ops, op)
			continue
		}
		n := op.Len()
		switch {
		case index == pos:
			ops = append(ops, embed, op)
			inserted = true
		case index < pos+n:
			head, tail := splitText(op.Insert.(string), index-pos)
			ops = append(ops,
				Op{Insert: head, Attributes: op.Attributes},
				embed,
				Op{Insert: tail, Attributes: maps.Clone(op.Attributes)},
			)
			inserted = true
		default:
			ops = append(ops, op)
		}
		pos += n
	}
	if !inserted {
		ops = append(ops, embed)
	}
	d.Ops = ops
	return index
}
