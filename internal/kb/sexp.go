// Copyright Sigmanaut Labs, 2026. All rights reserved.

package kb

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

// The S-expression serialization of a knowledge base:
//
//	(knowledge-base
//	  (version "0.1")
//	  (chunk
//	    (id "eutxo_model")
//	    (title "The eUTXO Model")
//	    (tags "eutxo" "boxes")
//	    (text "...")))
//
// Strings are double-quoted with \\, \", \n and \t escapes. Anything else
// is a bare symbol.

// sexpValue is one node of a parsed S-expression: either an atom (symbol or
// string) or a list.
type sexpValue struct {
	atom   string
	isStr  bool
	list   []sexpValue
	isList bool
}

// --- encoding ---

// MarshalSexp renders a knowledge base document as an S-expression.
func MarshalSexp(doc types.KnowledgeBase) []byte {
	var b strings.Builder
	b.WriteString("(knowledge-base\n")
	fmt.Fprintf(&b, "  (version %s)\n", quoteSexp(doc.Version))
	for _, c := range doc.Chunks {
		b.WriteString("  (chunk\n")
		fmt.Fprintf(&b, "    (id %s)\n", quoteSexp(c.ID))
		fmt.Fprintf(&b, "    (title %s)\n", quoteSexp(c.Title))
		b.WriteString("    (tags")
		for _, t := range c.Tags {
			b.WriteByte(' ')
			b.WriteString(quoteSexp(t))
		}
		b.WriteString(")\n")
		fmt.Fprintf(&b, "    (text %s))\n", quoteSexp(c.Text))
	}
	b.WriteString(")\n")
	return []byte(b.String())
}

func quoteSexp(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// --- decoding ---

// decodeSexp parses an S-expression knowledge base document.
func decodeSexp(data []byte) (types.KnowledgeBase, error) {
	p := &sexpParser{input: []rune(string(data))}
	root, err := p.parseValue()
	if err != nil {
		return types.KnowledgeBase{}, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return types.KnowledgeBase{}, fmt.Errorf("trailing content after top-level form")
	}
	return docFromSexp(root)
}

type sexpParser struct {
	input []rune
	pos   int
}

func (p *sexpParser) skipSpace() {
	for p.pos < len(p.input) {
		r := p.input[p.pos]
		if r == ';' {
			// Comment to end of line.
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if !unicode.IsSpace(r) {
			return
		}
		p.pos++
	}
}

func (p *sexpParser) parseValue() (sexpValue, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return sexpValue{}, fmt.Errorf("unexpected end of input")
	}

	switch p.input[p.pos] {
	case '(':
		return p.parseList()
	case ')':
		return sexpValue{}, fmt.Errorf("unexpected %q at offset %d", ')', p.pos)
	case '"':
		return p.parseString()
	default:
		return p.parseSymbol()
	}
}

func (p *sexpParser) parseList() (sexpValue, error) {
	p.pos++ // consume '('
	var items []sexpValue
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return sexpValue{}, fmt.Errorf("unterminated list")
		}
		if p.input[p.pos] == ')' {
			p.pos++
			return sexpValue{list: items, isList: true}, nil
		}
		item, err := p.parseValue()
		if err != nil {
			return sexpValue{}, err
		}
		items = append(items, item)
	}
}

func (p *sexpParser) parseString() (sexpValue, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	for p.pos < len(p.input) {
		r := p.input[p.pos]
		p.pos++
		switch r {
		case '"':
			return sexpValue{atom: b.String(), isStr: true}, nil
		case '\\':
			if p.pos >= len(p.input) {
				return sexpValue{}, fmt.Errorf("unterminated escape in string")
			}
			esc := p.input[p.pos]
			p.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"', '\\':
				b.WriteRune(esc)
			default:
				return sexpValue{}, fmt.Errorf("unknown escape %q", string(esc))
			}
		default:
			b.WriteRune(r)
		}
	}
	return sexpValue{}, fmt.Errorf("unterminated string")
}

func (p *sexpParser) parseSymbol() (sexpValue, error) {
	start := p.pos
	for p.pos < len(p.input) {
		r := p.input[p.pos]
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return sexpValue{}, fmt.Errorf("empty symbol at offset %d", start)
	}
	return sexpValue{atom: string(p.input[start:p.pos])}, nil
}

// --- interpretation ---

func docFromSexp(root sexpValue) (types.KnowledgeBase, error) {
	if !root.isList || len(root.list) == 0 || root.list[0].atom != "knowledge-base" {
		return types.KnowledgeBase{}, fmt.Errorf("top-level form must be (knowledge-base ...)")
	}

	var doc types.KnowledgeBase
	for _, form := range root.list[1:] {
		head, args, err := splitForm(form)
		if err != nil {
			return types.KnowledgeBase{}, err
		}
		switch head {
		case "version":
			if len(args) != 1 || !args[0].isStr {
				return types.KnowledgeBase{}, fmt.Errorf("(version ...) takes one string")
			}
			doc.Version = args[0].atom
		case "chunk":
			chunk, err := chunkFromSexp(args)
			if err != nil {
				return types.KnowledgeBase{}, err
			}
			doc.Chunks = append(doc.Chunks, chunk)
		default:
			return types.KnowledgeBase{}, fmt.Errorf("unknown form %q in knowledge-base", head)
		}
	}
	return doc, nil
}

func chunkFromSexp(forms []sexpValue) (types.Chunk, error) {
	var c types.Chunk
	for _, form := range forms {
		head, args, err := splitForm(form)
		if err != nil {
			return types.Chunk{}, err
		}
		switch head {
		case "id", "title", "text":
			if len(args) != 1 || !args[0].isStr {
				return types.Chunk{}, fmt.Errorf("(%s ...) takes one string", head)
			}
			switch head {
			case "id":
				c.ID = args[0].atom
			case "title":
				c.Title = args[0].atom
			case "text":
				c.Text = args[0].atom
			}
		case "tags":
			for _, a := range args {
				if !a.isStr {
					return types.Chunk{}, fmt.Errorf("(tags ...) takes strings")
				}
				c.Tags = append(c.Tags, a.atom)
			}
		default:
			return types.Chunk{}, fmt.Errorf("unknown form %q in chunk", head)
		}
	}
	return c, nil
}

func splitForm(v sexpValue) (string, []sexpValue, error) {
	if !v.isList || len(v.list) == 0 {
		return "", nil, fmt.Errorf("expected a non-empty list form")
	}
	head := v.list[0]
	if head.isList || head.isStr {
		return "", nil, fmt.Errorf("form head must be a symbol")
	}
	return head.atom, v.list[1:], nil
}
