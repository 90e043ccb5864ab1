package sketchhtml

// voidTags never take children or a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// rawTags hold raw text where '<' does not open a tag; their content is
// invisible to wireframe inference and gets skipped wholesale.
var rawTags = map[string]bool{"script": true, "style": true}

// Parse builds a tree from markup. Mismatched end tags unwind to the
// nearest matching open element; stray ones are ignored.
func Parse(markup string) (*Node, error) {
	root := &Node{Tag: "root"}
	stack := []*Node{root}
	tk := &tokenizer{input: markup}
	for {
		tok, err := tk.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenEOF {
			return root, nil
		}
		top := stack[len(stack)-1]
		switch tok.typ {
		case tokenStart:
			if rawTags[tok.tag] {
				tk.skipRaw(tok.tag)
				continue
			}
			node := &Node{Tag: tok.tag, Attrs: tok.attrs}
			top.addChild(node)
			if !tok.selfClosing && !voidTags[tok.tag] {
				stack = append(stack, node)
			}
		case tokenText:
			top.addChild(&Node{Text: tok.text})
		case tokenEnd:
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Tag == tok.tag {
					stack = stack[:i]
					break
				}
			}
		}
	}
}
