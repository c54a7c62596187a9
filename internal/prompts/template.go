package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"
	"strings"
	"text/template"
	"text/template/parse"
)

// ExtractVariables lists the top-level data fields a prompt template reads,
// such as "Item.Name" or "Vocab.Tags", sorted. Fields inside range and with
// bodies are relative to a rebound dot and are skipped. A template that does
// not parse yields nil.
func ExtractVariables(text string) []string {
	tmpl, err := template.New("prompt").Funcs(FuncMap()).Parse(text)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, t := range tmpl.Templates() {
		if t.Tree != nil {
			collectFields(t.Tree.Root, seen)
		}
	}
	if len(seen) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(seen))
}

func collectFields(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, seen)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, seen)
	case *parse.IfNode:
		collectFields(n.Pipe, seen)
		collectFields(n.List, seen)
		collectFields(n.ElseList, seen)
	case *parse.RangeNode:
		collectFields(n.Pipe, seen)
		collectFields(n.ElseList, seen)
	case *parse.WithNode:
		collectFields(n.Pipe, seen)
		collectFields(n.ElseList, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			for _, arg := range cmd.Args {
				collectFields(arg, seen)
			}
		}
	case *parse.FieldNode:
		seen[strings.Join(n.Ident, ".")] = true
	}
}

// HashText returns the hex SHA-256 of a template's text. Recorded calls carry
// it so output can be traced to the exact template version.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
