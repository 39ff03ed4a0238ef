// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
)

// Style holds the colours used when rendering. Zero values render plain.
type Style struct {
	Root   string
	Branch string
	Leaf   string
	Lines  string
}

// DefaultStyle is used when colour is requested and nothing is configured.
var DefaultStyle = Style{
	Root:   "#FF9900",
	Branch: "#5FAFFF",
	Leaf:   "#D0D0D0",
	Lines:  "#6C6C6C",
}

// Render draws each node as its own tree, separated by a blank line.
func Render(w io.Writer, nodes []*Node, color bool) error {
	style := Style{}
	if color {
		style = DefaultStyle
	}
	return RenderStyled(w, nodes, style)
}

// RenderStyled is Render with explicit colours.
func RenderStyled(w io.Writer, nodes []*Node, style Style) error {
	for i, n := range nodes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, String(n, style)); err != nil {
			return err
		}
	}
	return nil
}

// String renders a single node.
func String(n *Node, style Style) string {
	t := build(n, style).RootStyle(colored(style.Root).Bold(style.Root != ""))
	return strings.TrimRight(t.String(), "\n")
}

// build converts n into a lipgloss tree. Every subtree gets the full set of
// styles since a subtree with any style set stops inheriting its parent's.
func build(n *Node, style Style) *ltree.Tree {
	t := ltree.Root(n.Title).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(colored(style.Lines).PaddingRight(1)).
		RootStyle(colored(style.Branch)).
		ItemStyle(colored(style.Leaf))
	for _, c := range n.Children {
		if c.Leaf() {
			t.Child(c.Title)
			continue
		}
		t.Child(build(c, style))
	}
	return t
}

func colored(c string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c != "" {
		s = s.Foreground(lipgloss.Color(c))
	}
	return s
}
