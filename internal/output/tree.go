// Package output renders collected files as a directory tree and an annotated text dump.
package output

import (
	"sort"
	"strings"
)

const (
	branchConnector     = "├── "
	lastBranchConnector = "└── "
	branchIndent        = "│   "
	lastBranchIndent    = "    "
	pathSeparator       = "/"
)

// NodeKind distinguishes directories from files in a tree.
type NodeKind int

const (
	// NodeDirectory holds named children.
	NodeDirectory NodeKind = iota
	// NodeFile is a leaf.
	NodeFile
)

// TreeNode is either a directory with children or a file.
type TreeNode struct {
	Kind     NodeKind
	Children map[string]*TreeNode
}

// NewDirectoryNode returns an empty directory node.
func NewDirectoryNode() *TreeNode {
	return &TreeNode{Kind: NodeDirectory, Children: map[string]*TreeNode{}}
}

// IsDirectory reports whether the node is a directory.
func (node *TreeNode) IsDirectory() bool {
	return node != nil && node.Kind == NodeDirectory
}

// BuildTree converts slash-separated paths into a directory tree rooted at an
// unnamed directory. Empty segments are dropped, so a leading "/" adds no level.
// A segment first seen as the final segment of a path becomes a file and is
// never descended into; the result does not depend on input order for
// well-formed input.
func BuildTree(paths []string) *TreeNode {
	root := NewDirectoryNode()
	for _, path := range paths {
		segments := splitSegments(path)
		current := root
		for segmentIndex, segment := range segments {
			child, exists := current.Children[segment]
			if !exists {
				if segmentIndex == len(segments)-1 {
					child = &TreeNode{Kind: NodeFile}
				} else {
					child = NewDirectoryNode()
				}
				current.Children[segment] = child
			}
			if !child.IsDirectory() {
				break
			}
			current = child
		}
	}
	return root
}

// RenderTree draws the children of node in the style of the UNIX tree command.
// Names are sorted with plain string comparison and directories are not grouped
// ahead of files. The last sibling gets "└── " and the others "├── ".
func RenderTree(node *TreeNode, indent string) string {
	var builder strings.Builder
	renderChildren(&builder, node, indent)
	return builder.String()
}

func renderChildren(builder *strings.Builder, node *TreeNode, indent string) {
	if !node.IsDirectory() {
		return
	}
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	for nameIndex, name := range names {
		isLastChild := nameIndex == len(names)-1
		connector := branchConnector
		childIndent := indent + branchIndent
		if isLastChild {
			connector = lastBranchConnector
			childIndent = indent + lastBranchIndent
		}
		builder.WriteString(indent)
		builder.WriteString(connector)
		builder.WriteString(name)
		builder.WriteString("\n")

		child := node.Children[name]
		if child.IsDirectory() {
			renderChildren(builder, child, childIndent)
		}
	}
}

func splitSegments(path string) []string {
	rawSegments := strings.Split(path, pathSeparator)
	segments := rawSegments[:0]
	for _, segment := range rawSegments {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
