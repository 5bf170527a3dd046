package printer

import (
	"github.com/polysquare/cmake-ast/ast"
)

// TreeNode is the marshal-friendly projection of one AST node, used by
// the JSON and YAML dumps.
type TreeNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Line     int         `json:"line" yaml:"line"`
	Column   int         `json:"column" yaml:"column"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	WordType string      `json:"word_type,omitempty" yaml:"word_type,omitempty"`
	Contents string      `json:"contents,omitempty" yaml:"contents,omitempty"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree converts a parse tree into its TreeNode projection. The walk
// reports exact depths, so a stack of open nodes reconstructs the
// parent chain.
func Tree(node ast.AstNode) *TreeNode {
	var root *TreeNode
	stack := make([]*TreeNode, 0, 8)

	ast.Inspect(node, func(n ast.AstNode, depth int) bool {
		treeNode := newTreeNode(n)

		if depth == 0 {
			root = treeNode
			stack = append(stack[:0], treeNode)
			return true
		}

		stack = stack[:depth]
		parent := stack[depth-1]
		parent.Children = append(parent.Children, treeNode)
		stack = append(stack, treeNode)
		return true
	})

	return root
}

func newTreeNode(node ast.AstNode) *TreeNode {
	pos := node.Position()
	treeNode := &TreeNode{
		Kind:   node.Type().String(),
		Line:   pos.Line,
		Column: pos.Column,
	}

	switch n := node.(type) {
	case *ast.FunctionCall:
		if n.Name != nil {
			treeNode.Name = n.Name.Contents
		}
	case *ast.Word:
		treeNode.WordType = n.WordType.String()
		treeNode.Contents = n.Contents
	}

	return treeNode
}
