package common

import (
	"github.com/leapstack-labs/dbnav/internal/ui/features/common/components"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

// BuildNavTree turns the navigation snapshot into database nodes sorted by
// name, each holding its tables in backend order.
func BuildNavTree(nav core.Navigation) []components.TreeNode {
	names := nav.Names()
	result := make([]components.TreeNode, 0, len(names))

	for _, name := range names {
		info := nav.Databases[name]
		node := components.TreeNode{
			Name:       name,
			Path:       name,
			Type:       "database",
			Current:    name == nav.CurrentDatabase,
			AppCreated: info.AppCreated,
			Children:   make([]components.TreeNode, 0, len(info.Tables)),
		}
		for _, table := range info.Tables {
			node.Children = append(node.Children, components.TreeNode{
				Name: table,
				Path: name + "." + table,
				Type: "table",
			})
		}
		result = append(result, node)
	}

	return result
}
