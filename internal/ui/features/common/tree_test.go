package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/dbnav/internal/ui/features/common/components"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

func TestBuildNavTree(t *testing.T) {
	nav := core.Navigation{
		Databases: map[string]core.DatabaseInfo{
			"zeta":  {Tables: []string{"b", "a"}},
			"alpha": {Tables: nil, AppCreated: true},
		},
		CurrentDatabase: "zeta",
	}

	tree := BuildNavTree(nav)

	assert.Equal(t, []components.TreeNode{
		{Name: "alpha", Path: "alpha", Type: "database", AppCreated: true, Children: []components.TreeNode{}},
		{Name: "zeta", Path: "zeta", Type: "database", Current: true, Children: []components.TreeNode{
			{Name: "b", Path: "zeta.b", Type: "table"},
			{Name: "a", Path: "zeta.a", Type: "table"},
		}},
	}, tree)
}

func TestBuildNavTree_Empty(t *testing.T) {
	tree := BuildNavTree(core.Navigation{})
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
