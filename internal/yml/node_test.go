package yml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode(t *testing.T) {
	node, err := Parse([]byte(`
launch:
  - arg: {name: robot, default: r1}
  - push_env:
  - group:
      scoped: false
      period: 1.5
      count: 3
`))
	require.NoError(t, err)
	launch := node.Lookup("launch")
	require.NotNil(t, launch)
	var tags []string
	err = launch.Items(func(index int, item *Node) error {
		return item.Pairs(func(key string, value *Node) error {
			tags = append(tags, key)
			if key == "push_env" {
				assert.True(t, value.IsNull())
			}
			if key == "group" {
				assert.Equal(t, map[string]interface{}{"scoped": false, "period": 1.5, "count": 3}, value.Interface())
			}
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"arg", "push_env", "group"}, tags)
	assert.Nil(t, node.Lookup("missing"))
	assert.Error(t, launch.Pairs(func(key string, node *Node) error { return nil }))
}
