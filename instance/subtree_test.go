package instance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknote/taskcal/task"
)

func taskMap(tasks ...*task.Task) map[string]*task.Task {
	m := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

func TestExpandSubtree(t *testing.T) {
	all := taskMap(
		&task.Task{ID: "parent", Title: "release"},
		&task.Task{ID: "child-a", Title: "build", ParentID: "parent", SortOrder: 1},
		&task.Task{ID: "child-b", Title: "test", ParentID: "parent", SortOrder: 2},
		&task.Task{ID: "grandchild", Title: "unit tests", ParentID: "child-b"},
		&task.Task{ID: "unrelated", Title: "other"},
	)

	out := ExpandSubtree("parent", "parent_2025-03-01", "2025-03-01", all, time.Time{})
	require.Len(t, out, 3)

	byID := make(map[string]task.Instance)
	for _, inst := range out {
		byID[inst.OriginalID] = inst
	}

	a := byID["child-a"]
	assert.Equal(t, "child-a_2025-03-01", a.InstanceID)
	assert.Equal(t, "parent_2025-03-01", a.ParentID)
	assert.Equal(t, "2025-03-01", a.Date)

	// Grandchildren re-parent to their parent's instance, not the root.
	g := byID["grandchild"]
	assert.Equal(t, "child-b_2025-03-01", g.ParentID)
}

func TestExpandSubtreeDeepTree(t *testing.T) {
	// A strictly linear 500-level chain; recursion-based expansion would be
	// at risk here, the work queue must not be.
	tasks := []*task.Task{{ID: nodeID(0)}}
	for i := 1; i <= 500; i++ {
		tasks = append(tasks, &task.Task{
			ID:       nodeID(i),
			ParentID: nodeID(i - 1),
		})
	}

	out := ExpandSubtree(nodeID(0), nodeID(0)+"_2025-01-01", "2025-01-01", taskMap(tasks...), time.Time{})
	assert.Len(t, out, 500)
}

func nodeID(i int) string {
	return "n" + string(rune('0'+i/100)) + string(rune('0'+(i/10)%10)) + string(rune('0'+i%10))
}

func TestExpandSubtreeCompletionGuard(t *testing.T) {
	completedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	all := taskMap(
		&task.Task{ID: "parent"},
		&task.Task{ID: "before", ParentID: "parent", CreatedTime: "2025-03-01 11:00"},
		&task.Task{ID: "within-grace", ParentID: "parent", CreatedTime: "2025-03-01 12:00"},
		&task.Task{ID: "after", ParentID: "parent", CreatedTime: "2025-03-01 12:05"},
		&task.Task{ID: "after-child", ParentID: "after", CreatedTime: "2025-03-01 11:00"},
	)

	out := ExpandSubtree("parent", "parent_2025-03-01", "2025-03-01", all, completedAt)

	ids := make([]string, 0, len(out))
	for _, inst := range out {
		ids = append(ids, inst.OriginalID)
	}
	assert.ElementsMatch(t, []string{"before", "within-grace"}, ids,
		"children created after completion+grace are excluded with their whole subtree")
}

func TestExpandSubtreeNoCompletionSnapshot(t *testing.T) {
	all := taskMap(
		&task.Task{ID: "parent"},
		&task.Task{ID: "late", ParentID: "parent", CreatedTime: "2030-01-01 00:00"},
	)

	out := ExpandSubtree("parent", "parent_2025-03-01", "2025-03-01", all, time.Time{})
	assert.Len(t, out, 1, "without a completion snapshot nothing is excluded")
}
