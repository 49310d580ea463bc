package instance

import (
	"sort"
	"time"

	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/task"
)

// CreationGrace is how much later than the parent's completion a child may
// have been created and still be expanded. It absorbs clock skew during
// batched edits; children created after that are not resurrected into an
// occurrence the parent already finished.
const CreationGrace = 60 * time.Second

type subtreeItem struct {
	originalID string
	instanceID string
}

// ExpandSubtree materializes the whole child tree below originalParentID for
// one occurrence date. Every descendant becomes an instance parented to its
// parent's instance id, carrying the same occurrence date and the usual
// override resolution. parentCompletedAt is a snapshot taken once for the
// whole expansion; pass the zero time when the parent occurrence is not
// completed.
//
// The tree is walked with an explicit work queue, so arbitrarily deep task
// trees cannot exhaust the call stack.
func ExpandSubtree(originalParentID, instanceParentID, occurrenceDate string, all map[string]*task.Task, parentCompletedAt time.Time) []task.Instance {
	byParent := childIndex(all)

	var out []task.Instance
	queue := []subtreeItem{{originalID: originalParentID, instanceID: instanceParentID}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for _, child := range byParent[item.originalID] {
			if createdAfterCompletion(child, parentCompletedAt) {
				continue // excludes the entire subtree below it
			}

			inst := Project(child, occurrenceDate)
			inst.ParentID = item.instanceID
			out = append(out, inst)

			queue = append(queue, subtreeItem{originalID: child.ID, instanceID: inst.InstanceID})
		}
	}
	return out
}

func childIndex(all map[string]*task.Task) map[string][]*task.Task {
	byParent := make(map[string][]*task.Task)
	for _, t := range all {
		if t != nil && t.ParentID != "" {
			byParent[t.ParentID] = append(byParent[t.ParentID], t)
		}
	}
	for _, children := range byParent {
		sort.Slice(children, func(i, j int) bool {
			if children[i].SortOrder != children[j].SortOrder {
				return children[i].SortOrder < children[j].SortOrder
			}
			return children[i].ID < children[j].ID
		})
	}
	return byParent
}

func createdAfterCompletion(t *task.Task, parentCompletedAt time.Time) bool {
	if parentCompletedAt.IsZero() || t.CreatedTime == "" {
		return false
	}
	created, ok := dates.ParseDateTime(t.CreatedTime)
	if !ok {
		return false
	}
	return created.After(parentCompletedAt.Add(CreationGrace))
}
