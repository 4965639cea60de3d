package board

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/0xPuncker/taskboard/pkg/types"
)

const (
	ActiveKey     = "active"
	PausedKey     = "paused"
	UnassignedKey = "unassigned"
)

// Group is a classified bucket of records before formatting.
type Group struct {
	Spec    types.GroupSpec
	Records []types.JobRecord
}

// ClassifyByEnabled splits records into the Active and Paused groups. Both
// groups are always returned, Active first.
func ClassifyByEnabled(records []types.JobRecord) []Group {
	active := Group{Spec: types.GroupSpec{ID: ActiveKey, Name: "Active Tasks", Emoji: "🟢", Color: "#2e9e5b"}}
	paused := Group{Spec: types.GroupSpec{ID: PausedKey, Name: "Paused Tasks", Emoji: "⏸️", Color: "#9a9a9a"}}

	for _, r := range records {
		if r.Enabled {
			active.Records = append(active.Records, r)
		} else {
			paused.Records = append(paused.Records, r)
		}
	}

	return []Group{active, paused}
}

// ClassifyByOwner partitions records by owner. Configured groups come first
// in their declared order, even when empty. Owners that are not configured
// get a column of their own in order of first appearance, and records
// without an owner end up in a trailing Unassigned group. The last two only
// exist when they have members.
func ClassifyByOwner(specs []types.GroupSpec, records []types.JobRecord) []Group {
	groups := make([]Group, 0, len(specs)+1)
	index := make(map[string]int, len(specs))

	for _, spec := range specs {
		if _, dup := index[spec.ID]; dup {
			continue
		}
		if spec.Name == "" {
			spec.Name = ownerLabel(spec.ID)
		}
		index[spec.ID] = len(groups)
		groups = append(groups, Group{Spec: spec})
	}

	var unassigned []types.JobRecord
	for _, r := range records {
		if r.Owner == "" {
			unassigned = append(unassigned, r)
			continue
		}

		i, ok := index[r.Owner]
		if !ok {
			i = len(groups)
			index[r.Owner] = i
			groups = append(groups, Group{Spec: types.GroupSpec{
				ID:    r.Owner,
				Name:  ownerLabel(r.Owner),
				Emoji: "❔",
			}})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	if len(unassigned) > 0 {
		groups = append(groups, Group{
			Spec:    types.GroupSpec{ID: UnassignedKey, Name: "Unassigned", Emoji: "📥"},
			Records: unassigned,
		})
	}

	return groups
}

func ownerLabel(id string) string {
	if id == "" {
		return "Unassigned"
	}
	return cases.Title(language.English).String(id)
}
