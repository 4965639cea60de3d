package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPuncker/taskboard/pkg/types"
)

func TestClassifyByEnabled(t *testing.T) {
	records := []types.JobRecord{
		{Name: "a", Enabled: true},
		{Name: "b", Enabled: false},
		{Name: "c", Enabled: true, Status: types.StatusPaused},
		{},
	}

	groups := ClassifyByEnabled(records)
	require.Len(t, groups, 2)
	assert.Equal(t, ActiveKey, groups[0].Spec.ID)
	assert.Equal(t, PausedKey, groups[1].Spec.ID)
	assert.Equal(t, []string{"a", "c"}, names(groups[0].Records))
	assert.Equal(t, []string{"b", ""}, names(groups[1].Records))
}

func TestClassifyByEnabledEmptyInput(t *testing.T) {
	groups := ClassifyByEnabled(nil)
	require.Len(t, groups, 2)
	assert.Empty(t, groups[0].Records)
	assert.Empty(t, groups[1].Records)
}

func TestClassifyByOwner(t *testing.T) {
	specs := []types.GroupSpec{
		{ID: "finch", Name: "Finch"},
		{ID: "owl"},
		{ID: "crow", Name: "Crow"},
	}
	records := []types.JobRecord{
		{Name: "scan", Owner: "owl"},
		{Name: "digest", Owner: "finch"},
		{Name: "orphan"},
		{Name: "wander", Owner: "night-heron"},
		{Name: "sort", Owner: "owl"},
	}

	groups := ClassifyByOwner(specs, records)
	require.Len(t, groups, 5)

	assert.Equal(t, "finch", groups[0].Spec.ID)
	assert.Equal(t, []string{"digest"}, names(groups[0].Records))

	assert.Equal(t, "owl", groups[1].Spec.ID)
	assert.Equal(t, "Owl", groups[1].Spec.Name)
	assert.Equal(t, []string{"scan", "sort"}, names(groups[1].Records))

	assert.Equal(t, "crow", groups[2].Spec.ID)
	assert.Empty(t, groups[2].Records)

	assert.Equal(t, "night-heron", groups[3].Spec.ID)
	assert.Equal(t, "Night-Heron", groups[3].Spec.Name)

	assert.Equal(t, UnassignedKey, groups[4].Spec.ID)
	assert.Equal(t, []string{"orphan"}, names(groups[4].Records))
}

func TestClassifyByOwnerSkipsDuplicateSpecs(t *testing.T) {
	specs := []types.GroupSpec{{ID: "owl", Name: "First"}, {ID: "owl", Name: "Second"}}
	groups := ClassifyByOwner(specs, []types.JobRecord{{Name: "x", Owner: "owl"}})
	require.Len(t, groups, 1)
	assert.Equal(t, "First", groups[0].Spec.Name)
	assert.Len(t, groups[0].Records, 1)
}

func TestClassificationIsAPartition(t *testing.T) {
	specs := []types.GroupSpec{{ID: "finch"}, {ID: "owl"}}
	records := sampleRecords()

	for _, groups := range [][]Group{
		ClassifyByEnabled(records),
		ClassifyByOwner(specs, records),
	} {
		seen := map[string]int{}
		total := 0
		for _, g := range groups {
			for _, r := range g.Records {
				seen[r.ID]++
				total++
			}
		}
		assert.Equal(t, len(records), total)
		for _, r := range records {
			assert.Equal(t, 1, seen[r.ID], "record %s", r.ID)
		}
	}
}

func TestClassificationIgnoresUnrelatedFields(t *testing.T) {
	records := sampleRecords()
	mutated := make([]types.JobRecord, len(records))
	for i, r := range records {
		r.Description = "changed"
		r.ID = r.ID + "-x"
		mutated[i] = r
	}

	specs := []types.GroupSpec{{ID: "finch"}}
	assert.Equal(t, groupSizes(ClassifyByEnabled(records)), groupSizes(ClassifyByEnabled(mutated)))
	assert.Equal(t, groupSizes(ClassifyByOwner(specs, records)), groupSizes(ClassifyByOwner(specs, mutated)))
}

func sampleRecords() []types.JobRecord {
	return []types.JobRecord{
		{ID: "1", Name: "Zeta", Enabled: true, Owner: "finch", Schedule: types.CronSchedule("0 9 * * *", "")},
		{ID: "2", Name: "alpha", Enabled: false, Owner: "owl", Schedule: types.EverySchedule(120000)},
		{ID: "3", Name: "Beta", Enabled: true, Owner: "owl", Schedule: types.CronSchedule("*/5 * * * *", "")},
		{ID: "4", Enabled: true, Description: "no name"},
		{ID: "5", Name: "Gamma", Enabled: false, Owner: "heron", Schedule: types.AtSchedule(1700000000000)},
		{ID: "6", Name: "Delta", Enabled: true, Owner: "finch", Schedule: types.CronSchedule("0 9 * * *", "Asia/Tokyo")},
	}
}

func names(records []types.JobRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func groupSizes(groups []Group) map[string]int {
	out := make(map[string]int, len(groups))
	for _, g := range groups {
		out[g.Spec.ID] = len(g.Records)
	}
	return out
}
