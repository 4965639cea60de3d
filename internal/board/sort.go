package board

import (
	"slices"
	"strings"

	"github.com/0xPuncker/taskboard/pkg/types"
)

// SortBySchedule orders records by raw cron expression. Records without one
// sort first. Ties keep their input order.
func SortBySchedule(records []types.JobRecord) {
	slices.SortStableFunc(records, func(a, b types.JobRecord) int {
		return strings.Compare(a.CronExpr(), b.CronExpr())
	})
}

// SortByName orders records by name, case-sensitive. Ties keep their input
// order.
func SortByName(records []types.JobRecord) {
	slices.SortStableFunc(records, func(a, b types.JobRecord) int {
		return strings.Compare(a.Name, b.Name)
	})
}
