package source

import "github.com/0xPuncker/taskboard/pkg/types"

// MockJobs is the development dataset shown when the job listing tool is
// unavailable.
func MockJobs() []types.JobRecord {
	next := int64(1771029000000)
	return []types.JobRecord{
		{
			Name:        "Mock Task 1 (Active)",
			Enabled:     true,
			Schedule:    types.CronSchedule("30 8 * * *", ""),
			NextRunAtMs: &next,
		},
		{
			Name:     "Mock Task 2 (Disabled)",
			Enabled:  false,
			Schedule: types.CronSchedule("0 10 * * *", ""),
		},
	}
}
