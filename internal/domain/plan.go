package domain

// TailPolicy controls how sender groups are shaped when the sender count is
// not a multiple of the diversity cap.
type TailPolicy string

const (
	// TailWrap pads the last group by wrapping around to the first senders.
	// Wrapped duplicates are deduplicated when the schedule is emitted, so
	// each (sender, recipient) pair still yields exactly one job.
	TailWrap TailPolicy = "wrap"
	// TailTruncate leaves the last group smaller than the diversity cap.
	TailTruncate TailPolicy = "truncate"
)

// PlanParams are the validated inputs to the planner.
type PlanParams struct {
	SenderIDs                []string
	RecipientIDs             []string
	EmailsPerHour            float64
	EmailsPerRecipientPerDay int
	WorkingHours             int
	TailPolicy               TailPolicy
}

// GroupInfo describes the sender grouping a plan was built from.
type GroupInfo struct {
	TotalGroups         int `json:"total_groups"`
	DaysPerGroup        int `json:"days_per_group"`
	SendersPerGroup     int `json:"senders_per_group"`
	SenderDailyCapacity int `json:"sender_daily_capacity"`
}

// SenderDayPlan is one sender's assignment for one day: parallel lists of
// recipients and "HH:MM" minute stamps. Lengths are always equal in a valid
// plan.
type SenderDayPlan struct {
	SenderID     string   `json:"sender_id"`
	RecipientIDs []string `json:"recipient_ids"`
	PlannedTimes []string `json:"planned_times"`
}

// DaySchedule is the full assignment for one 1-indexed day of the plan.
type DaySchedule struct {
	Day         int             `json:"day"`
	Senders     []SenderDayPlan `json:"senders"`
	TotalForDay int             `json:"total_for_day"`
}

// Plan is the immutable output of the planner: total work, day-by-day
// sender to recipient assignments, and the seeded status matrix.
type Plan struct {
	TotalEmails      int                             `json:"total_emails"`
	CalculatedDays   int                             `json:"calculated_days"`
	GroupInfo        GroupInfo                       `json:"group_info"`
	DailySchedule    []DaySchedule                   `json:"daily_schedule"`
	StatusMatrixSeed map[string]map[string]JobStatus `json:"status_matrix"`
}

// SeededPairs counts the (recipient, sender) cells in the status matrix seed.
func (p *Plan) SeededPairs() int {
	total := 0
	for _, senders := range p.StatusMatrixSeed {
		total += len(senders)
	}
	return total
}
