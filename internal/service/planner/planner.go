package planner

import (
	"fmt"
	"math"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/pkg/logger"
)

// Planner computes multi-day delivery schedules. It is pure: no I/O, no
// clock. For any valid input it returns a plan; input validation is the
// caller's responsibility.
type Planner struct {
	logger logger.Logger
}

// NewPlanner creates a new planner
func NewPlanner(logger logger.Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan builds the grouped serial schedule described by the params.
//
// Senders are partitioned into groups of EmailsPerRecipientPerDay members in
// input order; groups execute serially, each group covering the whole
// recipient population before the next begins. Inside a group, day d assigns
// every sender the recipient slice [(d-1)*capacity, min(d*capacity, N)), so
// on any calendar day at most one group's senders are active and the
// per-recipient diversity cap holds by construction.
func (p *Planner) Plan(params domain.PlanParams) *domain.Plan {
	senders := params.SenderIDs
	recipients := params.RecipientIDs

	r := params.EmailsPerRecipientPerDay
	if r < 1 {
		r = 1
	}

	hours := params.WorkingHours
	if hours < 1 {
		hours = 24
	} else if hours > 24 {
		hours = 24
	}

	capacity := dailyCapacity(params.EmailsPerHour, hours)

	totalGroups := ceilDiv(len(senders), r)
	daysPerGroup := ceilDiv(len(recipients), capacity)
	calculatedDays := totalGroups * daysPerGroup

	groups := p.buildGroups(senders, r, totalGroups, params.TailPolicy)

	plan := &domain.Plan{
		CalculatedDays: calculatedDays,
		GroupInfo: domain.GroupInfo{
			TotalGroups:         totalGroups,
			DaysPerGroup:        daysPerGroup,
			SendersPerGroup:     r,
			SenderDailyCapacity: capacity,
		},
		DailySchedule:    make([]domain.DaySchedule, 0, calculatedDays),
		StatusMatrixSeed: make(map[string]map[string]domain.JobStatus),
	}

	for g, group := range groups {
		for d := 1; d <= daysPerGroup; d++ {
			day := g*daysPerGroup + d

			start := (d - 1) * capacity
			end := d * capacity
			if end > len(recipients) {
				end = len(recipients)
			}
			if start >= end {
				continue
			}

			dayRecipients := recipients[start:end]
			plannedTimes := slotTimes(len(dayRecipients), capacity, hours)

			schedule := domain.DaySchedule{Day: day}
			for _, senderID := range group {
				schedule.Senders = append(schedule.Senders, domain.SenderDayPlan{
					SenderID:     senderID,
					RecipientIDs: append([]string(nil), dayRecipients...),
					PlannedTimes: append([]string(nil), plannedTimes...),
				})
				schedule.TotalForDay += len(dayRecipients)

				for _, recipientID := range dayRecipients {
					seedPair(plan.StatusMatrixSeed, recipientID, senderID)
				}
			}

			plan.DailySchedule = append(plan.DailySchedule, schedule)
			plan.TotalEmails += schedule.TotalForDay
		}
	}

	p.verifyAndRepair(plan)

	return plan
}

// buildGroups partitions senders into groups of size r in input order. With
// TailWrap the last group is padded by wrapping to the first senders, the
// shape the grouping math expects. A sender already scheduled by an earlier
// group (or earlier in the same group) is skipped at emission so every
// (sender, recipient) pair produces exactly one job.
func (p *Planner) buildGroups(senders []string, r, totalGroups int, policy domain.TailPolicy) [][]string {
	if policy == "" {
		policy = domain.TailWrap
	}

	scheduled := make(map[string]bool, len(senders))
	groups := make([][]string, 0, totalGroups)

	for g := 0; g < totalGroups; g++ {
		var group []string
		for j := 0; j < r; j++ {
			idx := g*r + j
			if idx >= len(senders) {
				if policy == domain.TailTruncate {
					break
				}
				idx = idx % len(senders)
			}
			senderID := senders[idx]
			if scheduled[senderID] {
				continue
			}
			scheduled[senderID] = true
			group = append(group, senderID)
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}

	return groups
}

// slotTimes emits k "HH:MM" stamps, hour by hour, spreading the hourly quota
// evenly across each hour's 60 minutes. Stamps are monotonically
// non-decreasing.
func slotTimes(k, capacity, hours int) []string {
	perHour := ceilDiv(capacity, hours)
	if perHour < 1 {
		perHour = 1
	}

	times := make([]string, 0, k)
	for hour := 0; hour < hours && len(times) < k; hour++ {
		for i := 0; i < perHour && len(times) < k; i++ {
			minute := i * 60 / perHour
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}

	// Spill past the working window rather than return short. The repair
	// pass below logs if this ever pads.
	for len(times) < k {
		times = append(times, fmt.Sprintf("%02d:00", hours-1))
	}

	return times
}

// verifyAndRepair enforces len(RecipientIDs) == len(PlannedTimes) for every
// sender-day before the plan is handed to the scheduler. A repaired plan is
// still valid; the discrepancy is logged because it indicates a slotting bug.
func (p *Planner) verifyAndRepair(plan *domain.Plan) {
	for di := range plan.DailySchedule {
		day := &plan.DailySchedule[di]
		for si := range day.Senders {
			sd := &day.Senders[si]
			if len(sd.PlannedTimes) == len(sd.RecipientIDs) {
				continue
			}

			p.logger.WithFields(map[string]interface{}{
				"day":        day.Day,
				"sender_id":  sd.SenderID,
				"recipients": len(sd.RecipientIDs),
				"times":      len(sd.PlannedTimes),
			}).Error("Planned time count does not match recipient count, repairing")

			if len(sd.PlannedTimes) > len(sd.RecipientIDs) {
				sd.PlannedTimes = sd.PlannedTimes[:len(sd.RecipientIDs)]
				continue
			}
			for len(sd.PlannedTimes) < len(sd.RecipientIDs) {
				sd.PlannedTimes = append(sd.PlannedTimes, "00:00")
			}
		}
	}
}

func seedPair(seed map[string]map[string]domain.JobStatus, recipientID, senderID string) {
	senders, ok := seed[recipientID]
	if !ok {
		senders = make(map[string]domain.JobStatus)
		seed[recipientID] = senders
	}
	senders[senderID] = domain.JobStatusPending
}

// dailyCapacity converts a possibly fractional hourly rate into a whole
// per-day message budget, never below one message per day.
func dailyCapacity(emailsPerHour float64, hours int) int {
	capacity := int(math.Floor(emailsPerHour*float64(hours) + 1e-9))
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
