package schedule

// RosterFlags are the tier guards, computed once per generation call and
// never re-derived per candidate row. Tiers are globally mutually
// exclusive for the whole call.
type RosterFlags struct {
	// HasShiftAssignees: at least one assignment bound to this exact shift.
	HasShiftAssignees bool
	// HasServiceAssignees: at least one service-wide assignment (nil shift).
	HasServiceAssignees bool
	// HasAssignmentRows: any assignment row for the service, including
	// rows bound to its other shifts.
	HasAssignmentRows bool
}

func Flags(shiftAssignees, serviceAssignees []uint, hasAssignmentRows bool) RosterFlags {
	return RosterFlags{
		HasShiftAssignees:   len(shiftAssignees) > 0,
		HasServiceAssignees: len(serviceAssignees) > 0,
		HasAssignmentRows:   hasAssignmentRows,
	}
}

// UnionRoster combines the three candidate sets under the tier guards:
// tier 1 (shift-bound assignees) always wins when present; tier 2
// (service-wide assignees) applies only when tier 1 is empty; tier 3
// (all active tenant employees) applies only when no assignment rows
// exist for the service at all. A service whose only assignments are
// bound to other shifts yields an empty roster for this one. The result
// is deduplicated, first occurrence order preserved.
func UnionRoster(
	flags RosterFlags,
	shiftAssignees []uint,
	serviceAssignees []uint,
	tenantEmployees []uint,
) []uint {

	var candidates []uint
	candidates = append(candidates, shiftAssignees...)

	if !flags.HasShiftAssignees {
		candidates = append(candidates, serviceAssignees...)
	}

	if !flags.HasAssignmentRows {
		candidates = append(candidates, tenantEmployees...)
	}

	seen := make(map[uint]bool, len(candidates))
	roster := make([]uint, 0, len(candidates))
	for _, id := range candidates {
		if seen[id] {
			continue
		}
		seen[id] = true
		roster = append(roster, id)
	}
	return roster
}
