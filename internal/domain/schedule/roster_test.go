package schedule

import (
	"reflect"
	"testing"
)

func TestUnionRoster_ShiftAssigneesWin(t *testing.T) {
	shiftAssignees := []uint{1, 2}
	serviceAssignees := []uint{3, 4}
	tenantEmployees := []uint{5, 6}

	flags := Flags(shiftAssignees, serviceAssignees, true)
	roster := UnionRoster(flags, shiftAssignees, serviceAssignees, tenantEmployees)

	if !reflect.DeepEqual(roster, []uint{1, 2}) {
		t.Fatalf("expected shift assignees only, got %v", roster)
	}
}

func TestUnionRoster_ServiceWideFallback(t *testing.T) {
	serviceAssignees := []uint{3, 4}
	tenantEmployees := []uint{5, 6}

	flags := Flags(nil, serviceAssignees, true)
	roster := UnionRoster(flags, nil, serviceAssignees, tenantEmployees)

	if !reflect.DeepEqual(roster, []uint{3, 4}) {
		t.Fatalf("expected service-wide assignees only, got %v", roster)
	}
}

func TestUnionRoster_AllEmployeesFallback(t *testing.T) {
	tenantEmployees := []uint{5, 6}

	flags := Flags(nil, nil, false)
	roster := UnionRoster(flags, nil, nil, tenantEmployees)

	if !reflect.DeepEqual(roster, []uint{5, 6}) {
		t.Fatalf("expected all active employees, got %v", roster)
	}
}

func TestUnionRoster_SiblingShiftRowsBlockFallback(t *testing.T) {
	// The service has assignment rows, just none for this shift and none
	// service-wide: the roster stays empty instead of falling through to
	// every active employee.
	tenantEmployees := []uint{5, 6}

	flags := Flags(nil, nil, true)
	roster := UnionRoster(flags, nil, nil, tenantEmployees)

	if len(roster) != 0 {
		t.Fatalf("expected empty roster, got %v", roster)
	}
}

func TestUnionRoster_AllTiersEmpty(t *testing.T) {
	flags := Flags(nil, nil, false)
	roster := UnionRoster(flags, nil, nil, nil)

	if len(roster) != 0 {
		t.Fatalf("expected empty roster, got %v", roster)
	}
}

func TestUnionRoster_Dedup(t *testing.T) {
	shiftAssignees := []uint{2, 1, 2, 3, 1}

	flags := Flags(shiftAssignees, nil, true)
	roster := UnionRoster(flags, shiftAssignees, nil, nil)

	if !reflect.DeepEqual(roster, []uint{2, 1, 3}) {
		t.Fatalf("expected dedup preserving first occurrence, got %v", roster)
	}
}

func TestFlags(t *testing.T) {
	f := Flags([]uint{1}, nil, true)
	if !f.HasShiftAssignees || f.HasServiceAssignees || !f.HasAssignmentRows {
		t.Fatalf("unexpected flags: %+v", f)
	}

	f = Flags(nil, []uint{2}, true)
	if f.HasShiftAssignees || !f.HasServiceAssignees || !f.HasAssignmentRows {
		t.Fatalf("unexpected flags: %+v", f)
	}

	f = Flags(nil, nil, false)
	if f.HasShiftAssignees || f.HasServiceAssignees || f.HasAssignmentRows {
		t.Fatalf("unexpected flags: %+v", f)
	}
}
