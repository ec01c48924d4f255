package domain

import "testing"

func TestAuditRecord_Status(t *testing.T) {
	t.Parallel()

	empty := Conformity("")
	compliant := ConformityCompliant

	var nilRecord *AuditRecord
	if got := nilRecord.Status(); got != ConformityPending {
		t.Errorf("nil record status = %q, want pending", got)
	}
	if got := (&AuditRecord{}).Status(); got != ConformityPending {
		t.Errorf("record without conformity = %q, want pending", got)
	}
	if got := (&AuditRecord{AuditFields: AuditFields{Conformity: &empty}}).Status(); got != ConformityPending {
		t.Errorf("record with empty conformity = %q, want pending", got)
	}
	if got := (&AuditRecord{AuditFields: AuditFields{Conformity: &compliant}}).Status(); got != ConformityCompliant {
		t.Errorf("status = %q, want compliant", got)
	}
}

func TestConformity_Validity(t *testing.T) {
	t.Parallel()

	if !ConformityCompliant.IsValid() || !ConformityNonCompliant.IsValid() {
		t.Error("stored statuses should be valid")
	}
	if ConformityPending.IsValid() {
		t.Error("pending must not be storable")
	}
	if !ConformityPending.IsFilter() {
		t.Error("pending should be usable as a filter")
	}
	if Conformity("partial").IsFilter() {
		t.Error("unknown status should not be a filter")
	}
}

func TestPage_Offset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page Page
		want int
	}{
		{Page{Page: 0, Limit: 20}, 0},
		{Page{Page: 1, Limit: 20}, 0},
		{Page{Page: 3, Limit: 20}, 40},
	}
	for _, tt := range tests {
		if got := tt.page.Offset(); got != tt.want {
			t.Errorf("%+v.Offset() = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	tests := []struct{ total, limit, want int }{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := PageCount(tt.total, tt.limit); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
