package audit

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

const (
	maxActionPlanLen = 10000
	maxOwnerLen      = 200
)

// SaveInput holds the raw fields of an audit save. Empty strings mean
// "not set"; every field is trimmed before use.
type SaveInput struct {
	RegulationID int64
	Conformity   string
	Priority     string
	Feasibility  string
	ActionPlan   string
	Deadline     string // YYYY-MM-DD
	Owner        string
}

// Validate checks all fields and collects all errors.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	if i.RegulationID <= 0 {
		errs = append(errs, domain.FieldError{Field: "regulation_id", Message: "required"})
	}
	if c := strings.TrimSpace(i.Conformity); c != "" && !domain.Conformity(c).IsValid() {
		errs = append(errs, domain.FieldError{Field: "conformity", Message: "must be compliant or non_compliant"})
	}
	if p := strings.TrimSpace(i.Priority); p != "" && !domain.Priority(p).IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be low, medium or high"})
	}
	if f := strings.TrimSpace(i.Feasibility); f != "" && !domain.Feasibility(f).IsValid() {
		errs = append(errs, domain.FieldError{Field: "feasibility", Message: "must be easy, moderate or difficult"})
	}
	if d := strings.TrimSpace(i.Deadline); d != "" {
		if _, err := domain.ParseDate(d); err != nil {
			errs = append(errs, domain.FieldError{Field: "deadline", Message: "must be a YYYY-MM-DD date"})
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(i.ActionPlan)) > maxActionPlanLen {
		errs = append(errs, domain.FieldError{Field: "action_plan", Message: "max 10000 characters"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(i.Owner)) > maxOwnerLen {
		errs = append(errs, domain.FieldError{Field: "owner", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// fields converts a validated input into the stored field set.
func (i SaveInput) fields() domain.AuditFields {
	f := domain.AuditFields{
		ActionPlan: strings.TrimSpace(i.ActionPlan),
		Owner:      trimOrNil(i.Owner),
	}
	if c := trimOrNil(i.Conformity); c != nil {
		v := domain.Conformity(*c)
		f.Conformity = &v
	}
	if p := trimOrNil(i.Priority); p != nil {
		v := domain.Priority(*p)
		f.Priority = &v
	}
	if fe := trimOrNil(i.Feasibility); fe != nil {
		v := domain.Feasibility(*fe)
		f.Feasibility = &v
	}
	if d := trimOrNil(i.Deadline); d != nil {
		if t, err := domain.ParseDate(*d); err == nil {
			f.Deadline = &t
		}
	}
	return f
}

// ListInput holds list parameters as received from the caller. Zero values
// fall back to configured defaults.
type ListInput struct {
	Page       int
	Limit      int
	Conformity string
	Domain     string
}

// Validate checks the filter values.
func (i ListInput) Validate() error {
	if c := strings.TrimSpace(i.Conformity); c != "" && !domain.Conformity(c).IsFilter() {
		return domain.NewValidationError("conformity", "must be compliant, non_compliant or pending")
	}
	if i.Page < 0 {
		return domain.NewValidationError("page", "must be >= 1")
	}
	if i.Limit < 0 {
		return domain.NewValidationError("limit", "must be >= 1")
	}
	return nil
}

// Filter returns the domain filter described by the input.
func (i ListInput) Filter() domain.AuditFilter {
	var f domain.AuditFilter
	if c := trimOrNil(i.Conformity); c != nil {
		v := domain.Conformity(*c)
		f.Conformity = &v
	}
	f.Domain = trimOrNil(i.Domain)
	return f
}

func (i ListInput) page(defaultLimit, maxLimit int) domain.Page {
	p := domain.Page{Page: i.Page, Limit: i.Limit}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
