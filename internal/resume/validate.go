package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field-level constraints: a name is required, links and
// emails must be well formed, skill levels stay within 0-100.
func Validate(d *Document) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid resume: %s", strings.Join(msgs, "; "))
}

// Lint returns non-fatal findings. Duplicate ids are legal but only the
// first entry with a given id is reachable by lookup.
func Lint(d *Document) []string {
	var warnings []string
	seen := make(map[string]bool)
	for _, p := range d.Projects {
		if p.ID == "" {
			continue
		}
		if seen["p:"+string(p.ID)] {
			warnings = append(warnings, fmt.Sprintf("duplicate project id %q", p.ID))
		}
		seen["p:"+string(p.ID)] = true
	}
	for _, r := range d.Experience {
		if r.ID == "" {
			continue
		}
		if seen["r:"+string(r.ID)] {
			warnings = append(warnings, fmt.Sprintf("duplicate role id %q", r.ID))
		}
		seen["r:"+string(r.ID)] = true
		if _, shadowed := d.Project(string(r.ID)); shadowed {
			warnings = append(warnings, fmt.Sprintf("role id %q is shadowed by a project with the same id", r.ID))
		}
	}
	return warnings
}
