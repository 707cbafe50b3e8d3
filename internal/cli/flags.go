package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/config"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/view"
	"github.com/spf13/pflag"
)

// modeFlag is a pflag.Value accepting view mode names.
type modeFlag struct{ mode view.Mode }

var _ pflag.Value = (*modeFlag)(nil)

func (f *modeFlag) String() string { return string(f.mode) }
func (f *modeFlag) Type() string   { return "mode" }

func (f *modeFlag) Set(s string) error {
	m, err := view.ParseMode(strings.ToLower(s))
	if err != nil {
		return fmt.Errorf("%w (want one of %s)", err, joinModes())
	}
	f.mode = m
	return nil
}

func joinModes() string {
	names := make([]string, len(view.Modes))
	for i, m := range view.Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// statusFlag is a pflag.Value accepting "any" or a presentation status.
type statusFlag struct{ filter view.StatusFilter }

var _ pflag.Value = (*statusFlag)(nil)

func (f *statusFlag) String() string { return string(f.filter) }
func (f *statusFlag) Type() string   { return "status" }

func (f *statusFlag) Set(s string) error {
	sf, err := view.ParseStatusFilter(strings.ToLower(s))
	if err != nil {
		return fmt.Errorf("%w (want any or one of %s)", err, joinStatuses())
	}
	f.filter = sf
	return nil
}

func joinStatuses() string {
	names := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// layoutBackendFlag binds --layout-backend to a config field.
type layoutBackendFlag struct{ target *config.LayoutBackend }

func (f layoutBackendFlag) String() string {
	if f.target == nil {
		return ""
	}
	return string(*f.target)
}
func (f layoutBackendFlag) Type() string { return "backend" }

func (f layoutBackendFlag) Set(s string) error {
	b := config.LayoutBackend(strings.ToLower(s))
	if b != config.LayoutSQLite && b != config.LayoutFile {
		return fmt.Errorf("unknown layout backend %q (want sqlite or file)", s)
	}
	*f.target = b
	return nil
}

// policyFlag binds --policy to a config field.
type policyFlag struct{ target *domain.UntouchedPolicy }

func (f policyFlag) String() string {
	if f.target == nil {
		return ""
	}
	return string(*f.target)
}
func (f policyFlag) Type() string { return "policy" }

func (f policyFlag) Set(s string) error {
	s = strings.ToLower(s)
	if !domain.ValidUntouchedPolicies[s] {
		return fmt.Errorf("unknown policy %q (want template or neutral)", s)
	}
	*f.target = domain.UntouchedPolicy(s)
	return nil
}
