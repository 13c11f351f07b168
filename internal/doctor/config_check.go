package doctor

import (
	"github.com/thoreinstein/antika/internal/config"
)

// ConfigCheck validates the loaded application config.
type ConfigCheck struct {
	cfg     *config.Config
	used    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check of cfg. used is the config file Viper read,
// or "" when only defaults and environment applied.
func NewConfigCheck(cfg *config.Config, used string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, used: used}
}

// WithLoadError records the error config.Load returned, if any. A load
// error is reported instead of validating cfg.
func (c *ConfigCheck) WithLoadError(err error) *ConfigCheck {
	c.loadErr = err
	return c
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run validates the config with config.Validate.
func (c *ConfigCheck) Run() *Result {
	source := c.used
	if source == "" {
		source = "defaults"
	}
	result := &Result{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"source": source},
	}

	if c.loadErr != nil {
		result.Status = SeverityError
		result.Message = c.loadErr.Error()
		result.FixHint = "correct " + source
		return result
	}
	if c.cfg == nil {
		result.Status = SeverityInfo
		result.Message = "no config loaded"
		return result
	}

	errs := config.Validate(c.cfg)
	if len(errs) == 0 {
		result.Status = SeverityPass
		result.Message = "config is valid (" + source + ")"
		return result
	}

	problems := make([]string, 0, len(errs))
	for _, err := range errs {
		problems = append(problems, err.Error())
	}
	result.Status = SeverityError
	result.Message = problems[0]
	result.Details["problems"] = problems
	result.FixHint = "correct " + source
	return result
}
