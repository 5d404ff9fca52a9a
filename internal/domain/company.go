package domain

// ATSType identifies which applicant-tracking system a company posts jobs on.
type ATSType string

const (
	ATSGreenhouse ATSType = "greenhouse"
	ATSWorkday    ATSType = "workday"
	ATSCustom     ATSType = "custom" // no adapter; skipped by aggregate runs
)

// Supported reports whether an adapter exists for this ATS type.
func (t ATSType) Supported() bool {
	return t == ATSGreenhouse || t == ATSWorkday
}

// GreenhouseConfig is the ATS payload for Greenhouse-style boards.
type GreenhouseConfig struct {
	BoardToken string `yaml:"board_token"`
}

// WorkdayConfig is the ATS payload for Workday-style tenants.
type WorkdayConfig struct {
	BaseURL string `yaml:"base_url"` // e.g. https://acme.wd5.myworkdayjobs.com
	Tenant  string `yaml:"tenant"`
	Site    string `yaml:"site"`
}

// Company is one employer in the directory. At most one of the ATS payload
// fields is set, matching ATS.
type Company struct {
	Name       string            `yaml:"name"`
	Slug       string            `yaml:"slug"`
	ATS        ATSType           `yaml:"ats"`
	Greenhouse *GreenhouseConfig `yaml:"greenhouse,omitempty"`
	Workday    *WorkdayConfig    `yaml:"workday,omitempty"`
}
