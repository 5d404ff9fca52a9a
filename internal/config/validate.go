package config

import (
	"fmt"
	"strings"

	"jobboard-engine/internal/domain"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port <= 0 {
		out.App.Port = 8090
	}
	if out.Scrape.IntervalHours <= 0 {
		res.addErr("scrape.interval_hours must be > 0")
	}
	if out.Scrape.CompanyDelayMS < 0 || out.Scrape.PageDelayMS < 0 {
		res.addErr("scrape delays must not be negative")
	}
	if out.Scrape.CompanyDelayMS == 0 {
		res.addWarn("scrape.company_delay_ms is 0; providers may rate-limit the run")
	}
	if out.Scrape.StaleAfterHours <= 0 {
		res.addErr("scrape.stale_after_hours must be > 0")
	} else if out.Scrape.StaleAfterHours < out.Scrape.IntervalHours {
		res.addWarn("stale_after_hours (%d) is shorter than the run interval (%dh); jobs will flap inactive between runs",
			out.Scrape.StaleAfterHours, out.Scrape.IntervalHours)
	}

	return out, res
}

// ValidateCompanies checks the directory for problems that would make a run
// useless: duplicate slugs, unknown ATS types, missing per-ATS payloads.
func ValidateCompanies(companies []domain.Company) Validation {
	var res Validation

	seen := map[string]bool{}
	for i, co := range companies {
		slug := strings.TrimSpace(co.Slug)
		if slug == "" {
			res.addErr("company #%d (%q) has no slug", i+1, co.Name)
			continue
		}
		if seen[slug] {
			res.addErr("duplicate company slug %q", slug)
		}
		seen[slug] = true

		switch co.ATS {
		case domain.ATSGreenhouse:
			if co.Greenhouse == nil || strings.TrimSpace(co.Greenhouse.BoardToken) == "" {
				res.addErr("company %q: greenhouse.board_token is required", slug)
			}
		case domain.ATSWorkday:
			wd := co.Workday
			if wd == nil || strings.TrimSpace(wd.BaseURL) == "" ||
				strings.TrimSpace(wd.Tenant) == "" || strings.TrimSpace(wd.Site) == "" {
				res.addErr("company %q: workday.base_url, tenant and site are required", slug)
			}
		case domain.ATSCustom:
			res.addWarn("company %q uses a custom ATS and will be skipped by aggregate runs", slug)
		default:
			res.addErr("company %q: unknown ats type %q", slug, co.ATS)
		}
	}

	if len(companies) == 0 {
		res.addWarn("company directory is empty; runs will do nothing")
	}
	return res
}
