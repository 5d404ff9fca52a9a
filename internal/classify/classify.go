// Package classify decides whether a posting title is a technical role and
// derives its category, tags, remote flag and employment type. All functions
// are pure text matching with conservative defaults on empty input.
package classify

import (
	"strings"

	"jobboard-engine/internal/domain"
)

// Exclusions win over inclusions: a "Recruiter for Engineering Team" is still
// a recruiting role.
var excludeKeywords = []string{
	"recruiter",
	"recruiting",
	"talent acquisition",
	"human resources",
	"hr business",
	"hr generalist",
	"hr manager",
	"people operations",
	"sales",
	"account executive",
	"account manager",
	"business development",
	"marketing",
	"legal",
	"counsel",
	"paralegal",
	"attorney",
	"facilities",
	"office manager",
	"executive assistant",
	"administrative assistant",
	"accountant",
	"accounting",
	"payroll",
	"customer success",
	"customer service",
}

var includeKeywords = []string{
	"engineer",
	"engineering",
	"developer",
	"software",
	"programmer",
	"architect",
	"devops",
	"sre",
	"site reliability",
	"infrastructure",
	"platform",
	"cloud",
	"security",
	"data scientist",
	"data science",
	"data analyst",
	"data engineer",
	"machine learning",
	"artificial intelligence",
	"analytics",
	"product manager",
	"product owner",
	"technical program manager",
	"designer",
	"ux",
	"ui",
	"qa",
	"quality assurance",
	"test automation",
	"sdet",
	"systems administrator",
	"sysadmin",
	"database administrator",
	"network",
	"solutions",
	"technical support engineer",
	"full stack",
	"fullstack",
	"frontend",
	"front end",
	"backend",
	"back end",
	"mobile",
	"ios",
	"android",
}

// IsTechRole reports whether a title looks like a technical role. Exclusion
// keywords are checked first and short-circuit to false.
func IsTechRole(title string) bool {
	t := strings.ToLower(title)
	if strings.TrimSpace(t) == "" {
		return false
	}
	for _, kw := range excludeKeywords {
		if strings.Contains(t, kw) {
			return false
		}
	}
	for _, kw := range includeKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// Category keyword sets, checked in order. Data Science before DevOps matters:
// a "Data Platform Engineer" belongs with the data roles.
var categoryOrder = []struct {
	cat domain.Category
	any []string
}{
	{domain.CategoryData, []string{
		"data scientist", "data science", "data analyst", "data engineer",
		"machine learning", "ml engineer", "artificial intelligence", " ai ",
		"analytics", "etl",
	}},
	{domain.CategoryDevOps, []string{
		"devops", "sre", "site reliability", "infrastructure", "platform engineer",
		"cloud engineer", "systems engineer", "systems administrator", "sysadmin",
		"release engineer",
	}},
	{domain.CategoryProduct, []string{
		"product manager", "product owner", "product management",
		"technical program manager", "program manager",
	}},
	{domain.CategoryDesign, []string{
		"designer", "ux", "ui ", "user experience", "user interface", "design lead",
	}},
}

// Categorize assigns a job category from the title. First match in the fixed
// cascade wins; anything unmatched falls through to Software Engineering.
func Categorize(title string) domain.Category {
	// pad so word-edge needles like " ai " can match at the boundaries
	t := " " + strings.ToLower(title) + " "
	for _, c := range categoryOrder {
		for _, kw := range c.any {
			if strings.Contains(t, kw) {
				return c.cat
			}
		}
	}
	return domain.CategorySoftware
}

var remoteMarkers = []string{"remote", "work from home", "wfh", "anywhere"}

// IsRemote reports whether the location or title signals a remote-friendly
// role.
func IsRemote(location, title string) bool {
	blob := strings.ToLower(location + " " + title)
	for _, m := range remoteMarkers {
		if strings.Contains(blob, m) {
			return true
		}
	}
	return false
}

// NormalizeEmploymentType folds a free-form employment string into the closed
// set, defaulting to Full-time. Priority: intern > contract > part > temp.
func NormalizeEmploymentType(raw string) domain.EmploymentType {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case t == "":
		return domain.EmploymentFullTime
	case strings.Contains(t, "intern"):
		return domain.EmploymentInternship
	case strings.Contains(t, "contract"):
		return domain.EmploymentContract
	case strings.Contains(t, "part"):
		return domain.EmploymentPartTime
	case strings.Contains(t, "temp"):
		return domain.EmploymentTemporary
	default:
		return domain.EmploymentFullTime
	}
}
