package domain

import "time"

// Category buckets a posting into one of the board's fixed job categories.
type Category string

const (
	CategorySoftware Category = "Software Engineering"
	CategoryData     Category = "Data Science"
	CategoryDevOps   Category = "DevOps / SRE"
	CategoryProduct  Category = "Product Management"
	CategoryDesign   Category = "Design"
)

// EmploymentType is the normalized employment arrangement of a posting.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
	EmploymentTemporary  EmploymentType = "Temporary"
)

// MaxTags caps how many technology tags a single posting carries.
const MaxTags = 5

// Job is the provider-agnostic form of one posting as produced by an ATS
// adapter. ExternalID is provider-prefixed (gh-/wd-) and unique within a
// company; persistence is keyed by (ExternalID, company slug).
type Job struct {
	ExternalID     string
	Title          string
	Location       string
	EmploymentType EmploymentType
	Remote         bool
	Salary         string // free text, often empty
	PostedAt       *time.Time
	ApplyURL       string
	Category       Category
	Tags           []string
}
