package classify_test

import (
	"strings"
	"testing"

	"jobboard-engine/internal/classify"
	"jobboard-engine/internal/domain"
)

func TestIsTechRole_ExclusionBeatsInclusion(t *testing.T) {
	titles := []string{
		"Recruiter - Engineering",
		"Technical Recruiter",
		"Sales Engineer",
		"Engineering Account Manager",
	}
	for _, title := range titles {
		if classify.IsTechRole(title) {
			t.Errorf("IsTechRole(%q) = true, want false (exclusion keyword present)", title)
		}
	}
}

func TestIsTechRole_Inclusions(t *testing.T) {
	titles := []string{
		"Senior Software Engineer",
		"Backend Developer",
		"Staff Site Reliability Engineer",
		"Data Scientist, Growth",
		"Product Manager - Platform",
		"UX Designer",
		"QA Analyst",
	}
	for _, title := range titles {
		if !classify.IsTechRole(title) {
			t.Errorf("IsTechRole(%q) = false, want true", title)
		}
	}
}

func TestIsTechRole_DefaultDeny(t *testing.T) {
	titles := []string{"Barista", "Warehouse Associate", "Chef de Partie", ""}
	for _, title := range titles {
		if classify.IsTechRole(title) {
			t.Errorf("IsTechRole(%q) = true, want false (no keyword match)", title)
		}
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		title string
		want  domain.Category
	}{
		{"Machine Learning Engineer", domain.CategoryData},
		{"Data Analyst", domain.CategoryData},
		{"ETL Developer", domain.CategoryData},
		{"DevOps Engineer", domain.CategoryDevOps},
		{"Site Reliability Engineer", domain.CategoryDevOps},
		{"Senior Product Manager", domain.CategoryProduct},
		{"Product Designer", domain.CategoryDesign},
		{"UX Researcher", domain.CategoryDesign},
		{"Software Engineer", domain.CategorySoftware},
		{"Embedded Firmware Engineer", domain.CategorySoftware},
		{"", domain.CategorySoftware},
	}
	for _, c := range cases {
		if got := classify.Categorize(c.title); got != c.want {
			t.Errorf("Categorize(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

// A title matching both Data Science and DevOps cues lands in Data Science
// because the data keywords are checked first.
func TestCategorize_DataBeatsDevOps(t *testing.T) {
	title := "Data Platform Engineer, Infrastructure"
	if got := classify.Categorize(title); got != domain.CategoryData {
		t.Errorf("Categorize(%q) = %q, want %q", title, got, domain.CategoryData)
	}
}

func TestExtractTags_CapAndOrder(t *testing.T) {
	text := "Engineer working with Kubernetes, Rust, Python, AWS, React and Terraform"
	tags := classify.ExtractTags(text, "")
	if len(tags) > domain.MaxTags {
		t.Fatalf("ExtractTags returned %d tags, cap is %d", len(tags), domain.MaxTags)
	}
	// pattern-declaration order, not text order
	want := []string{"Python", "Rust", "AWS", "React", "Kubernetes"}
	if len(tags) != len(want) {
		t.Fatalf("ExtractTags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tag[%d] = %q, want %q (order must follow pattern declaration)", i, tags[i], want[i])
		}
	}
}

func TestExtractTags_Idempotent(t *testing.T) {
	in := "Senior Go Developer (PostgreSQL, Docker)"
	a := classify.ExtractTags(in, "")
	b := classify.ExtractTags(in, "")
	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Errorf("ExtractTags not deterministic: %v vs %v", a, b)
	}
}

func TestExtractTags_Empty(t *testing.T) {
	if tags := classify.ExtractTags("", ""); len(tags) != 0 {
		t.Errorf("ExtractTags(\"\", \"\") = %v, want empty", tags)
	}
}

func TestIsRemote(t *testing.T) {
	cases := []struct {
		location, title string
		want            bool
	}{
		{"Remote - US", "Software Engineer", true},
		{"New York, NY", "Software Engineer (Work From Home)", true},
		{"Anywhere", "Developer", true},
		{"London, UK", "WFH Backend Engineer", true},
		{"Austin, TX", "Software Engineer", false},
		{"", "", false},
	}
	for _, c := range cases {
		if got := classify.IsRemote(c.location, c.title); got != c.want {
			t.Errorf("IsRemote(%q, %q) = %v, want %v", c.location, c.title, got, c.want)
		}
	}
}

func TestNormalizeEmploymentType(t *testing.T) {
	cases := []struct {
		in   string
		want domain.EmploymentType
	}{
		{"", domain.EmploymentFullTime},
		{"Full time", domain.EmploymentFullTime},
		{"Intern", domain.EmploymentInternship},
		{"Software Engineering Internship", domain.EmploymentInternship},
		{"Senior Contractor", domain.EmploymentContract},
		{"Part-time", domain.EmploymentPartTime},
		{"Temporary", domain.EmploymentTemporary},
		{"Something else", domain.EmploymentFullTime},
	}
	for _, c := range cases {
		if got := classify.NormalizeEmploymentType(c.in); got != c.want {
			t.Errorf("NormalizeEmploymentType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Priority order: intern beats contract beats part beats temp.
func TestNormalizeEmploymentType_Priority(t *testing.T) {
	cases := []struct {
		in   string
		want domain.EmploymentType
	}{
		{"Contract Internship", domain.EmploymentInternship},
		{"Part-time Contract", domain.EmploymentContract},
		{"Temporary Part-time", domain.EmploymentPartTime},
	}
	for _, c := range cases {
		if got := classify.NormalizeEmploymentType(c.in); got != c.want {
			t.Errorf("NormalizeEmploymentType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
