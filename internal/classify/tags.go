package classify

import (
	"regexp"
	"strings"

	"jobboard-engine/internal/domain"
)

type tagPattern struct {
	tag string
	re  *regexp.Regexp
}

// Declaration order is the output order; each pattern contributes at most one
// tag and the result is capped at domain.MaxTags.
var tagPatterns = []tagPattern{
	// languages
	{"Python", regexp.MustCompile(`(?i)\bpython\b`)},
	{"JavaScript", regexp.MustCompile(`(?i)\bjavascript\b`)},
	{"TypeScript", regexp.MustCompile(`(?i)\btypescript\b`)},
	{"Java", regexp.MustCompile(`(?i)\bjava\b`)},
	{"Go", regexp.MustCompile(`(?i)\b(golang|go)\b`)},
	{"Rust", regexp.MustCompile(`(?i)\brust\b`)},
	{"C++", regexp.MustCompile(`(?i)c\+\+`)},
	{"C#", regexp.MustCompile(`(?i)c#|\.net\b`)},
	{"Ruby", regexp.MustCompile(`(?i)\bruby\b`)},
	{"PHP", regexp.MustCompile(`(?i)\bphp\b`)},
	{"Swift", regexp.MustCompile(`(?i)\bswift\b`)},
	{"Kotlin", regexp.MustCompile(`(?i)\bkotlin\b`)},
	{"Scala", regexp.MustCompile(`(?i)\bscala\b`)},
	// cloud
	{"AWS", regexp.MustCompile(`(?i)\baws\b|amazon web services`)},
	{"Azure", regexp.MustCompile(`(?i)\bazure\b`)},
	{"GCP", regexp.MustCompile(`(?i)\bgcp\b|google cloud`)},
	// frameworks
	{"React", regexp.MustCompile(`(?i)\breact\b`)},
	{"Angular", regexp.MustCompile(`(?i)\bangular\b`)},
	{"Vue", regexp.MustCompile(`(?i)\bvue(\.js)?\b`)},
	{"Node.js", regexp.MustCompile(`(?i)\bnode(\.js)?\b`)},
	{"Django", regexp.MustCompile(`(?i)\bdjango\b`)},
	{"Rails", regexp.MustCompile(`(?i)\brails\b`)},
	{"Spring", regexp.MustCompile(`(?i)\bspring\b`)},
	// infra
	{"Kubernetes", regexp.MustCompile(`(?i)\bkubernetes\b|\bk8s\b`)},
	{"Docker", regexp.MustCompile(`(?i)\bdocker\b`)},
	{"Terraform", regexp.MustCompile(`(?i)\bterraform\b`)},
	// databases
	{"PostgreSQL", regexp.MustCompile(`(?i)\bpostgres(ql)?\b`)},
	{"MySQL", regexp.MustCompile(`(?i)\bmysql\b`)},
	{"MongoDB", regexp.MustCompile(`(?i)\bmongo(db)?\b`)},
	{"Redis", regexp.MustCompile(`(?i)\bredis\b`)},
	{"SQL", regexp.MustCompile(`(?i)\bsql\b`)},
	// ML
	{"TensorFlow", regexp.MustCompile(`(?i)\btensorflow\b`)},
	{"PyTorch", regexp.MustCompile(`(?i)\bpytorch\b`)},
	// role shape
	{"Machine Learning", regexp.MustCompile(`(?i)machine learning|\bml\b`)},
	{"Backend", regexp.MustCompile(`(?i)\bback.?end\b`)},
	{"Frontend", regexp.MustCompile(`(?i)\bfront.?end\b`)},
	{"Full Stack", regexp.MustCompile(`(?i)\bfull.?stack\b`)},
	{"Mobile", regexp.MustCompile(`(?i)\bmobile\b`)},
}

// ExtractTags pulls technology tags out of a title plus optional description.
// Deterministic: identical input yields the identical ordered list.
func ExtractTags(title, description string) []string {
	text := title
	if description != "" {
		text = title + " " + description
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var tags []string
	for _, p := range tagPatterns {
		if p.re.MatchString(text) {
			tags = append(tags, p.tag)
			if len(tags) == domain.MaxTags {
				break
			}
		}
	}
	return tags
}
