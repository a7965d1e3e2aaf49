package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
)

const CategorySecurity = "security"

type secretPattern struct {
	name     string
	re       *regexp.Regexp
	severity domain.Severity
}

var secretPatterns = []secretPattern{
	{"api key", regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[=:]\s*["']?([a-zA-Z0-9_\-]{20,})["']?`), domain.SeverityHigh},
	{"secret key", regexp.MustCompile(`(?i)(secret[_-]?key|secretkey)\s*[=:]\s*["']?([a-zA-Z0-9_\-]{20,})["']?`), domain.SeverityHigh},
	{"password", regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*["']([^"'\s]{8,})["']`), domain.SeverityHigh},
	{"auth token", regexp.MustCompile(`(?i)(auth[_-]?token)\s*[=:]\s*["']?([a-zA-Z0-9_\-.]{20,})["']?`), domain.SeverityHigh},
	{"private key", regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE\s+KEY-----`), domain.SeverityCritical},
	{"AWS access key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`), domain.SeverityCritical},
	{"AWS secret key", regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key.*[=:]\s*["']?([a-zA-Z0-9/+=]{40})["']?`), domain.SeverityCritical},
	{"GitHub token", regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`), domain.SeverityCritical},
	{"JWT", regexp.MustCompile(`eyJ[a-zA-Z0-9_\-]+\.eyJ[a-zA-Z0-9_\-]+\.[a-zA-Z0-9_\-]+`), domain.SeverityHigh},
	{"database URL", regexp.MustCompile(`(?i)(database[_-]?url|db[_-]?url)\s*[=:]\s*["']?(postgresql|mysql|mongodb)://[^"'\s]+`), domain.SeverityHigh},
}

type vulnerabilityPattern struct {
	name       string
	res        []*regexp.Regexp
	severity   domain.Severity
	cwe        string
	suggestion string
}

var vulnerabilityPatterns = []vulnerabilityPattern{
	{
		name: "SQL injection",
		res: []*regexp.Regexp{
			regexp.MustCompile(`execute\s*\(\s*["'].*\+.*["']`),
			regexp.MustCompile(`cursor\.execute\s*\(\s*["'][^"']*%[^"']*["']`),
			regexp.MustCompile(`query\s*=\s*["'][^"']*["']\s*\+`),
			regexp.MustCompile(`(?i)SELECT.*WHERE.*=.*\+`),
		},
		severity:   domain.SeverityHigh,
		cwe:        "CWE-89",
		suggestion: "Use parameterized queries instead of string concatenation",
	},
	{
		name: "cross-site scripting",
		res: []*regexp.Regexp{
			regexp.MustCompile(`innerHTML\s*=\s*[^;]+\+`),
			regexp.MustCompile(`document\.write\s*\(\s*[^)]*\+`),
			regexp.MustCompile(`eval\s*\(\s*[^)]*\+`),
		},
		severity:   domain.SeverityHigh,
		cwe:        "CWE-79",
		suggestion: "Validate input and encode output before rendering",
	},
	{
		name: "command injection",
		res: []*regexp.Regexp{
			regexp.MustCompile(`os\.system\s*\(\s*[^)]*\+`),
			regexp.MustCompile(`subprocess\.(call|run|Popen)\s*\(\s*[^)]*\+`),
			regexp.MustCompile(`exec\s*\(\s*[^)]*\+`),
		},
		severity:   domain.SeverityCritical,
		cwe:        "CWE-78",
		suggestion: "Avoid dynamic command construction; pass arguments as a list",
	},
	{
		name: "path traversal",
		res: []*regexp.Regexp{
			regexp.MustCompile(`open\s*\(\s*[^)]*\+[^)]*\.\./`),
			regexp.MustCompile(`readFile\s*\(\s*[^)]*\+`),
		},
		severity:   domain.SeverityHigh,
		cwe:        "CWE-22",
		suggestion: "Resolve and validate paths before file access",
	},
	{
		name: "insecure deserialization",
		res: []*regexp.Regexp{
			regexp.MustCompile(`pickle\.loads?\s*\(`),
			regexp.MustCompile(`yaml\.load\s*\(\s*[^,)]*\)`),
			regexp.MustCompile(`unserialize\s*\(\s*\$_`),
		},
		severity:   domain.SeverityHigh,
		cwe:        "CWE-502",
		suggestion: "Deserialize untrusted data with a safe loader only",
	},
	{
		name: "weak cryptography",
		res: []*regexp.Regexp{
			regexp.MustCompile(`hashlib\.(md5|sha1)\(`),
			regexp.MustCompile(`crypto\.createHash\s*\(\s*["'](md5|sha1)["']`),
			regexp.MustCompile(`\b(DES|RC4)\b`),
		},
		severity:   domain.SeverityMedium,
		cwe:        "CWE-327",
		suggestion: "Use a modern hash or cipher such as SHA-256 or AES-GCM",
	},
}

var placeholderValues = []string{
	"your_api_key", "your_secret", "changeme", "replace_me", "example",
	"dummy", "test", "placeholder", "xxx", "yyy", "zzz", "123456",
}

// isPlaceholderSecret reports whether a matched value is almost
// certainly sample data rather than a live credential.
func isPlaceholderSecret(value string) bool {
	lower := strings.ToLower(value)
	for _, p := range placeholderValues {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// SecurityRules scans a file for hardcoded secrets and common
// vulnerability patterns.
func SecurityRules(file domain.FileEntry) []domain.Finding {
	var findings []domain.Finding

	lines := strings.Split(file.Content, "\n")
	for i, line := range lines {
		lineNum := i + 1

		for _, sp := range secretPatterns {
			match := sp.re.FindString(line)
			if match == "" || isPlaceholderSecret(match) {
				continue
			}
			findings = append(findings, domain.Finding{
				Title:       fmt.Sprintf("Potential %s detected", sp.name),
				Description: fmt.Sprintf("A value matching a %s pattern is hardcoded in the source", sp.name),
				Severity:    sp.severity,
				Category:    CategorySecurity,
				FilePath:    file.Path,
				Line:        lineNum,
				CodeSnippet: strings.TrimSpace(line),
				Suggestion:  "Move secrets to environment variables or a secret manager",
				RuleID:      "SEC-SECRET",
				Confidence:  0.85,
				References:  []string{"CWE-798"},
			})
		}

		for _, vp := range vulnerabilityPatterns {
			for _, re := range vp.res {
				if !re.MatchString(line) {
					continue
				}
				findings = append(findings, domain.Finding{
					Title:       fmt.Sprintf("Potential %s vulnerability", vp.name),
					Description: fmt.Sprintf("Code on this line matches a known %s pattern", vp.name),
					Severity:    vp.severity,
					Category:    CategorySecurity,
					FilePath:    file.Path,
					Line:        lineNum,
					CodeSnippet: strings.TrimSpace(line),
					Suggestion:  vp.suggestion,
					RuleID:      "SEC-VULN",
					Confidence:  0.75,
					References:  []string{vp.cwe},
				})
				break
			}
		}
	}

	return findings
}
