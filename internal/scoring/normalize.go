package scoring

import "strings"

// canonicalSynonyms maps a canonical skill name to the variants that fold
// into it. The reverse index is built once at init.
var canonicalSynonyms = map[string][]string{
	"javascript":       {"js", "ecmascript", "es6", "es2015"},
	"typescript":       {"ts"},
	"python":           {"py", "python3"},
	"go":               {"golang"},
	"c#":               {"csharp", "c sharp", "dotnet c#"},
	"c++":              {"cpp", "cplusplus"},
	"node.js":          {"node", "nodejs", "node js"},
	"react":            {"reactjs", "react.js", "react js"},
	"vue":              {"vuejs", "vue.js", "vue js"},
	"angular":          {"angularjs", "angular.js"},
	"next.js":          {"nextjs", "next js"},
	"postgresql":       {"postgres", "psql", "postgre"},
	"mysql":            {"my sql"},
	"mongodb":          {"mongo"},
	"sql server":       {"mssql", "microsoft sql server"},
	"elasticsearch":    {"elastic search", "elastic"},
	"kubernetes":       {"k8s", "kube"},
	"aws":              {"amazon web services"},
	"gcp":              {"google cloud", "google cloud platform"},
	"azure":            {"microsoft azure"},
	"ci/cd":            {"cicd", "ci cd", "continuous integration"},
	"machine learning": {"ml"},
	"tensorflow":       {"tf"},
	"scikit-learn":     {"sklearn", "scikit learn"},
	"rest":             {"restful", "rest api", "restful api", "rest apis"},
	"graphql":          {"graph ql"},
	"html":             {"html5"},
	"css":              {"css3"},
	"sass":             {"scss"},
	"git":              {"git scm"},
	"github actions":   {"gh actions"},
	"react native":     {"reactnative"},
	"objective-c":      {"objective c", "objc"},
	"bash":             {"shell scripting", "shell"},
}

var synonymCanonical = func() map[string]string {
	index := make(map[string]string)
	for canonical, variants := range canonicalSynonyms {
		for _, v := range variants {
			index[v] = canonical
		}
	}
	return index
}()

// relatedSkills is consulted symmetrically: a related to b iff either side
// lists the other.
var relatedSkills = map[string][]string{
	"javascript":   {"typescript", "node.js", "react", "vue", "angular"},
	"typescript":   {"node.js", "react", "angular"},
	"python":       {"django", "flask", "fastapi", "pandas", "numpy"},
	"java":         {"spring", "kotlin", "scala"},
	"go":           {"rust", "c"},
	"react":        {"vue", "angular", "svelte", "next.js", "react native"},
	"postgresql":   {"mysql", "mariadb", "sqlite", "oracle", "sql server"},
	"mongodb":      {"dynamodb", "cassandra", "couchdb", "redis"},
	"sql":          {"postgresql", "mysql", "sql server", "oracle"},
	"aws":          {"azure", "gcp"},
	"docker":       {"kubernetes", "podman", "containerd"},
	"terraform":    {"ansible", "pulumi", "cloudformation"},
	"jenkins":      {"github actions", "gitlab ci", "circleci", "ci/cd"},
	"tensorflow":   {"pytorch", "keras"},
	"pandas":       {"numpy", "polars"},
	"rest":         {"graphql", "grpc"},
	"swift":        {"objective-c"},
	"kotlin":       {"android"},
	"react native": {"flutter", "ionic"},
}

var relatedIndex = func() map[string]map[string]bool {
	index := make(map[string]map[string]bool, len(relatedSkills))
	for name, relatives := range relatedSkills {
		set := make(map[string]bool, len(relatives))
		for _, r := range relatives {
			set[r] = true
		}
		index[name] = set
	}
	return index
}()

const skillTrimCutset = "•·*–—-_()[]{}<>\"'`,;:!? \t\n"

// Clean lowercases, trims, and strips surrounding decoration from a raw
// skill string. Internal symbols that carry meaning (c++, c#, node.js) are
// preserved. Blank input cleans to the empty string.
func Clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Trim(s, skillTrimCutset)
	return strings.Join(strings.Fields(s), " ")
}

// Normalize canonicalizes a raw skill name: clean, then fold known variants
// into their canonical form. Unknown names pass through cleaned.
func Normalize(raw string) string {
	cleaned := Clean(raw)
	if canonical, ok := synonymCanonical[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// Related reports whether two skills are adjacent in the relationship table.
// The lookup is symmetric; blank input never relates to anything.
func Related(a, b string) bool {
	ca, cb := Normalize(a), Normalize(b)
	if ca == "" || cb == "" {
		return false
	}
	return relatedIndex[ca][cb] || relatedIndex[cb][ca]
}
