package profile

// Category identifies a skill domain. The set is closed; extraction output
// using any other key is folded into CategoryOtherTechnical.
type Category string

const (
	CategoryProgrammingLanguages Category = "programming_languages"
	CategoryWebFrameworks        Category = "web_frameworks"
	CategoryDatabases            Category = "databases"
	CategoryCloudPlatforms       Category = "cloud_platforms"
	CategoryDevOpsTools          Category = "devops_tools"
	CategoryDataTools            Category = "data_tools"
	CategoryFrontendTools        Category = "frontend_tools"
	CategoryMobileDevelopment    Category = "mobile_development"
	CategoryTestingTools         Category = "testing_tools"
	CategoryVersionControl       Category = "version_control"
	CategoryProjectManagement    Category = "project_management"
	CategoryOtherTechnical       Category = "other_technical"
	CategorySoftSkills           Category = "soft_skills"
)

// Categories lists every valid category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryProgrammingLanguages,
		CategoryWebFrameworks,
		CategoryDatabases,
		CategoryCloudPlatforms,
		CategoryDevOpsTools,
		CategoryDataTools,
		CategoryFrontendTools,
		CategoryMobileDevelopment,
		CategoryTestingTools,
		CategoryVersionControl,
		CategoryProjectManagement,
		CategoryOtherTechnical,
		CategorySoftSkills,
	}
}

var validCategories = func() map[Category]bool {
	set := make(map[Category]bool)
	for _, c := range Categories() {
		set[c] = true
	}
	return set
}()

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	return validCategories[c]
}

// ParseCategory maps a raw key to a Category, folding unknown keys into
// CategoryOtherTechnical.
func ParseCategory(raw string) Category {
	c := Category(raw)
	if c.Valid() {
		return c
	}
	return CategoryOtherTechnical
}
