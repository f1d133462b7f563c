package scoring

import "screening-backend/internal/profile"

// RoleArchetype is the coarse job family driving category weighting.
type RoleArchetype string

const (
	RoleFrontend  RoleArchetype = "frontend_developer"
	RoleBackend   RoleArchetype = "backend_developer"
	RoleFullstack RoleArchetype = "fullstack_developer"
	RoleDevOps    RoleArchetype = "devops_engineer"
	RoleData      RoleArchetype = "data_scientist"
	RoleMobile    RoleArchetype = "mobile_developer"
	RoleGeneral   RoleArchetype = "general_developer"
)

// All lookup tables below are constructed once and never mutated at request
// time. Scoring reads them concurrently without locks.

// categoryWeights maps each archetype to its skill-category weights. Values
// are normalized before use; categories absent from a map carry weight 0.
var categoryWeights = map[RoleArchetype]map[profile.Category]float64{
	RoleBackend: {
		profile.CategoryProgrammingLanguages: 0.35,
		profile.CategoryDatabases:            0.25,
		profile.CategoryWebFrameworks:        0.15,
		profile.CategoryCloudPlatforms:       0.10,
		profile.CategoryDevOpsTools:          0.05,
		profile.CategoryVersionControl:       0.05,
		profile.CategorySoftSkills:           0.05,
	},
	RoleFrontend: {
		profile.CategoryFrontendTools:        0.30,
		profile.CategoryWebFrameworks:        0.25,
		profile.CategoryProgrammingLanguages: 0.20,
		profile.CategoryTestingTools:         0.10,
		profile.CategoryVersionControl:       0.05,
		profile.CategorySoftSkills:           0.10,
	},
	RoleFullstack: {
		profile.CategoryProgrammingLanguages: 0.25,
		profile.CategoryWebFrameworks:        0.20,
		profile.CategoryDatabases:            0.15,
		profile.CategoryFrontendTools:        0.15,
		profile.CategoryCloudPlatforms:       0.10,
		profile.CategoryDevOpsTools:          0.05,
		profile.CategorySoftSkills:           0.10,
	},
	RoleDevOps: {
		profile.CategoryDevOpsTools:          0.35,
		profile.CategoryCloudPlatforms:       0.25,
		profile.CategoryProgrammingLanguages: 0.15,
		profile.CategoryDatabases:            0.10,
		profile.CategoryVersionControl:       0.05,
		profile.CategoryOtherTechnical:       0.05,
		profile.CategorySoftSkills:           0.05,
	},
	RoleData: {
		profile.CategoryDataTools:            0.35,
		profile.CategoryProgrammingLanguages: 0.25,
		profile.CategoryDatabases:            0.20,
		profile.CategoryCloudPlatforms:       0.10,
		profile.CategorySoftSkills:           0.10,
	},
	RoleMobile: {
		profile.CategoryMobileDevelopment:    0.35,
		profile.CategoryProgrammingLanguages: 0.25,
		profile.CategoryWebFrameworks:        0.10,
		profile.CategoryTestingTools:         0.10,
		profile.CategoryDatabases:            0.05,
		profile.CategoryVersionControl:       0.05,
		profile.CategorySoftSkills:           0.10,
	},
	RoleGeneral: {
		profile.CategoryProgrammingLanguages: 0.25,
		profile.CategoryWebFrameworks:        0.15,
		profile.CategoryDatabases:            0.15,
		profile.CategoryCloudPlatforms:       0.10,
		profile.CategoryDevOpsTools:          0.05,
		profile.CategoryFrontendTools:        0.05,
		profile.CategoryTestingTools:         0.05,
		profile.CategoryVersionControl:       0.05,
		profile.CategoryOtherTechnical:       0.05,
		profile.CategorySoftSkills:           0.10,
	},
}

// Category importance tiers. Critical categories give no partial credit when
// the candidate declares nothing in them.
const (
	criticalCategoryWeight  = 0.25
	importantCategoryWeight = 0.15

	importantCategoryFloor = 10.0
	optionalCategoryFloor  = 50.0
)

// Per-skill match scoring constants.
var proficiencyBase = map[profile.Proficiency]float64{
	profile.ProficiencyExpert:       100,
	profile.ProficiencyAdvanced:     90,
	profile.ProficiencyIntermediate: 80,
	profile.ProficiencyBeginner:     60,
}

const (
	yearsBonusPerYear = 2.0
	yearsBonusCap     = 10.0

	exactMultiplier   = 1.0
	synonymMultiplier = 0.95
	relatedMultiplier = 0.85
)

// criticalSkills is a coarse universal criticality list, independent of
// category weight: missing one of these is always flagged critical.
var criticalSkills = map[string]bool{
	"python":     true,
	"javascript": true,
	"react":      true,
	"java":       true,
	"sql":        true,
	"aws":        true,
	"docker":     true,
	"git":        true,
}

// synergyPairs rewards commonly paired technologies found together among the
// candidate's matched skills. Keys are canonical skill names.
var synergyPairs = []struct {
	a, b  string
	bonus float64
}{
	{"react", "javascript", 0.15},
	{"react", "typescript", 0.12},
	{"node.js", "react", 0.18},
	{"django", "python", 0.12},
	{"flask", "python", 0.10},
	{"spring", "java", 0.12},
	{"docker", "kubernetes", 0.15},
	{"aws", "docker", 0.10},
	{"aws", "kubernetes", 0.10},
}

const (
	// Bonus awarded when the matched set spans both frontend and backend
	// keyword families.
	crossStackSynergyBonus = 0.10
	synergyDamping         = 0.15
)

// Pillar weights for final aggregation, adjusted per archetype and normalized
// before use.
var basePillarWeights = pillarWeights{
	RequiredSkills:           0.40,
	ExperienceLevel:          0.30,
	Education:                0.20,
	AdditionalQualifications: 0.10,
}

type pillarWeights struct {
	RequiredSkills           float64
	ExperienceLevel          float64
	Education                float64
	AdditionalQualifications float64
}

var pillarAdjustments = map[RoleArchetype]pillarWeights{
	RoleBackend:   {1.10, 1.05, 0.90, 0.95},
	RoleFrontend:  {1.15, 1.00, 0.85, 1.00},
	RoleFullstack: {1.10, 1.00, 0.90, 1.00},
	RoleDevOps:    {1.05, 1.15, 0.85, 0.95},
	RoleData:      {1.00, 0.95, 1.20, 0.90},
	RoleMobile:    {1.10, 1.00, 0.90, 1.00},
	RoleGeneral:   {1.00, 1.00, 1.00, 1.00},
}

// Role-classification keyword families. Counted over the job's descriptive
// text and its declared required-skill values.
var (
	frontendKeywords = []string{
		"frontend", "front-end", "front end", "react", "angular", "vue",
		"css", "html", "javascript", "typescript", "sass", "webpack",
		"responsive", "ui", "ux",
	}
	backendKeywords = []string{
		"backend", "back-end", "back end", "api", "server", "database",
		"sql", "microservice", "django", "flask", "spring", "node",
		"rest", "grpc", "python", "java",
	}
	devopsKeywords = []string{
		"devops", "docker", "kubernetes", "terraform", "ansible", "jenkins",
		"ci/cd", "cicd", "infrastructure", "deployment", "monitoring",
		"helm", "aws", "azure", "gcp",
	}
	dataKeywords = []string{
		"machine learning", "data science", "data scientist", "data engineer",
		"pandas", "numpy", "tensorflow", "pytorch", "spark", "hadoop",
		"etl", "analytics", "statistics", "jupyter",
	}
	mobileKeywords = []string{
		"mobile", "ios", "android", "swift", "kotlin", "react native",
		"flutter", "xamarin", "app store",
	}
	fullstackPhrases = []string{
		"full stack", "full-stack", "fullstack", "end to end", "end-to-end",
		"frontend and backend", "front end and back end",
		"front-end and back-end",
	}
)

// Role-classification thresholds. Heuristic constants, kept in one place.
const (
	fullstackStrongThreshold   = 3
	fullstackModerateThreshold = 2
	dataThreshold              = 4
	mobileThreshold            = 3
	devopsThreshold            = 4
	specialistThreshold        = 4
	offStackCeiling            = 2
	devopsGeneralistCeiling    = 4
)

// Experience-quality keyword families. Each family's raw hit score is capped
// at 100 and then scaled to its bonus-point budget.
var (
	leadershipKeywords = []string{
		"led", "lead", "managed", "mentored", "supervised", "directed",
		"coordinated", "head of", "team lead",
	}
	impactKeywords = []string{
		"increased", "reduced", "improved", "saved", "grew", "decreased",
		"boosted", "optimized", "accelerated",
	}
	innovationKeywords = []string{
		"designed", "architected", "created", "built", "launched",
		"pioneered", "invented", "greenfield", "from scratch",
	}
	scaleKeywords = []string{
		"million", "billion", "high traffic", "high-traffic", "large scale",
		"large-scale", "distributed", "scalable", "throughput",
		"requests per second",
	}
)

const (
	leadershipHitPoints = 15.0
	impactHitPoints     = 20.0
	innovationHitPoints = 15.0
	scaleHitPoints      = 20.0

	leadershipBonusCap = 15.0
	impactBonusCap     = 12.0
	innovationBonusCap = 10.0
	scaleBonusCap      = 8.0

	teamSizePointsPer = 5.0
	teamSizePointsCap = 30.0
)

// Red-flag penalties, summed and clamped.
const (
	jobHoppingPenalty        = 0.15
	employmentGapPenalty     = 0.08
	overQualificationPenalty = 0.05
	redFlagPenaltyCeiling    = 0.25

	shortTenureMonths    = 12.0
	jobHoppingWindow     = 5
	jobHoppingMinCount   = 3
	employmentGapMonths  = 6
	overQualificationYrs = 15.0
)

// Recommendation tiers. One threshold table, applied everywhere.
const (
	exceptionalThreshold = 90.0
	strongThreshold      = 75.0
	goodThreshold        = 60.0
	moderateThreshold    = 45.0
)
