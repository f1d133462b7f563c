package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodologyListsEveryRoleAdjustment(t *testing.T) {
	m := Methodology()

	weights, ok := m["pillar_weights"].(map[string]any)
	require.True(t, ok, "pillar_weights missing")
	byRole, ok := weights["by_role"].(map[string]any)
	require.True(t, ok, "by_role missing")

	require.Len(t, byRole, len(pillarAdjustments))
	for role := range pillarAdjustments {
		entry, ok := byRole[string(role)].(map[string]any)
		require.True(t, ok, "missing role %s", role)

		var sum float64
		for _, key := range []string{"required_skills", "experience_level", "education", "additional_qualifications"} {
			v, ok := entry[key].(float64)
			require.True(t, ok, "role %s missing %s", role, key)
			sum += v
		}
		assert.InDelta(t, 100.0, sum, 0.05, "role %s pillar weights should sum to 100", role)
	}
}
