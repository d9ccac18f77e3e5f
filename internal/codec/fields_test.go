package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-keeper/models"
)

func TestSensitiveFields_CoversEveryKind(t *testing.T) {
	for _, kind := range models.EntityKinds {
		specs, ok := SensitiveFields(kind)
		require.True(t, ok, kind)
		assert.NotEmpty(t, specs, kind)
	}
}

func TestSensitiveFields_ReturnsCopy(t *testing.T) {
	specs, ok := SensitiveFields(models.KindTestResult)
	require.True(t, ok)
	specs[0].Name = "tampered"

	again, _ := SensitiveFields(models.KindTestResult)
	assert.Equal(t, "concentration", again[0].Name)
}

func TestIsSensitive(t *testing.T) {
	assert.True(t, IsSensitive(models.KindTestResult, "concentration"))
	assert.True(t, IsSensitive(models.KindDailyLog, "notes"))
	assert.False(t, IsSensitive(models.KindTestResult, "lab_name"))
	assert.False(t, IsSensitive("unknown", "notes"))
}

func TestKnownKind(t *testing.T) {
	assert.True(t, KnownKind(models.KindHealthProfile))
	assert.False(t, KnownKind("unknown"))
}
