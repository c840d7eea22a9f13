package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCAP(t *testing.T) {
	s := Idle
	assert.True(t, CAP(&s, Idle, Persisting))
	assert.True(t, Load(&s).Persisting())
	assert.False(t, CAP(&s, Idle, Restoring))
	assert.True(t, CAP(&s, Persisting, Idle))
	assert.True(t, Load(&s).Idle())
}

func TestStoreAndString(t *testing.T) {
	s := Idle
	Store(&s, Purging)
	assert.True(t, Load(&s).Purging())
	assert.Equal(t, "purging", Purging.String())
	assert.Equal(t, "restoring", Restoring.String())
	assert.Equal(t, "unknown", Status(42).String())
}
