package cronspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical_DaysOfWeek(t *testing.T) {
	d := Descriptor{DaysOfWeek: []int{1, 3, 5}, Hour: 9, Minute: 0}
	assert.Equal(t, "0 0 9 ? * 1,3,5", Canonical(d))
}

func TestCanonical_HourlyInterval(t *testing.T) {
	d := Descriptor{HourlyInterval: 4, Minute: 15}
	assert.Equal(t, "0 15 */4 ? * *", Canonical(d))
}

func TestCanonical_DaysOfMonth(t *testing.T) {
	d := Descriptor{DaysOfMonth: []int{1, 15}, Hour: 6, Minute: 30}
	assert.Equal(t, "0 30 6 1,15 * ?", Canonical(d))
}

func TestCanonical_Default(t *testing.T) {
	d := Descriptor{Hour: 3, Minute: 0}
	assert.Equal(t, "0 0 3 * * *", Canonical(d))
}

func TestCanonical_SundayMapsToZero(t *testing.T) {
	d := Descriptor{DaysOfWeek: []int{6, 7}, Hour: 8}
	assert.Equal(t, "0 0 8 ? * 6,0", Canonical(d))
}
