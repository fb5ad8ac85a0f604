package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartupTimer_MarkAccumulatesPhases(t *testing.T) {
	now := time.Unix(0, 0)
	timer := newStartupTimer(func() time.Time { return now })

	now = now.Add(10 * time.Millisecond)
	timer.Mark("devices")
	now = now.Add(5 * time.Millisecond)
	timer.Mark("journal")
	now = now.Add(2 * time.Millisecond)
	timer.Mark("devices")

	assert.Equal(t, []string{"devices", "journal"}, timer.order)
	assert.Equal(t, 12*time.Millisecond, timer.phases["devices"])
	assert.Equal(t, 5*time.Millisecond, timer.phases["journal"])
	assert.Equal(t, 17*time.Millisecond, timer.Total())
}
