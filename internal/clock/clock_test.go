package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_AfterFuncFires(t *testing.T) {
	fired := make(chan struct{})
	System{}.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestSystem_StopPreventsCall(t *testing.T) {
	timer := System{}.AfterFunc(time.Hour, func() { t.Error("stopped timer fired") })
	require.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}

func TestSystem_Now(t *testing.T) {
	before := time.Now()
	now := System{}.Now()
	assert.False(t, now.Before(before))
}
