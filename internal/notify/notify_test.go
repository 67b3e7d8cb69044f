package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_ShowsAndHides(t *testing.T) {
	n := New(20*time.Millisecond, nil)

	_, visible := n.Current()
	assert.False(t, visible)

	n.Success(context.Background(), "Project created successfully")

	notice, visible := n.Current()
	require.True(t, visible)
	assert.Equal(t, "Project created successfully", notice.Message)
	assert.Equal(t, KindSuccess, notice.Kind)

	assert.Eventually(t, func() bool {
		_, visible := n.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_NewerNoticeRestartsTimer(t *testing.T) {
	n := New(200*time.Millisecond, nil)
	ctx := context.Background()

	n.Success(ctx, "first")
	time.Sleep(120 * time.Millisecond)
	n.Error(ctx, "second")
	time.Sleep(120 * time.Millisecond)

	notice, visible := n.Current()
	require.True(t, visible, "second notice must not be hidden by the first timer")
	assert.Equal(t, "second", notice.Message)
	assert.Equal(t, KindError, notice.Kind)
}

func TestNotifier_Listeners(t *testing.T) {
	n := New(time.Second, nil)

	var mu sync.Mutex
	var got []Notice
	n.Listen(func(notice Notice) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, notice)
	})

	n.Success(context.Background(), "ok")
	n.Error(context.Background(), "locked")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "ok", got[0].Message)
	assert.Equal(t, "locked", got[1].Message)
	assert.Equal(t, KindError, got[1].Kind)
}

func TestNotifier_Dismiss(t *testing.T) {
	n := New(time.Minute, nil)
	n.Error(context.Background(), "boom")
	n.Dismiss()

	_, visible := n.Current()
	assert.False(t, visible)
}

func TestNotifier_DefaultDuration(t *testing.T) {
	assert.Equal(t, DefaultDuration, New(0, nil).Duration())
	assert.Equal(t, time.Second, New(time.Second, nil).Duration())
}
