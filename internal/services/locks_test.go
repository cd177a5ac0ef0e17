package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLocks_KeepsEntryWhileWaitersRemain(t *testing.T) {
	var locks sessionLocks

	unlockFirst := locks.acquire("s1")
	acquired := make(chan func(), 1)
	go func() { acquired <- locks.acquire("s1") }()

	require.Eventually(t, func() bool { return locks.refs("s1") == 2 }, time.Second, time.Millisecond)
	select {
	case <-acquired:
		t.Fatal("second caller acquired a held session lock")
	default:
	}

	unlockFirst()
	unlockSecond := <-acquired
	assert.Equal(t, 1, locks.refs("s1"))

	unlockSecond()
	assert.Equal(t, 0, locks.size())
}

func TestSessionLocks_IndependentSessions(t *testing.T) {
	var locks sessionLocks

	unlockA := locks.acquire("a")
	unlockB := locks.acquire("b")
	assert.Equal(t, 2, locks.size())

	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.size())
}
