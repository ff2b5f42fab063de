package reconcile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pakkurthi/jobquest-client/internal/domain"
)

func sampleApplications() []domain.Application {
	return []domain.Application{
		{ID: "a1", JobID: "j1", Status: domain.StatusApplied},
		{ID: "a2", JobID: "j2", Status: domain.StatusUnderReview},
		{ID: "a3", JobID: "j3", Status: domain.StatusAccepted},
	}
}

func TestReplaceAndItems(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())

	items := list.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a1", items[0].ID)
	assert.Equal(t, "a3", items[2].ID)
	assert.Equal(t, 3, list.Len())

	// Items returns a copy: mutating it must not touch the list.
	items[0].Status = domain.StatusRejected
	fresh, ok := list.Get("a1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusApplied, fresh.Status)
}

func TestBegin_MarksInFlight(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())

	assert.True(t, list.Begin("a1"))
	assert.True(t, list.InFlight("a1"))
	assert.False(t, list.InFlight("a2"))
}

func TestBegin_SecondCallIsNoOp(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())

	require.True(t, list.Begin("a1"))
	assert.False(t, list.Begin("a1"), "double submit must be refused while in flight")

	// Unrelated items stay actionable.
	assert.True(t, list.Begin("a2"))
}

func TestBegin_UnknownItem(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())

	assert.False(t, list.Begin("missing"))
	assert.False(t, list.InFlight("missing"))
}

func TestCommit_ReplacesFromAuthoritativeResponse(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())
	require.True(t, list.Begin("a1"))

	list.Commit("a1", domain.Application{ID: "a1", JobID: "j1", Status: domain.StatusWithdrawn})

	item, ok := list.Get("a1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusWithdrawn, item.Status)
	assert.False(t, list.InFlight("a1"))
}

func TestCommit_AfterItemLeftCollection(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())
	require.True(t, list.Begin("a1"))

	// View refreshed while the request was in flight.
	list.Replace([]domain.Application{{ID: "a9", Status: domain.StatusApplied}})

	// The late completion must be safely ignorable.
	list.Commit("a1", domain.Application{ID: "a1", Status: domain.StatusWithdrawn})

	_, ok := list.Get("a1")
	assert.False(t, ok)
	assert.False(t, list.InFlight("a1"))
}

func TestRollback_RestoresPreRequestState(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())
	require.True(t, list.Begin("a1"))

	list.Rollback("a1")

	item, ok := list.Get("a1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusApplied, item.Status, "rollback must leave status unchanged")
	assert.False(t, list.InFlight("a1"), "marker must never stay set")

	// The control is re-invocable after a rollback.
	assert.True(t, list.Begin("a1"))
}

func TestCommitRemove(t *testing.T) {
	list := NewList[domain.Job]()
	list.Replace([]domain.Job{{ID: "j1"}, {ID: "j2"}})
	require.True(t, list.Begin("j1"))

	list.CommitRemove("j1")

	assert.Equal(t, 1, list.Len())
	_, ok := list.Get("j1")
	assert.False(t, ok)
	assert.False(t, list.InFlight("j1"))
}

func TestReplace_ClearsAllMarkers(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())
	require.True(t, list.Begin("a1"))
	require.True(t, list.Begin("a2"))

	list.Replace(sampleApplications())

	assert.False(t, list.InFlight("a1"))
	assert.False(t, list.InFlight("a2"))
}

func TestFilter_IsStatelessProjection(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())

	reviewing := list.Filter(func(a domain.Application) bool {
		return a.Status.Group() == domain.GroupReviewing
	})
	require.Len(t, reviewing, 1)
	assert.Equal(t, "a2", reviewing[0].ID)

	// Projection must not mutate or reorder the collection.
	items := list.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"a1", "a2", "a3"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestConcurrentBegin_ExactlyOneWins(t *testing.T) {
	list := NewList[domain.Application]()
	list.Replace(sampleApplications())

	const attempts = 16
	var wg sync.WaitGroup
	wins := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- list.Begin("a1")
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent Begin may win")
}
