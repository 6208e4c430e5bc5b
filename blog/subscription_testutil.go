package blog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubscriptionRepository runs the behaviour every SubscriptionRepository
// implementation shares.
func TestSubscriptionRepository(t *testing.T, repo SubscriptionRepository) {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	owner := Member{UserID: "owner", Name: "Olivia Owner"}
	other := Member{UserID: "other", Name: "Otto Other"}
	alice := Member{UserID: "alice", Name: "Alice"}
	bob := Member{UserID: "bob", Name: "Bob"}

	// No record yet
	sub, err := repo.Get(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, "", sub.Owner.UserID, "missing record should be the zero value")

	// First subscriber creates the record
	sub, added, err := repo.AddSubscriber(ctx, owner, alice, at)
	require.NoError(t, err)
	assert.True(t, added, "first subscribe should add")
	assertSubscription(t, owner, []Member{alice}, sub, "first subscriber")

	// Same subscriber twice
	sub, added, err = repo.AddSubscriber(ctx, owner, alice, at)
	require.NoError(t, err)
	assert.False(t, added, "second subscribe should not add")
	assertSubscription(t, owner, []Member{alice}, sub, "subscriber added twice")

	sub, added, err = repo.AddSubscriber(ctx, owner, bob, at)
	require.NoError(t, err)
	assert.True(t, added)
	assertSubscription(t, owner, []Member{alice, bob}, sub, "second subscriber")

	_, _, err = repo.AddSubscriber(ctx, other, alice, at)
	require.NoError(t, err)

	sub, err = repo.Get(ctx, owner.UserID)
	require.NoError(t, err)
	assertSubscription(t, owner, []Member{alice, bob}, sub, "get")

	// Reverse lookup
	testListForSubscriber(t, repo, alice.UserID, []string{owner.UserID, other.UserID}, "alice follows two owners")
	testListForSubscriber(t, repo, bob.UserID, []string{owner.UserID}, "bob follows one owner")
	testListForSubscriber(t, repo, "nobody", []string{}, "nobody follows no one")

	// Removal
	sub, removed, err := repo.RemoveSubscriber(ctx, owner.UserID, alice.UserID, at)
	require.NoError(t, err)
	assert.True(t, removed)
	assertSubscription(t, owner, []Member{bob}, sub, "after removing alice")

	_, removed, err = repo.RemoveSubscriber(ctx, owner.UserID, alice.UserID, at)
	require.NoError(t, err)
	assert.False(t, removed, "removing twice should not remove")

	sub, removed, err = repo.RemoveSubscriber(ctx, owner.UserID, bob.UserID, at)
	require.NoError(t, err)
	assert.True(t, removed)
	assertSubscription(t, owner, []Member{}, sub, "after removing everyone")

	// An emptied record still exists, with an empty set
	sub, err = repo.Get(ctx, owner.UserID)
	require.NoError(t, err)
	assertSubscription(t, owner, []Member{}, sub, "emptied record")
	assert.NotNil(t, sub.Subscribers, "an empty set should not be nil")
	testListForSubscriber(t, repo, bob.UserID, []string{}, "bob follows no one")

	_, removed, err = repo.RemoveSubscriber(ctx, "no-record", alice.UserID, at)
	require.NoError(t, err)
	assert.False(t, removed, "removing from a missing record should not remove")

	testConcurrentSubscribers(t, repo)
}

func testListForSubscriber(t *testing.T, repo SubscriptionRepository, subscriberID string, ownerIDs []string, name string) {
	subs, err := repo.ListForSubscriber(context.Background(), subscriberID)
	if !assert.NoError(t, err, "%s - list should not fail", name) {
		return
	}

	retrieved := make([]string, len(subs))
	for i, sub := range subs {
		retrieved[i] = sub.Owner.UserID
	}
	assert.ElementsMatch(t, ownerIDs, retrieved, "%s - owners should match", name)
}

func testConcurrentSubscribers(t *testing.T, repo SubscriptionRepository) {
	const n = 20
	ctx := context.Background()
	owner := Member{UserID: "popular", Name: "Popular"}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sub := Member{UserID: fmt.Sprintf("fan-%d", i), Name: fmt.Sprintf("Fan %d", i)}
			_, added, err := repo.AddSubscriber(ctx, owner, sub, time.Now())
			if err == nil && !added {
				err = fmt.Errorf("%s was not added", sub.UserID)
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sub, err := repo.Get(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Len(t, sub.Subscribers, n, "no subscriber should be lost")
}

func assertSubscription(t *testing.T, owner Member, subscribers []Member, actual Subscription, name string) {
	assert.Equal(t, owner, actual.Owner, "%s - owners should be equal", name)
	assert.Equal(t, subscribers, actual.Subscribers, "%s - subscribers should be equal", name)
}
