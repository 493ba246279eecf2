package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/campusconnect/campusconnect/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users          []types.UserRecord
	connections    map[string][]string
	usersErr       error
	connectionsErr error
}

func (d *fakeDirectory) GetAllUsers(_ context.Context) ([]types.UserRecord, error) {
	if d.usersErr != nil {
		return nil, d.usersErr
	}
	return d.users, nil
}

func (d *fakeDirectory) GetConnections(_ context.Context, userID string) ([]string, error) {
	if d.connectionsErr != nil {
		return nil, d.connectionsErr
	}
	return d.connections[userID], nil
}

type fakeOracle struct {
	candidates  []types.Candidate
	err         error
	delay       time.Duration
	gotRequest  *types.MatchRequest
	invocations int
}

func (o *fakeOracle) Suggest(ctx context.Context, req types.MatchRequest) ([]types.Candidate, error) {
	o.invocations++
	o.gotRequest = &req
	if o.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("oracle call aborted: %w", ctx.Err())
		case <-time.After(o.delay):
		}
	}
	if o.err != nil {
		return nil, o.err
	}
	return o.candidates, nil
}

func testUsers() []types.UserRecord {
	return []types.UserRecord{
		{ID: "userA", DisplayName: "Alice", Interests: []string{"AI"}},
		{ID: "userB", DisplayName: "Bob", Interests: []string{"Web"}},
		{ID: "userC", DisplayName: "Carol", Interests: []string{"Robotics"}},
	}
}

func TestFindPartners_BlankInputRejectedBeforeOracle(t *testing.T) {
	oracle := &fakeOracle{}
	finder := NewFinder(&fakeDirectory{}, oracle, Options{})

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := finder.FindPartners(context.Background(), "me", input)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "input %q", input)
	}
	assert.Zero(t, oracle.invocations, "oracle must never see blank input")
}

func TestFindPartners_PriorityMergeOrdering(t *testing.T) {
	// Corpus has A (0.6, not connected), B (0.4, connected), C (0.9, not
	// connected); expected order B, C, A.
	directory := &fakeDirectory{
		users:       testUsers(),
		connections: map[string][]string{"me": {"userB"}},
	}
	oracle := &fakeOracle{
		candidates: []types.Candidate{
			{UserID: "userA", Name: "Alice", MatchScore: 0.6},
			{UserID: "userB", Name: "Bob", MatchScore: 0.4},
			{UserID: "userC", Name: "Carol", MatchScore: 0.9},
		},
	}
	finder := NewFinder(directory, oracle, Options{})

	results, err := finder.FindPartners(context.Background(), "me", "looking for AI collaborators")
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "userB", results[0].UserID)
	assert.True(t, results[0].IsPriority)
	assert.Equal(t, "userC", results[1].UserID)
	assert.Equal(t, "userA", results[2].UserID)
}

func TestFindPartners_SelfMatchExcluded(t *testing.T) {
	directory := &fakeDirectory{users: testUsers()}
	oracle := &fakeOracle{
		candidates: []types.Candidate{
			{UserID: "me", Name: "Self", MatchScore: 0.99},
			{UserID: "userA", Name: "Alice", MatchScore: 0.6},
			{UserID: "userB", Name: "Bob", MatchScore: 0.4},
		},
	}
	finder := NewFinder(directory, oracle, Options{})

	results, err := finder.FindPartners(context.Background(), "me", "profile text")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "userA", results[0].UserID)
	assert.Equal(t, "userB", results[1].UserID)
}

func TestFindPartners_OracleTimeout(t *testing.T) {
	directory := &fakeDirectory{users: testUsers()}
	oracle := &fakeOracle{
		candidates: []types.Candidate{{UserID: "userA", Name: "Alice", MatchScore: 0.6}},
		delay:      200 * time.Millisecond,
	}
	finder := NewFinder(directory, oracle, Options{Timeout: 10 * time.Millisecond})

	results, err := finder.FindPartners(context.Background(), "me", "profile text")

	var oracleErr *OracleError
	require.ErrorAs(t, err, &oracleErr)
	assert.Nil(t, results, "no partial list on oracle failure")
}

func TestFindPartners_OracleFailureWrapped(t *testing.T) {
	directory := &fakeDirectory{users: testUsers()}
	oracle := &fakeOracle{err: errors.New("upstream exploded")}
	finder := NewFinder(directory, oracle, Options{})

	_, err := finder.FindPartners(context.Background(), "me", "profile text")

	var oracleErr *OracleError
	require.ErrorAs(t, err, &oracleErr)
	assert.ErrorContains(t, err, "upstream exploded")
}

func TestFindPartners_DirectoryFailure(t *testing.T) {
	directory := &fakeDirectory{usersErr: errors.New("store unavailable")}
	oracle := &fakeOracle{}
	finder := NewFinder(directory, oracle, Options{})

	_, err := finder.FindPartners(context.Background(), "me", "profile text")

	var dirErr *DirectoryError
	require.ErrorAs(t, err, &dirErr)
	assert.Zero(t, oracle.invocations)
}

func TestFindPartners_ConnectionFetchFailure(t *testing.T) {
	directory := &fakeDirectory{
		users:          testUsers(),
		connectionsErr: errors.New("connections table gone"),
	}
	finder := NewFinder(directory, &fakeOracle{}, Options{})

	_, err := finder.FindPartners(context.Background(), "me", "profile text")

	var dirErr *DirectoryError
	require.ErrorAs(t, err, &dirErr)
}

func TestFindPartners_AnonymousSkipsConnectionLookup(t *testing.T) {
	directory := &fakeDirectory{
		users:          testUsers(),
		connectionsErr: errors.New("must not be called"),
	}
	oracle := &fakeOracle{
		candidates: []types.Candidate{
			{UserID: "userA", Name: "Alice", MatchScore: 0.6},
		},
	}
	finder := NewFinder(directory, oracle, Options{})

	results, err := finder.FindPartners(context.Background(), "", "profile text")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.False(t, results[0].IsPriority)
	require.NotNil(t, oracle.gotRequest)
	assert.Empty(t, oracle.gotRequest.PriorityIDs)
}

func TestFindPartners_RequestCarriesCorpusAndPriorities(t *testing.T) {
	directory := &fakeDirectory{
		users:       testUsers(),
		connections: map[string][]string{"me": {"userC", "userB"}},
	}
	oracle := &fakeOracle{}
	finder := NewFinder(directory, oracle, Options{DesiredCount: FeedSuggestionCount})

	_, err := finder.FindPartners(context.Background(), "me", "profile text")
	require.NoError(t, err)

	require.NotNil(t, oracle.gotRequest)
	assert.Equal(t, 6, oracle.gotRequest.DesiredCount)
	assert.Equal(t, []string{"userB", "userC"}, oracle.gotRequest.PriorityIDs)
	assert.Contains(t, oracle.gotRequest.Corpus, "User ID: userA")
	assert.Contains(t, oracle.gotRequest.Corpus, "User ID: userB")
	assert.Contains(t, oracle.gotRequest.Corpus, "User ID: userC")
	assert.Equal(t, "profile text", oracle.gotRequest.CurrentUserProfile)
}
