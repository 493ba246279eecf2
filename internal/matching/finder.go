package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campusconnect/campusconnect/internal/corpus"
	"github.com/campusconnect/campusconnect/internal/types"
)

// Directory provides read access to user records and connections. The
// directory owns the data; the matching core never mutates it.
type Directory interface {
	// GetAllUsers returns every known user record.
	GetAllUsers(ctx context.Context) ([]types.UserRecord, error)
	// GetConnections returns the ids the given user is connected with. A user
	// with no connections yields an empty slice, not an error.
	GetConnections(ctx context.Context, userID string) ([]string, error)
}

// Oracle is the external inference boundary that performs the semantic
// matching. It is best-effort and untrusted: the ranker re-establishes
// ordering and filters self-matches regardless of what it returns.
type Oracle interface {
	Suggest(ctx context.Context, req types.MatchRequest) ([]types.Candidate, error)
}

// Options configures a Finder.
type Options struct {
	// DesiredCount is the number of suggestions requested from the oracle.
	// Zero means DefaultSuggestionCount.
	DesiredCount int
	// Timeout bounds the oracle call. Zero means no additional bound beyond
	// the caller's context.
	Timeout time.Duration
}

// Finder is the caller-facing entry point for partner matching. It is
// request-scoped and stateless between calls.
type Finder struct {
	directory Directory
	oracle    Oracle
	opts      Options
}

// NewFinder creates a Finder over the given collaborators.
func NewFinder(directory Directory, oracle Oracle, opts Options) *Finder {
	if opts.DesiredCount <= 0 {
		opts.DesiredCount = DefaultSuggestionCount
	}
	return &Finder{
		directory: directory,
		oracle:    oracle,
		opts:      opts,
	}
}

// FindPartners runs the full matching flow for currentUserID: corpus build
// and connection lookup in parallel, request assembly, oracle invocation, and
// deterministic ranking. Blank profile text fails with *ValidationError
// before any fetch. Directory failures surface as *DirectoryError, oracle
// failures (including timeout) as *OracleError. All-or-nothing: no partial
// results accompany an error.
//
// An empty currentUserID is the anonymous caller: matching still runs, but no
// priority boosting applies.
func (f *Finder) FindPartners(ctx context.Context, currentUserID, profileText string) ([]types.RankedResult, error) {
	if strings.TrimSpace(profileText) == "" {
		return nil, &ValidationError{Message: "profile text is required"}
	}

	// Corpus and connections are independent read-only fetches.
	var corpusText string
	var priorityIDs []string

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := f.directory.GetAllUsers(gCtx)
		if err != nil {
			return &DirectoryError{Message: "failed to fetch user corpus", Cause: err}
		}
		corpusText = corpus.Build(users)
		return nil
	})
	g.Go(func() error {
		if currentUserID == "" {
			return nil
		}
		ids, err := f.directory.GetConnections(gCtx, currentUserID)
		if err != nil {
			return &DirectoryError{Message: "failed to fetch connections", Cause: err}
		}
		priorityIDs = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	request := BuildRequest(profileText, corpusText, f.opts.DesiredCount, priorityIDs)

	oracleCtx := ctx
	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		oracleCtx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	candidates, err := f.oracle.Suggest(oracleCtx, request)
	if err != nil {
		var oracleErr *OracleError
		if errors.As(err, &oracleErr) {
			return nil, err
		}
		return nil, &OracleError{Message: "partner suggestion call failed", Cause: err}
	}

	return Rank(candidates, request.PriorityIDs, currentUserID), nil
}
