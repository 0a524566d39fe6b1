package conversation

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptory-server/internal/domain/extract"
	"promptory-server/internal/domain/tag"
	"promptory-server/internal/utils/platformerrors"
)

type fakeRepo struct {
	nextID        uint
	conversations map[uint]*Conversation
	links         map[uint]map[uint]bool // conversation id -> tag ids
	attachErr     error
	created       []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		conversations: map[uint]*Conversation{},
		links:         map[uint]map[uint]bool{},
	}
}

func (r *fakeRepo) Create(_ context.Context, conv *Conversation) error {
	r.nextID++
	conv.ID = r.nextID
	stored := *conv
	r.conversations[conv.ID] = &stored
	r.created = append(r.created, conv.ID)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*Conversation, error) {
	conv, ok := r.conversations[id]
	if !ok {
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
	}
	copied := *conv
	return &copied, nil
}

func (r *fakeRepo) FindByPublicID(_ context.Context, publicID string) (*Conversation, error) {
	for _, conv := range r.conversations {
		if conv.PublicID == publicID {
			copied := *conv
			return &copied, nil
		}
	}
	return nil, platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
}

func (r *fakeRepo) Search(_ context.Context, filter SearchFilter) ([]*Conversation, error) {
	var results []*Conversation
	for _, conv := range r.conversations {
		if conv.UserID == filter.UserID {
			copied := *conv
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ConversationTimestamp.After(results[j].ConversationTimestamp)
	})
	return results, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(r.conversations, id)
	return nil
}

func (r *fakeRepo) AttachTags(_ context.Context, conversationID uint, tagIDs []uint) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	set, ok := r.links[conversationID]
	if !ok {
		set = map[uint]bool{}
		r.links[conversationID] = set
	}
	for _, id := range tagIDs {
		set[id] = true
	}
	return nil
}

func (r *fakeRepo) ClearTags(_ context.Context, conversationID uint) error {
	delete(r.links, conversationID)
	return nil
}

func (r *fakeRepo) ListIDs(_ context.Context) ([]uint, error) {
	ids := make([]uint, 0, len(r.conversations))
	for id := range r.conversations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeTagRepo struct {
	nextID uint
	byName map[string]*tag.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{byName: map[string]*tag.Tag{}}
}

func (r *fakeTagRepo) GetOrCreate(_ context.Context, name string) (*tag.Tag, error) {
	if existing, ok := r.byName[name]; ok {
		return existing, nil
	}
	r.nextID++
	created := &tag.Tag{ID: r.nextID, Name: name}
	r.byName[name] = created
	return created, nil
}

func (r *fakeTagRepo) FindByName(_ context.Context, name string) (*tag.Tag, error) {
	existing, ok := r.byName[name]
	if !ok {
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "tag not found", nil, "")
	}
	return existing, nil
}

// fakeTx runs the transactional function directly and counts invocations.
type fakeTx struct {
	calls  int
	failed int
}

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if err := fn(ctx); err != nil {
		t.failed++
		return err
	}
	return nil
}

func newTestService(repo *fakeRepo) (*Service, *fakeTx) {
	tx := &fakeTx{}
	svc := NewService(
		repo,
		tag.NewService(newFakeTagRepo()),
		extract.NewExtractor(extract.DefaultConfig()),
		tx,
		zerolog.Nop(),
	)
	return svc, tx
}

func validInput(userID uint) SubmitInput {
	return SubmitInput{
		UserID:                userID,
		Source:                SourceChatGPT,
		Prompt:                "how to tune database index performance",
		Response:              "create the index concurrently and monitor database load",
		ConversationTimestamp: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestSubmit_AttachesExtractedTags(t *testing.T) {
	repo := newFakeRepo()
	svc, tx := newTestService(repo)

	conv, err := svc.Submit(context.Background(), validInput(1))
	require.NoError(t, err)

	assert.NotEmpty(t, conv.PublicID)
	assert.NotEmpty(t, conv.Tags)
	assert.Contains(t, conv.TagNames(), "database")
	assert.Equal(t, 1, tx.calls)

	linked := repo.links[conv.ID]
	require.Len(t, linked, len(conv.Tags))
	for _, linkedTag := range conv.Tags {
		assert.True(t, linked[linkedTag.ID])
	}
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"empty prompt", func(in *SubmitInput) { in.Prompt = "   " }},
		{"empty response", func(in *SubmitInput) { in.Response = "" }},
		{"unknown source", func(in *SubmitInput) { in.Source = "CLAUDE" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, tx := newTestService(newFakeRepo())
			input := validInput(1)
			tc.mutate(&input)

			_, err := svc.Submit(context.Background(), input)
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
			assert.Zero(t, tx.calls, "invalid input must not open a transaction")
		})
	}
}

func TestSubmit_AttachFailureFailsTheTransaction(t *testing.T) {
	repo := newFakeRepo()
	repo.attachErr = errors.New("link write failed")
	svc, tx := newTestService(repo)

	_, err := svc.Submit(context.Background(), validInput(1))
	require.Error(t, err)
	assert.Equal(t, 1, tx.failed)
}

func TestGetByPublicIDAndUserID_OwnershipMismatchIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	conv, err := svc.Submit(context.Background(), validInput(1))
	require.NoError(t, err)

	_, err = svc.GetByPublicIDAndUserID(context.Background(), conv.PublicID, 2)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	got, err := svc.GetByPublicIDAndUserID(context.Background(), conv.PublicID, 1)
	require.NoError(t, err)
	assert.Equal(t, conv.PublicID, got.PublicID)
}

func TestDelete_RemovesConversationAndLinks(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	conv, err := svc.Submit(context.Background(), validInput(1))
	require.NoError(t, err)
	require.NotEmpty(t, repo.links[conv.ID])

	require.NoError(t, svc.Delete(context.Background(), conv.PublicID, 1))

	assert.Empty(t, repo.conversations)
	assert.Empty(t, repo.links[conv.ID])
}

func TestDelete_OtherUsersConversationIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	conv, err := svc.Submit(context.Background(), validInput(1))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), conv.PublicID, 2)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	assert.Len(t, repo.conversations, 1)
}

func TestRetagAll_RecomputesAssignments(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Submit(context.Background(), validInput(1))
	require.NoError(t, err)

	second := validInput(2)
	second.Prompt = "explain network routing tables"
	second.Response = "routing tables map network prefixes to next hops"
	_, err = svc.Submit(context.Background(), second)
	require.NoError(t, err)

	report, err := svc.RetagAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RetagReport{Processed: 2, Succeeded: 2, Skipped: 0}, report)

	// The pipeline is deterministic, so a second sweep converges to the same links.
	before := map[uint][]uint{}
	for id, set := range repo.links {
		for tagID := range set {
			before[id] = append(before[id], tagID)
		}
		sort.Slice(before[id], func(i, j int) bool { return before[id][i] < before[id][j] })
	}

	report, err = svc.RetagAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)

	for id, tagIDs := range before {
		var after []uint
		for tagID := range repo.links[id] {
			after = append(after, tagID)
		}
		sort.Slice(after, func(i, j int) bool { return after[i] < after[j] })
		assert.Equal(t, tagIDs, after)
	}
}

func TestRetagAll_SkipsFailingConversations(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Submit(context.Background(), validInput(1))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), validInput(2))
	require.NoError(t, err)

	repo.attachErr = errors.New("link write failed")

	report, err := svc.RetagAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Skipped)
	assert.Zero(t, report.Succeeded)
}

func TestSearch_ScopedToUser(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Submit(context.Background(), validInput(1))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), validInput(2))
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), SearchFilter{UserID: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint(1), results[0].UserID)
}
