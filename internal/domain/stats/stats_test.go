package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptory-server/internal/domain/conversation"
)

type fakeRepo struct {
	counts    []TagCount
	bySource  map[conversation.Source]int64
	lastLimit int
}

func (r *fakeRepo) TagFrequency(_ context.Context, _ uint, limit int) ([]TagCount, error) {
	r.lastLimit = limit
	if limit < len(r.counts) {
		return r.counts[:limit], nil
	}
	return r.counts, nil
}

func (r *fakeRepo) CountBySource(_ context.Context, _ uint) (map[conversation.Source]int64, error) {
	return r.bySource, nil
}

func TestSummary_TotalsAcrossSources(t *testing.T) {
	repo := &fakeRepo{bySource: map[conversation.Source]int64{
		conversation.SourceChatGPT: 7,
		conversation.SourceGemini:  3,
	}}
	svc := NewService(repo)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalConversations)
	assert.Equal(t, int64(7), summary.BySource[conversation.SourceChatGPT])
	assert.Equal(t, int64(3), summary.BySource[conversation.SourceGemini])
}

func TestSummary_EmptyStore(t *testing.T) {
	svc := NewService(&fakeRepo{bySource: map[conversation.Source]int64{}})

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalConversations)
	assert.Empty(t, summary.BySource)
}

func TestTagFrequency_AppliesRankingLimit(t *testing.T) {
	repo := &fakeRepo{counts: []TagCount{
		{Name: "database", Count: 9},
		{Name: "index", Count: 4},
	}}
	svc := NewService(repo)

	counts, err := svc.TagFrequency(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, TagFrequencyLimit, repo.lastLimit)
	require.Len(t, counts, 2)
	assert.Equal(t, "database", counts[0].Name)
}
