package tag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID uint
	byName map[string]*Tag
}

func (r *fakeRepo) GetOrCreate(_ context.Context, name string) (*Tag, error) {
	if existing, ok := r.byName[name]; ok {
		return existing, nil
	}
	r.nextID++
	created := &Tag{ID: r.nextID, Name: name}
	r.byName[name] = created
	return created, nil
}

func (r *fakeRepo) FindByName(_ context.Context, name string) (*Tag, error) {
	return r.byName[name], nil
}

func TestResolve_PreservesOrderAndReusesIdentities(t *testing.T) {
	svc := NewService(&fakeRepo{byName: map[string]*Tag{}})

	first, err := svc.Resolve(context.Background(), []string{"database", "index", "cache"})
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "database", first[0].Name)
	assert.Equal(t, "index", first[1].Name)
	assert.Equal(t, "cache", first[2].Name)

	second, err := svc.Resolve(context.Background(), []string{"cache", "database"})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[2].ID, second[0].ID)
	assert.Equal(t, first[0].ID, second[1].ID)
}

func TestResolve_EmptyInput(t *testing.T) {
	svc := NewService(&fakeRepo{byName: map[string]*Tag{}})

	tags, err := svc.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
