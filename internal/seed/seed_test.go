package seed

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketlist/internal/core/config"
	"bucketlist/internal/core/database/dbtest"
	"bucketlist/internal/domain"
)

func TestEmbeddedCatalogIsValid(t *testing.T) {
	f, err := Load(context.Background(), EmbeddedSource{})
	require.NoError(t, err)
	assert.Len(t, f.Categories, 5)

	cats, ideas := f.Build()
	assert.Len(t, cats, 5)
	assert.Len(t, ideas, 100)
	for _, i := range ideas {
		assert.NotEmpty(t, i.CategoryID)
		assert.LessOrEqual(t, len(i.Tags), 10)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad slug":        `{"categories":[{"name":"A","slug":"Bad Slug","order":1}]}`,
		"empty name":      `{"categories":[{"name":"","slug":"a","order":1}]}`,
		"negative order":  `{"categories":[{"name":"A","slug":"a","order":-1}]}`,
		"duplicate order": `{"categories":[{"name":"A","slug":"a","order":1},{"name":"B","slug":"b","order":1}]}`,
		"duplicate slug":  `{"categories":[{"name":"A","slug":"a","order":1},{"name":"B","slug":"a","order":2}]}`,
		"empty title":     `{"categories":[{"name":"A","slug":"a","order":1,"ideas":[{"title":""}]}]}`,
		"too many tags":   `{"categories":[{"name":"A","slug":"a","order":1,"ideas":[{"title":"x","tags":["1","2","3","4","5","6","7","8","9","10","11"]}]}]}`,
		"tag separator":   `{"categories":[{"name":"A","slug":"a","order":1,"ideas":[{"title":"x","tags":["yoga|wellness"]}]}]}`,
		"unknown field":   `{"categories":[{"name":"A","slug":"a","order":1,"color":"red"}]}`,
		"no categories":   `{"categories":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestIDsAreDeterministic(t *testing.T) {
	assert.Equal(t, IdeaID("travel", "Visit Rome"), IdeaID("travel", "Visit Rome"))
	assert.NotEqual(t, IdeaID("travel", "Visit Rome"), IdeaID("food", "Visit Rome"))
	assert.NotEqual(t, CategoryID("travel"), IdeaID("travel", ""))
}

func TestApplyReplacesCatalogAndKeepsUsage(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	first, err := Parse(strings.NewReader(`{"categories":[
		{"name":"Travel","slug":"travel","order":1,"ideas":[{"title":"Visit Rome","tags":["Italy"]},{"title":"Old idea"}]}
	]}`))
	require.NoError(t, err)
	st, err := Apply(ctx, db, first)
	require.NoError(t, err)
	assert.Equal(t, Stats{Categories: 1, Ideas: 2}, st)

	rome := IdeaID("travel", "Visit Rome")
	require.NoError(t, db.Model(&domain.LibraryIdea{}).Where("id = ?", rome).
		UpdateColumn("usage_count", 7).Error)

	second, err := Parse(strings.NewReader(`{"categories":[
		{"name":"Travel","slug":"travel","order":1,"ideas":[{"title":"Visit Rome","tags":["italy","europe"]}]},
		{"name":"Food","slug":"food","order":2,"ideas":[{"title":"Eat ramen in Tokyo"}]}
	]}`))
	require.NoError(t, err)
	st, err = Apply(ctx, db, second)
	require.NoError(t, err)
	assert.Equal(t, Stats{Categories: 2, Ideas: 2, Preserved: 1}, st)

	var got domain.LibraryIdea
	require.NoError(t, db.First(&got, "id = ?", rome).Error)
	assert.Equal(t, 7, got.UsageCount)
	assert.Equal(t, []string{"italy", "europe"}, []string(got.Tags))
	assert.Equal(t, "|italy|europe|", got.TagIndex)

	var n int64
	require.NoError(t, db.Model(&domain.LibraryIdea{}).Where("id = ?", IdeaID("travel", "Old idea")).Count(&n).Error)
	assert.Zero(t, n)
}

func TestFileSource(t *testing.T) {
	p := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(p, embeddedCatalog, 0o600))

	f, err := Load(context.Background(), FileSource{Path: p})
	require.NoError(t, err)
	assert.Len(t, f.Categories, 5)

	_, err = Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}

type fakeGetter struct {
	body string
	err  error
	in   *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Source(t *testing.T) {
	g := &fakeGetter{body: `{"categories":[{"name":"A","slug":"a","order":1}]}`}
	src := &S3Source{Client: g, Bucket: "seeds", Key: "catalog.json"}

	f, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, f.Categories, 1)
	assert.Equal(t, "seeds", aws.ToString(g.in.Bucket))
	assert.Equal(t, "catalog.json", aws.ToString(g.in.Key))
	assert.Equal(t, "s3://seeds/catalog.json", src.Name())

	g.err = errors.New("access denied")
	_, err = Load(context.Background(), src)
	assert.ErrorContains(t, err, "access denied")
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	src, err := NewSource(ctx, config.Seed{})
	require.NoError(t, err)
	assert.Equal(t, "embedded", src.Name())

	src, err = NewSource(ctx, config.Seed{Source: "file", Path: "/tmp/c.json"})
	require.NoError(t, err)
	assert.Equal(t, "file:/tmp/c.json", src.Name())

	_, err = NewSource(ctx, config.Seed{Source: "file"})
	assert.Error(t, err)
	_, err = NewSource(ctx, config.Seed{Source: "s3"})
	assert.Error(t, err)
	_, err = NewSource(ctx, config.Seed{Source: "ftp"})
	assert.Error(t, err)
}
