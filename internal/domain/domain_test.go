package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		completed, items, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{2, 2, 100},
		{1, 2, 50},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", c.completed, c.items), func(t *testing.T) {
			assert.Equal(t, c.want, CompletionPercentage(c.completed, c.items))
		})
	}
}

func TestListView(t *testing.T) {
	v := BucketList{ID: "l1", ItemCount: 4, CompletedCount: 1}.View()
	assert.Equal(t, 25, v.CompletionPercentage)
	assert.Equal(t, "l1", v.ID)
}

func TestNormalizeListName(t *testing.T) {
	got, err := NormalizeListName("  Summer  ")
	require.NoError(t, err)
	assert.Equal(t, "Summer", got)

	_, err = NormalizeListName("   ")
	assert.True(t, IsKind(err, KindValidation))

	_, err = NormalizeListName(strings.Repeat("a", 101))
	assert.True(t, IsKind(err, KindValidation))

	got, err = NormalizeListName(strings.Repeat("é", 100))
	require.NoError(t, err)
	assert.Len(t, []rune(got), 100)
}

func TestNormalizeItemText(t *testing.T) {
	_, err := NormalizeItemText(strings.Repeat("x", 501))
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindValidation, de.Kind)
	assert.Contains(t, de.Fields, "text")

	got, err := NormalizeItemText(" Visit Kyoto ")
	require.NoError(t, err)
	assert.Equal(t, "Visit Kyoto", got)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Ann@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got)

	for _, bad := range []string{"", "nope", "a@", strings.Repeat("a", 250) + "@x.com"} {
		_, err := NormalizeEmail(bad)
		assert.True(t, IsKind(err, KindValidation), bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 129)))
}

func TestNormalizeSearchQuery(t *testing.T) {
	_, err := NormalizeSearchQuery("  ")
	assert.True(t, IsKind(err, KindValidation))
	_, err = NormalizeSearchQuery(strings.Repeat("q", 101))
	assert.True(t, IsKind(err, KindValidation))
	q, err := NormalizeSearchQuery(" yoga ")
	require.NoError(t, err)
	assert.Equal(t, "yoga", q)
}

func TestNewPage(t *testing.T) {
	p, err := NewPage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Page{Page: 1, Limit: 20}, p)
	assert.Equal(t, 0, p.Offset())

	p, err = NewPage(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())

	_, err = NewPage(-1, 10)
	assert.Error(t, err)
	_, err = NewPage(1, 101)
	assert.Error(t, err)

	// 超大页码直接拒绝，不让 Offset 溢出
	_, err = NewPage(4611686018427387905, 100)
	assert.True(t, IsKind(err, KindValidation))
	_, err = NewPage(MaxPage+1, 1)
	assert.True(t, IsKind(err, KindValidation))
	p, err = NewPage(MaxPage, MaxPageLimit)
	require.NoError(t, err)
	assert.Equal(t, (MaxPage-1)*MaxPageLimit, p.Offset())
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 20, Total: 41, TotalPages: 3}, NewPagination(Page{1, 20}, 41))
	assert.Equal(t, 0, NewPagination(Page{1, 20}, 0).TotalPages)
	assert.Equal(t, 2, NewPagination(Page{1, 20}, 40).TotalPages)
}

func TestBuildTagIndex(t *testing.T) {
	assert.Equal(t, "|yoga|wellness|", BuildTagIndex([]string{"Yoga", " wellness "}))
	assert.Equal(t, "", BuildTagIndex(nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrap: %w", NotFound("list"))))
	assert.Equal(t, Kind(""), KindOf(nil))

	cause := errors.New("db down")
	err := Internal("load list", cause)
	assert.ErrorIs(t, err, cause)
}
