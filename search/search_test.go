package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCriteria_EncodeParseRoundTrip(t *testing.T) {
	c := Criteria{
		Query:   "customer master",
		Domains: []string{"Customer", "Finance"},
		Types:   []string{"Table"},
		Tags:    []string{"pii"},
	}

	encoded := c.Encode()
	assert.Equal(t, "domain=Customer&domain=Finance&q=customer+master&tag=pii&type=Table", encoded)

	values, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, c, ParseCriteria(values))
}

func TestParseCriteria_CommaSeparated(t *testing.T) {
	values, err := url.ParseQuery("status=Production,%20Development&certification=certified&owner=")
	require.NoError(t, err)

	c := ParseCriteria(values)
	assert.Equal(t, []string{"Production", "Development"}, c.Statuses)
	assert.Equal(t, []string{"certified"}, c.Certifications)
	assert.Nil(t, c.Owners)
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, Criteria{Query: "  "}.IsEmpty())
	assert.False(t, Criteria{Owners: []string{"Jane"}}.IsEmpty())
}

func TestCriteria_Filter(t *testing.T) {
	c := Criteria{Query: "a.b", Domains: []string{"Finance"}, Tags: []string{"sox"}}

	got := c.Filter()

	re := primitive.Regex{Pattern: `a\.b`, Options: "i"}
	assert.Equal(t, bson.M{
		"$or": bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"tags": re},
		},
		"domain": bson.M{"$in": []string{"Finance"}},
		"tags":   bson.M{"$in": []string{"sox"}},
	}, got)

	assert.Equal(t, bson.M{}, Criteria{}.Filter())
}

func TestSuggest_PrefixBeforeSubstring(t *testing.T) {
	got := Suggest("fin", DefaultFilterOptions(), 0)
	require.Len(t, got, 2)
	assert.Equal(t, "domain:Finance", got[0].Text)
	assert.Equal(t, "tag:finance", got[1].Text)

	got = Suggest("ta", DefaultFilterOptions(), 0)
	texts := make([]string, 0, len(got))
	for _, s := range got {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"type:Table", "domain:Reference Data", "type:Dataset", "tag:master-data"}, texts)
}

func TestSuggest_FieldScoped(t *testing.T) {
	got := Suggest("type:da", DefaultFilterOptions(), 0)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{Text: "type:Dataset", Field: "type", Value: "Dataset"}, got[0])
	assert.Equal(t, "type:Dashboard", got[1].Text)
}

func TestSuggest_LimitAndEmpty(t *testing.T) {
	assert.Empty(t, Suggest("   ", DefaultFilterOptions(), 5))
	assert.Len(t, Suggest("e", DefaultFilterOptions(), 3), 3)
}
