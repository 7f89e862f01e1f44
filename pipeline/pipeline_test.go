package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageName(t *testing.T, stage bson.D) string {
	t.Helper()
	require.Len(t, stage, 1)
	return stage[0].Key
}

func TestBuilderPreservesStageOrder(t *testing.T) {
	p := New().
		Match(bson.M{"active": true}).
		Lookup("reviews", "_id", "ProductID", "reviews").
		Sort(bson.D{{Key: "price", Value: 1}}).
		Paginate(2, 12).
		Build()

	require.Len(t, p, 5)
	assert.Equal(t, "$match", stageName(t, p[0]))
	assert.Equal(t, "$lookup", stageName(t, p[1]))
	assert.Equal(t, "$sort", stageName(t, p[2]))
	assert.Equal(t, "$skip", stageName(t, p[3]))
	assert.Equal(t, "$limit", stageName(t, p[4]))
}

func TestPaginateComputesSkipFromPage(t *testing.T) {
	p := New().Paginate(3, 12).Build()

	require.Len(t, p, 2)
	assert.Equal(t, int64(24), p[0][0].Value)
	assert.Equal(t, int64(12), p[1][0].Value)
}

func TestPaginateClampsPageToOne(t *testing.T) {
	p := New().Paginate(0, 10).Build()

	require.Len(t, p, 2)
	assert.Equal(t, int64(0), p[0][0].Value)
}

func TestCloneIsIndependent(t *testing.T) {
	base := New().Match(bson.M{"brand": "acme"})
	branch := base.Clone().Count("count")
	base.Sort(bson.D{{Key: "price", Value: -1}})

	require.Equal(t, 2, branch.Len())
	assert.Equal(t, "$count", stageName(t, branch.Build()[1]))

	require.Equal(t, 2, base.Len())
	assert.Equal(t, "$sort", stageName(t, base.Build()[1]))
}

func TestSearchStageShape(t *testing.T) {
	p := New().Search("searchIndex", "title", "shoe", 1, 100).Build()

	require.Len(t, p, 1)
	stage, ok := p[0][0].Value.(bson.M)
	require.True(t, ok)
	assert.Equal(t, "searchIndex", stage["index"])

	text, ok := stage["text"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "title", text["path"])
	assert.Equal(t, "shoe", text["query"])

	fuzzy, ok := text["fuzzy"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 1, fuzzy["maxEdits"])
	assert.Equal(t, 100, fuzzy["maxExpansions"])
}

func TestLookupStageShape(t *testing.T) {
	p := New().Lookup("products", "products.id", "_id", "productData").Build()

	stage, ok := p[0][0].Value.(bson.M)
	require.True(t, ok)
	assert.Equal(t, "products", stage["from"])
	assert.Equal(t, "products.id", stage["localField"])
	assert.Equal(t, "_id", stage["foreignField"])
	assert.Equal(t, "productData", stage["as"])
}
