package mongo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/traveltinder/backend/pkg/mongo"
)

func TestTTLIndex(t *testing.T) {
	t.Parallel()

	model := mongo.TTLIndex("expires_at")
	assert.Equal(t, bson.D{{Key: "expires_at", Value: 1}}, model.Keys)
	require.NotNil(t, model.Options)
}

func TestSparseUniqueIndex(t *testing.T) {
	t.Parallel()

	model := mongo.SparseUniqueIndex("email")
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, model.Keys)
	require.NotNil(t, model.Options)
}

func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.False(t, mongo.IsDuplicateKey(nil))
}
