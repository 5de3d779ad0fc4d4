package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/traveltinder/backend/pkg/mongo"
)

const (
	usersCollection         = "users"
	otpsCollection          = "otps"
	refreshTokensCollection = "refresh_tokens"
)

// Store groups the collection-backed storages of one database.
type Store struct {
	Users         *UserStore
	OTPs          *OTPStore
	RefreshTokens *RefreshTokenStore
}

// New binds the storages to db.
func New(db *mongo.Database) *Store {
	return &Store{
		Users:         &UserStore{coll: db.Collection(usersCollection)},
		OTPs:          &OTPStore{coll: db.Collection(otpsCollection)},
		RefreshTokens: &RefreshTokenStore{coll: db.Collection(refreshTokensCollection)},
	}
}

// EnsureIndexes creates every index the storages rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := mongox.EnsureIndexes(ctx, s.Users.coll,
		mongox.SparseUniqueIndex("email"),
		mongox.SparseUniqueIndex("mobile"),
		mongox.SparseUniqueIndex("google_id"),
		mongox.SparseUniqueIndex("apple_id"),
		mongox.SparseUniqueIndex("facebook_id"),
	); err != nil {
		return err
	}

	if err := mongox.EnsureIndexes(ctx, s.OTPs.coll,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "identifier", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongox.TTLIndex("expires_at"),
	); err != nil {
		return err
	}

	return mongox.EnsureIndexes(ctx, s.RefreshTokens.coll,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}},
		mongox.TTLIndex("expires_at"),
	)
}
