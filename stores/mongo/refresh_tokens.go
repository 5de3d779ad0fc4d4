package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/traveltinder/backend/pkg/auth"
	mongox "github.com/traveltinder/backend/pkg/mongo"
)

type refreshTokenDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// RefreshTokenStore is a MongoDB auth.RefreshTokenStorage.
type RefreshTokenStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (s *RefreshTokenStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *RefreshTokenStore) StoreRefreshToken(ctx context.Context, t *auth.RefreshToken) error {
	_, err := s.coll.InsertOne(ctx, refreshTokenDoc{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	})
	if err != nil {
		if mongox.IsDuplicateKey(err) {
			return auth.ErrTokenExists
		}
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) GetRefreshToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	var doc refreshTokenDoc
	err := s.coll.FindOne(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": s.clock()},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrTokenRevoked
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &auth.RefreshToken{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Token:     doc.Token,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *RefreshTokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete user refresh tokens: %w", err)
	}
	return res.DeletedCount, nil
}
