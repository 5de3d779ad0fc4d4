package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/traveltinder/backend/pkg/mongo"
	"github.com/traveltinder/backend/pkg/otp"
)

type otpDoc struct {
	ID         string    `bson:"_id"`
	Identifier string    `bson:"identifier"`
	Type       string    `bson:"type"`
	Purpose    string    `bson:"purpose"`
	Code       string    `bson:"otp"`
	Attempts   int       `bson:"attempts"`
	ExpiresAt  time.Time `bson:"expires_at"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d otpDoc) challenge() *otp.Challenge {
	return &otp.Challenge{
		ID:         d.ID,
		Identifier: d.Identifier,
		Channel:    otp.Channel(d.Type),
		Purpose:    otp.Purpose(d.Purpose),
		Code:       d.Code,
		Attempts:   d.Attempts,
		ExpiresAt:  d.ExpiresAt,
		CreatedAt:  d.CreatedAt,
	}
}

// OTPStore is a MongoDB otp.Storage.
type OTPStore struct {
	coll *mongo.Collection
}

func (s *OTPStore) Replace(ctx context.Context, c *otp.Challenge) error {
	key := bson.M{"identifier": c.Identifier, "type": string(c.Channel)}
	doc := otpDoc{
		ID:         c.ID,
		Identifier: c.Identifier,
		Type:       string(c.Channel),
		Purpose:    string(c.Purpose),
		Code:       c.Code,
		Attempts:   c.Attempts,
		ExpiresAt:  c.ExpiresAt,
		CreatedAt:  c.CreatedAt,
	}

	// A concurrent Issue can insert between delete and insert; retry once
	// so the latest request wins.
	var err error
	for range 2 {
		if _, err = s.coll.DeleteMany(ctx, key); err != nil {
			return fmt.Errorf("delete previous otps: %w", err)
		}
		if _, err = s.coll.InsertOne(ctx, doc); !mongox.IsDuplicateKey(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

func (s *OTPStore) IncrementAttempts(ctx context.Context, identifier string, channel otp.Channel, maxAttempts int, now time.Time) (*otp.Challenge, error) {
	var doc otpDoc
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{
			"identifier": identifier,
			"type":       string(channel),
			"expires_at": bson.M{"$gt": now},
			"attempts":   bson.M{"$lt": maxAttempts},
		},
		bson.M{"$inc": bson.M{"attempts": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.challenge(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("increment otp attempts: %w", err)
	}

	// Nothing matched: either no live challenge, or one out of attempts.
	// A challenge issued since the update still has attempts left and
	// must not be reported as exhausted.
	exhausted := bson.M{
		"identifier": identifier,
		"type":       string(channel),
		"expires_at": bson.M{"$gt": now},
		"attempts":   bson.M{"$gte": maxAttempts},
	}
	if err := s.coll.FindOne(ctx, exhausted).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, otp.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	return doc.challenge(), otp.ErrAttemptsExhausted
}

func (s *OTPStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete otp: %w", err)
	}
	return res.DeletedCount > 0, nil
}
