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

// userDoc is the stored shape of auth.User. Identifier fields use omitempty
// so the partial unique indexes skip users that lack them.
type userDoc struct {
	ID               string     `bson:"_id"`
	Email            string     `bson:"email,omitempty"`
	Mobile           string     `bson:"mobile,omitempty"`
	PasswordHash     string     `bson:"password_hash,omitempty"`
	GoogleID         string     `bson:"google_id,omitempty"`
	AppleID          string     `bson:"apple_id,omitempty"`
	FacebookID       string     `bson:"facebook_id,omitempty"`
	FirstName        string     `bson:"first_name,omitempty"`
	LastName         string     `bson:"last_name,omitempty"`
	ProfilePicture   string     `bson:"profile_picture,omitempty"`
	IsEmailVerified  bool       `bson:"is_email_verified"`
	IsMobileVerified bool       `bson:"is_mobile_verified"`
	AuthProvider     string     `bson:"auth_provider"`
	LastLogin        *time.Time `bson:"last_login,omitempty"`
	CreatedAt        time.Time  `bson:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at"`
}

func toUserDoc(u *auth.User) userDoc {
	return userDoc{
		ID:               u.ID,
		Email:            u.Email,
		Mobile:           u.Mobile,
		PasswordHash:     u.PasswordHash,
		GoogleID:         u.GoogleID,
		AppleID:          u.AppleID,
		FacebookID:       u.FacebookID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		ProfilePicture:   u.ProfilePicture,
		IsEmailVerified:  u.IsEmailVerified,
		IsMobileVerified: u.IsMobileVerified,
		AuthProvider:     string(u.AuthProvider),
		LastLogin:        u.LastLogin,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (d userDoc) user() *auth.User {
	return &auth.User{
		ID:               d.ID,
		Email:            d.Email,
		Mobile:           d.Mobile,
		PasswordHash:     d.PasswordHash,
		GoogleID:         d.GoogleID,
		AppleID:          d.AppleID,
		FacebookID:       d.FacebookID,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		ProfilePicture:   d.ProfilePicture,
		IsEmailVerified:  d.IsEmailVerified,
		IsMobileVerified: d.IsMobileVerified,
		AuthProvider:     auth.Provider(d.AuthProvider),
		LastLogin:        d.LastLogin,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// UserStore is a MongoDB auth.UserStorage.
type UserStore struct {
	coll *mongo.Collection
}

func (s *UserStore) CreateUser(ctx context.Context, user *auth.User) error {
	if _, err := s.coll.InsertOne(ctx, toUserDoc(user)); err != nil {
		if mongox.IsDuplicateKey(err) {
			return auth.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpdateUser replaces the whole document, so fields cleared on user are
// removed from storage.
func (s *UserStore) UpdateUser(ctx context.Context, user *auth.User) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, toUserDoc(user))
	if err != nil {
		if mongox.IsDuplicateKey(err) {
			return auth.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	return s.findOne(ctx, "_id", id)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, "email", email)
}

func (s *UserStore) GetUserByMobile(ctx context.Context, mobile string) (*auth.User, error) {
	return s.findOne(ctx, "mobile", mobile)
}

func (s *UserStore) GetUserByGoogleID(ctx context.Context, googleID string) (*auth.User, error) {
	return s.findOne(ctx, "google_id", googleID)
}

func (s *UserStore) GetUserByAppleID(ctx context.Context, appleID string) (*auth.User, error) {
	return s.findOne(ctx, "apple_id", appleID)
}

func (s *UserStore) findOne(ctx context.Context, field, value string) (*auth.User, error) {
	if value == "" {
		return nil, auth.ErrUserNotFound
	}

	var doc userDoc
	if err := s.coll.FindOne(ctx, bson.M{field: value}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by %s: %w", field, err)
	}
	return doc.user(), nil
}
