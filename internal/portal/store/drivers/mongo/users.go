package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store"
)

type usersRepo struct {
	col *mongo.Collection
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.col.InsertOne(ctx, toUserDoc(u))
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) SetRefreshToken(ctx context.Context, userID, token string) error {
	return r.setFields(ctx, userID, bson.M{"refreshToken": token})
}

// ReplaceRefreshToken is the rotation compare-and-set: the filter matches
// only while the persisted token still equals the presented one, so exactly
// one of two concurrent rotations can succeed.
func (r *usersRepo) ReplaceRefreshToken(ctx context.Context, userID, presented, next string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "refreshToken": presented},
		bson.M{"$set": bson.M{"refreshToken": next, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$unset": bson.M{"refreshToken": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	return r.setFields(ctx, userID, bson.M{"password": hash})
}

func (r *usersRepo) UpdateName(ctx context.Context, userID, firstName, lastName string) error {
	return r.setFields(ctx, userID, bson.M{"firstName": firstName, "lastName": lastName})
}

func (r *usersRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	return r.setFields(ctx, userID, bson.M{"avatar": avatarURL})
}

func (r *usersRepo) AdminExists(ctx context.Context) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"role": string(domain.RoleAdmin)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) setFields(ctx context.Context, userID string, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
