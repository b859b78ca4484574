package favorites

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore applies toggles against the users and listings collections.
// The set membership change and the counter increment commit in one
// transaction, so favoritesCount can never diverge from the favorites sets.
type MongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	listings *mongo.Collection
}

func NewMongoStore(client *mongo.Client, users, listings *mongo.Collection) *MongoStore {
	return &MongoStore{
		client:   client,
		users:    users,
		listings: listings,
	}
}

func (s *MongoStore) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, ErrNotFound
	}
	lid, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return false, ErrNotFound
	}

	session, err := s.client.StartSession()
	if err != nil {
		return false, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Membership is read inside the transaction, so a stale client
		// view cannot double-apply the same toggle.
		var user struct {
			FavoritePosts []primitive.ObjectID `bson:"favoritePosts"`
		}
		if err := s.users.FindOne(sc, bson.M{"_id": uid}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrNotFound
			}
			return nil, err
		}

		favorited := false
		for _, id := range user.FavoritePosts {
			if id == lid {
				favorited = true
				break
			}
		}

		if favorited {
			if _, err := s.users.UpdateOne(sc,
				bson.M{"_id": uid},
				bson.M{"$pull": bson.M{"favoritePosts": lid}},
			); err != nil {
				return nil, err
			}
			// Only decrement while the counter is positive; a listing
			// whose counter was zeroed out of band stays at zero.
			if _, err := s.listings.UpdateOne(sc,
				bson.M{"_id": lid, "favoritesCount": bson.M{"$gt": 0}},
				bson.M{"$inc": bson.M{"favoritesCount": -1}},
			); err != nil {
				return nil, err
			}
			return false, nil
		}

		res, err := s.listings.UpdateOne(sc,
			bson.M{"_id": lid},
			bson.M{"$inc": bson.M{"favoritesCount": 1}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		if _, err := s.users.UpdateOne(sc,
			bson.M{"_id": uid},
			bson.M{"$addToSet": bson.M{"favoritePosts": lid}},
		); err != nil {
			return nil, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
