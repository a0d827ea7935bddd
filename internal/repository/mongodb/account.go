package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accountd/accountd/internal/model"
	"github.com/accountd/accountd/internal/repository"
)

// accountDocument is the stored shape of an account.
type accountDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

// toModel translates the native ObjectID into the plain string id.
func (d *accountDocument) toModel() *model.Account {
	return &model.Account{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
	}
}

// AddAccount inserts a new account document and returns it as read back
// from the collection. The driver assigns the ObjectID.
func (s *Store) AddAccount(ctx context.Context, input model.AddAccountInput) (*model.Account, error) {
	doc := accountDocument{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.accounts.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	account, err := s.GetAccountByID(ctx, id.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to read back account: %w", err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by the hex form of its ObjectID.
func (s *Store) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrAccountNotFound
	}
	return s.findOne(ctx, bson.M{"_id": objID})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*model.Account, error) {
	var doc accountDocument
	err := s.accounts.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return doc.toModel(), nil
}
