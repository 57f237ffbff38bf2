package mongo

import (
	"alcyxob/workout-api/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// mongoTransactor runs callbacks inside a multi-document transaction.
// Requires a replica set or sharded cluster; standalone servers reject it.
type mongoTransactor struct {
	client *mongo.Client
}

// NewTransactor creates a Transactor backed by client sessions.
func NewTransactor(client *mongo.Client) repository.Transactor {
	return &mongoTransactor{client: client}
}

// WithinTransaction starts a session and runs fn inside WithTransaction, which
// retries on transient transaction errors. The ctx handed to fn is the session
// context, so repository calls made with it join the transaction.
func (t *mongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txnOpts)
	return err
}
