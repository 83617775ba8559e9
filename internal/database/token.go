package repository

import (
	"context"

	"SchoolDesk/entity"

	"go.mongodb.org/mongo-driver/bson"
)

func (m *MongoDB) InsertToken(ctx context.Context, token entity.Token) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	_, err = m.collection(connection, tokensCollection).InsertOne(ctx, token)
	if err != nil {
		return entity.StorageErr(err)
	}
	return nil
}

func (m *MongoDB) GetToken(ctx context.Context, token string) (*entity.Token, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	var stored entity.Token
	err = m.collection(connection, tokensCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: token}}).Decode(&stored)
	if err != nil {
		return nil, findError(err)
	}
	return &stored, nil
}

func (m *MongoDB) DeleteToken(ctx context.Context, token string) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	_, err = m.collection(connection, tokensCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: token}})
	if err != nil {
		return entity.StorageErr(err)
	}
	return nil
}
