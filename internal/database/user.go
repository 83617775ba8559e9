package repository

import (
	"context"

	"SchoolDesk/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) InsertUser(ctx context.Context, user *entity.User) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	_, err = m.collection(connection, usersCollection).InsertOne(ctx, user)
	if err != nil {
		return entity.StorageErr(err)
	}
	return nil
}

func (m *MongoDB) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	var user entity.User
	err = m.collection(connection, usersCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		return nil, findError(err)
	}
	return &user, nil
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	var user entity.User
	err = m.collection(connection, usersCollection).
		FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		return nil, findError(err)
	}
	return &user, nil
}

func (m *MongoDB) ListUsers(ctx context.Context) ([]entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	cursor, err := m.collection(connection, usersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer cursor.Close(ctx)

	var users []entity.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, entity.StorageErr(err)
	}
	return users, nil
}

func (m *MongoDB) CountUsersBySchool(ctx context.Context, schoolID string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	count, err := m.collection(connection, usersCollection).
		CountDocuments(ctx, bson.D{{Key: "school_id", Value: schoolID}})
	if err != nil {
		return 0, entity.StorageErr(err)
	}
	return count, nil
}

func (m *MongoDB) UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	set := bson.D{}
	if patch.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *patch.Username})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *patch.Role})
	}
	if patch.SchoolID != nil {
		set = append(set, bson.E{Key: "school_id", Value: *patch.SchoolID})
	}

	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user entity.User
	err = m.collection(connection, usersCollection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).
		Decode(&user)
	if err != nil {
		return nil, findError(err)
	}
	return &user, nil
}

func (m *MongoDB) DeleteUser(ctx context.Context, id string) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	result, err := m.collection(connection, usersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return entity.StorageErr(err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
