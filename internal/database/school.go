package repository

import (
	"context"

	"SchoolDesk/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) InsertSchool(ctx context.Context, school *entity.School) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	_, err = m.collection(connection, schoolsCollection).InsertOne(ctx, school)
	if err != nil {
		return entity.StorageErr(err)
	}
	return nil
}

func (m *MongoDB) GetSchoolByID(ctx context.Context, id string) (*entity.School, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	var school entity.School
	err = m.collection(connection, schoolsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&school)
	if err != nil {
		return nil, findError(err)
	}
	return &school, nil
}

func (m *MongoDB) ListSchools(ctx context.Context) ([]entity.School, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := m.collection(connection, schoolsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer cursor.Close(ctx)

	var schools []entity.School
	if err = cursor.All(ctx, &schools); err != nil {
		return nil, entity.StorageErr(err)
	}
	return schools, nil
}

func (m *MongoDB) UpdateSchool(ctx context.Context, id string, patch entity.SchoolPatch) (*entity.School, error) {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Address != nil {
		set = append(set, bson.E{Key: "address", Value: *patch.Address})
	}
	if patch.Phone != nil {
		set = append(set, bson.E{Key: "phone", Value: *patch.Phone})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Website != nil {
		set = append(set, bson.E{Key: "website", Value: *patch.Website})
	}
	if patch.EstablishedDate != nil {
		set = append(set, bson.E{Key: "established_date", Value: *patch.EstablishedDate})
	}
	if patch.AdminID != nil {
		set = append(set, bson.E{Key: "admin_id", Value: *patch.AdminID})
	}

	connection, err := m.connect()
	if err != nil {
		return nil, entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var school entity.School
	err = m.collection(connection, schoolsCollection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).
		Decode(&school)
	if err != nil {
		return nil, findError(err)
	}
	return &school, nil
}

func (m *MongoDB) DeleteSchool(ctx context.Context, id string) error {
	connection, err := m.connect()
	if err != nil {
		return entity.StorageErr(err)
	}
	defer m.disconnect(connection)

	result, err := m.collection(connection, schoolsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return entity.StorageErr(err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
