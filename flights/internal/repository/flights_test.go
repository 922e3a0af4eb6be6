package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/go-cmp/cmp"
	"github.com/meetupaws/airport_boarding/flights/internal/model"
	"github.com/meetupaws/airport_boarding/flights/internal/policy"
	"github.com/meetupaws/airport_boarding/internal"
	"github.com/meetupaws/airport_boarding/internal/fixture"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createFlightsTable(client *dynamodb.DynamoDB, table string, t *testing.T) {
	_, err := client.CreateTable(&dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("id"),
				AttributeType: aws.String("S"),
			},
			{
				AttributeName: aws.String("class"),
				AttributeType: aws.String("S"),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String("id"),
				KeyType:       aws.String("HASH"),
			},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
		GlobalSecondaryIndexes: []*dynamodb.GlobalSecondaryIndex{
			{
				IndexName: aws.String(byClassIndex),
				KeySchema: []*dynamodb.KeySchemaElement{
					{
						AttributeName: aws.String("class"),
						KeyType:       aws.String("HASH"),
					},
				},
				Projection: &dynamodb.Projection{
					ProjectionType: aws.String("ALL"),
				},
				ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
					ReadCapacityUnits:  aws.Int64(5),
					WriteCapacityUnits: aws.Int64(5),
				},
			},
		},
	})
	if err != nil {
		t.Errorf("Error while creating flights table: %v\n", err)
	}
}

func TestFlightsRepository_SaveAndFind(t *testing.T) {

	table := "flights"
	fixture.RequireRegular(t)
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createFlightsTable(client, table, t)
	flightsRepo := NewFlightsRepository(client, table)
	ctx := context.Background()

	flightsToSave := []model.Flight{
		{
			ID:    "f1",
			Class: "economy",
			Passengers: []model.FlightPassenger{
				{Name: "Mike", VIP: false},
				{Name: "James", VIP: true},
			},
		},
		{
			ID:         "f2",
			Class:      "premium",
			Passengers: []model.FlightPassenger{},
		},
	}

	for i, f := range flightsToSave {
		saved, err := flightsRepo.Save(ctx, f)
		require.NoError(t, err)
		require.Equal(t, int64(1), saved.Version)
		flightsToSave[i] = saved
	}

	for _, f := range flightsToSave {
		foundFlight, err := flightsRepo.Find(ctx, f.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(f, foundFlight); diff != "" {
			t.Errorf("Error while finding flight: (-want,+got)\n%s", diff)
		}
	}

	_, err := flightsRepo.Find(ctx, "missing")
	require.Equal(t, ErrNoFlightsFound, err)
}

func TestFlightsRepository_SaveReplacesManifest(t *testing.T) {

	// Arrange
	table := "flights"
	fixture.RequireRegular(t)
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createFlightsTable(client, table, t)
	flightsRepo := NewFlightsRepository(client, table)
	ctx := context.Background()

	flight := policy.NewPremiumFlight("f3")
	flight.AddPassenger(policy.NewPassenger("James", true))
	_, err := flightsRepo.Save(ctx, policy.ToManifest(flight))
	require.NoError(t, err)

	// Act
	stored, err := flightsRepo.Find(ctx, "f3")
	require.NoError(t, err)
	rebuilt, err := policy.FromManifest(stored)
	require.NoError(t, err)
	require.True(t, rebuilt.RemovePassenger(policy.NewPassenger("James", true)))
	updated := policy.ToManifest(rebuilt)
	updated.Version = stored.Version
	_, err = flightsRepo.Save(ctx, updated)
	require.NoError(t, err)

	// Assert
	stored, err = flightsRepo.Find(ctx, "f3")
	require.NoError(t, err)
	require.Empty(t, stored.Passengers)
}

func TestFlightsRepository_ListFlightsByClass(t *testing.T) {

	// Arrange
	table := "flights"
	fixture.RequireRegular(t)
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createFlightsTable(client, table, t)
	flightsRepo := NewFlightsRepository(client, table)
	ctx := context.Background()

	flightsToSave := []model.Flight{
		{ID: "f1", Class: "economy", Passengers: []model.FlightPassenger{}},
		{ID: "f2", Class: "business", Passengers: []model.FlightPassenger{{Name: "James", VIP: true}}},
		{ID: "f3", Class: "business", Passengers: []model.FlightPassenger{}},
	}

	for i, f := range flightsToSave {
		saved, err := flightsRepo.Save(ctx, f)
		require.NoError(t, err)
		flightsToSave[i] = saved
	}

	// Act
	foundFlights, err := flightsRepo.ListFlightsByClass(ctx, "business")

	// Assert
	require.NoError(t, err)
	require.Len(t, foundFlights, 2)
	require.Contains(t, foundFlights, flightsToSave[1])
	require.Contains(t, foundFlights, flightsToSave[2])

	_, err = flightsRepo.ListFlightsByClass(ctx, "premium")
	require.Equal(t, ErrNoFlightsFound, err)
}

func TestFlightsRepository_SaveRejectsStaleManifest(t *testing.T) {

	// Arrange
	table := "flights"
	fixture.RequireRegular(t)
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createFlightsTable(client, table, t)
	flightsRepo := NewFlightsRepository(client, table)
	ctx := context.Background()

	_, err := flightsRepo.Save(ctx, model.Flight{ID: "f4", Class: "economy", Passengers: []model.FlightPassenger{}})
	require.NoError(t, err)
	first, err := flightsRepo.Find(ctx, "f4")
	require.NoError(t, err)
	second, err := flightsRepo.Find(ctx, "f4")
	require.NoError(t, err)

	first.Passengers = append(first.Passengers, model.FlightPassenger{Name: "Mike"})
	second.Passengers = append(second.Passengers, model.FlightPassenger{Name: "Anna"})

	// Act
	_, firstErr := flightsRepo.Save(ctx, first)
	_, secondErr := flightsRepo.Save(ctx, second)
	_, recreateErr := flightsRepo.Save(ctx, model.Flight{ID: "f4", Class: "economy", Passengers: []model.FlightPassenger{}})

	// Assert
	require.NoError(t, firstErr)
	require.Equal(t, ErrManifestChanged, secondErr)
	require.Equal(t, ErrManifestChanged, recreateErr)
	stored, err := flightsRepo.Find(ctx, "f4")
	require.NoError(t, err)
	require.Equal(t, []model.FlightPassenger{{Name: "Mike"}}, stored.Passengers)
	require.Equal(t, int64(2), stored.Version)
}

type DynamoDBMock struct {
	dynamodbiface.DynamoDBAPI
	mock.Mock
}

func (m *DynamoDBMock) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error) {
	ret := m.Called(in)
	return ret.Get(0).(*dynamodb.PutItemOutput), ret.Error(1)
}

func TestFlightsRepository_SaveCondition(t *testing.T) {

	tests := []struct {
		name          string
		flight        model.Flight
		putErr        error
		wantCondition string
		wantRead      *dynamodb.AttributeValue
		wantVersion   int64
		wantErr       error
	}{
		{
			name:          "A new manifest must not overwrite a stored one",
			flight:        model.Flight{ID: "f1", Class: "economy"},
			wantCondition: "attribute_not_exists(#id) OR attribute_not_exists(#version)",
			wantVersion:   1,
		},
		{
			name:          "A read manifest is written only over the version it was read from",
			flight:        model.Flight{ID: "f1", Class: "economy", Version: 3},
			wantCondition: "#version = :read",
			wantRead:      &dynamodb.AttributeValue{N: aws.String("3")},
			wantVersion:   4,
		},
		{
			name:          "A failed condition means the manifest changed",
			flight:        model.Flight{ID: "f1", Class: "economy", Version: 3},
			putErr:        awserr.New(dynamodb.ErrCodeConditionalCheckFailedException, "The conditional request failed", nil),
			wantCondition: "#version = :read",
			wantRead:      &dynamodb.AttributeValue{N: aws.String("3")},
			wantErr:       ErrManifestChanged,
		},
		{
			name:          "Other errors are returned as they are",
			flight:        model.Flight{ID: "f1", Class: "economy"},
			putErr:        errors.New("unexpected"),
			wantCondition: "attribute_not_exists(#id) OR attribute_not_exists(#version)",
			wantErr:       errors.New("unexpected"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			client := &DynamoDBMock{}
			var got *dynamodb.PutItemInput
			client.On("PutItemWithContext", mock.Anything).Run(func(args mock.Arguments) {
				got = args.Get(0).(*dynamodb.PutItemInput)
			}).Return(&dynamodb.PutItemOutput{}, tt.putErr).Once()

			// Act
			saved, err := NewFlightsRepository(client, "flights").Save(context.Background(), tt.flight)

			// Assert
			require.Equal(t, tt.wantCondition, aws.StringValue(got.ConditionExpression))
			if tt.wantRead != nil {
				require.Equal(t, tt.wantRead, got.ExpressionAttributeValues[":read"])
			}
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantVersion, saved.Version)
			require.Equal(t, aws.String(strconv.FormatInt(tt.wantVersion, 10)), got.Item["version"].N)
			client.AssertExpectations(t)
		})
	}
}
