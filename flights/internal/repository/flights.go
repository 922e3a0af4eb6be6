package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/meetupaws/airport_boarding/flights/internal/model"
)

const byClassIndex = "by_class"

var (
	ErrNoFlightsFound  = errors.New("no_flights_found")
	ErrManifestChanged = errors.New("flight_manifest_changed")
)

type FlightsRepository struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// Save writes the whole manifest as the next version of the one m was read
// from. It fails with ErrManifestChanged when another write got there first.
// The returned manifest carries the new version.
func (r *FlightsRepository) Save(ctx context.Context, m model.Flight) (model.Flight, error) {
	passengers := make([]*dynamodb.AttributeValue, len(m.Passengers))
	for i, p := range m.Passengers {
		passengers[i] = &dynamodb.AttributeValue{
			M: map[string]*dynamodb.AttributeValue{
				"name": {
					S: aws.String(p.Name),
				},
				"vip": {
					BOOL: aws.Bool(p.VIP),
				},
			},
		}
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item: map[string]*dynamodb.AttributeValue{
			"id": {
				S: aws.String(m.ID),
			},
			"class": {
				S: aws.String(m.Class),
			},
			"passengers": {
				L: passengers,
			},
			"version": {
				N: aws.String(strconv.FormatInt(m.Version+1, 10)),
			},
		},
		ConditionExpression: aws.String("attribute_not_exists(#id) OR attribute_not_exists(#version)"),
		ExpressionAttributeNames: map[string]*string{
			"#id":      aws.String("id"),
			"#version": aws.String("version"),
		},
	}
	if m.Version > 0 {
		input.ConditionExpression = aws.String("#version = :read")
		input.ExpressionAttributeNames = map[string]*string{
			"#version": aws.String("version"),
		}
		input.ExpressionAttributeValues = map[string]*dynamodb.AttributeValue{
			":read": {
				N: aws.String(strconv.FormatInt(m.Version, 10)),
			},
		}
	}

	_, err := r.client.PutItemWithContext(ctx, input)
	var awsErr awserr.Error
	if errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
		return model.Flight{}, ErrManifestChanged
	}
	if err != nil {
		return model.Flight{}, err
	}

	m.Version++
	return m, nil
}

func (r *FlightsRepository) Find(ctx context.Context, id string) (model.Flight, error) {
	out, err := r.client.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName: aws.String(r.table),
		KeyConditions: map[string]*dynamodb.Condition{
			"id": {
				ComparisonOperator: aws.String("EQ"),
				AttributeValueList: []*dynamodb.AttributeValue{
					{
						S: aws.String(id),
					},
				},
			},
		},
	})
	if err != nil {
		return model.Flight{}, err
	}

	if len(out.Items) == 0 {
		return model.Flight{}, ErrNoFlightsFound
	}

	flights, err := r.hydrate(out.Items)
	if err != nil {
		return model.Flight{}, err
	}
	return flights[0], nil
}

func (r *FlightsRepository) ListFlightsByClass(ctx context.Context, class string) ([]model.Flight, error) {
	out, err := r.client.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(byClassIndex),
		KeyConditionExpression: aws.String("#class = :class"),
		ExpressionAttributeNames: map[string]*string{
			"#class": aws.String("class"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":class": {
				S: aws.String(class),
			},
		},
	})
	if err != nil {
		return []model.Flight{}, err
	}

	if len(out.Items) == 0 {
		return []model.Flight{}, ErrNoFlightsFound
	}

	return r.hydrate(out.Items)
}

func (r *FlightsRepository) hydrate(items []map[string]*dynamodb.AttributeValue) ([]model.Flight, error) {

	flights := make([]model.Flight, len(items))
	for i, item := range items {

		if v, ok := item["id"]; ok {
			flights[i].ID = aws.StringValue(v.S)
		}
		if v, ok := item["class"]; ok {
			flights[i].Class = aws.StringValue(v.S)
		}
		if v, ok := item["version"]; ok {
			version, err := strconv.ParseInt(aws.StringValue(v.N), 10, 64)
			if err != nil {
				return nil, err
			}
			flights[i].Version = version
		}

		flights[i].Passengers = []model.FlightPassenger{}
		if passengersList, ok := item["passengers"]; ok {
			flights[i].Passengers = r.hydratePassengers(passengersList.L)
		}

	}
	return flights, nil

}

func (r *FlightsRepository) hydratePassengers(items []*dynamodb.AttributeValue) []model.FlightPassenger {

	passengers := make([]model.FlightPassenger, len(items))
	for i, item := range items {

		passengerMap := item.M

		if v, ok := passengerMap["name"]; ok {
			passengers[i].Name = aws.StringValue(v.S)
		}
		if v, ok := passengerMap["vip"]; ok {
			passengers[i].VIP = aws.BoolValue(v.BOOL)
		}
	}

	return passengers
}

func NewFlightsRepository(client dynamodbiface.DynamoDBAPI, table string) *FlightsRepository {
	return &FlightsRepository{
		client: client,
		table:  table,
	}
}
