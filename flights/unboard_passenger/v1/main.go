package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/meetupaws/airport_boarding/flights/internal/model"
	"github.com/meetupaws/airport_boarding/flights/internal/policy"
	"github.com/meetupaws/airport_boarding/flights/internal/repository"
	"github.com/meetupaws/airport_boarding/internal"
	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
)

var ErrPassengerNotRemoved = errors.New("passenger_not_removed")

var requestSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["flight_id", "name"],
	"properties": {
		"flight_id": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"vip": {"type": "boolean"}
	}
}`)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type FlightsRepository interface {
	Find(ctx context.Context, id string) (model.Flight, error)
	Save(ctx context.Context, m model.Flight) (model.Flight, error)
}

type Request struct {
	FlightID string `json:"flight_id"`
	Name     string `json:"name"`
	VIP      bool   `json:"vip"`
}

func Adapter(flightsRepo FlightsRepository, logger zerolog.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		request := Request{}
		err := json.Unmarshal([]byte(req.Body), &request)
		if err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}

		// Validations
		schemaErrors, err := internal.ValidateBody(requestSchema, req.Body)
		if err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}
		if len(schemaErrors) > 0 {
			return internal.SchemaErrors(http.StatusBadRequest, schemaErrors), nil
		}

		// Find the flight
		manifest, err := flightsRepo.Find(ctx, request.FlightID)
		if err == repository.ErrNoFlightsFound {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			logger.Error().Err(err).Str("flight_id", request.FlightID).Msg("unable to find flight")
			return internal.Error(http.StatusInternalServerError, err), nil
		}
		flight, err := policy.FromManifest(manifest)
		if err != nil {
			logger.Error().Err(err).Str("flight_id", request.FlightID).Msg("unable to rebuild flight")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Remove the passenger
		passenger := policy.NewPassenger(request.Name, request.VIP)
		if !flight.RemovePassenger(passenger) {
			logger.Info().Str("flight_id", flight.ID()).Str("passenger", passenger.String()).Msg("passenger not removed")
			return internal.Error(http.StatusUnprocessableEntity, ErrPassengerNotRemoved), nil
		}
		updated := policy.ToManifest(flight)
		updated.Version = manifest.Version
		saved, err := flightsRepo.Save(ctx, updated)
		if errors.Is(err, repository.ErrManifestChanged) {
			logger.Info().Str("flight_id", flight.ID()).Msg("flight changed while updating")
			return internal.Error(http.StatusConflict, err), nil
		}
		if err != nil {
			logger.Error().Err(err).Str("flight_id", flight.ID()).Msg("unable to save flight")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		return internal.RespondJSON(http.StatusOK, saved), nil
	}
}

func main() {
	cfg := internal.MustLoadConfig("dynamodb.flights")
	logger := internal.NewLogger(cfg.Log.Level, cfg.Log.Pretty)
	session := session.New()
	flightsRepo := repository.NewFlightsRepository(dynamodb.New(session), cfg.DynamoDB.Flights)
	lambda.Start(Adapter(flightsRepo, logger))
}
