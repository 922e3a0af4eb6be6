package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/meetupaws/airport_boarding/flights/internal/model"
	"github.com/meetupaws/airport_boarding/flights/internal/repository"
	"github.com/meetupaws/airport_boarding/internal"
	"github.com/rs/zerolog"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type Response struct {
	ID             string              `json:"id"`
	Class          string              `json:"class"`
	PassengerCount int                 `json:"passenger_count"`
	Passengers     []ResponsePassenger `json:"passengers"`
}

type ResponsePassenger struct {
	Name string `json:"name"`
	VIP  bool   `json:"vip"`
}

type FlightsRepository interface {
	Find(ctx context.Context, id string) (model.Flight, error)
}

func Adapter(flightsRepo FlightsRepository, logger zerolog.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		flightID := req.PathParameters["flightId"]

		flight, err := flightsRepo.Find(ctx, flightID)
		if err == repository.ErrNoFlightsFound {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			logger.Error().Err(err).Str("flight_id", flightID).Msg("unable to find flight")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Prepare response
		rPassengers := make([]ResponsePassenger, len(flight.Passengers))
		for i, p := range flight.Passengers {
			rPassengers[i] = ResponsePassenger{
				Name: p.Name,
				VIP:  p.VIP,
			}
		}

		return internal.RespondJSON(http.StatusOK, Response{
			ID:             flight.ID,
			Class:          flight.Class,
			PassengerCount: len(rPassengers),
			Passengers:     rPassengers,
		}), nil
	}
}

func main() {
	cfg := internal.MustLoadConfig("dynamodb.flights")
	logger := internal.NewLogger(cfg.Log.Level, cfg.Log.Pretty)
	session := session.New()
	flightsRepo := repository.NewFlightsRepository(dynamodb.New(session), cfg.DynamoDB.Flights)
	lambda.Start(Adapter(flightsRepo, logger))
}
