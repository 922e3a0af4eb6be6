package main

import (
	"context"
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
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type Response []ResponseFlight

type ResponseFlight struct {
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
	ListFlightsByClass(ctx context.Context, class string) ([]model.Flight, error)
}

func Adapter(flightsRepo FlightsRepository, logger zerolog.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		// Get request parameters
		class, err := policy.ParseClass(req.PathParameters["class"])
		if err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}

		// Look for flights
		flights, err := flightsRepo.ListFlightsByClass(ctx, string(class))
		if err == repository.ErrNoFlightsFound {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			logger.Error().Err(err).Str("class", string(class)).Msg("unable to list flights")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Prepare response
		response := make(Response, len(flights))
		for i, f := range flights {
			rPassengers := make([]ResponsePassenger, len(f.Passengers))
			for j, p := range f.Passengers {
				rPassenger := ResponsePassenger{}
				rPassenger.Name = p.Name
				rPassenger.VIP = p.VIP
				rPassengers[j] = rPassenger
			}
			rFlight := ResponseFlight{}
			rFlight.ID = f.ID
			rFlight.Class = f.Class
			rFlight.PassengerCount = len(rPassengers)
			rFlight.Passengers = rPassengers
			response[i] = rFlight
		}

		// Respond
		return internal.RespondJSON(http.StatusOK, response), nil
	}
}

func main() {
	cfg := internal.MustLoadConfig("dynamodb.flights")
	logger := internal.NewLogger(cfg.Log.Level, cfg.Log.Pretty)
	session := session.New()
	flightsRepo := repository.NewFlightsRepository(dynamodb.New(session), cfg.DynamoDB.Flights)
	lambda.Start(Adapter(flightsRepo, logger))
}
