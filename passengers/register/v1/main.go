package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/meetupaws/airport_boarding/internal"
	"github.com/meetupaws/airport_boarding/passengers/internal/model"
	"github.com/meetupaws/airport_boarding/passengers/internal/repository"
	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
)

var requestSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["identifier", "name"],
	"properties": {
		"identifier": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"country_name": {"type": "string"},
		"country_code": {"type": "string", "maxLength": 3}
	}
}`)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type PassengersRepository interface {
	Insert(ctx context.Context, p model.Passenger) error
}

type Request struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
}

func (r Request) passenger() model.Passenger {
	p := model.Passenger{
		Identifier: r.Identifier,
		Name:       r.Name,
	}
	if r.CountryName != "" || r.CountryCode != "" {
		p.Country = &model.Country{
			Name:     r.CountryName,
			CodeName: r.CountryCode,
		}
	}
	return p
}

func Adapter(passengersRepo PassengersRepository, logger zerolog.Logger) Handler {
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

		passenger := request.passenger()
		err = passengersRepo.Insert(ctx, passenger)
		if errors.Is(err, repository.ErrPassengerExists) {
			logger.Info().Str("identifier", passenger.Identifier).Msg(err.Error())
			return internal.Error(http.StatusConflict, err), nil
		}
		if err != nil {
			logger.Error().Err(err).Str("identifier", passenger.Identifier).Msg("unable to register passenger")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		return internal.RespondJSON(http.StatusCreated, passenger), nil
	}
}

func main() {
	cfg := internal.MustLoadConfig("database.dsn")
	logger := internal.NewLogger(cfg.Log.Level, cfg.Log.Pretty)
	db, err := repository.OpenDatabase(cfg.Database.DSN)
	if err != nil {
		panic(err)
	}
	lambda.Start(Adapter(repository.NewPassengersRepository(db), logger))
}
