package internal

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/xeipuuv/gojsonschema"
)

func Respond(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}
}

// RespondJSON marshals structure as the response body. A value that cannot be
// marshalled turns into a 500 error response.
func RespondJSON(statusCode int, structure interface{}) events.APIGatewayProxyResponse {
	data, err := json.Marshal(structure)
	if err != nil {
		return Error(http.StatusInternalServerError, err)
	}
	return Respond(statusCode, string(data))
}

func Error(statusCode int, err error) events.APIGatewayProxyResponse {
	responseBytes, _ := json.Marshal(map[string]interface{}{
		"errors": []string{err.Error()},
	})

	return Respond(statusCode, string(responseBytes))
}

func SchemaErrors(statusCode int, schemaErrors []gojsonschema.ResultError) events.APIGatewayProxyResponse {
	errors := []string{}

	for _, error := range schemaErrors {
		errString := fmt.Sprintf("%v", error)
		errors = append(errors, errString)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"errors": errors,
	})

	return Respond(statusCode, string(body))
}

// ValidateBody checks a raw request body against a JSON schema. A body that is
// not valid JSON is reported through err, schema violations through the slice.
func ValidateBody(schema gojsonschema.JSONLoader, body string) ([]gojsonschema.ResultError, error) {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(body))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	return result.Errors(), nil
}
