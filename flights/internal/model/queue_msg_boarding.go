package model

type QueueMsgBoarding struct {
	FlightID      string `json:"flight_id"`
	FlightClass   string `json:"flight_class"`
	PassengerName string `json:"passenger_name"`
	VIP           bool   `json:"vip"`
	Email         string `json:"email"`
}
