package models

type Car struct {
	Plate string `json:"plate"`
	State string `json:"state"` // jurisdiction code, e.g. "AZ"
}

type Violation struct {
	ID       string `json:"id"`
	Car      Car    `json:"car"`
	Location string `json:"location"`
	Date     string `json:"date"` // ISO-8601, as sent by the service
	Resolved bool   `json:"resolved"`
}

func ViolationID(v Violation) string {
	return v.ID
}
